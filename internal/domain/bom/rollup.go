package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AssemblySubtotal aporte de un ensamble al gran total (costo unitario × cantidad).
type AssemblySubtotal struct {
	AssemblyID   string
	AssemblyName string
	Subtotal     decimal.Decimal
}

// CategorySubtotal aporte agregado de un capítulo al gran total.
type CategorySubtotal struct {
	CategoryID   string
	CategoryName string
	Subtotal     decimal.Decimal
}

// Percentage porcentaje del gran total para una llave de reporte.
type Percentage struct {
	Key     string
	Percent decimal.Decimal
}

// Rollup agregación de costos hacia arriba: gran total, subtotales por ensamble
// y capítulo, y porcentajes del total para reporteo.
type Rollup struct {
	GrandTotal  decimal.Decimal
	PerAssembly []AssemblySubtotal
	PerCategory []CategorySubtotal
	Percentages []Percentage
	Warnings    []Warning
}

// RollupComposition agrega costos sobre una composición (ensamble, cantidad) sin
// pasar por consolidación: subtotal de ensamble = Σ(precio × cantidadPorEnsamble),
// gran total = Σ(subtotal × cantidad). Por construcción es igual a la suma de
// TotalCost de los ítems consolidados de la misma composición (propiedad cubierta
// por tests). Composición vacía → total cero y porcentajes vacíos, nunca NaN.
func RollupComposition(snap *Snapshot, items []CompositionItem) Rollup {
	r := Rollup{GrandTotal: decimal.Zero}
	catIndex := make(map[string]int)

	for _, it := range items {
		asm := snap.Assembly(it.AssemblyID)
		if asm == nil {
			r.Warnings = append(r.Warnings, Warning{
				Kind:    WarnMissingAssembly,
				RefID:   it.AssemblyID,
				Message: fmt.Sprintf("ensamble %s no existe en el catálogo; se excluye de los totales", it.AssemblyID),
			})
			continue
		}
		unitCost := decimal.Zero // costo de UNA unidad del ensamble
		for _, am := range asm.Materials {
			mat := snap.Material(am.MaterialID)
			if mat == nil {
				r.Warnings = append(r.Warnings, Warning{
					Kind:    WarnMissingMaterial,
					RefID:   am.MaterialID,
					Message: fmt.Sprintf("material %s del ensamble %s no existe en el catálogo; se excluye de los totales", am.MaterialID, asm.ID),
				})
				continue
			}
			unitCost = unitCost.Add(mat.UnitPrice.Mul(am.Quantity))
		}
		contrib := unitCost.Mul(it.Quantity)
		r.PerAssembly = append(r.PerAssembly, AssemblySubtotal{
			AssemblyID:   asm.ID,
			AssemblyName: asm.Name,
			Subtotal:     contrib,
		})
		r.GrandTotal = r.GrandTotal.Add(contrib)

		catName := ""
		if cat := snap.Category(asm.CategoryID); cat != nil {
			catName = cat.Name
		}
		if i, ok := catIndex[asm.CategoryID]; ok {
			r.PerCategory[i].Subtotal = r.PerCategory[i].Subtotal.Add(contrib)
		} else {
			catIndex[asm.CategoryID] = len(r.PerCategory)
			r.PerCategory = append(r.PerCategory, CategorySubtotal{
				CategoryID:   asm.CategoryID,
				CategoryName: catName,
				Subtotal:     contrib,
			})
		}
	}

	for _, a := range r.PerAssembly {
		r.Percentages = append(r.Percentages, Percentage{
			Key:     a.AssemblyID,
			Percent: percentOf(a.Subtotal, r.GrandTotal),
		})
	}
	return r
}

// RollupConsolidated agrega costos sobre ítems ya consolidados (reporte plano):
// gran total = Σ TotalCost, porcentajes por nombre de material.
func RollupConsolidated(items []ConsolidatedLineItem) Rollup {
	r := Rollup{GrandTotal: decimal.Zero}
	for _, it := range items {
		r.GrandTotal = r.GrandTotal.Add(it.TotalCost)
	}
	for _, it := range items {
		r.Percentages = append(r.Percentages, Percentage{
			Key:     it.Name,
			Percent: percentOf(it.TotalCost, r.GrandTotal),
		})
	}
	return r
}

// percentOf = 100 × cost / grand, con guarda explícita para grand <= 0:
// devuelve cero en vez de dividir (nunca NaN/Infinity).
func percentOf(cost, grand decimal.Decimal) decimal.Decimal {
	if !grand.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return cost.Mul(hundred).Div(grand)
}
