package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
)

// Selection es la entrada del usuario al componer una plantilla:
// capítulo → grupo → ensambles elegidos.
type Selection map[string]map[string][]string

// ValidationError una violación de regla de grupo (conteo fuera de [min,max],
// grupo requerido vacío, o ensamble elegido que el grupo no ofrece).
// Recuperable: se acumula, no interrumpe el cálculo de costos de la parte válida.
type ValidationError struct {
	GroupID   string
	GroupName string
	Reason    string
}

// SelectedAssembly un ensamble válidamente elegido, con su aporte de costo.
type SelectedAssembly struct {
	AssemblyID   string
	AssemblyName string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal // costo de UNA unidad del ensamble × Quantity
}

// GroupBreakdown desglose de costos de un grupo dentro del árbol de validación.
type GroupBreakdown struct {
	GroupID   string
	GroupName string
	Selected  []SelectedAssembly
	Subtotal  decimal.Decimal
}

// CategoryBreakdown desglose de costos de un capítulo.
type CategoryBreakdown struct {
	CategoryID   string
	CategoryName string
	Groups       []GroupBreakdown
	Subtotal     decimal.Decimal
}

// ValidationResult resultado del validador: validez, TODAS las violaciones,
// el desglose de costos de la parte válida de la selección y el total corrido.
// Las violaciones de regla nunca se reportan como error de Go; solo la
// integridad referencial (ensamble elegido inexistente en el snapshot) genera Warnings.
type ValidationResult struct {
	IsValid   bool
	Errors    []ValidationError
	Breakdown []CategoryBreakdown
	TotalCost decimal.Decimal
	Warnings  []Warning
}

// Items devuelve la selección validada como composición (ensamble, cantidad),
// lista para alimentar Explode. Solo incluye ensambles válidamente elegidos.
func (r ValidationResult) Items() []CompositionItem {
	var items []CompositionItem
	for _, cat := range r.Breakdown {
		for _, g := range cat.Groups {
			for _, sel := range g.Selected {
				items = append(items, CompositionItem{AssemblyID: sel.AssemblyID, Quantity: sel.Quantity})
			}
		}
	}
	return items
}

// ValidateSelection valida una selección contra las reglas de sus grupos y
// construye el desglose de costos por capítulo/grupo con total corrido; la
// salida validada es la entrada directa del motor de explosión.
//
// Por grupo: se deduplican los IDs repetidos dentro del mismo grupo (un ensamble
// cuenta UNA sola vez aunque la selección lo traiga dos veces; ver dedupPicks),
// se compara el conteo contra min/max y se exige al menos uno si Required. Se
// recolectan TODAS las violaciones, no se falla en la primera, para que la UI
// muestre todos los problemas de una vez. Un grupo sin selección y sin Required
// es válido y aporta costo cero.
func ValidateSelection(snap *Snapshot, groups []*entity.AssemblyGroup, sel Selection) ValidationResult {
	res := ValidationResult{TotalCost: decimal.Zero}
	catIndex := make(map[string]int)

	for _, g := range groups {
		picks := dedupPicks(sel[g.CategoryID][g.ID])
		count := len(picks)

		if count == 0 {
			if g.Rule.Required {
				res.Errors = append(res.Errors, ValidationError{
					GroupID:   g.ID,
					GroupName: g.Name,
					Reason:    fmt.Sprintf("el grupo %q es obligatorio y no tiene selección", g.Name),
				})
			}
			// Sin selección no hay aporte de costo; el grupo ni aparece en el desglose.
			continue
		}
		if count < g.Rule.Min {
			res.Errors = append(res.Errors, ValidationError{
				GroupID:   g.ID,
				GroupName: g.Name,
				Reason:    fmt.Sprintf("el grupo %q exige mínimo %d selecciones y tiene %d", g.Name, g.Rule.Min, count),
			})
		}
		if g.Rule.Max > 0 && count > g.Rule.Max {
			res.Errors = append(res.Errors, ValidationError{
				GroupID:   g.ID,
				GroupName: g.Name,
				Reason:    fmt.Sprintf("el grupo %q admite máximo %d selecciones y tiene %d", g.Name, g.Rule.Max, count),
			})
		}

		gb := GroupBreakdown{GroupID: g.ID, GroupName: g.Name, Subtotal: decimal.Zero}
		for _, pick := range picks {
			item, ok := findGroupItem(g, pick)
			if !ok {
				res.Errors = append(res.Errors, ValidationError{
					GroupID:   g.ID,
					GroupName: g.Name,
					Reason:    fmt.Sprintf("el ensamble %s no pertenece al grupo %q", pick, g.Name),
				})
				continue
			}
			asm := snap.Assembly(item.AssemblyID)
			if asm == nil {
				res.Warnings = append(res.Warnings, Warning{
					Kind:    WarnMissingAssembly,
					RefID:   item.AssemblyID,
					Message: fmt.Sprintf("ensamble %s no existe en el catálogo; se excluye de los totales", item.AssemblyID),
				})
				continue
			}
			cost := assemblyUnitCost(snap, asm, &res.Warnings).Mul(item.Quantity)
			gb.Selected = append(gb.Selected, SelectedAssembly{
				AssemblyID:   asm.ID,
				AssemblyName: asm.Name,
				Quantity:     item.Quantity,
				Cost:         cost,
			})
			gb.Subtotal = gb.Subtotal.Add(cost)
		}

		catName := ""
		if cat := snap.Category(g.CategoryID); cat != nil {
			catName = cat.Name
		}
		i, ok := catIndex[g.CategoryID]
		if !ok {
			i = len(res.Breakdown)
			catIndex[g.CategoryID] = i
			res.Breakdown = append(res.Breakdown, CategoryBreakdown{
				CategoryID:   g.CategoryID,
				CategoryName: catName,
				Subtotal:     decimal.Zero,
			})
		}
		res.Breakdown[i].Groups = append(res.Breakdown[i].Groups, gb)
		res.Breakdown[i].Subtotal = res.Breakdown[i].Subtotal.Add(gb.Subtotal)
		res.TotalCost = res.TotalCost.Add(gb.Subtotal)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// dedupPicks elimina IDs repetidos preservando el orden de primera aparición.
// Interpretación canónica: un ensamble repetido dentro del mismo grupo cuenta una
// sola vez. La alternativa (contarlo como picks múltiples, afectando el costo)
// está aislada aquí como punto de configuración.
func dedupPicks(picks []string) []string {
	if len(picks) < 2 {
		return picks
	}
	seen := make(map[string]struct{}, len(picks))
	out := picks[:0:0]
	for _, p := range picks {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func findGroupItem(g *entity.AssemblyGroup, assemblyID string) (entity.GroupItem, bool) {
	for _, it := range g.Items {
		if it.AssemblyID == assemblyID {
			return it, true
		}
	}
	return entity.GroupItem{}, false
}

// assemblyUnitCost costo de una unidad del ensamble; los materiales no resueltos
// se omiten con advertencia.
func assemblyUnitCost(snap *Snapshot, asm *entity.Assembly, warnings *[]Warning) decimal.Decimal {
	cost := decimal.Zero
	for _, am := range asm.Materials {
		mat := snap.Material(am.MaterialID)
		if mat == nil {
			*warnings = append(*warnings, Warning{
				Kind:    WarnMissingMaterial,
				RefID:   am.MaterialID,
				Message: fmt.Sprintf("material %s del ensamble %s no existe en el catálogo; se excluye de los totales", am.MaterialID, asm.ID),
			})
			continue
		}
		cost = cost.Add(mat.UnitPrice.Mul(am.Quantity))
	}
	return cost
}
