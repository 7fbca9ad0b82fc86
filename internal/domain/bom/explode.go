package bom

import "fmt"

// ExplodeResult líneas planas de la explosión más advertencias de integridad.
type ExplodeResult struct {
	Lines    []ExplodedLine
	Warnings []Warning
}

// Explode expande una composición (ensamble, cantidad) en líneas planas por material.
// Por cada (ensamble, cantidad) y por cada (material, cantidadPorEnsamble) emite UNA
// línea con lineQuantity = cantidadPorEnsamble × cantidad y lineCost = lineQuantity × precio.
//
// No deduplica: si dos ensambles comparten un material salen dos líneas; fundirlas
// es trabajo de Consolidate. Garantía: len(Lines) = Σ len(assembly.Materials) sobre
// las entradas resueltas. No se redondea nada aquí; el redondeo es asunto exclusivo
// del sink de exportación.
//
// Una entrada cuyo ensamble no está en el snapshot se omite con advertencia y la
// explosión del resto continúa.
func Explode(snap *Snapshot, items []CompositionItem) ExplodeResult {
	var res ExplodeResult
	for _, it := range items {
		asm := snap.Assembly(it.AssemblyID)
		if asm == nil {
			res.Warnings = append(res.Warnings, Warning{
				Kind:    WarnMissingAssembly,
				RefID:   it.AssemblyID,
				Message: fmt.Sprintf("ensamble %s no existe en el catálogo; se excluye de los totales", it.AssemblyID),
			})
			continue
		}
		for _, am := range asm.Materials {
			mat := snap.Material(am.MaterialID)
			if mat == nil {
				res.Warnings = append(res.Warnings, Warning{
					Kind:    WarnMissingMaterial,
					RefID:   am.MaterialID,
					Message: fmt.Sprintf("material %s del ensamble %s no existe en el catálogo; se excluye de los totales", am.MaterialID, asm.ID),
				})
				continue
			}
			lineQty := am.Quantity.Mul(it.Quantity)
			res.Lines = append(res.Lines, ExplodedLine{
				MaterialID:   mat.ID,
				Name:         mat.Name,
				PartNumber:   mat.PartNumber,
				Manufacturer: mat.Manufacturer,
				Unit:         mat.Unit,
				UnitPrice:    mat.UnitPrice,
				LineQuantity: lineQty,
				LineCost:     lineQty.Mul(mat.UnitPrice),
				Provenance: Provenance{
					AssemblyID:          asm.ID,
					AssemblyName:        asm.Name,
					AssemblyQuantity:    it.Quantity,
					PerAssemblyQuantity: am.Quantity,
				},
			})
		}
	}
	return res
}
