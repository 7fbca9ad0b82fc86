package bom

// Consolidate funde las líneas explotadas que comparten MaterialKey en un solo
// ítem con cantidades y costos sumados, preservando cada uso como registro de
// procedencia. Las líneas pueden venir de varias invocaciones de Explode (ej.
// una por plantilla dentro de un export masivo).
//
// El orden de salida es el de primera aparición de cada llave (determinista,
// requerido para exports reproducibles). Los totales son conmutativos y
// asociativos: permutar las líneas de entrada nunca cambia TotalQuantity ni
// TotalCost; solo puede variar el orden de Usages, que es de presentación.
//
// Función pura, sin errores: las líneas malformadas ya fueron rechazadas antes
// (frontera del snapshot).
func Consolidate(lines []ExplodedLine) []ConsolidatedLineItem {
	// Mapa con orden de inserción: índice por llave + slice de acumuladores.
	index := make(map[MaterialKey]int, len(lines))
	items := make([]ConsolidatedLineItem, 0, len(lines))

	for _, l := range lines {
		key := l.Key()
		usage := Usage{
			AssemblyName:        l.Provenance.AssemblyName,
			AssemblyQuantity:    l.Provenance.AssemblyQuantity,
			PerAssemblyQuantity: l.Provenance.PerAssemblyQuantity,
			LineQuantity:        l.LineQuantity,
		}
		if i, ok := index[key]; ok {
			items[i].TotalQuantity = items[i].TotalQuantity.Add(l.LineQuantity)
			items[i].TotalCost = items[i].TotalCost.Add(l.LineCost)
			items[i].Usages = append(items[i].Usages, usage)
			continue
		}
		index[key] = len(items)
		items = append(items, ConsolidatedLineItem{
			Key:           key,
			Name:          l.Name,
			PartNumber:    l.PartNumber,
			Manufacturer:  l.Manufacturer,
			Unit:          l.Unit,
			UnitPrice:     l.UnitPrice,
			TotalQuantity: l.LineQuantity,
			TotalCost:     l.LineCost,
			Usages:        []Usage{usage},
		})
	}
	return items
}
