package bom

import "github.com/shopspring/decimal"

// WarningKind clasifica las advertencias de integridad acumuladas durante un cálculo.
type WarningKind string

const (
	// WarnMissingAssembly referencia a un ensamble que no existe en el snapshot.
	WarnMissingAssembly WarningKind = "MISSING_ASSEMBLY"
	// WarnMissingMaterial referencia a un material que no existe en el snapshot.
	WarnMissingMaterial WarningKind = "MISSING_MATERIAL"
)

// Warning es una advertencia de integridad referencial: la entrada afectada se
// omite y el cálculo del resto continúa. Una referencia rota nunca aborta un
// export completo; el llamador muestra las advertencias junto a los totales parciales.
type Warning struct {
	Kind    WarningKind
	RefID   string // ID del ensamble o material no resuelto
	Message string
}

// CompositionItem es una entrada de composición de nivel superior:
// un ensamble y la cantidad de veces que aparece.
type CompositionItem struct {
	AssemblyID string
	Quantity   decimal.Decimal // > 0
}

// Provenance registra el origen de una línea explotada: de qué ensamble salió
// y los dos factores de cantidad que la produjeron.
type Provenance struct {
	AssemblyID          string
	AssemblyName        string
	AssemblyQuantity    decimal.Decimal
	PerAssemblyQuantity decimal.Decimal
}

// ExplodedLine es una línea plana de material producida por la explosión.
// Lleva copia de los campos de identidad del material para que la consolidación
// sea una función pura sobre líneas, incluso si vienen de snapshots distintos.
// Efímera: se produce fresca en cada cálculo, nunca se persiste.
type ExplodedLine struct {
	MaterialID   string
	Name         string
	PartNumber   string
	Manufacturer string
	Unit         string
	UnitPrice    decimal.Decimal
	LineQuantity decimal.Decimal // PerAssemblyQuantity × AssemblyQuantity
	LineCost     decimal.Decimal // LineQuantity × UnitPrice
	Provenance   Provenance
}

// MaterialKey es la llave de consolidación: la tupla exacta de los cinco campos
// de identidad. Igualdad sensible a mayúsculas, sin normalización: dos materiales
// que difieran en cualquiera de los cinco campos son líneas distintas aunque
// conceptualmente sean "la misma pieza" (limitación documentada; incluye el
// precio a propósito, ver DESIGN.md).
type MaterialKey struct {
	Name         string
	PartNumber   string
	Manufacturer string
	Unit         string
	UnitPrice    string // forma canónica decimal, para que la llave sea comparable
}

// Key devuelve la llave de consolidación de la línea.
func (l ExplodedLine) Key() MaterialKey {
	return MaterialKey{
		Name:         l.Name,
		PartNumber:   l.PartNumber,
		Manufacturer: l.Manufacturer,
		Unit:         l.Unit,
		UnitPrice:    l.UnitPrice.String(),
	}
}

// Usage es un registro de uso de un ítem consolidado, para auditoría y reporte.
type Usage struct {
	AssemblyName        string
	AssemblyQuantity    decimal.Decimal
	PerAssemblyQuantity decimal.Decimal
	LineQuantity        decimal.Decimal
}

// ConsolidatedLineItem es el resultado de fundir todas las líneas explotadas que
// comparten MaterialKey: cantidades y costos sumados, con la procedencia completa.
type ConsolidatedLineItem struct {
	Key           MaterialKey
	Name          string
	PartNumber    string
	Manufacturer  string
	Unit          string
	UnitPrice     decimal.Decimal
	TotalQuantity decimal.Decimal
	TotalCost     decimal.Decimal
	Usages        []Usage
}
