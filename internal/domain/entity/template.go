package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateAssembly es una línea de la composición de una plantilla:
// un ensamble y cuántas unidades de él lleva la plantilla.
type TemplateAssembly struct {
	AssemblyID string
	Quantity   decimal.Decimal // > 0
}

// Template representa una plantilla de construcción (ej. "Casa tipo A"):
// la lista de ensambles con cantidades que resulta de una selección validada.
// CachedTotal es una proyección derivada del rollup; se recalcula con el motor,
// nunca se muta a mano ni se usa como fuente de verdad.
type Template struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Assemblies  []TemplateAssembly
	CachedTotal decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
