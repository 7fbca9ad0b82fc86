package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un insumo de obra del catálogo (dato de referencia inmutable
// para el motor de cálculo; el precio vigente se lee del snapshot, nunca de totales cacheados).
type Material struct {
	ID           string
	CompanyID    string
	Name         string
	PartNumber   string          // referencia de fabricante, puede ser vacío
	Manufacturer string          // puede ser vacío
	Unit         string          // unidad de medida: un, m, m2, m3, kg, gl...
	UnitPrice    decimal.Decimal // precio unitario >= 0
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
