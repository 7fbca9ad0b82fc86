package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssemblyMaterial es una línea de la composición de un ensamble: cuánto material
// se consume por una unidad del ensamble. Quantity > 0, admite fracciones (ej. 1.5 m).
type AssemblyMaterial struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// Assembly representa un ensamble de obra (muro, placa, ventana instalada...):
// una composición plana de materiales con cantidades por unidad de ensamble.
// El modelo es de dos niveles fijos: un ensamble NO contiene otros ensambles.
// La lista puede repetir un material; el motor de explosión emite líneas separadas
// y la consolidación las funde después.
type Assembly struct {
	ID         string
	CompanyID  string
	CategoryID string
	Name       string
	Materials  []AssemblyMaterial
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
