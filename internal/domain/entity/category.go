package entity

import "time"

// Category representa un capítulo del presupuesto de obra (cimentación, estructura, acabados...).
// Agrupa ensambles y grupos de selección.
type Category struct {
	ID        string
	CompanyID string
	Name      string
	Code      string // código único por empresa
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
