package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectTemplate es una línea de un proyecto: una plantilla y cuántas veces
// se construye dentro del proyecto (ej. "Casa tipo A" x 12).
type ProjectTemplate struct {
	TemplateID string
	Quantity   decimal.Decimal // > 0
}

// Project representa un proyecto de obra: un conjunto de plantillas con cantidades.
// CachedTotal es proyección derivada del rollup (misma regla que en Template).
type Project struct {
	ID          string
	CompanyID   string
	Name        string
	Customer    string
	Status      string // draft, active, closed
	Templates   []ProjectTemplate
	CachedTotal decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
