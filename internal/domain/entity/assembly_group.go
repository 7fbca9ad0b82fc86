package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupRule define la restricción de selección de un grupo: cuántos ensambles
// puede/debe escoger el usuario dentro del grupo al componer una plantilla.
type GroupRule struct {
	Min      int
	Max      int
	Required bool // si true, seleccionar 0 ensambles es inválido
}

// GroupItem es un ensamble seleccionable dentro de un grupo, con la cantidad
// que aporta al presupuesto si es elegido.
type GroupItem struct {
	AssemblyID string
	Quantity   decimal.Decimal // > 0
}

// AssemblyGroup representa un grupo de selección dentro de un capítulo:
// un conjunto de ensambles alternativos/combinables con regla min/max/required.
type AssemblyGroup struct {
	ID         string
	CompanyID  string
	CategoryID string
	Name       string
	Rule       GroupRule
	Items      []GroupItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
