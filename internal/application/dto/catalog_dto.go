package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Category ──────────────────────────────────────────────────────────────────

// CreateCategoryRequest entrada para crear un capítulo de presupuesto.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Code string `json:"code" validate:"required,min=1,max=50"`
}

// CategoryResponse salida de un capítulo.
type CategoryResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada de capítulos.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Assembly ──────────────────────────────────────────────────────────────────

// AssemblyMaterialDTO línea de composición de un ensamble.
type AssemblyMaterialDTO struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateAssemblyRequest entrada para crear un ensamble con su composición.
type CreateAssemblyRequest struct {
	CategoryID string                `json:"category_id" validate:"required,uuid"`
	Name       string                `json:"name" validate:"required,min=1,max=200"`
	Materials  []AssemblyMaterialDTO `json:"materials" validate:"required,min=1,dive"`
}

// UpdateAssemblyRequest entrada para actualizar un ensamble.
// Materials, si viene, reemplaza la composición completa.
type UpdateAssemblyRequest struct {
	CategoryID *string               `json:"category_id"`
	Name       *string               `json:"name" validate:"omitempty,min=1,max=200"`
	Materials  []AssemblyMaterialDTO `json:"materials" validate:"omitempty,dive"`
}

// AssemblyResponse salida de un ensamble.
type AssemblyResponse struct {
	ID         string                `json:"id"`
	CompanyID  string                `json:"company_id"`
	CategoryID string                `json:"category_id"`
	Name       string                `json:"name"`
	Materials  []AssemblyMaterialDTO `json:"materials"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// AssemblyListResponse lista paginada de ensambles.
type AssemblyListResponse struct {
	Items []AssemblyResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── AssemblyGroup ─────────────────────────────────────────────────────────────

// GroupRuleDTO regla de selección de un grupo.
type GroupRuleDTO struct {
	Min      int  `json:"min" validate:"min=0"`
	Max      int  `json:"max" validate:"min=0"`
	Required bool `json:"required"`
}

// GroupItemDTO ensamble seleccionable dentro de un grupo.
type GroupItemDTO struct {
	AssemblyID string          `json:"assembly_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateAssemblyGroupRequest entrada para crear un grupo de selección.
type CreateAssemblyGroupRequest struct {
	CategoryID string         `json:"category_id" validate:"required,uuid"`
	Name       string         `json:"name" validate:"required,min=1,max=200"`
	Rule       GroupRuleDTO   `json:"rule"`
	Items      []GroupItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateAssemblyGroupRequest entrada para actualizar un grupo (reemplaza regla e ítems).
type UpdateAssemblyGroupRequest struct {
	Name  string         `json:"name" validate:"required,min=1,max=200"`
	Rule  GroupRuleDTO   `json:"rule"`
	Items []GroupItemDTO `json:"items" validate:"required,min=1,dive"`
}

// AssemblyGroupResponse salida de un grupo de selección.
type AssemblyGroupResponse struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	CategoryID string         `json:"category_id"`
	Name       string         `json:"name"`
	Rule       GroupRuleDTO   `json:"rule"`
	Items      []GroupItemDTO `json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
