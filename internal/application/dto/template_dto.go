package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateAssemblyDTO línea de composición de una plantilla.
type TemplateAssemblyDTO struct {
	AssemblyID string          `json:"assembly_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateTemplateRequest entrada para crear una plantilla de construcción.
type CreateTemplateRequest struct {
	Name        string                `json:"name" validate:"required,min=1,max=200"`
	Description string                `json:"description"`
	Assemblies  []TemplateAssemblyDTO `json:"assemblies" validate:"required,min=1,dive"`
}

// UpdateTemplateRequest entrada para actualizar una plantilla.
type UpdateTemplateRequest struct {
	Name        *string               `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string               `json:"description"`
	Assemblies  []TemplateAssemblyDTO `json:"assemblies" validate:"omitempty,dive"`
}

// TemplateResponse salida de una plantilla. CachedTotal es proyección derivada
// del rollup, recalculada al crear/actualizar.
type TemplateResponse struct {
	ID          string                `json:"id"`
	CompanyID   string                `json:"company_id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Assemblies  []TemplateAssemblyDTO `json:"assemblies"`
	CachedTotal decimal.Decimal       `json:"cached_total"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TemplateListResponse lista paginada de plantillas.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Project ───────────────────────────────────────────────────────────────────

// ProjectTemplateDTO línea de un proyecto.
type ProjectTemplateDTO struct {
	TemplateID string          `json:"template_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateProjectRequest entrada para crear un proyecto de obra.
type CreateProjectRequest struct {
	Name      string               `json:"name" validate:"required,min=1,max=200"`
	Customer  string               `json:"customer"`
	Templates []ProjectTemplateDTO `json:"templates" validate:"required,min=1,dive"`
}

// UpdateProjectRequest entrada para actualizar un proyecto.
type UpdateProjectRequest struct {
	Name      *string              `json:"name" validate:"omitempty,min=1,max=200"`
	Customer  *string              `json:"customer"`
	Status    *string              `json:"status" validate:"omitempty,oneof=draft active closed"`
	Templates []ProjectTemplateDTO `json:"templates" validate:"omitempty,dive"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string               `json:"id"`
	CompanyID   string               `json:"company_id"`
	Name        string               `json:"name"`
	Customer    string               `json:"customer"`
	Status      string               `json:"status"`
	Templates   []ProjectTemplateDTO `json:"templates"`
	CachedTotal decimal.Decimal      `json:"cached_total"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProjectListResponse lista paginada de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
