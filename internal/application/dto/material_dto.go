package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material (insumo de obra).
type CreateMaterialRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	PartNumber   string          `json:"part_number" validate:"omitempty,max=100"`
	Manufacturer string          `json:"manufacturer" validate:"omitempty,max=200"`
	Unit         string          `json:"unit" validate:"required,max=20"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// UpdateMaterialRequest entrada para actualizar un material (campos opcionales).
type UpdateMaterialRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	PartNumber   *string          `json:"part_number"`
	Manufacturer *string          `json:"manufacturer"`
	Unit         *string          `json:"unit"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Name         string          `json:"name"`
	PartNumber   string          `json:"part_number"`
	Manufacturer string          `json:"manufacturer"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
