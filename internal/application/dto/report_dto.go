package dto

import "github.com/shopspring/decimal"

// ── Validación de selección ───────────────────────────────────────────────────

// ValidateSelectionRequest entrada: selección capítulo → grupo → ensambles.
type ValidateSelectionRequest struct {
	Selection map[string]map[string][]string `json:"selection" validate:"required"`
}

// ValidationErrorDTO una violación de regla de grupo.
type ValidationErrorDTO struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Reason    string `json:"reason"`
}

// SelectedAssemblyDTO ensamble elegido con su aporte de costo.
type SelectedAssemblyDTO struct {
	AssemblyID   string          `json:"assembly_id"`
	AssemblyName string          `json:"assembly_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
}

// GroupBreakdownDTO desglose de un grupo.
type GroupBreakdownDTO struct {
	GroupID   string                `json:"group_id"`
	GroupName string                `json:"group_name"`
	Selected  []SelectedAssemblyDTO `json:"selected"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
}

// CategoryBreakdownDTO desglose de un capítulo.
type CategoryBreakdownDTO struct {
	CategoryID   string              `json:"category_id"`
	CategoryName string              `json:"category_name"`
	Groups       []GroupBreakdownDTO `json:"groups"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
}

// ValidateSelectionResponse resultado de la validación con desglose de costos.
type ValidateSelectionResponse struct {
	IsValid   bool                   `json:"is_valid"`
	Errors    []ValidationErrorDTO   `json:"errors"`
	Breakdown []CategoryBreakdownDTO `json:"breakdown"`
	TotalCost decimal.Decimal        `json:"total_cost"`
	Warnings  []string               `json:"warnings,omitempty"`
}

// ── Reportes BOM ──────────────────────────────────────────────────────────────

// UsageDTO registro de uso de un ítem consolidado.
type UsageDTO struct {
	AssemblyName        string          `json:"assembly_name"`
	AssemblyQuantity    decimal.Decimal `json:"assembly_quantity"`
	PerAssemblyQuantity decimal.Decimal `json:"per_assembly_quantity"`
	LineQuantity        decimal.Decimal `json:"line_quantity"`
}

// ConsolidatedItemDTO ítem de material consolidado para reporte.
type ConsolidatedItemDTO struct {
	Name          string          `json:"name"`
	PartNumber    string          `json:"part_number"`
	Manufacturer  string          `json:"manufacturer"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Usages        []UsageDTO      `json:"usages"`
}

// SubtotalDTO subtotal por ensamble o capítulo.
type SubtotalDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PercentageDTO porcentaje del gran total.
type PercentageDTO struct {
	Key     string          `json:"key"`
	Percent decimal.Decimal `json:"percent"`
}

// CostBreakdownResponse rollup de costos de una composición.
type CostBreakdownResponse struct {
	GrandTotal  decimal.Decimal `json:"grand_total"`
	PerAssembly []SubtotalDTO   `json:"per_assembly"`
	PerCategory []SubtotalDTO   `json:"per_category"`
	Percentages []PercentageDTO `json:"percentages"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// BOMReportResponse reporte completo de una plantilla o proyecto:
// materiales consolidados + rollup. Las advertencias listan referencias rotas
// excluidas de los totales ("N materiales no pudieron resolverse...").
type BOMReportResponse struct {
	SourceID     string                `json:"source_id"`
	SourceName   string                `json:"source_name"`
	Materials    []ConsolidatedItemDTO `json:"materials"`
	GrandTotal   decimal.Decimal       `json:"grand_total"`
	Percentages  []PercentageDTO       `json:"percentages"`
	Warnings     []string              `json:"warnings,omitempty"`
	WarningCount int                   `json:"warning_count"`
}

// BulkMaterialsResponse export masivo: un reporte por proyecto de la empresa.
type BulkMaterialsResponse struct {
	Projects []BOMReportResponse `json:"projects"`
}
