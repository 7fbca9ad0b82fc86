package http

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
)

// ReportHandler expone el motor de consolidación: validación de selecciones,
// reportes de plantilla y proyecto, y exportación (CSV/PDF y masiva).
type ReportHandler struct {
	validateUC *appbom.ValidateSelectionUseCase
	templateUC *appbom.TemplateReportUseCase
	projectUC  *appbom.ProjectReportUseCase
	bulkUC     *appbom.BulkExportUseCase
	exporter   appbom.MaterialsExporter
	pdfGen     appbom.MaterialsPDFGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(
	validateUC *appbom.ValidateSelectionUseCase,
	templateUC *appbom.TemplateReportUseCase,
	projectUC *appbom.ProjectReportUseCase,
	bulkUC *appbom.BulkExportUseCase,
	exporter appbom.MaterialsExporter,
	pdfGen appbom.MaterialsPDFGenerator,
) *ReportHandler {
	return &ReportHandler{
		validateUC: validateUC,
		templateUC: templateUC,
		projectUC:  projectUC,
		bulkUC:     bulkUC,
		exporter:   exporter,
		pdfGen:     pdfGen,
	}
}

// ValidateSelection godoc
// @Summary      Validar una selección de ensambles contra las reglas de grupo
// @Description  Devuelve todas las violaciones (no solo la primera) y, si la selección es válida, el costo total con desglose por grupo y categoría.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateSelectionRequest  true  "Selección a validar"
// @Success      200   {object}  dto.ValidateSelectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/selections/validate [post]
func (h *ReportHandler) ValidateSelection(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.ValidateSelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.validateUC.Validate(c.Context(), companyID, in)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// TemplateBOM godoc
// @Summary      Lista de materiales consolidada de una plantilla
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.BOMReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/bom [get]
func (h *ReportHandler) TemplateBOM(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.templateUC.BOMReport(c.Context(), id)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// TemplateCostBreakdown godoc
// @Summary      Desglose de costos de una plantilla por ensamble y categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.CostBreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/cost-breakdown [get]
func (h *ReportHandler) TemplateCostBreakdown(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.templateUC.CostBreakdown(c.Context(), id)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// ProjectMaterials godoc
// @Summary      Materiales consolidados de un proyecto (todas sus plantillas)
// @Description  Las plantillas referenciadas que ya no existen generan advertencias; el reporte continúa con las restantes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.BOMReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/materials [get]
func (h *ReportHandler) ProjectMaterials(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.projectUC.Materials(c.Context(), id)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// ExportProjectMaterials godoc
// @Summary      Exportar los materiales consolidados de un proyecto
// @Description  format=csv entrega el archivo tabular con formato de moneda es-CO; format=pdf entrega el reporte imprimible.
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id      path   string  true   "ID del proyecto"
// @Param        format  query  string  false  "csv o pdf"  default(csv)
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/materials/export [get]
func (h *ReportHandler) ExportProjectMaterials(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	report, err := h.projectUC.Materials(c.Context(), id)
	if err != nil {
		return reportError(c, err)
	}

	format := c.Query("format", "csv")
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := h.exporter.ExportMaterials(&buf, report); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=materiales_%s.csv", id))
		return c.Send(buf.Bytes())
	case "pdf":
		pdf, err := h.pdfGen.GenerateMaterialsPDF(c.Context(), report)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=materiales_%s.pdf", id))
		return c.Send(pdf)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "format debe ser csv o pdf"})
	}
}

// BulkMaterials godoc
// @Summary      Reporte masivo de materiales para todos los proyectos de la empresa
// @Description  Procesa los proyectos en paralelo con concurrencia limitada; el orden de salida es el orden alfabético de los proyectos, no el de terminación.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BulkMaterialsResponse
// @Router       /api/reports/materials [get]
func (h *ReportHandler) BulkMaterials(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.bulkUC.AllProjects(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// reportError traduce errores del motor de reportes a respuestas HTTP.
func reportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrMalformedSnapshot):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MALFORMED_CATALOG", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
