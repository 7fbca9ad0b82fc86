package bom

import (
	"context"

	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// TemplateReportUseCase reportes BOM de una plantilla: explosión → consolidación
// → rollup. ÚNICO camino de cálculo para todo reporte de plantilla; ningún
// handler recalcula por su cuenta.
type TemplateReportUseCase struct {
	loader       SnapshotLoader
	templateRepo repository.TemplateRepository
}

// NewTemplateReportUseCase construye el caso de uso.
func NewTemplateReportUseCase(loader SnapshotLoader, templateRepo repository.TemplateRepository) *TemplateReportUseCase {
	return &TemplateReportUseCase{loader: loader, templateRepo: templateRepo}
}

// BOMReport materiales consolidados de la plantilla con gran total y porcentajes.
// Las referencias rotas se excluyen de los totales y se reportan como advertencias.
func (uc *TemplateReportUseCase) BOMReport(ctx context.Context, templateID string) (*dto.BOMReportResponse, error) {
	template, err := uc.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.loader.LoadSnapshot(ctx, template.CompanyID)
	if err != nil {
		return nil, err
	}
	report := buildReport(snap, template.ID, template.Name, compositionOf(template))
	return report, nil
}

// CostBreakdown rollup por ensamble/capítulo de la plantilla, sin consolidar
// (revisión de costos previa al reporte plano).
func (uc *TemplateReportUseCase) CostBreakdown(ctx context.Context, templateID string) (*dto.CostBreakdownResponse, error) {
	template, err := uc.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.loader.LoadSnapshot(ctx, template.CompanyID)
	if err != nil {
		return nil, err
	}

	r := bom.RollupComposition(snap, compositionOf(template))

	perAssembly := make([]dto.SubtotalDTO, 0, len(r.PerAssembly))
	for _, a := range r.PerAssembly {
		perAssembly = append(perAssembly, dto.SubtotalDTO{ID: a.AssemblyID, Name: a.AssemblyName, Subtotal: a.Subtotal})
	}
	perCategory := make([]dto.SubtotalDTO, 0, len(r.PerCategory))
	for _, c := range r.PerCategory {
		perCategory = append(perCategory, dto.SubtotalDTO{ID: c.CategoryID, Name: c.CategoryName, Subtotal: c.Subtotal})
	}
	return &dto.CostBreakdownResponse{
		GrandTotal:  r.GrandTotal,
		PerAssembly: perAssembly,
		PerCategory: perCategory,
		Percentages: toPercentagesDTO(r.Percentages),
		Warnings:    warningsToStrings(r.Warnings),
	}, nil
}

// compositionOf composición (ensamble, cantidad) de una plantilla.
func compositionOf(t *entity.Template) []bom.CompositionItem {
	items := make([]bom.CompositionItem, 0, len(t.Assemblies))
	for _, ta := range t.Assemblies {
		items = append(items, bom.CompositionItem{AssemblyID: ta.AssemblyID, Quantity: ta.Quantity})
	}
	return items
}

// buildReport pipeline compartido explosión → consolidación → rollup sobre una
// composición ya resuelta. Lo usan los reportes de plantilla, proyecto y el
// export masivo; la lógica vive una sola vez aquí y en el dominio.
func buildReport(snap *bom.Snapshot, sourceID, sourceName string, items []bom.CompositionItem) *dto.BOMReportResponse {
	exploded := bom.Explode(snap, items)
	consolidated := bom.Consolidate(exploded.Lines)
	rollup := bom.RollupConsolidated(consolidated)

	return &dto.BOMReportResponse{
		SourceID:     sourceID,
		SourceName:   sourceName,
		Materials:    toConsolidatedDTO(consolidated),
		GrandTotal:   rollup.GrandTotal,
		Percentages:  toPercentagesDTO(rollup.Percentages),
		Warnings:     warningsToStrings(exploded.Warnings),
		WarningCount: len(exploded.Warnings),
	}
}
