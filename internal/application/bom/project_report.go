package bom

import (
	"context"
	"fmt"

	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// ProjectReportUseCase reporte de materiales consolidados de un proyecto:
// las composiciones de todas sus plantillas (cantidades multiplicadas por las
// veces que el proyecto construye cada plantilla) pasan por UNA sola
// consolidación, de modo que el mismo material usado en dos plantillas sale
// como una sola línea sumada.
type ProjectReportUseCase struct {
	loader       SnapshotLoader
	projectRepo  repository.ProjectRepository
	templateRepo repository.TemplateRepository
}

// NewProjectReportUseCase construye el caso de uso.
func NewProjectReportUseCase(
	loader SnapshotLoader,
	projectRepo repository.ProjectRepository,
	templateRepo repository.TemplateRepository,
) *ProjectReportUseCase {
	return &ProjectReportUseCase{loader: loader, projectRepo: projectRepo, templateRepo: templateRepo}
}

// Materials materiales consolidados del proyecto completo.
func (uc *ProjectReportUseCase) Materials(ctx context.Context, projectID string) (*dto.BOMReportResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.loader.LoadSnapshot(ctx, project.CompanyID)
	if err != nil {
		return nil, err
	}
	items, missing, err := uc.projectComposition(project)
	if err != nil {
		return nil, err
	}

	report := buildReport(snap, project.ID, project.Name, items)
	// Plantillas borradas del catálogo se reportan igual que las demás
	// referencias rotas: advertencia, totales parciales.
	report.Warnings = append(missing, report.Warnings...)
	report.WarningCount = len(report.Warnings)
	return report, nil
}

// projectComposition aplana el proyecto a (ensamble, cantidad): por cada
// plantilla del proyecto, la cantidad de cada ensamble se multiplica por las
// veces que el proyecto construye la plantilla. Dos niveles fijos, sin recursión.
func (uc *ProjectReportUseCase) projectComposition(project *entity.Project) ([]bom.CompositionItem, []string, error) {
	var items []bom.CompositionItem
	var missing []string
	for _, pt := range project.Templates {
		template, err := uc.templateRepo.GetByID(pt.TemplateID)
		if err != nil {
			return nil, nil, err
		}
		if template == nil {
			missing = append(missing, fmt.Sprintf("plantilla %s no existe en el catálogo; se excluye de los totales", pt.TemplateID))
			continue
		}
		for _, ta := range template.Assemblies {
			items = append(items, bom.CompositionItem{
				AssemblyID: ta.AssemblyID,
				Quantity:   ta.Quantity.Mul(pt.Quantity),
			})
		}
	}
	return items, missing, nil
}
