package bom

import (
	"context"

	"golang.org/x/sync/errgroup"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
	"github.com/jhoicas/Presupuestos-api/pkg/logger"
)

// DefaultBulkConcurrency límite del pool de workers del export masivo.
// Lo que se acota es la carga de snapshots (I/O a la base); el cálculo puro es
// barato comparado con esa latencia.
const DefaultBulkConcurrency = 4

// BulkExportUseCase exporta los materiales consolidados de TODOS los proyectos
// de una empresa. Cada pipeline explode→consolidate→rollup es independiente
// dado su snapshot, así que corren en paralelo sin locks. Cancelar el contexto
// deja de despachar pipelines nuevos; los que están en vuelo terminan solos
// porque no tienen efectos que revertir.
type BulkExportUseCase struct {
	projectRepo   repository.ProjectRepository
	projectReport *ProjectReportUseCase
	concurrency   int
	log           *logger.Logger
}

// NewBulkExportUseCase construye el caso de uso. concurrency <= 0 usa el default.
func NewBulkExportUseCase(
	projectRepo repository.ProjectRepository,
	projectReport *ProjectReportUseCase,
	concurrency int,
	log *logger.Logger,
) *BulkExportUseCase {
	if concurrency <= 0 {
		concurrency = DefaultBulkConcurrency
	}
	return &BulkExportUseCase{
		projectRepo:   projectRepo,
		projectReport: projectReport,
		concurrency:   concurrency,
		log:           log,
	}
}

// AllProjects genera el reporte de cada proyecto de la empresa bajo un pool
// acotado. El orden de salida es el orden de los proyectos, no el de término
// de los workers (exports reproducibles).
func (uc *BulkExportUseCase) AllProjects(ctx context.Context, companyID string) (*dto.BulkMaterialsResponse, error) {
	projects, err := uc.projectRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}

	reports := make([]*dto.BOMReportResponse, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, p := range projects {
		g.Go(func() error {
			report, err := uc.projectReport.Materials(gctx, p.ID)
			if err != nil {
				return err
			}
			if report.WarningCount > 0 {
				uc.log.Warn().
					Str("project_id", p.ID).
					Int("warnings", report.WarningCount).
					Msg("export con referencias no resueltas; totales parciales")
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.BulkMaterialsResponse{Projects: make([]dto.BOMReportResponse, 0, len(reports))}
	for _, r := range reports {
		out.Projects = append(out.Projects, *r)
	}
	return out, nil
}
