package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// ProjectUseCase casos de uso CRUD para proyectos de obra.
// CachedTotal = Σ (CachedTotal de la plantilla × cantidad); proyección derivada
// de los rollups de plantilla, se refresca en cada escritura.
type ProjectUseCase struct {
	repo         repository.ProjectRepository
	templateRepo repository.TemplateRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, templateRepo repository.TemplateRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, templateRepo: templateRepo}
}

// Create crea un proyecto sobre plantillas existentes de la empresa.
func (uc *ProjectUseCase) Create(ctx context.Context, companyID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	templates, total, err := uc.buildComposition(companyID, in.Templates)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Customer:    in.Customer,
		Status:      "draft",
		Templates:   templates,
		CachedTotal: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetByID obtiene un proyecto por ID.
func (uc *ProjectUseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return toProjectResponse(project), nil
}

// Update actualiza un proyecto y refresca CachedTotal.
func (uc *ProjectUseCase) Update(ctx context.Context, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Customer != nil {
		project.Customer = *in.Customer
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.Templates != nil {
		templates, total, err := uc.buildComposition(project.CompanyID, in.Templates)
		if err != nil {
			return nil, err
		}
		project.Templates = templates
		project.CachedTotal = total
	}
	project.UpdatedAt = time.Now()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// List lista proyectos por empresa con paginación.
func (uc *ProjectUseCase) List(companyID string, limit, offset int) (*dto.ProjectListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un proyecto por ID.
func (uc *ProjectUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func (uc *ProjectUseCase) buildComposition(companyID string, in []dto.ProjectTemplateDTO) ([]entity.ProjectTemplate, decimal.Decimal, error) {
	templates := make([]entity.ProjectTemplate, 0, len(in))
	total := decimal.Zero
	for _, pt := range in {
		if !pt.Quantity.GreaterThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrNegativeAmount
		}
		template, err := uc.templateRepo.GetByID(pt.TemplateID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if template == nil || template.CompanyID != companyID {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		templates = append(templates, entity.ProjectTemplate{TemplateID: pt.TemplateID, Quantity: pt.Quantity})
		total = total.Add(template.CachedTotal.Mul(pt.Quantity))
	}
	return templates, total, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	templates := make([]dto.ProjectTemplateDTO, 0, len(p.Templates))
	for _, pt := range p.Templates {
		templates = append(templates, dto.ProjectTemplateDTO{TemplateID: pt.TemplateID, Quantity: pt.Quantity})
	}
	return &dto.ProjectResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Customer:    p.Customer,
		Status:      p.Status,
		Templates:   templates,
		CachedTotal: p.CachedTotal,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
