package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// TemplateUseCase casos de uso CRUD para plantillas de construcción.
// CachedTotal se recalcula con el rollup del motor en cada escritura: es una
// proyección derivada, nunca fuente de verdad ni valor editable.
type TemplateUseCase struct {
	repo         repository.TemplateRepository
	assemblyRepo repository.AssemblyRepository
	loader       appbom.SnapshotLoader
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(
	repo repository.TemplateRepository,
	assemblyRepo repository.AssemblyRepository,
	loader appbom.SnapshotLoader,
) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, assemblyRepo: assemblyRepo, loader: loader}
}

// Create crea una plantilla a partir de su composición de ensambles
// (normalmente la salida validada del validador de grupos).
func (uc *TemplateUseCase) Create(ctx context.Context, companyID string, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	assemblies, err := uc.buildComposition(companyID, in.Assemblies)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	template := &entity.Template{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		Assemblies:  assemblies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.recomputeCachedTotal(ctx, template); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// GetByID obtiene una plantilla por ID.
func (uc *TemplateUseCase) GetByID(id string) (*dto.TemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return toTemplateResponse(template), nil
}

// Update actualiza una plantilla y refresca CachedTotal.
func (uc *TemplateUseCase) Update(ctx context.Context, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	if in.Name != nil {
		template.Name = *in.Name
	}
	if in.Description != nil {
		template.Description = *in.Description
	}
	if in.Assemblies != nil {
		assemblies, err := uc.buildComposition(template.CompanyID, in.Assemblies)
		if err != nil {
			return nil, err
		}
		template.Assemblies = assemblies
	}
	template.UpdatedAt = time.Now()
	if err := uc.recomputeCachedTotal(ctx, template); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// List lista plantillas por empresa con paginación.
func (uc *TemplateUseCase) List(companyID string, limit, offset int) (*dto.TemplateListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return &dto.TemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una plantilla por ID.
func (uc *TemplateUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// recomputeCachedTotal proyección derivada: CachedTotal = rollup de la
// composición sobre el snapshot vigente.
func (uc *TemplateUseCase) recomputeCachedTotal(ctx context.Context, template *entity.Template) error {
	snap, err := uc.loader.LoadSnapshot(ctx, template.CompanyID)
	if err != nil {
		return err
	}
	items := make([]bom.CompositionItem, 0, len(template.Assemblies))
	for _, ta := range template.Assemblies {
		items = append(items, bom.CompositionItem{AssemblyID: ta.AssemblyID, Quantity: ta.Quantity})
	}
	template.CachedTotal = bom.RollupComposition(snap, items).GrandTotal
	return nil
}

func (uc *TemplateUseCase) buildComposition(companyID string, in []dto.TemplateAssemblyDTO) ([]entity.TemplateAssembly, error) {
	assemblies := make([]entity.TemplateAssembly, 0, len(in))
	for _, ta := range in {
		if !ta.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrNegativeAmount
		}
		asm, err := uc.assemblyRepo.GetByID(ta.AssemblyID)
		if err != nil {
			return nil, err
		}
		if asm == nil || asm.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		assemblies = append(assemblies, entity.TemplateAssembly{AssemblyID: ta.AssemblyID, Quantity: ta.Quantity})
	}
	return assemblies, nil
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	if t == nil {
		return nil
	}
	assemblies := make([]dto.TemplateAssemblyDTO, 0, len(t.Assemblies))
	for _, ta := range t.Assemblies {
		assemblies = append(assemblies, dto.TemplateAssemblyDTO{AssemblyID: ta.AssemblyID, Quantity: ta.Quantity})
	}
	return &dto.TemplateResponse{
		ID:          t.ID,
		CompanyID:   t.CompanyID,
		Name:        t.Name,
		Description: t.Description,
		Assemblies:  assemblies,
		CachedTotal: t.CachedTotal,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
