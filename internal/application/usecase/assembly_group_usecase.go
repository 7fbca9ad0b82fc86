package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// AssemblyGroupUseCase casos de uso CRUD para grupos de selección.
type AssemblyGroupUseCase struct {
	repo         repository.AssemblyGroupRepository
	assemblyRepo repository.AssemblyRepository
	categoryRepo repository.CategoryRepository
}

// NewAssemblyGroupUseCase construye el caso de uso.
func NewAssemblyGroupUseCase(
	repo repository.AssemblyGroupRepository,
	assemblyRepo repository.AssemblyRepository,
	categoryRepo repository.CategoryRepository,
) *AssemblyGroupUseCase {
	return &AssemblyGroupUseCase{repo: repo, assemblyRepo: assemblyRepo, categoryRepo: categoryRepo}
}

// Create crea un grupo de selección. Regla: Min <= Max cuando Max > 0;
// cada ítem debe referir un ensamble existente de la empresa con cantidad > 0.
func (uc *AssemblyGroupUseCase) Create(companyID string, in dto.CreateAssemblyGroupRequest) (*dto.AssemblyGroupResponse, error) {
	if in.Rule.Min < 0 || in.Rule.Max < 0 || (in.Rule.Max > 0 && in.Rule.Min > in.Rule.Max) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	items := make([]entity.GroupItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrNegativeAmount
		}
		asm, err := uc.assemblyRepo.GetByID(it.AssemblyID)
		if err != nil {
			return nil, err
		}
		if asm == nil || asm.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.GroupItem{AssemblyID: it.AssemblyID, Quantity: it.Quantity})
	}
	now := time.Now()
	group := &entity.AssemblyGroup{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Rule: entity.GroupRule{
			Min:      in.Rule.Min,
			Max:      in.Rule.Max,
			Required: in.Rule.Required,
		},
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(group); err != nil {
		return nil, err
	}
	return toGroupResponse(group), nil
}

// GetByID obtiene un grupo por ID.
func (uc *AssemblyGroupUseCase) GetByID(id string) (*dto.AssemblyGroupResponse, error) {
	group, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	return toGroupResponse(group), nil
}

// Update actualiza un grupo y reemplaza su regla e ítems completos.
func (uc *AssemblyGroupUseCase) Update(id string, in dto.UpdateAssemblyGroupRequest) (*dto.AssemblyGroupResponse, error) {
	if in.Rule.Min < 0 || in.Rule.Max < 0 || (in.Rule.Max > 0 && in.Rule.Min > in.Rule.Max) {
		return nil, domain.ErrInvalidInput
	}
	group, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	items := make([]entity.GroupItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrNegativeAmount
		}
		asm, err := uc.assemblyRepo.GetByID(it.AssemblyID)
		if err != nil {
			return nil, err
		}
		if asm == nil || asm.CompanyID != group.CompanyID {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.GroupItem{AssemblyID: it.AssemblyID, Quantity: it.Quantity})
	}
	group.Name = in.Name
	group.Rule = entity.GroupRule{Min: in.Rule.Min, Max: in.Rule.Max, Required: in.Rule.Required}
	group.Items = items
	group.UpdatedAt = time.Now()
	if err := uc.repo.Update(group); err != nil {
		return nil, err
	}
	return toGroupResponse(group), nil
}

// ListByCategory lista los grupos de un capítulo.
func (uc *AssemblyGroupUseCase) ListByCategory(companyID, categoryID string) ([]dto.AssemblyGroupResponse, error) {
	list, err := uc.repo.ListByCategory(companyID, categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssemblyGroupResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *toGroupResponse(g))
	}
	return items, nil
}

// Delete elimina un grupo por ID.
func (uc *AssemblyGroupUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toGroupResponse(g *entity.AssemblyGroup) *dto.AssemblyGroupResponse {
	if g == nil {
		return nil
	}
	items := make([]dto.GroupItemDTO, 0, len(g.Items))
	for _, it := range g.Items {
		items = append(items, dto.GroupItemDTO{AssemblyID: it.AssemblyID, Quantity: it.Quantity})
	}
	return &dto.AssemblyGroupResponse{
		ID:         g.ID,
		CompanyID:  g.CompanyID,
		CategoryID: g.CategoryID,
		Name:       g.Name,
		Rule: dto.GroupRuleDTO{
			Min:      g.Rule.Min,
			Max:      g.Rule.Max,
			Required: g.Rule.Required,
		},
		Items:     items,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
