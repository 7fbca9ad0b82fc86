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

// AssemblyUseCase casos de uso CRUD para ensambles. Valida en la frontera que
// toda cantidad de composición sea > 0 y que los materiales referidos existan.
type AssemblyUseCase struct {
	repo         repository.AssemblyRepository
	materialRepo repository.MaterialRepository
	categoryRepo repository.CategoryRepository
}

// NewAssemblyUseCase construye el caso de uso.
func NewAssemblyUseCase(
	repo repository.AssemblyRepository,
	materialRepo repository.MaterialRepository,
	categoryRepo repository.CategoryRepository,
) *AssemblyUseCase {
	return &AssemblyUseCase{repo: repo, materialRepo: materialRepo, categoryRepo: categoryRepo}
}

// Create crea un ensamble con su composición de materiales.
func (uc *AssemblyUseCase) Create(companyID string, in dto.CreateAssemblyRequest) (*dto.AssemblyResponse, error) {
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	materials, err := uc.buildComposition(companyID, in.Materials)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	assembly := &entity.Assembly{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Materials:  materials,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(assembly); err != nil {
		return nil, err
	}
	return toAssemblyResponse(assembly), nil
}

// GetByID obtiene un ensamble por ID con su composición.
func (uc *AssemblyUseCase) GetByID(id string) (*dto.AssemblyResponse, error) {
	assembly, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, nil
	}
	return toAssemblyResponse(assembly), nil
}

// Update actualiza un ensamble; Materials, si viene, reemplaza la composición completa.
func (uc *AssemblyUseCase) Update(id string, in dto.UpdateAssemblyRequest) (*dto.AssemblyResponse, error) {
	assembly, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, nil
	}
	if in.CategoryID != nil {
		assembly.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		assembly.Name = *in.Name
	}
	if in.Materials != nil {
		materials, err := uc.buildComposition(assembly.CompanyID, in.Materials)
		if err != nil {
			return nil, err
		}
		assembly.Materials = materials
	}
	assembly.UpdatedAt = time.Now()
	if err := uc.repo.Update(assembly); err != nil {
		return nil, err
	}
	return toAssemblyResponse(assembly), nil
}

// List lista ensambles por empresa con paginación.
func (uc *AssemblyUseCase) List(companyID string, limit, offset int) (*dto.AssemblyListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssemblyResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssemblyResponse(a))
	}
	return &dto.AssemblyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ensamble por ID.
func (uc *AssemblyUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// buildComposition valida las líneas de composición: cantidad > 0 y material
// existente de la misma empresa (frontera NumericError/integridad).
func (uc *AssemblyUseCase) buildComposition(companyID string, in []dto.AssemblyMaterialDTO) ([]entity.AssemblyMaterial, error) {
	materials := make([]entity.AssemblyMaterial, 0, len(in))
	for _, am := range in {
		if !am.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrNegativeAmount
		}
		mat, err := uc.materialRepo.GetByID(am.MaterialID)
		if err != nil {
			return nil, err
		}
		if mat == nil || mat.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		materials = append(materials, entity.AssemblyMaterial{
			MaterialID: am.MaterialID,
			Quantity:   am.Quantity,
		})
	}
	return materials, nil
}

func toAssemblyResponse(a *entity.Assembly) *dto.AssemblyResponse {
	if a == nil {
		return nil
	}
	materials := make([]dto.AssemblyMaterialDTO, 0, len(a.Materials))
	for _, am := range a.Materials {
		materials = append(materials, dto.AssemblyMaterialDTO{MaterialID: am.MaterialID, Quantity: am.Quantity})
	}
	return &dto.AssemblyResponse{
		ID:         a.ID,
		CompanyID:  a.CompanyID,
		CategoryID: a.CategoryID,
		Name:       a.Name,
		Materials:  materials,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
