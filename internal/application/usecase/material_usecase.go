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

// MaterialUseCase casos de uso CRUD para materiales (insumos).
// El precio se valida aquí (frontera NumericError): nunca llega negativo al motor.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea un nuevo material. Rechaza precio negativo.
func (uc *MaterialUseCase) Create(companyID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrNegativeAmount
	}
	now := time.Now()
	material := &entity.Material{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		PartNumber:   in.PartNumber,
		Manufacturer: in.Manufacturer,
		Unit:         in.Unit,
		UnitPrice:    in.UnitPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update actualiza un material. Un cambio de precio NO recalcula totales
// cacheados de plantillas/proyectos: esos son proyecciones derivadas que se
// refrescan al recomputar el rollup.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.PartNumber != nil {
		material.PartNumber = *in.PartNumber
	}
	if in.Manufacturer != nil {
		material.Manufacturer = *in.Manufacturer
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrNegativeAmount
		}
		material.UnitPrice = *in.UnitPrice
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materiales por empresa con paginación.
func (uc *MaterialUseCase) List(companyID string, limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un material por ID.
func (uc *MaterialUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		PartNumber:   m.PartNumber,
		Manufacturer: m.Manufacturer,
		Unit:         m.Unit,
		UnitPrice:    m.UnitPrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
