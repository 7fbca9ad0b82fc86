package bom

import (
	"context"

	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// ValidateSelectionUseCase valida la selección de ensambles de un usuario contra
// las reglas de sus grupos y devuelve el desglose de costos. La salida validada
// es lo que después se materializa como composición de una plantilla.
type ValidateSelectionUseCase struct {
	loader    SnapshotLoader
	groupRepo repository.AssemblyGroupRepository
}

// NewValidateSelectionUseCase construye el caso de uso.
func NewValidateSelectionUseCase(loader SnapshotLoader, groupRepo repository.AssemblyGroupRepository) *ValidateSelectionUseCase {
	return &ValidateSelectionUseCase{loader: loader, groupRepo: groupRepo}
}

// Validate carga snapshot + grupos de la empresa y corre el validador del dominio.
// Las violaciones de regla NO son error de Go: van dentro de la respuesta para
// que la UI muestre todos los problemas de una vez.
func (uc *ValidateSelectionUseCase) Validate(ctx context.Context, companyID string, in dto.ValidateSelectionRequest) (*dto.ValidateSelectionResponse, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	groups, err := uc.groupRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}

	res := bom.ValidateSelection(snap, groups, bom.Selection(in.Selection))

	errs := make([]dto.ValidationErrorDTO, 0, len(res.Errors))
	for _, e := range res.Errors {
		errs = append(errs, dto.ValidationErrorDTO{
			GroupID:   e.GroupID,
			GroupName: e.GroupName,
			Reason:    e.Reason,
		})
	}
	return &dto.ValidateSelectionResponse{
		IsValid:   res.IsValid,
		Errors:    errs,
		Breakdown: toBreakdownDTO(res.Breakdown),
		TotalCost: res.TotalCost,
		Warnings:  warningsToStrings(res.Warnings),
	}, nil
}
