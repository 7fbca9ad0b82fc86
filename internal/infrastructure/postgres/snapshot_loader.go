package postgres

import (
	"context"
	"fmt"

	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

var _ appbom.SnapshotLoader = (*SnapshotLoader)(nil)

// SnapshotLoader materializa el snapshot inmutable del catálogo de una empresa:
// todos los materiales, ensambles, capítulos y grupos en una pasada. El motor
// de cálculo trabaja solo contra ese snapshot, de modo que un reporte completo
// ve precios y composiciones coherentes aunque el catálogo cambie mientras corre.
type SnapshotLoader struct {
	materialRepo repository.MaterialRepository
	assemblyRepo repository.AssemblyRepository
	categoryRepo repository.CategoryRepository
	groupRepo    repository.AssemblyGroupRepository
}

// NewSnapshotLoader construye el loader con los repos del catálogo.
func NewSnapshotLoader(
	materialRepo repository.MaterialRepository,
	assemblyRepo repository.AssemblyRepository,
	categoryRepo repository.CategoryRepository,
	groupRepo repository.AssemblyGroupRepository,
) *SnapshotLoader {
	return &SnapshotLoader{
		materialRepo: materialRepo,
		assemblyRepo: assemblyRepo,
		categoryRepo: categoryRepo,
		groupRepo:    groupRepo,
	}
}

// LoadSnapshot carga el catálogo completo de la empresa y lo valida como snapshot.
// Un catálogo con precios negativos o cantidades no positivas se rechaza aquí,
// antes de que el motor calcule nada con él.
func (l *SnapshotLoader) LoadSnapshot(ctx context.Context, companyID string) (*bom.Snapshot, error) {
	materials, err := l.materialRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	assemblies, err := l.assemblyRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("load assemblies: %w", err)
	}
	categories, err := l.categoryRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	groups, err := l.groupRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("load assembly groups: %w", err)
	}

	snap, err := bom.NewSnapshot(materials, assemblies, categories, groups)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	return snap, nil
}
