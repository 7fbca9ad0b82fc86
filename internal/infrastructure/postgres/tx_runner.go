package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta escrituras de catálogo dentro de una transacción
// PostgreSQL: ensamble + líneas, grupo + ítems o la carga completa del seed
// quedan atómicos (todo o nada).
type CatalogTxRunner struct {
	pool *pgxpool.Pool
}

// NewCatalogTxRunner construye el runner con el pool.
func NewCatalogTxRunner(pool *pgxpool.Pool) *CatalogTxRunner {
	return &CatalogTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *CatalogTxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	categoryRepo repository.CategoryRepository,
	assemblyRepo repository.AssemblyRepository,
	groupRepo repository.AssemblyGroupRepository,
	templateRepo repository.TemplateRepository,
	projectRepo repository.ProjectRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewMaterialRepository(tx)
	categoryRepo := NewCategoryRepository(tx)
	assemblyRepo := NewAssemblyRepository(tx)
	groupRepo := NewAssemblyGroupRepository(tx)
	templateRepo := NewTemplateRepository(tx)
	projectRepo := NewProjectRepository(tx)

	if err := fn(materialRepo, categoryRepo, assemblyRepo, groupRepo, templateRepo, projectRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
