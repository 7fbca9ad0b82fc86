package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

var _ repository.AssemblyRepository = (*AssemblyRepo)(nil)

// AssemblyRepo implementación del puerto AssemblyRepository sobre PostgreSQL (usable con pool o tx).
// La composición vive en assembly_materials con line_no: el orden de las líneas
// es parte del dato (la consolidación reporta en orden de primera aparición) y
// un mismo material puede repetirse.
type AssemblyRepo struct {
	q Querier
}

// NewAssemblyRepository construye el adaptador de persistencia para ensambles. Pasar pool o tx (Querier).
func NewAssemblyRepository(q Querier) *AssemblyRepo {
	return &AssemblyRepo{q: q}
}

// Create persiste el ensamble y sus líneas de composición.
func (r *AssemblyRepo) Create(assembly *entity.Assembly) error {
	if assembly.ID == "" {
		assembly.ID = uuid.New().String()
	}
	query := `
		INSERT INTO assemblies (id, company_id, category_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		assembly.ID, assembly.CompanyID, assembly.CategoryID, assembly.Name,
		assembly.CreatedAt, assembly.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assembly: %w", err)
	}
	return r.insertLines(assembly.ID, assembly.Materials)
}

// GetByID obtiene un ensamble con su composición.
func (r *AssemblyRepo) GetByID(id string) (*entity.Assembly, error) {
	query := `
		SELECT id, company_id, category_id, name, created_at, updated_at
		FROM assemblies WHERE id = $1`
	var a entity.Assembly
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.CategoryID, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assembly: %w", err)
	}
	if err := r.loadLines([]*entity.Assembly{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update actualiza el ensamble y reemplaza su composición completa.
func (r *AssemblyRepo) Update(assembly *entity.Assembly) error {
	query := `
		UPDATE assemblies SET category_id = $2, name = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		assembly.ID, assembly.CategoryID, assembly.Name, assembly.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assembly: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM assembly_materials WHERE assembly_id = $1`, assembly.ID); err != nil {
		return fmt.Errorf("clear assembly lines: %w", err)
	}
	return r.insertLines(assembly.ID, assembly.Materials)
}

// ListByCompany lista ensambles por empresa con paginación, con sus composiciones.
func (r *AssemblyRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Assembly, error) {
	query := `
		SELECT id, company_id, category_id, name, created_at, updated_at
		FROM assemblies WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListAllByCompany lista todos los ensambles de la empresa (carga de snapshot).
func (r *AssemblyRepo) ListAllByCompany(companyID string) ([]*entity.Assembly, error) {
	query := `
		SELECT id, company_id, category_id, name, created_at, updated_at
		FROM assemblies WHERE company_id = $1 ORDER BY name`
	return r.list(query, companyID)
}

// ListByCategory lista los ensambles de un capítulo.
func (r *AssemblyRepo) ListByCategory(companyID, categoryID string) ([]*entity.Assembly, error) {
	query := `
		SELECT id, company_id, category_id, name, created_at, updated_at
		FROM assemblies WHERE company_id = $1 AND category_id = $2 ORDER BY name`
	return r.list(query, companyID, categoryID)
}

// Delete elimina un ensamble y sus líneas.
func (r *AssemblyRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM assembly_materials WHERE assembly_id = $1`, id); err != nil {
		return fmt.Errorf("delete assembly lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM assemblies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assembly: %w", err)
	}
	return nil
}

func (r *AssemblyRepo) list(query string, args ...any) ([]*entity.Assembly, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assemblies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assembly
	for rows.Next() {
		var a entity.Assembly
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.CategoryID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assembly: %w", err)
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AssemblyRepo) insertLines(assemblyID string, lines []entity.AssemblyMaterial) error {
	for i, line := range lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO assembly_materials (assembly_id, line_no, material_id, quantity) VALUES ($1, $2, $3, $4)`,
			assemblyID, i, line.MaterialID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert assembly line: %w", err)
		}
	}
	return nil
}

// loadLines carga las composiciones de un lote de ensambles en una sola consulta.
func (r *AssemblyRepo) loadLines(assemblies []*entity.Assembly) error {
	if len(assemblies) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Assembly, len(assemblies))
	ids := make([]string, 0, len(assemblies))
	for _, a := range assemblies {
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT assembly_id, material_id, quantity
		 FROM assembly_materials WHERE assembly_id = ANY($1) ORDER BY assembly_id, line_no`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load assembly lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var assemblyID string
		var line entity.AssemblyMaterial
		if err := rows.Scan(&assemblyID, &line.MaterialID, &line.Quantity); err != nil {
			return fmt.Errorf("scan assembly line: %w", err)
		}
		if a, ok := byID[assemblyID]; ok {
			a.Materials = append(a.Materials, line)
		}
	}
	return rows.Err()
}
