package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, company_id, name, part_number, manufacturer, unit, unit_price, created_at, updated_at`

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(material *entity.Material) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.CompanyID, material.Name, material.PartNumber,
		material.Manufacturer, material.Unit, material.UnitPrice,
		material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// Update actualiza un material existente (incluido el precio vigente).
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, part_number = $3, manufacturer = $4, unit = $5, unit_price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.PartNumber, material.Manufacturer,
		material.Unit, material.UnitPrice, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// ListByCompany lista materiales por empresa con paginación.
func (r *MaterialRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + ` FROM materials
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListAllByCompany lista TODOS los materiales de la empresa, sin paginar
// (carga del snapshot del motor de cálculo).
func (r *MaterialRepo) ListAllByCompany(companyID string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE company_id = $1 ORDER BY name`
	return r.list(query, companyID)
}

// Delete elimina un material por ID. Las composiciones que lo referencien quedan
// como referencias rotas; los reportes las advierten, no fallan.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) list(query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.Name, &m.PartNumber, &m.Manufacturer,
		&m.Unit, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
