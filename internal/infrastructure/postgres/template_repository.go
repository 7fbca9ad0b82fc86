package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación del puerto TemplateRepository sobre PostgreSQL (usable con pool o tx).
// cached_total es proyección derivada: la escribe el caso de uso tras recalcular
// con el motor, nunca se suma a mano aquí.
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador de persistencia para plantillas. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

// Create persiste la plantilla y su composición de ensambles.
func (r *TemplateRepo) Create(template *entity.Template) error {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	query := `
		INSERT INTO templates (id, company_id, name, description, cached_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		template.ID, template.CompanyID, template.Name, template.Description,
		template.CachedTotal, template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return r.insertLines(template.ID, template.Assemblies)
}

// GetByID obtiene una plantilla con su composición.
func (r *TemplateRepo) GetByID(id string) (*entity.Template, error) {
	query := `
		SELECT id, company_id, name, description, cached_total, created_at, updated_at
		FROM templates WHERE id = $1`
	var t entity.Template
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Description, &t.CachedTotal, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	if err := r.loadLines([]*entity.Template{&t}); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update actualiza la plantilla y reemplaza su composición.
func (r *TemplateRepo) Update(template *entity.Template) error {
	query := `
		UPDATE templates SET name = $2, description = $3, cached_total = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		template.ID, template.Name, template.Description, template.CachedTotal, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM template_assemblies WHERE template_id = $1`, template.ID); err != nil {
		return fmt.Errorf("clear template lines: %w", err)
	}
	return r.insertLines(template.ID, template.Assemblies)
}

// ListByCompany lista plantillas por empresa con paginación, con sus composiciones.
func (r *TemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error) {
	query := `
		SELECT id, company_id, name, description, cached_total, created_at, updated_at
		FROM templates WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Template
	for rows.Next() {
		var t entity.Template
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Description, &t.CachedTotal, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete elimina una plantilla y su composición. Los proyectos que la referencien
// quedan con referencia rota; los reportes la advierten.
func (r *TemplateRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM template_assemblies WHERE template_id = $1`, id); err != nil {
		return fmt.Errorf("delete template lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) insertLines(templateID string, lines []entity.TemplateAssembly) error {
	for i, line := range lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO template_assemblies (template_id, line_no, assembly_id, quantity) VALUES ($1, $2, $3, $4)`,
			templateID, i, line.AssemblyID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert template line: %w", err)
		}
	}
	return nil
}

func (r *TemplateRepo) loadLines(templates []*entity.Template) error {
	if len(templates) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Template, len(templates))
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT template_id, assembly_id, quantity
		 FROM template_assemblies WHERE template_id = ANY($1) ORDER BY template_id, line_no`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load template lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var templateID string
		var line entity.TemplateAssembly
		if err := rows.Scan(&templateID, &line.AssemblyID, &line.Quantity); err != nil {
			return fmt.Errorf("scan template line: %w", err)
		}
		if t, ok := byID[templateID]; ok {
			t.Assemblies = append(t.Assemblies, line)
		}
	}
	return rows.Err()
}
