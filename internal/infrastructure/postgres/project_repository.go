package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, company_id, name, customer, status, cached_total, created_at, updated_at`

// Create persiste el proyecto y sus plantillas.
func (r *ProjectRepo) Create(project *entity.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.CompanyID, project.Name, project.Customer,
		project.Status, project.CachedTotal, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return r.insertLines(project.ID, project.Templates)
}

// GetByID obtiene un proyecto con sus plantillas.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p entity.Project
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Customer, &p.Status,
		&p.CachedTotal, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := r.loadLines([]*entity.Project{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update actualiza el proyecto y reemplaza sus plantillas.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, customer = $3, status = $4, cached_total = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Customer, project.Status,
		project.CachedTotal, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM project_templates WHERE project_id = $1`, project.ID); err != nil {
		return fmt.Errorf("clear project lines: %w", err)
	}
	return r.insertLines(project.ID, project.Templates)
}

// ListByCompany lista proyectos por empresa con paginación.
func (r *ProjectRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM projects
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListAllByCompany lista todos los proyectos de la empresa (export masivo).
func (r *ProjectRepo) ListAllByCompany(companyID string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE company_id = $1 ORDER BY name`
	return r.list(query, companyID)
}

// Delete elimina un proyecto y sus líneas.
func (r *ProjectRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM project_templates WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("delete project lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) list(query string, args ...any) ([]*entity.Project, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Customer, &p.Status,
			&p.CachedTotal, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProjectRepo) insertLines(projectID string, lines []entity.ProjectTemplate) error {
	for i, line := range lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO project_templates (project_id, line_no, template_id, quantity) VALUES ($1, $2, $3, $4)`,
			projectID, i, line.TemplateID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert project line: %w", err)
		}
	}
	return nil
}

func (r *ProjectRepo) loadLines(projects []*entity.Project) error {
	if len(projects) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Project, len(projects))
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT project_id, template_id, quantity
		 FROM project_templates WHERE project_id = ANY($1) ORDER BY project_id, line_no`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load project lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var projectID string
		var line entity.ProjectTemplate
		if err := rows.Scan(&projectID, &line.TemplateID, &line.Quantity); err != nil {
			return fmt.Errorf("scan project line: %w", err)
		}
		if p, ok := byID[projectID]; ok {
			p.Templates = append(p.Templates, line)
		}
	}
	return rows.Err()
}
