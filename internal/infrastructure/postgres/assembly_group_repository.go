package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
)

var _ repository.AssemblyGroupRepository = (*AssemblyGroupRepo)(nil)

// AssemblyGroupRepo implementación del puerto AssemblyGroupRepository sobre PostgreSQL (usable con pool o tx).
// La regla min/max/required va embebida en la fila del grupo; los ensambles
// seleccionables viven en assembly_group_items con line_no.
type AssemblyGroupRepo struct {
	q Querier
}

// NewAssemblyGroupRepository construye el adaptador de persistencia para grupos. Pasar pool o tx (Querier).
func NewAssemblyGroupRepository(q Querier) *AssemblyGroupRepo {
	return &AssemblyGroupRepo{q: q}
}

// Create persiste el grupo, su regla y sus ítems.
func (r *AssemblyGroupRepo) Create(group *entity.AssemblyGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	query := `
		INSERT INTO assembly_groups (id, company_id, category_id, name, min_pick, max_pick, required, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		group.ID, group.CompanyID, group.CategoryID, group.Name,
		group.Rule.Min, group.Rule.Max, group.Rule.Required,
		group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assembly group: %w", err)
	}
	return r.insertItems(group.ID, group.Items)
}

// GetByID obtiene un grupo con su regla e ítems.
func (r *AssemblyGroupRepo) GetByID(id string) (*entity.AssemblyGroup, error) {
	query := `
		SELECT id, company_id, category_id, name, min_pick, max_pick, required, created_at, updated_at
		FROM assembly_groups WHERE id = $1`
	var g entity.AssemblyGroup
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.CompanyID, &g.CategoryID, &g.Name,
		&g.Rule.Min, &g.Rule.Max, &g.Rule.Required,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assembly group: %w", err)
	}
	if err := r.loadItems([]*entity.AssemblyGroup{&g}); err != nil {
		return nil, err
	}
	return &g, nil
}

// Update actualiza el grupo y reemplaza sus ítems.
func (r *AssemblyGroupRepo) Update(group *entity.AssemblyGroup) error {
	query := `
		UPDATE assembly_groups
		SET category_id = $2, name = $3, min_pick = $4, max_pick = $5, required = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		group.ID, group.CategoryID, group.Name,
		group.Rule.Min, group.Rule.Max, group.Rule.Required, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assembly group: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM assembly_group_items WHERE group_id = $1`, group.ID); err != nil {
		return fmt.Errorf("clear group items: %w", err)
	}
	return r.insertItems(group.ID, group.Items)
}

// ListByCategory lista los grupos de un capítulo.
func (r *AssemblyGroupRepo) ListByCategory(companyID, categoryID string) ([]*entity.AssemblyGroup, error) {
	query := `
		SELECT id, company_id, category_id, name, min_pick, max_pick, required, created_at, updated_at
		FROM assembly_groups WHERE company_id = $1 AND category_id = $2 ORDER BY name`
	return r.list(query, companyID, categoryID)
}

// ListAllByCompany lista todos los grupos de la empresa (validación de selección).
func (r *AssemblyGroupRepo) ListAllByCompany(companyID string) ([]*entity.AssemblyGroup, error) {
	query := `
		SELECT id, company_id, category_id, name, min_pick, max_pick, required, created_at, updated_at
		FROM assembly_groups WHERE company_id = $1 ORDER BY category_id, name`
	return r.list(query, companyID)
}

// Delete elimina un grupo y sus ítems.
func (r *AssemblyGroupRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM assembly_group_items WHERE group_id = $1`, id); err != nil {
		return fmt.Errorf("delete group items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM assembly_groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assembly group: %w", err)
	}
	return nil
}

func (r *AssemblyGroupRepo) list(query string, args ...any) ([]*entity.AssemblyGroup, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assembly groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssemblyGroup
	for rows.Next() {
		var g entity.AssemblyGroup
		if err := rows.Scan(
			&g.ID, &g.CompanyID, &g.CategoryID, &g.Name,
			&g.Rule.Min, &g.Rule.Max, &g.Rule.Required,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assembly group: %w", err)
		}
		list = append(list, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AssemblyGroupRepo) insertItems(groupID string, items []entity.GroupItem) error {
	for i, item := range items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO assembly_group_items (group_id, line_no, assembly_id, quantity) VALUES ($1, $2, $3, $4)`,
			groupID, i, item.AssemblyID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert group item: %w", err)
		}
	}
	return nil
}

func (r *AssemblyGroupRepo) loadItems(groups []*entity.AssemblyGroup) error {
	if len(groups) == 0 {
		return nil
	}
	byID := make(map[string]*entity.AssemblyGroup, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT group_id, assembly_id, quantity
		 FROM assembly_group_items WHERE group_id = ANY($1) ORDER BY group_id, line_no`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load group items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var groupID string
		var item entity.GroupItem
		if err := rows.Scan(&groupID, &item.AssemblyID, &item.Quantity); err != nil {
			return fmt.Errorf("scan group item: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Items = append(g.Items, item)
		}
	}
	return rows.Err()
}
