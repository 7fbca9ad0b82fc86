package repository

import "github.com/jhoicas/Presupuestos-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	Update(project *entity.Project) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Project, error)
	ListAllByCompany(companyID string) ([]*entity.Project, error)
	Delete(id string) error
}
