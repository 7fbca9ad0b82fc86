package repository

import "github.com/jhoicas/Presupuestos-api/internal/domain/entity"

// AssemblyGroupRepository define el puerto de persistencia para AssemblyGroup (DIP).
type AssemblyGroupRepository interface {
	Create(group *entity.AssemblyGroup) error
	GetByID(id string) (*entity.AssemblyGroup, error)
	Update(group *entity.AssemblyGroup) error
	ListByCategory(companyID, categoryID string) ([]*entity.AssemblyGroup, error)
	ListAllByCompany(companyID string) ([]*entity.AssemblyGroup, error)
	Delete(id string) error
}
