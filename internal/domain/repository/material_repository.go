package repository

import "github.com/jhoicas/Presupuestos-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	Update(material *entity.Material) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Material, error)
	ListAllByCompany(companyID string) ([]*entity.Material, error)
	Delete(id string) error
}
