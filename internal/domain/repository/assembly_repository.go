package repository

import "github.com/jhoicas/Presupuestos-api/internal/domain/entity"

// AssemblyRepository define el puerto de persistencia para Assembly (DIP).
// GetByID y los listados devuelven el ensamble con su composición de materiales.
type AssemblyRepository interface {
	Create(assembly *entity.Assembly) error
	GetByID(id string) (*entity.Assembly, error)
	Update(assembly *entity.Assembly) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Assembly, error)
	ListAllByCompany(companyID string) ([]*entity.Assembly, error)
	ListByCategory(companyID, categoryID string) ([]*entity.Assembly, error)
	Delete(id string) error
}
