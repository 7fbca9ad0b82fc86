package repository

import "github.com/jhoicas/Presupuestos-api/internal/domain/entity"

// TemplateRepository define el puerto de persistencia para Template (DIP).
type TemplateRepository interface {
	Create(template *entity.Template) error
	GetByID(id string) (*entity.Template, error)
	Update(template *entity.Template) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Template, error)
	Delete(id string) error
}
