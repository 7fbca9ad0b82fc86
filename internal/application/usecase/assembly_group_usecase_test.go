package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/application/usecase"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repos del catálogo
// ──────────────────────────────────────────────────────────────────────────────

type fakeGroupStore struct {
	groups map[string]*entity.AssemblyGroup
}

func (f *fakeGroupStore) Create(g *entity.AssemblyGroup) error {
	f.groups[g.ID] = g
	return nil
}
func (f *fakeGroupStore) GetByID(id string) (*entity.AssemblyGroup, error) {
	return f.groups[id], nil
}
func (f *fakeGroupStore) Update(g *entity.AssemblyGroup) error {
	f.groups[g.ID] = g
	return nil
}
func (f *fakeGroupStore) ListByCategory(companyID, categoryID string) ([]*entity.AssemblyGroup, error) {
	var out []*entity.AssemblyGroup
	for _, g := range f.groups {
		if g.CompanyID == companyID && g.CategoryID == categoryID {
			out = append(out, g)
		}
	}
	return out, nil
}
func (f *fakeGroupStore) ListAllByCompany(companyID string) ([]*entity.AssemblyGroup, error) {
	var out []*entity.AssemblyGroup
	for _, g := range f.groups {
		if g.CompanyID == companyID {
			out = append(out, g)
		}
	}
	return out, nil
}
func (f *fakeGroupStore) Delete(id string) error {
	delete(f.groups, id)
	return nil
}

type fakeAssemblyStore struct {
	assemblies map[string]*entity.Assembly
}

func (f *fakeAssemblyStore) Create(a *entity.Assembly) error { f.assemblies[a.ID] = a; return nil }
func (f *fakeAssemblyStore) GetByID(id string) (*entity.Assembly, error) {
	return f.assemblies[id], nil
}
func (f *fakeAssemblyStore) Update(a *entity.Assembly) error { f.assemblies[a.ID] = a; return nil }
func (f *fakeAssemblyStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Assembly, error) {
	return nil, nil
}
func (f *fakeAssemblyStore) ListAllByCompany(companyID string) ([]*entity.Assembly, error) {
	return nil, nil
}
func (f *fakeAssemblyStore) ListByCategory(companyID, categoryID string) ([]*entity.Assembly, error) {
	return nil, nil
}
func (f *fakeAssemblyStore) Delete(id string) error { delete(f.assemblies, id); return nil }

type fakeCategoryStore struct {
	categories map[string]*entity.Category
}

func (f *fakeCategoryStore) Create(c *entity.Category) error { f.categories[c.ID] = c; return nil }
func (f *fakeCategoryStore) GetByID(id string) (*entity.Category, error) {
	return f.categories[id], nil
}
func (f *fakeCategoryStore) GetByCompanyAndCode(companyID, code string) (*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryStore) Update(c *entity.Category) error { f.categories[c.ID] = c; return nil }
func (f *fakeCategoryStore) ListByCompany(companyID string, limit, offset int) ([]*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryStore) ListAllByCompany(companyID string) ([]*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryStore) Delete(id string) error { delete(f.categories, id); return nil }

func newGroupUseCase() (*usecase.AssemblyGroupUseCase, *fakeGroupStore) {
	groups := &fakeGroupStore{groups: map[string]*entity.AssemblyGroup{}}
	assemblies := &fakeAssemblyStore{assemblies: map[string]*entity.Assembly{
		"asm-muro": {ID: "asm-muro", CompanyID: "emp-1", CategoryID: "cat-1", Name: "Muro en ladrillo"},
		"asm-otro": {ID: "asm-otro", CompanyID: "emp-2", CategoryID: "cat-9", Name: "Muro de otra empresa"},
	}}
	categories := &fakeCategoryStore{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", CompanyID: "emp-1", Name: "Estructura", Code: "EST"},
	}}
	return usecase.NewAssemblyGroupUseCase(groups, assemblies, categories), groups
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestAssemblyGroupCreate_ReglaValida(t *testing.T) {
	uc, store := newGroupUseCase()

	out, err := uc.Create("emp-1", dto.CreateAssemblyGroupRequest{
		CategoryID: "cat-1",
		Name:       "Muros exteriores",
		Rule:       dto.GroupRuleDTO{Min: 1, Max: 2, Required: true},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-muro", Quantity: decimal.RequireFromString("1")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "emp-1", out.CompanyID)
	assert.Equal(t, 1, out.Rule.Min)
	assert.Len(t, store.groups, 1, "el grupo debe quedar persistido")
}

func TestAssemblyGroupCreate_MinMayorQueMax(t *testing.T) {
	uc, _ := newGroupUseCase()

	_, err := uc.Create("emp-1", dto.CreateAssemblyGroupRequest{
		CategoryID: "cat-1",
		Name:       "Regla imposible",
		Rule:       dto.GroupRuleDTO{Min: 3, Max: 1},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-muro", Quantity: decimal.RequireFromString("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "min > max debe rechazarse")
}

func TestAssemblyGroupCreate_CantidadNoPositiva(t *testing.T) {
	uc, _ := newGroupUseCase()

	_, err := uc.Create("emp-1", dto.CreateAssemblyGroupRequest{
		CategoryID: "cat-1",
		Name:       "Cantidad cero",
		Rule:       dto.GroupRuleDTO{Min: 0, Max: 1},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-muro", Quantity: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestAssemblyGroupCreate_EnsambleDeOtraEmpresa(t *testing.T) {
	uc, _ := newGroupUseCase()

	_, err := uc.Create("emp-1", dto.CreateAssemblyGroupRequest{
		CategoryID: "cat-1",
		Name:       "Referencia cruzada",
		Rule:       dto.GroupRuleDTO{Min: 0, Max: 1},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-otro", Quantity: decimal.RequireFromString("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un ensamble de otra empresa no es visible")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestAssemblyGroupUpdate_ReemplazaReglaEItems(t *testing.T) {
	uc, _ := newGroupUseCase()
	created, err := uc.Create("emp-1", dto.CreateAssemblyGroupRequest{
		CategoryID: "cat-1",
		Name:       "Muros exteriores",
		Rule:       dto.GroupRuleDTO{Min: 1, Max: 1, Required: true},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-muro", Quantity: decimal.RequireFromString("1")},
		},
	})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateAssemblyGroupRequest{
		Name: "Muros exteriores v2",
		Rule: dto.GroupRuleDTO{Min: 0, Max: 2},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-muro", Quantity: decimal.RequireFromString("3")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Muros exteriores v2", out.Name)
	assert.Equal(t, 2, out.Rule.Max)
	assert.False(t, out.Rule.Required)
	assert.True(t, out.Items[0].Quantity.Equal(decimal.RequireFromString("3")))
}

func TestAssemblyGroupUpdate_NoEncontrado(t *testing.T) {
	uc, _ := newGroupUseCase()

	out, err := uc.Update("no-existe", dto.UpdateAssemblyGroupRequest{
		Name: "X",
		Rule: dto.GroupRuleDTO{Min: 0, Max: 1},
		Items: []dto.GroupItemDTO{
			{AssemblyID: "asm-muro", Quantity: decimal.RequireFromString("1")},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, out, "grupo inexistente retorna nil sin error")
}
