package bom_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeLoader struct{ snap *bom.Snapshot }

func (f *fakeLoader) LoadSnapshot(_ context.Context, _ string) (*bom.Snapshot, error) {
	return f.snap, nil
}

type fakeTemplateRepo struct{ templates map[string]*entity.Template }

func (f *fakeTemplateRepo) Create(*entity.Template) error { return nil }
func (f *fakeTemplateRepo) Update(*entity.Template) error { return nil }
func (f *fakeTemplateRepo) Delete(string) error           { return nil }
func (f *fakeTemplateRepo) GetByID(id string) (*entity.Template, error) {
	return f.templates[id], nil
}
func (f *fakeTemplateRepo) ListByCompany(string, int, int) ([]*entity.Template, error) {
	return nil, nil
}

type fakeProjectRepo struct{ projects []*entity.Project }

func (f *fakeProjectRepo) Create(*entity.Project) error { return nil }
func (f *fakeProjectRepo) Update(*entity.Project) error { return nil }
func (f *fakeProjectRepo) Delete(string) error          { return nil }
func (f *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProjectRepo) ListByCompany(string, int, int) ([]*entity.Project, error) {
	return f.projects, nil
}
func (f *fakeProjectRepo) ListAllByCompany(string) ([]*entity.Project, error) {
	return f.projects, nil
}

// Catálogo de prueba: Muro (Ladrillo x100 + Cemento x2) y Piso (Ladrillo x50).
func fixtureSnapshot(t *testing.T) *bom.Snapshot {
	t.Helper()
	snap, err := bom.NewSnapshot(
		[]*entity.Material{
			{ID: "mat-ladrillo", Name: "Ladrillo", Unit: "un", UnitPrice: d("500")},
			{ID: "mat-cemento", Name: "Cemento", Unit: "bulto", UnitPrice: d("50000")},
		},
		[]*entity.Assembly{
			{ID: "asm-muro", CategoryID: "cat-1", Name: "Muro", Materials: []entity.AssemblyMaterial{
				{MaterialID: "mat-ladrillo", Quantity: d("100")},
				{MaterialID: "mat-cemento", Quantity: d("2")},
			}},
			{ID: "asm-piso", CategoryID: "cat-1", Name: "Piso", Materials: []entity.AssemblyMaterial{
				{MaterialID: "mat-ladrillo", Quantity: d("50")},
			}},
		},
		[]*entity.Category{{ID: "cat-1", Name: "Obra gris"}},
		nil,
	)
	require.NoError(t, err)
	return snap
}

func fixtureTemplates() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string]*entity.Template{
		"tpl-casa": {
			ID: "tpl-casa", CompanyID: "co-1", Name: "Casa tipo A",
			Assemblies: []entity.TemplateAssembly{
				{AssemblyID: "asm-muro", Quantity: d("3")},
				{AssemblyID: "asm-piso", Quantity: d("1")},
			},
		},
	}}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestTemplateBOMReport_VectorCompleto(t *testing.T) {
	uc := appbom.NewTemplateReportUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, fixtureTemplates())

	report, err := uc.BOMReport(context.Background(), "tpl-casa")
	require.NoError(t, err)

	assert.Equal(t, "Casa tipo A", report.SourceName)
	require.Len(t, report.Materials, 2, "Ladrillo de Muro y Piso consolidado en una línea")
	assert.True(t, report.Materials[0].TotalQuantity.Equal(d("350")))
	assert.True(t, report.Materials[0].TotalCost.Equal(d("175000")))
	assert.True(t, report.GrandTotal.Equal(d("475000")))
	assert.Zero(t, report.WarningCount)
}

func TestTemplateCostBreakdown(t *testing.T) {
	uc := appbom.NewTemplateReportUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, fixtureTemplates())

	breakdown, err := uc.CostBreakdown(context.Background(), "tpl-casa")
	require.NoError(t, err)

	assert.True(t, breakdown.GrandTotal.Equal(d("475000")))
	require.Len(t, breakdown.PerAssembly, 2)
	assert.True(t, breakdown.PerAssembly[0].Subtotal.Equal(d("450000")), "Muro x3 a 150.000")
	require.Len(t, breakdown.PerCategory, 1)
	assert.True(t, breakdown.PerCategory[0].Subtotal.Equal(d("475000")))
}

func TestTemplateBOMReport_NoEncontrada(t *testing.T) {
	uc := appbom.NewTemplateReportUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, fixtureTemplates())

	_, err := uc.BOMReport(context.Background(), "tpl-fantasma")
	require.Error(t, err)
}

func TestProjectMaterials_ConsolidaEntrePlantillas(t *testing.T) {
	templates := fixtureTemplates()
	templates.templates["tpl-bodega"] = &entity.Template{
		ID: "tpl-bodega", CompanyID: "co-1", Name: "Bodega",
		Assemblies: []entity.TemplateAssembly{{AssemblyID: "asm-piso", Quantity: d("4")}},
	}
	projects := &fakeProjectRepo{projects: []*entity.Project{{
		ID: "prj-1", CompanyID: "co-1", Name: "Urbanización Norte",
		Templates: []entity.ProjectTemplate{
			{TemplateID: "tpl-casa", Quantity: d("2")},   // 2 casas
			{TemplateID: "tpl-bodega", Quantity: d("1")}, // 1 bodega
		},
	}}}
	uc := appbom.NewProjectReportUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, projects, templates)

	report, err := uc.Materials(context.Background(), "prj-1")
	require.NoError(t, err)

	// Ladrillo: casas 2x(300+50) + bodega 4x50 = 900; Cemento: 2x6 = 12.
	require.Len(t, report.Materials, 2)
	assert.True(t, report.Materials[0].TotalQuantity.Equal(d("900")),
		"el material compartido entre plantillas se consolida en una sola línea")
	assert.True(t, report.Materials[1].TotalQuantity.Equal(d("12")))
	assert.True(t, report.GrandTotal.Equal(d("1050000")))
}

func TestProjectMaterials_PlantillaBorrada_AdvierteYContinua(t *testing.T) {
	projects := &fakeProjectRepo{projects: []*entity.Project{{
		ID: "prj-1", CompanyID: "co-1", Name: "Proyecto",
		Templates: []entity.ProjectTemplate{
			{TemplateID: "tpl-borrada", Quantity: d("1")},
			{TemplateID: "tpl-casa", Quantity: d("1")},
		},
	}}}
	uc := appbom.NewProjectReportUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, projects, fixtureTemplates())

	report, err := uc.Materials(context.Background(), "prj-1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.WarningCount, "la plantilla rota se advierte sin abortar el export")
	assert.True(t, report.GrandTotal.Equal(d("475000")), "los totales parciales cubren lo resuelto")
}

func TestBulkExport_OrdenEstable(t *testing.T) {
	templates := fixtureTemplates()
	projects := &fakeProjectRepo{projects: []*entity.Project{
		{ID: "prj-a", CompanyID: "co-1", Name: "Alpha", Templates: []entity.ProjectTemplate{{TemplateID: "tpl-casa", Quantity: d("1")}}},
		{ID: "prj-b", CompanyID: "co-1", Name: "Beta", Templates: []entity.ProjectTemplate{{TemplateID: "tpl-casa", Quantity: d("2")}}},
		{ID: "prj-c", CompanyID: "co-1", Name: "Gamma", Templates: []entity.ProjectTemplate{{TemplateID: "tpl-casa", Quantity: d("3")}}},
	}}
	projectReport := appbom.NewProjectReportUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, projects, templates)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := appbom.NewBulkExportUseCase(projects, projectReport, 2, log)

	out, err := uc.AllProjects(context.Background(), "co-1")
	require.NoError(t, err)

	// El orden de salida es el de los proyectos, no el de término de los workers.
	require.Len(t, out.Projects, 3)
	assert.Equal(t, "Alpha", out.Projects[0].SourceName)
	assert.Equal(t, "Beta", out.Projects[1].SourceName)
	assert.Equal(t, "Gamma", out.Projects[2].SourceName)
	assert.True(t, out.Projects[2].GrandTotal.Equal(d("1425000")))
}

func TestValidateSelectionUseCase_MapeaErrores(t *testing.T) {
	groups := []*entity.AssemblyGroup{{
		ID: "grp-1", CompanyID: "co-1", CategoryID: "cat-1", Name: "Muros",
		Rule:  entity.GroupRule{Min: 1, Max: 1, Required: true},
		Items: []entity.GroupItem{{AssemblyID: "asm-muro", Quantity: d("3")}},
	}}
	uc := appbom.NewValidateSelectionUseCase(&fakeLoader{snap: fixtureSnapshot(t)}, &fakeGroupRepo{groups: groups})

	out, err := uc.Validate(context.Background(), "co-1", dto.ValidateSelectionRequest{Selection: map[string]map[string][]string{}})
	require.NoError(t, err, "las violaciones de regla no son error de Go")
	assert.False(t, out.IsValid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "grp-1", out.Errors[0].GroupID)

	out, err = uc.Validate(context.Background(), "co-1", dto.ValidateSelectionRequest{
		Selection: map[string]map[string][]string{"cat-1": {"grp-1": {"asm-muro"}}},
	})
	require.NoError(t, err)
	assert.True(t, out.IsValid)
	assert.True(t, out.TotalCost.Equal(d("450000")))
}

type fakeGroupRepo struct{ groups []*entity.AssemblyGroup }

func (f *fakeGroupRepo) Create(*entity.AssemblyGroup) error { return nil }
func (f *fakeGroupRepo) Update(*entity.AssemblyGroup) error { return nil }
func (f *fakeGroupRepo) Delete(string) error                { return nil }
func (f *fakeGroupRepo) GetByID(string) (*entity.AssemblyGroup, error) {
	return nil, nil
}
func (f *fakeGroupRepo) ListByCategory(string, string) ([]*entity.AssemblyGroup, error) {
	return f.groups, nil
}
func (f *fakeGroupRepo) ListAllByCompany(string) ([]*entity.AssemblyGroup, error) {
	return f.groups, nil
}
