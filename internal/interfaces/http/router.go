package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Presupuestos-api/internal/application/auth"
	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/usecase"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	MaterialUC *usecase.MaterialUseCase
	CategoryUC *usecase.CategoryUseCase
	AssemblyUC *usecase.AssemblyUseCase
	GroupUC    *usecase.AssemblyGroupUseCase
	TemplateUC *usecase.TemplateUseCase
	ProjectUC  *usecase.ProjectUseCase

	ValidateSelectionUC *appbom.ValidateSelectionUseCase
	TemplateReportUC    *appbom.TemplateReportUseCase
	ProjectReportUC     *appbom.ProjectReportUseCase
	BulkExportUC        *appbom.BulkExportUseCase
	Exporter            appbom.MaterialsExporter
	PDFGenerator        appbom.MaterialsPDFGenerator

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escritura de catálogo restringida: el rol consulta solo lee.
	editor := RequireRole(entity.RoleAdmin, entity.RolePresupuestador)

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", editor, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", editor, materialHandler.Update)
	materials.Delete("/:id", editor, materialHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", editor, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Delete("/:id", editor, categoryHandler.Delete)

	// Assemblies (protegido)
	assemblies := protected.Group("/assemblies")
	assemblyHandler := NewAssemblyHandler(deps.AssemblyUC)
	assemblies.Post("/", editor, assemblyHandler.Create)
	assemblies.Get("/", assemblyHandler.List)
	assemblies.Get("/:id", assemblyHandler.GetByID)
	assemblies.Put("/:id", editor, assemblyHandler.Update)
	assemblies.Delete("/:id", editor, assemblyHandler.Delete)

	// Assembly groups (protegido)
	groups := protected.Group("/assembly-groups")
	groupHandler := NewGroupHandler(deps.GroupUC)
	groups.Post("/", editor, groupHandler.Create)
	groups.Get("/", groupHandler.ListByCategory)
	groups.Get("/:id", groupHandler.GetByID)
	groups.Put("/:id", editor, groupHandler.Update)
	groups.Delete("/:id", editor, groupHandler.Delete)

	// Templates (protegido)
	templates := protected.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Post("/", editor, templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", editor, templateHandler.Update)
	templates.Delete("/:id", editor, templateHandler.Delete)

	// Projects (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", editor, projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", editor, projectHandler.Update)
	projects.Delete("/:id", editor, projectHandler.Delete)

	// Motor de reportes (protegido, lectura para cualquier rol autenticado)
	reportHandler := NewReportHandler(
		deps.ValidateSelectionUC,
		deps.TemplateReportUC,
		deps.ProjectReportUC,
		deps.BulkExportUC,
		deps.Exporter,
		deps.PDFGenerator,
	)
	protected.Post("/selections/validate", reportHandler.ValidateSelection)
	templates.Get("/:id/bom", reportHandler.TemplateBOM)
	templates.Get("/:id/cost-breakdown", reportHandler.TemplateCostBreakdown)
	projects.Get("/:id/materials", reportHandler.ProjectMaterials)
	projects.Get("/:id/materials/export", reportHandler.ExportProjectMaterials)
	protected.Get("/reports/materials", reportHandler.BulkMaterials)
}
