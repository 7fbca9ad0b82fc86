package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/Presupuestos-api/docs"
	"github.com/jhoicas/Presupuestos-api/internal/application/auth"
	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/usecase"
	infraexport "github.com/jhoicas/Presupuestos-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Presupuestos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Presupuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Presupuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Presupuestos-api/pkg/config"
	"github.com/jhoicas/Presupuestos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	assemblyRepo := postgres.NewAssemblyRepository(pool)
	groupRepo := postgres.NewAssemblyGroupRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)

	// Frontera de I/O del motor: una carga del catálogo por reporte.
	snapshotLoader := postgres.NewSnapshotLoader(materialRepo, assemblyRepo, categoryRepo, groupRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	assemblyUC := usecase.NewAssemblyUseCase(assemblyRepo, materialRepo, categoryRepo)
	groupUC := usecase.NewAssemblyGroupUseCase(groupRepo, assemblyRepo, categoryRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo, assemblyRepo, snapshotLoader)
	projectUC := usecase.NewProjectUseCase(projectRepo, templateRepo)

	validateSelectionUC := appbom.NewValidateSelectionUseCase(snapshotLoader, groupRepo)
	templateReportUC := appbom.NewTemplateReportUseCase(snapshotLoader, templateRepo)
	projectReportUC := appbom.NewProjectReportUseCase(snapshotLoader, projectRepo, templateRepo)
	bulkExportUC := appbom.NewBulkExportUseCase(projectRepo, projectReportUC, cfg.Export.BulkConcurrency, log.Component("bulk_export"))

	// Sinks de exportación: CSV con locale es-CO y PDF imprimible
	csvExporter := infraexport.NewCSVExporter(cfg.Export.Locale)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Presupuestos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		MaterialUC: materialUC,
		CategoryUC: categoryUC,
		AssemblyUC: assemblyUC,
		GroupUC:    groupUC,
		TemplateUC: templateUC,
		ProjectUC:  projectUC,

		ValidateSelectionUC: validateSelectionUC,
		TemplateReportUC:    templateReportUC,
		ProjectReportUC:     projectReportUC,
		BulkExportUC:        bulkExportUC,
		Exporter:            csvExporter,
		PDFGenerator:        pdfGenerator,

		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
