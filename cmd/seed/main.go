// seed carga un catálogo demo completo en la base de datos: empresa, usuario
// admin, capítulos, materiales, ensambles, grupo de selección, plantilla y
// proyecto. Toda la carga de catálogo corre en una sola transacción.
//
// Uso: go run ./cmd/seed
// Idempotencia: si la empresa demo ya existe (mismo NIT), el seed aborta sin tocar nada.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
	"github.com/jhoicas/Presupuestos-api/internal/domain/repository"
	"github.com/jhoicas/Presupuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Presupuestos-api/pkg/config"
	"github.com/jhoicas/Presupuestos-api/pkg/logger"
)

const (
	demoNIT      = "900123456-8"
	demoEmail    = "admin@constructorademo.co"
	demoPassword = "admin12345" // solo para entornos locales
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	existing, err := companyRepo.GetByNIT(demoNIT)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar empresa demo")
	}
	if existing != nil {
		log.Info().Str("company_id", existing.ID).Msg("la empresa demo ya existe, nada que hacer")
		return
	}

	now := time.Now()
	company := &entity.Company{
		ID:      uuid.New().String(),
		Name:    "Constructora Demo SAS",
		NIT:     demoNIT,
		Address: "Cra 7 # 71-21, Bogotá",
		Email:   demoEmail,
		Status:  "active",
	}
	if err := companyRepo.Create(company); err != nil {
		log.Fatal().Err(err).Msg("crear empresa demo")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	userRepo := postgres.NewUserRepository(pool)
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        demoEmail,
		PasswordHash: string(hash),
		Name:         "Admin Demo",
		Role:         entity.RoleAdmin,
		Status:       "active",
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}

	txRunner := postgres.NewCatalogTxRunner(pool)
	err = txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		categoryRepo repository.CategoryRepository,
		assemblyRepo repository.AssemblyRepository,
		groupRepo repository.AssemblyGroupRepository,
		templateRepo repository.TemplateRepository,
		projectRepo repository.ProjectRepository,
	) error {
		return seedCatalog(company.ID, now, materialRepo, categoryRepo, assemblyRepo, groupRepo, templateRepo, projectRepo)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo demo")
	}

	log.Info().
		Str("company_id", company.ID).
		Str("email", demoEmail).
		Msg("catálogo demo cargado")
}

// seedCatalog inserta el catálogo demo completo. Los totales cacheados de
// plantilla y proyecto se calculan con el motor de rollup, no a mano.
func seedCatalog(
	companyID string,
	now time.Time,
	materialRepo repository.MaterialRepository,
	categoryRepo repository.CategoryRepository,
	assemblyRepo repository.AssemblyRepository,
	groupRepo repository.AssemblyGroupRepository,
	templateRepo repository.TemplateRepository,
	projectRepo repository.ProjectRepository,
) error {
	catEstructura := &entity.Category{
		ID: uuid.New().String(), CompanyID: companyID,
		Name: "Estructura", Code: "EST", Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}
	catAcabados := &entity.Category{
		ID: uuid.New().String(), CompanyID: companyID,
		Name: "Acabados", Code: "ACA", Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}
	for _, c := range []*entity.Category{catEstructura, catAcabados} {
		if err := categoryRepo.Create(c); err != nil {
			return err
		}
	}

	ladrillo := material(companyID, now, "Ladrillo tolete", "LAD-01", "Ladrillera Santafé", "un", "850")
	cemento := material(companyID, now, "Cemento gris 50kg", "CEM-50", "Argos", "un", "32500")
	arena := material(companyID, now, "Arena de río", "", "", "m3", "95000")
	pintura := material(companyID, now, "Pintura vinilo blanco", "VIN-BL", "Pintuco", "gl", "78000")
	for _, m := range []*entity.Material{ladrillo, cemento, arena, pintura} {
		if err := materialRepo.Create(m); err != nil {
			return err
		}
	}

	muro := &entity.Assembly{
		ID: uuid.New().String(), CompanyID: companyID, CategoryID: catEstructura.ID,
		Name: "Muro en ladrillo m2",
		Materials: []entity.AssemblyMaterial{
			{MaterialID: ladrillo.ID, Quantity: decimal.RequireFromString("58")},
			{MaterialID: cemento.ID, Quantity: decimal.RequireFromString("0.25")},
			{MaterialID: arena.ID, Quantity: decimal.RequireFromString("0.03")},
		},
		CreatedAt: now, UpdatedAt: now,
	}
	muroPintado := &entity.Assembly{
		ID: uuid.New().String(), CompanyID: companyID, CategoryID: catAcabados.ID,
		Name: "Muro pintado m2",
		Materials: []entity.AssemblyMaterial{
			{MaterialID: pintura.ID, Quantity: decimal.RequireFromString("0.1")},
		},
		CreatedAt: now, UpdatedAt: now,
	}
	for _, a := range []*entity.Assembly{muro, muroPintado} {
		if err := assemblyRepo.Create(a); err != nil {
			return err
		}
	}

	grupo := &entity.AssemblyGroup{
		ID: uuid.New().String(), CompanyID: companyID, CategoryID: catAcabados.ID,
		Name: "Acabado de muros",
		Rule: entity.GroupRule{Min: 0, Max: 1, Required: false},
		Items: []entity.GroupItem{
			{AssemblyID: muroPintado.ID, Quantity: decimal.RequireFromString("1")},
		},
		CreatedAt: now, UpdatedAt: now,
	}
	if err := groupRepo.Create(grupo); err != nil {
		return err
	}

	snap, err := bom.NewSnapshot(
		[]*entity.Material{ladrillo, cemento, arena, pintura},
		[]*entity.Assembly{muro, muroPintado},
		[]*entity.Category{catEstructura, catAcabados},
		[]*entity.AssemblyGroup{grupo},
	)
	if err != nil {
		return err
	}

	composicion := []bom.CompositionItem{
		{AssemblyID: muro.ID, Quantity: decimal.RequireFromString("42")},
		{AssemblyID: muroPintado.ID, Quantity: decimal.RequireFromString("42")},
	}
	plantilla := &entity.Template{
		ID: uuid.New().String(), CompanyID: companyID,
		Name:        "Casa tipo A",
		Description: "Vivienda unifamiliar de un piso, muros en ladrillo pintados",
		Assemblies: []entity.TemplateAssembly{
			{AssemblyID: muro.ID, Quantity: decimal.RequireFromString("42")},
			{AssemblyID: muroPintado.ID, Quantity: decimal.RequireFromString("42")},
		},
		CachedTotal: bom.RollupComposition(snap, composicion).GrandTotal,
		CreatedAt:   now, UpdatedAt: now,
	}
	if err := templateRepo.Create(plantilla); err != nil {
		return err
	}

	cantidadCasas := decimal.RequireFromString("12")
	proyecto := &entity.Project{
		ID: uuid.New().String(), CompanyID: companyID,
		Name:     "Urbanización Los Alisos",
		Customer: "Fiduciaria Alisos",
		Status:   "draft",
		Templates: []entity.ProjectTemplate{
			{TemplateID: plantilla.ID, Quantity: cantidadCasas},
		},
		CachedTotal: plantilla.CachedTotal.Mul(cantidadCasas),
		CreatedAt:   now, UpdatedAt: now,
	}
	return projectRepo.Create(proyecto)
}

func material(companyID string, now time.Time, name, partNumber, manufacturer, unit, price string) *entity.Material {
	return &entity.Material{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         name,
		PartNumber:   partNumber,
		Manufacturer: manufacturer,
		Unit:         unit,
		UnitPrice:    decimal.RequireFromString(price),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
