package router

import (
	"errors"
	"net/http"

	buildingsvc "leaseos-backend/internal/application/buildings"
	exportsvc "leaseos-backend/internal/application/export"
	leasesvc "leaseos-backend/internal/application/leases"
	ownersvc "leaseos-backend/internal/application/ownership"
	repairsvc "leaseos-backend/internal/application/repairs"
	unitsvc "leaseos-backend/internal/application/units"
	"leaseos-backend/internal/config"
	"leaseos-backend/internal/infrastructure/database"
	buildinghandler "leaseos-backend/internal/interfaces/handlers/buildings"
	exporthandler "leaseos-backend/internal/interfaces/handlers/export"
	healthhandler "leaseos-backend/internal/interfaces/handlers/health"
	leasehandler "leaseos-backend/internal/interfaces/handlers/leases"
	ownerhandler "leaseos-backend/internal/interfaces/handlers/ownership"
	repairhandler "leaseos-backend/internal/interfaces/handlers/repairs"
	unithandler "leaseos-backend/internal/interfaces/handlers/units"
	"leaseos-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp opens the database and optional Redis client named by cfg and builds the app on them.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is required")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	return NewApp(cfg, db, rdb), db, rdb, nil
}

// NewApp wires middleware and routes over an open database. rdb may be nil.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Actor())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             db,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	api := app.Group("/api")

	// Buildings, floors and registries
	bs := &buildingsvc.Service{
		DB:                db,
		BasementFloors:    cfg.DefaultBasementFloors,
		AboveGroundFloors: cfg.DefaultAboveGroundFloors,
	}
	bh := &buildinghandler.Handlers{Service: bs}
	api.Get("/buildings", bh.ListBuildings)
	api.Post("/buildings", bh.CreateBuilding)
	api.Get("/buildings/:id", bh.GetBuilding)
	api.Patch("/buildings/:id", bh.PatchBuilding)
	api.Post("/buildings/:id/floors/generate", bh.GenerateFloors)
	api.Get("/buildings/:id/floors", bh.ListFloors)
	api.Get("/floors/:id", bh.GetFloor)
	api.Get("/buildings/:id/tenants", bh.ListTenants)
	api.Post("/buildings/:id/tenants", bh.CreateTenant)
	api.Get("/tenants/:id", bh.GetTenant)
	api.Patch("/tenants/:id", bh.PatchTenant)
	api.Get("/buildings/:id/owners", bh.ListOwners)
	api.Post("/buildings/:id/owners", bh.CreateOwner)
	api.Patch("/owners/:id", bh.PatchOwner)
	api.Get("/buildings/:id/vendors", bh.ListVendors)
	api.Post("/buildings/:id/vendors", bh.CreateVendor)
	api.Patch("/vendors/:id", bh.PatchVendor)
	api.Get("/buildings/:id/common-areas", bh.ListCommonAreas)
	api.Post("/buildings/:id/common-areas", bh.CreateCommonArea)
	api.Get("/common-areas/:id", bh.GetCommonArea)
	api.Patch("/common-areas/:id", bh.PatchCommonArea)

	// Units; /units/merge is registered before /units/:id routes
	uh := &unithandler.Handlers{Service: &unitsvc.Service{DB: db}}
	api.Get("/floors/:id/units", uh.ListUnits)
	api.Post("/floors/:id/units", uh.CreateUnit)
	api.Post("/units/merge", uh.MergeUnits)
	api.Patch("/units/:id", uh.PatchUnit)
	api.Post("/units/:id/split", uh.SplitUnit)
	api.Get("/units/:id/lineage", uh.Lineage)

	// Leases and occupancies
	lh := &leasehandler.Handlers{Service: &leasesvc.Service{DB: db}}
	api.Post("/leases", lh.CreateLease)
	api.Get("/leases/:id", lh.GetLease)
	api.Patch("/leases/:id", lh.PatchLease)
	api.Get("/buildings/:id/leases", lh.ListLeases)
	api.Post("/occupancies", lh.CreateOccupancy)
	api.Patch("/occupancies/:id", lh.PatchOccupancy)
	api.Get("/buildings/:id/occupancies", lh.ListOccupancies)

	// Ownership shares
	oh := &ownerhandler.Handlers{Service: &ownersvc.Service{DB: db}}
	api.Post("/floors/:id/owners/assign", oh.AssignFloorOwner)
	api.Get("/floors/:id/owners", oh.ListFloorOwners)
	api.Delete("/floor-owners/:id", oh.DeleteFloorOwner)

	// Repairs
	rh := &repairhandler.Handlers{Service: &repairsvc.Service{DB: db}}
	api.Post("/repairs", rh.CreateRepair)
	api.Get("/repairs/:id", rh.GetRepair)
	api.Patch("/repairs/:id", rh.PatchRepair)
	api.Get("/buildings/:id/repairs", rh.ListRepairs)

	eh := &exporthandler.Handlers{Service: &exportsvc.Service{DB: db}}
	api.Get("/buildings/:id/export/xlsx", eh.BuildingWorkbook)

	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
