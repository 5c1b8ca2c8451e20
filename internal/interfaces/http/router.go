package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductTypeUC *usecase.ProductTypeUseCase
	ProductUC     *usecase.ProductUseCase
	LedgerUC      *ledger.UseCase
	DashboardUC   *analytics.DashboardUseCase
	ReportUC      *report.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// CRUD e indicadores (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	types := api.Group("/product-types")
	typeHandler := NewProductTypeHandler(deps.ProductTypeUC)
	types.Post("/", typeHandler.Create)
	types.Get("/", typeHandler.List)
	types.Get("/:id", typeHandler.GetByID)
	types.Patch("/:id", typeHandler.Update)
	types.Delete("/:id", typeHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	movements := api.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Patch("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/stock-trend", dashboardHandler.StockTrend)
	dashboard.Get("/recent-movements", dashboardHandler.RecentMovements)
	dashboard.Get("/product-type-distribution", dashboardHandler.TypeDistribution)

	// Informes (protegido, requieren Bearer Token)
	reports := api.Group("/reports", AuthMiddleware(deps.JWTSecret))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock-movements.pdf", reportHandler.Movements)
}
