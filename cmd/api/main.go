package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// stores agrupa los adaptadores de persistencia del driver elegido.
type stores struct {
	productRepo  repository.ProductRepository
	typeRepo     repository.ProductTypeRepository
	movementRepo repository.StockMovementRepository
	userRepo     repository.UserRepository
	txRunner     ledger.TxRunner
	close        func()
}

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	st, err := buildStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	ledgerUC := ledger.NewUseCase(st.txRunner, st.productRepo, st.typeRepo, st.movementRepo)
	typeUC := usecase.NewProductTypeUseCase(st.typeRepo, st.productRepo)
	productUC := usecase.NewProductUseCase(st.txRunner, st.productRepo, st.typeRepo)
	dashboardUC := analytics.NewDashboardUseCase(st.productRepo, st.typeRepo, st.movementRepo, cfg.Inventory.LowStockThreshold)
	reportUC := report.NewUseCase(st.movementRepo, st.productRepo, infrapdf.NewMarotoReportGenerator())
	authUC := auth.NewAuthUseCase(st.userRepo, auth.JWTConfig{
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
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductTypeUC: typeUC,
		ProductUC:     productUC,
		LedgerUC:      ledgerUC,
		DashboardUC:   dashboardUC,
		ReportUC:      reportUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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

// buildStores arma los adaptadores según STORE_DRIVER (memory por defecto).
func buildStores(cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == "postgres" {
		pool, err := postgres.NewPool(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		return &stores{
			productRepo:  postgres.NewProductRepository(pool),
			typeRepo:     postgres.NewProductTypeRepository(pool),
			movementRepo: postgres.NewMovementRepository(pool),
			userRepo:     postgres.NewUserRepository(pool),
			txRunner:     postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil
	}

	store := memory.NewStore()
	if cfg.Store.SeedDemo {
		store.SeedDemo()
	}
	return &stores{
		productRepo:  memory.NewProductRepository(store),
		typeRepo:     memory.NewProductTypeRepository(store),
		movementRepo: memory.NewMovementRepository(store),
		userRepo:     memory.NewUserRepository(store),
		txRunner:     memory.NewTxRunner(store),
		close:        func() {},
	}, nil
}
