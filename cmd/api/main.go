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
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/manufactura-api/internal/infrastructure/pdf"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/manufactura-api/internal/interfaces/http"
	"github.com/jhoicas/manufactura-api/pkg/config"
	"github.com/jhoicas/manufactura-api/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString(), cfg.DB.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	catalogRepo := postgres.NewCatalogItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)

	invTxRunner := postgres.NewTxRunner(pool)
	mfgTxRunner := postgres.NewManufacturingTxRunner(pool)

	locationUC := usecase.NewLocationUseCase(locationRepo, invTxRunner)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, mfgTxRunner)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	transactionsUC := inventory.NewStockTransactionUseCase(invTxRunner, log)
	syncUC := inventory.NewSyncUseCase(invTxRunner, locationRepo, catalogRepo, log, cfg.Mfg.SyncInterval)
	ledgerRepo := postgres.NewLocationInventoryRepository(pool)
	viewsUC := inventory.NewViewsUseCase(locationRepo, catalogRepo, ledgerRepo, syncUC, log)
	movementsUC := inventory.NewMovementQueryUseCase(movementRepo)
	bomUC := manufacturing.NewBOMUseCase(bomRepo, catalogRepo)
	orderUC := manufacturing.NewOrderUseCase(
		mfgTxRunner, orderRepo, bomRepo,
		infrapdf.NewWorkOrderPDFRenderer(), log, cfg.Mfg.CompletionTimeout,
	)
	purgeUC := manufacturing.NewPurgeUseCase(mfgTxRunner, log)

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
		Title:    "Manufactura API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LocationUC:   locationUC,
		CatalogUC:    catalogUC,
		SupplierUC:   supplierUC,
		Transactions: transactionsUC,
		Views:        viewsUC,
		Movements:    movementsUC,
		BOMUC:        bomUC,
		OrderUC:      orderUC,
		PurgeUC:      purgeUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	// Reconciliación periódica de cobertura; las vistas también la disparan
	// perezosamente, el intervalo interno evita corridas dobles.
	syncCtx, stopSync := context.WithCancel(context.Background())
	syncLog := log.Component("sync")
	go func() {
		ticker := time.NewTicker(cfg.Mfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-syncCtx.Done():
				return
			case <-ticker.C:
				res, err := syncUC.Sync(syncCtx, false)
				switch {
				case err != nil:
					metrics.SyncRuns.WithLabelValues("error").Inc()
					syncLog.Error().Err(err).Msg("sincronización periódica de cobertura")
				case !res.Ran:
					metrics.SyncRuns.WithLabelValues("skipped").Inc()
				default:
					metrics.SyncRuns.WithLabelValues("ok").Inc()
				}
			}
		}
	}()

	var metricsSrv *metrics.Server
	if cfg.Metrics.Addr != "" {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSync()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
