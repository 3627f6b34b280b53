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
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/domain/repository"
	"github.com/jhoicas/salestax-api/internal/infrastructure/cache"
	"github.com/jhoicas/salestax-api/internal/infrastructure/postgres"
	"github.com/jhoicas/salestax-api/internal/infrastructure/rates"
	"github.com/jhoicas/salestax-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/salestax-api/internal/interfaces/http"
	"github.com/jhoicas/salestax-api/pkg/config"
	"github.com/jhoicas/salestax-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	rateTable, err := rates.Load(cfg.Tax.RatesFile, cfg.Tax.DefaultJurisdiction)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Tax.RatesFile).Msg("tabla de tasas")
	}
	log.Info().
		Int("jurisdictions", len(rateTable.All())).
		Str("default", rateTable.Default().Code).
		Msg("tabla de tasas cargada")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// PostgreSQL es opcional: sin DB el directorio no existe (nadie exento) y no hay facturas.
	var pool *pgxpool.Pool
	if cfg.DB.Enabled() {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	} else {
		log.Warn().Msg("sin base de datos: directorio y facturación deshabilitados")
	}

	var taxCache billing.Cache
	switch cfg.Cache.Backend {
	case config.CacheBackendPostgres:
		store := postgres.NewCacheStore(pool)
		go purgeExpired(ctx, store, log)
		taxCache = store
	default:
		taxCache = cache.NewMemoryCache(cfg.Cache.CalculationTTL, 10*time.Minute)
	}

	var directory repository.BusinessDirectory
	var payments repository.PaymentRepository
	if pool != nil {
		directory = postgres.NewBusinessRepository(pool)
		payments = postgres.NewPaymentRepository(pool)
	}

	metrics := telemetry.NewTaxMetrics()
	resolver := billing.NewExemptionResolver(directory, taxCache, cfg.Cache.ExemptionTTL, log, metrics)
	calculatorUC := billing.NewCalculatorUseCase(rateTable, resolver, taxCache, cfg.Cache.CalculationTTL, log, metrics)

	var invoiceUC *billing.GenerateInvoiceUseCase
	if payments != nil {
		invoiceUC = billing.NewGenerateInvoiceUseCase(payments, calculatorUC, rateTable)
	}

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
		Title:    "Sales Tax API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "default_jurisdiction": rateTable.Default().Code})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Calculator: calculatorUC,
		Invoices:   invoiceUC,
		Metrics:    metrics.Handler(),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// purgeExpired limpia periódicamente la tabla tax_cache hasta que ctx se cancela.
func purgeExpired(ctx context.Context, store *postgres.CacheStore, log *logger.Logger) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de caché")
				continue
			}
			log.Debug().Int64("deleted", n).Msg("purga de caché")
		}
	}
}
