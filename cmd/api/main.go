// @title        ISP Ledger API
// @version      1.0
// @description  Libro de facturación mensual para un proveedor de internet local.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
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
	"github.com/spf13/afero"

	"github.com/jhoicas/isp-ledger/docs"
	"github.com/jhoicas/isp-ledger/internal/application/auth"
	"github.com/jhoicas/isp-ledger/internal/application/backup"
	"github.com/jhoicas/isp-ledger/internal/application/billing"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/isp-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/isp-ledger/internal/infrastructure/storage"
	infraxlsx "github.com/jhoicas/isp-ledger/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/isp-ledger/internal/interfaces/http"
	"github.com/jhoicas/isp-ledger/pkg/config"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, afero.NewOsFs(), log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	customerRepo := storage.NewCustomerRepository(store.KV, log)
	userRepo := storage.NewUserRepository(store.KV, log)
	sessionRepo := storage.NewSessionRepository(store.KV)

	reportUC := billing.NewReportUseCase(customerRepo)
	statementUC := billing.NewStatementUseCase(
		customerRepo, reportUC,
		infrapdf.NewMarotoStatementGenerator(cfg.App.Name),
		infraxlsx.NewMonthExporter(),
	)
	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "ISP Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  billing.NewCustomerUseCase(customerRepo),
		PaymentUC:   billing.NewPaymentUseCase(customerRepo, log),
		ReportUC:    reportUC,
		StatementUC: statementUC,
		SyncUC:      backup.NewSyncUseCase(store.KV, userRepo, customerRepo, log),
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		Log:         log,
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
