package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/analytics"
	"github.com/jhoicas/negocio-api/internal/application/auth"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/application/notification"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/negocio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/negocio-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/negocio-api/internal/interfaces/http"
	"github.com/jhoicas/negocio-api/pkg/config"
	"github.com/jhoicas/negocio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureDefaultAdmin(ctx, auth.AdminSeed{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword})
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador por defecto")
	}
	if created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador por defecto creado")
	}

	stockUC := inventory.NewStockLedgerUseCase(store.tx, store.supplies, store.stock, store.stockMovements)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.stock, store.suppliers)
	ledgerUC := accounting.NewLedgerUseCase(store.tx, store.accounts, store.accountMovements)
	sessionUC := register.NewSessionUseCase(store.tx, store.registers, store.sessions, store.cashMovements)
	saleUC := register.NewSaleUseCase(store.tx, store.supplies, store.sales, store.registers, store.sessions)
	dashboardUC := analytics.NewDashboardUseCase(store.sales, store.stock, store.payments)

	// Email mensual: con REDIS_URL se encola y lo envía el pool de workers; sin Redis se envía en línea.
	pdfGenerator := infrapdf.NewReportGenerator(cfg.App.Name)
	mailer := mail.NewSMTPMailer(cfg.SMTP)
	var emailQueue notification.Queue
	if cfg.Redis.Enabled() {
		rdb, err := queue.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		emailQueue = queue.NewDispatcher(rdb)
		queue.StartWorkerPool(ctx, rdb, cfg.Redis.WorkerCount, mailer)
	}
	emailUC := notification.NewEmailReportUseCase(store.emailConfig, dashboardUC, pdfGenerator, mailer, emailQueue)
	go notification.NewScheduler(emailUC).Run(ctx)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		RateLimit:   cfg.HTTP.RateLimit,
		SwaggerFile: cfg.HTTP.SwaggerFile,
	})
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(store.users),
		SupplyUC:      usecase.NewSupplyUseCase(store.supplies),
		StockUC:       stockUC,
		Replenishment: replenishmentUC,
		LedgerUC:      ledgerUC,
		SessionUC:     sessionUC,
		SaleUC:        saleUC,
		SupplierUC:    usecase.NewSupplierUseCase(store.suppliers, store.supplies),
		PaymentUC:     usecase.NewPaymentUseCase(store.payments, store.suppliers),
		DashboardUC:   dashboardUC,
		EmailUC:       emailUC,
		SalesPDF:      pdfGenerator,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
