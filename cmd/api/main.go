package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/customer-portal/internal/api/http"
	"github.com/spec-kit/customer-portal/internal/api/http/handlers"
	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/config"
	"github.com/spec-kit/customer-portal/internal/events"
	"github.com/spec-kit/customer-portal/internal/mail"
	"github.com/spec-kit/customer-portal/internal/observability"
	"github.com/spec-kit/customer-portal/internal/persistence"
	"github.com/spec-kit/customer-portal/internal/repository"
	"github.com/spec-kit/customer-portal/internal/service"
	"github.com/spec-kit/customer-portal/internal/storage"
	"github.com/spec-kit/customer-portal/internal/tracker"
	"github.com/spec-kit/customer-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	upgradeRepo := repository.NewUpgradeRequestRepository(pool)

	var trackerClient tracker.Client
	if cfg.Tracker.Enabled() {
		trackerClient = tracker.NewJiraClient(cfg.Tracker)
		logger.Info("tracker integration enabled", zap.String("project", cfg.Tracker.ProjectKey))
	} else {
		logger.Warn("tracker integration disabled; reports stay local")
	}

	var mailer mail.Mailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	} else {
		logger.Warn("mail relay disabled; notifications are logged only")
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CustomerRepo:      customerRepo,
		StaffRepo:         staffRepo,
		PasswordResetRepo: resetRepo,
		Mailer:            mailer,
		Logger:            logger,
	})
	profileService := service.NewProfileService(customerRepo, upgradeRepo)
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo: reportRepo,
		Tracker:    trackerClient,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	upgradeService := service.NewUpgradeService(service.UpgradeDependencies{
		UpgradeRepo: upgradeRepo,
		Cache:       redis,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	staffService := service.NewStaffService(*cfg, staffRepo)

	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	worker.StartNotificationWorker(notificationService)

	uploadStore, err := storage.NewUploadStore(cfg.Uploads.Dir, cfg.Uploads.PublicURL)
	if err != nil {
		logger.Fatal("failed to init upload store", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), customerRepo, staffRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService, uploadStore),
		Reports:        handlers.NewReportsHandler(reportService, uploadStore),
		Upgrades:       handlers.NewUpgradesHandler(upgradeService),
		Admin:          handlers.NewAdminHandler(authService, staffService, uploadStore),
		Webhook:        handlers.NewWebhookHandler(reportService, logger),
		AuthMiddleware: authMiddleware,
		UploadsDir:     uploadStore.Dir(),
		UploadsPrefix:  cfg.Uploads.PublicURL,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
