package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/account-service/internal/api/http"
	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/notify"
	"github.com/spec-kit/account-service/internal/observability"
	"github.com/spec-kit/account-service/internal/persistence"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/internal/service/registration"
	"github.com/spec-kit/account-service/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	tokenRepo := repository.NewConfirmationTokenRepository(pool)
	passcodeRepo := repository.NewPasscodeRepository(pool)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	dispatcher := events.NewInMemoryDispatcher()

	registrations, err := registration.NewDispatcher(
		registration.NewMemberHandler(memberRepo, accountRepo, hasher, logger),
		registration.NewAdminHandler(accountRepo, hasher, logger),
	)
	if err != nil {
		logger.Fatal("failed to build registration dispatcher", zap.Error(err))
	}

	confirmationService := service.NewConfirmationService(tokenRepo, accountRepo, pg, dispatcher, cfg.Auth.ConfirmationTTL(), logger)
	resetService := service.NewPasswordResetService(
		accountRepo,
		passcodeRepo,
		hasher,
		auth.RandomCodeGenerator{},
		pg,
		persistence.NewOTPRequestLimiter(redis, cfg.Auth.OTPRequestInterval()),
		dispatcher,
		cfg.Auth.OTPLength,
		logger,
	)
	notificationService := service.NewNotificationService(
		dispatcher,
		notify.NewMailgunSender(cfg.Notification.MailgunDomain, cfg.Notification.MailgunAPIKey, cfg.Notification.EmailFrom),
		notify.NewWebhookSMSSender(cfg.Notification.SMSWebhookURL),
		logger,
		cfg.Notification,
	)
	worker.StartNotificationWorker(notificationService)

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenMgr, accountRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(registrations, confirmationService, accountRepo, service.NewAuthorizationService()),
		Credentials:    handlers.NewCredentialsHandler(confirmationService, resetService, notificationService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
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
