package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gholaman/municipal-portal/internal/api/http"
	"github.com/gholaman/municipal-portal/internal/api/http/handlers"
	"github.com/gholaman/municipal-portal/internal/auth"
	"github.com/gholaman/municipal-portal/internal/config"
	"github.com/gholaman/municipal-portal/internal/events"
	"github.com/gholaman/municipal-portal/internal/observability"
	"github.com/gholaman/municipal-portal/internal/persistence"
	"github.com/gholaman/municipal-portal/internal/repository"
	"github.com/gholaman/municipal-portal/internal/service"
	"github.com/gholaman/municipal-portal/internal/tracking"
	"github.com/gholaman/municipal-portal/internal/validation"
	"github.com/gholaman/municipal-portal/internal/worker"
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

	validator, err := validation.New()
	if err != nil {
		logger.Fatal("failed to compile validation schemas", zap.Error(err))
	}

	pool := pg.PoolHandle()
	requestRepo := repository.NewRequestRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	resolver := auth.NewResolver(cfg.Auth.AdminEmailList())
	guard := auth.NewGuard(resolver)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, staffRepo)
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		Generator:   tracking.NewGenerator(),
		Guard:       guard,
		Cache:       redis,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	newsService := service.NewNewsService(service.NewsDependencies{
		NewsRepo:   newsRepo,
		Guard:      guard,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessionMiddleware := auth.NewMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(authService, resolver),
		Requests:          handlers.NewRequestsHandler(requestService, validator),
		StaffRequests:     handlers.NewStaffRequestsHandler(requestService),
		News:              handlers.NewNewsHandler(newsService),
		AdminNews:         handlers.NewAdminNewsHandler(newsService, validator),
		SessionMiddleware: sessionMiddleware,
		Resolver:          resolver,
		LoginPath:         cfg.Auth.LoginPath,
		DashboardPath:     cfg.Auth.DashboardPath,
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
