package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/doorknock-service/internal/api/http"
	"github.com/spec-kit/doorknock-service/internal/api/http/handlers"
	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/config"
	"github.com/spec-kit/doorknock-service/internal/events"
	"github.com/spec-kit/doorknock-service/internal/observability"
	"github.com/spec-kit/doorknock-service/internal/persistence"
	"github.com/spec-kit/doorknock-service/internal/repository"
	"github.com/spec-kit/doorknock-service/internal/service"
	"github.com/spec-kit/doorknock-service/internal/worker"
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
	actorRepo := repository.NewActorRepository(pool)
	orgUnitRepo := repository.NewOrgUnitRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	territoryRepo := repository.NewTerritoryRepository(pool)
	passcodeStore := repository.NewPasscodeStore(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	hierarchyService := service.NewHierarchyService(orgUnitRepo)
	visibilityService := service.NewVisibilityService(actorRepo, leadRepo, hierarchyService)
	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:   leadRepo,
		ActorRepo:  actorRepo,
		Visibility: visibilityService,
		Dispatcher: dispatcher,
	})
	actorService := service.NewActorService(actorRepo, orgUnitRepo, visibilityService, cfg.Auth.BcryptCost)
	orgUnitService := service.NewOrgUnitService(orgUnitRepo, hierarchyService)
	territoryService := service.NewTerritoryService(territoryRepo, logger)
	statsService := service.NewStatsService(visibilityService)
	authService := service.NewAuthService(actorRepo, passcodeStore, tokenManager, dispatcher, cfg.Auth.PasscodeTTL())

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, actorRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Actors:         handlers.NewActorsHandler(actorService),
		Leads:          handlers.NewLeadsHandler(leadService),
		OrgUnits:       handlers.NewOrgUnitsHandler(orgUnitService),
		Territories:    handlers.NewTerritoriesHandler(territoryService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
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
