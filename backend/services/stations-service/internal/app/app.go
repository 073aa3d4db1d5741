package app

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "stationhub/backend/libs/redis"
	"stationhub/backend/services/stations-service/internal/cache"
	appconfig "stationhub/backend/services/stations-service/internal/config"
	"stationhub/backend/services/stations-service/internal/db"
	httpserver "stationhub/backend/services/stations-service/internal/http"
	"stationhub/backend/services/stations-service/internal/http/handlers"
	"stationhub/backend/services/stations-service/internal/metrics"
	"stationhub/backend/services/stations-service/internal/password"
	"stationhub/backend/services/stations-service/internal/repository"
	"stationhub/backend/services/stations-service/internal/service"
)

// App wires dependencies for the stations service.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New builds application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	if cfg.Database.Migrate {
		if err := db.Migrate(cfg.Database.DSN); err != nil {
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	sqlDB, err := db.NewPostgres(cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}

	a := &App{db: sqlDB, logger: logger}

	userRepo := repository.NewUserRepository(sqlDB)
	stationRepo := repository.NewStationRepository(sqlDB)

	var owners service.OwnerDirectory = userRepo
	if cfg.OwnerCacheEnabled() {
		client, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		owners = service.NewCachedOwnerDirectory(userRepo, cache.NewOwnerStore(client, cfg.Redis.TTL), logger)
		logger.Info("owner cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	identities := service.NewIdentityLoader(userRepo)
	query := service.NewStationQuery(stationRepo, owners)
	mutations := service.NewMutationCoordinator(stationRepo, query, collector, logger)

	stationSvc := service.NewStationService(service.StationServiceDeps{
		Verifier:    tokenSvc,
		Identities:  identities,
		Query:       query,
		Mutations:   mutations,
		MaxPageSize: cfg.Pagination.MaxLimit,
		Recorder:    collector,
		Logger:      logger,
	})
	authSvc := service.NewAuthService(userRepo, password.NewBcryptHasher(0), tokenSvc, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandlers:     handlers.NewAuthHandlers(authSvc, stationSvc, logger),
		StationsHandlers: handlers.NewStationsHandlers(stationSvc, logger),
		HealthHandler:    handlers.NewHealthHandler(sqlDB),
		MetricsHandler:   metrics.Handler(registry),
		Metrics:          collector,
		Logger:           logger,
	})
	a.server = httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return a, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
