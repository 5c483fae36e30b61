package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wecelebrate/console/internal/api"
	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/config"
	"wecelebrate/console/internal/db"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/metrics"
	"wecelebrate/console/internal/middleware"
	"wecelebrate/console/internal/routes"
	"wecelebrate/console/internal/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("wecelebrate console starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"cache_backend", cfg.CacheBackend,
	)

	orm, err := db.OpenORM(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database (GORM)", "error", err)
	}
	if err := db.Migrate(orm); err != nil {
		logging.Fatal("Failed to migrate database", "error", err)
	}

	sqlxDB, err := db.OpenSQLX(cfg, orm)
	if err != nil {
		logging.Fatal("Failed to connect to database (sqlx)", "error", err)
	}

	cache, healthChecks := openCache(cfg)
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, tokens, keys := api.InitDependencies(api.Infrastructure{
		ORM:          orm,
		SQL:          sqlxDB,
		Cache:        cache,
		Metrics:      metricsReg,
		JWTSecret:    cfg.JWTSecret,
		MaxTokenTTL:  cfg.TokenTTL,
		Workers:      cfg.AssignWorkers,
		HealthChecks: healthChecks,
	})

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	if cfg.DependencyCheckInterval > 0 {
		checks := make(map[string]workers.Pinger, len(deps.HealthChecks))
		for name, p := range deps.HealthChecks {
			checks[name] = p
		}
		monitor := workers.NewDependencyMonitor(checks, metricsReg, 2*time.Second)
		go monitor.Start(monitorCtx, cfg.DependencyCheckInterval)
	}

	router := routes.RegisterRoutes(deps, routes.RouterOptions{
		Metrics:     metricsReg,
		Gatherer:    prometheus.DefaultGatherer,
		Tokens:      tokens,
		Keys:        keys,
		RateLimiter: middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitIdle, metricsReg),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down server")
	stopMonitor()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
	if err := sqlxDB.Close(); err != nil {
		logging.Warn("Failed to close database", "error", err)
	}
}

// openCache picks the configured cache backend. An unreachable Redis falls
// back to the in-memory cache so the console stays usable.
func openCache(cfg *config.Config) (common.CacheInterface, map[string]api.Pinger) {
	if cfg.CacheBackend == config.CacheBackendRedis {
		client, err := common.NewRedisClient(cfg)
		if err == nil {
			redisCache := common.NewRedisCacheService(client)
			return redisCache, map[string]api.Pinger{"redis": redisCache}
		}
		logging.Warn("Redis unavailable, using in-memory cache", "error", err)
	}
	return common.NewCacheService(30*time.Minute, 10*time.Minute), nil
}
