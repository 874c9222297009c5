package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	bookinghandler "github.com/tanchhohang/airlines-api/internal/booking/handler"
	"github.com/tanchhohang/airlines-api/internal/booking/service"
	"github.com/tanchhohang/airlines-api/internal/booking/store/airline"
	bookingstore "github.com/tanchhohang/airlines-api/internal/booking/store/booking"
	"github.com/tanchhohang/airlines-api/internal/booking/store/sector"
	"github.com/tanchhohang/airlines-api/internal/cache"
	jwttoken "github.com/tanchhohang/airlines-api/internal/jwt_token"
	"github.com/tanchhohang/airlines-api/internal/platform/config"
	"github.com/tanchhohang/airlines-api/internal/platform/httpserver"
	"github.com/tanchhohang/airlines-api/internal/platform/logger"
	"github.com/tanchhohang/airlines-api/internal/platform/metrics"
	platformredis "github.com/tanchhohang/airlines-api/internal/platform/redis"
	"github.com/tanchhohang/airlines-api/internal/soap"
	"github.com/tanchhohang/airlines-api/internal/storage"
	"github.com/tanchhohang/airlines-api/internal/user"
	userhandler "github.com/tanchhohang/airlines-api/internal/user/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	// Cache: Redis when configured, in-process memory otherwise.
	var cacheStore cache.Store = cache.NewMemory()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable, falling back to memory cache", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		cacheStore = cache.NewRedis(redisClient.Client)
		log.Info("cache backed by redis")
	}

	// Stores: PostgreSQL when configured, memory otherwise.
	var (
		sectorStore  sector.Store
		airlineStore airline.Store
		bookingStore bookingstore.Store
		userStore    user.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		if err := storage.Migrate(context.Background(), db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		sectorStore = sector.NewPostgres(db)
		airlineStore = airline.NewPostgres(db)
		bookingStore = bookingstore.NewPostgres(db)
		userStore = user.NewPostgres(db)
		log.Info("stores backed by postgres")
	} else {
		sectorStore = sector.NewInMemory()
		airlineStore = airline.NewInMemory()
		bookingStore = bookingstore.NewInMemory()
		userStore = user.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	backend := soap.NewClient(cfg.BackendURL, cfg.BackendTimeout, log, soap.WithMetrics(m))

	svc, err := service.New(
		backend,
		cacheStore,
		sector.NewInvalidating(sectorStore, cacheStore),
		airlineStore,
		bookingStore,
		log,
		service.WithMetrics(m),
		service.WithTTLs(cfg.SectorCacheTTL, cfg.ReportCacheTTL),
	)
	if err != nil {
		log.Error("failed to build gateway service", "error", err)
		os.Exit(1)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, "airlines-api", "airlines-api")
	userSvc, err := user.NewService(userStore, tokens, log)
	if err != nil {
		log.Error("failed to build user service", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())
	userhandler.New(userSvc, log).Register(router)
	bookinghandler.New(svc, log, jwttoken.NewJWTServiceAdapter(tokens)).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting airlines-api", "addr", cfg.Addr, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
