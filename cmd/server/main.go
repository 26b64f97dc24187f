// Server entrypoint: wires config, storage, cache, broker, and the HTTP
// surface, then runs until interrupted. Business logic lives under internal/.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	apphandler "mortgageportal/internal/application/handler"
	"mortgageportal/internal/application/service"
	"mortgageportal/internal/application/store"
	"mortgageportal/internal/events"
	"mortgageportal/internal/jwttoken"
	"mortgageportal/internal/legacy"
	"mortgageportal/internal/platform/config"
	"mortgageportal/internal/platform/httpserver"
	"mortgageportal/internal/platform/logger"
	"mortgageportal/internal/platform/metrics"
	"mortgageportal/internal/platform/middleware"
	"mortgageportal/internal/platform/postgres"
	"mortgageportal/internal/platform/redis"
	"mortgageportal/internal/status"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPub, err := events.NewKafkaPublisher(ctx, cfg.Kafka, log)
		if err != nil {
			return err
		}
		defer kafkaPub.Close()
		publisher = kafkaPub
	}

	appStore := store.NewPostgresStore(db)
	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithReader(appStore),
		service.WithLegacy(legacy.NewStore(db)),
		service.WithStatusCache(status.NewCache(redisClient, cfg.Redis.StatusTTL, log)),
		service.WithSaveTimeout(cfg.Server.SaveTimeout),
	}
	if publisher != nil {
		svcOpts = append(svcOpts, service.WithPublisher(publisher))
	}
	svc := service.New(appStore, store.NewSQLTxRunner(db), svcOpts...)

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "mortgageportal", "mortgageportal-web")
	appHandler := apphandler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.ClientMetadata)
	router.Use(middleware.LatencyMiddleware(m))
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/healthz", healthz(db, redisClient))
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/applications", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwttoken.NewMiddlewareAdapter(jwtService), log))
		r.Mount("/", appHandler.Routes())
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// healthz reports dependency health; Redis is optional and only checked when
// configured.
func healthz(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, `{"status":"unhealthy","component":"postgres"}`, http.StatusServiceUnavailable)
			return
		}
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, `{"status":"unhealthy","component":"redis"}`, http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}
}
