package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Debbarh/qr-card-connect-hub/internal/audit"
	"github.com/Debbarh/qr-card-connect-hub/internal/contact"
	"github.com/Debbarh/qr-card-connect-hub/internal/platform/config"
	"github.com/Debbarh/qr-card-connect-hub/internal/platform/httpserver"
	"github.com/Debbarh/qr-card-connect-hub/internal/platform/logger"
	"github.com/Debbarh/qr-card-connect-hub/internal/platform/middleware"
	platformredis "github.com/Debbarh/qr-card-connect-hub/internal/platform/redis"
	"github.com/Debbarh/qr-card-connect-hub/internal/profile/handler"
	"github.com/Debbarh/qr-card-connect-hub/internal/profile/metrics"
	"github.com/Debbarh/qr-card-connect-hub/internal/profile/service"
	"github.com/Debbarh/qr-card-connect-hub/internal/profile/store"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: postgres when configured, in-memory otherwise.
	var profileStore service.ProfileStore
	if cfg.PostgresURL != "" {
		db, err := store.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		profileStore = pg
		log.Info("using postgres profile store")
	} else {
		profileStore = store.NewInMemory()
		log.Info("using in-memory profile store")
	}

	// Audit: kafka when brokers are configured, in-memory otherwise.
	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("failed to connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit events go to kafka", "topic", cfg.KafkaTopic)
	} else {
		sink = audit.NewInMemoryStore()
	}
	publisher := audit.NewPublisher(sink,
		audit.WithLogger(log),
		audit.WithAsyncBuffer(256),
	)
	defer publisher.Close()

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithAuditPublisher(publisher),
	}

	// Pattern cache is optional.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		serviceOpts = append(serviceOpts,
			service.WithPatternCache(platformredis.NewPatternCache(redisClient, cfg.Redis.PatternTTL)))
		log.Info("pattern cache enabled")
	}

	profileSvc := service.New(profileStore, serviceOpts...)

	contactSvc := contact.NewService(contact.NewInMemoryStore(),
		contact.WithLogger(log),
		contact.WithAuditPublisher(publisher),
	)
	if cfg.SeedContacts {
		if err := contact.Seed(ctx, contactSvc); err != nil {
			log.Error("failed to seed contacts", "error", err)
			os.Exit(1)
		}
		log.Info("contact directory seeded")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.AccessLog(log))

	handler.New(profileSvc, log).Register(router)
	contact.NewHandler(contactSvc, log).Register(router)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting card server", "addr", cfg.Addr)
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

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
