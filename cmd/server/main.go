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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"peselgate/internal/platform/config"
	"peselgate/internal/platform/httpserver"
	"peselgate/internal/platform/logger"
	"peselgate/internal/platform/metrics"
	platformredis "peselgate/internal/platform/redis"
	"peselgate/internal/platform/token"
	httptransport "peselgate/internal/transport/http"
	"peselgate/internal/verify"
	"peselgate/internal/verify/store"
	"peselgate/pkg/platform/audit/publisher"
	auditkafka "peselgate/pkg/platform/audit/sink/kafka"
	auditmemory "peselgate/pkg/platform/audit/store/memory"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	resultStore, cleanup, err := buildResultStore(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	auditPublisher, err := buildAuditPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer auditPublisher.Close()

	service := verify.New(resultStore, verify.NewHasher([]byte(cfg.SubjectHashKey)),
		verify.WithLogger(log),
		verify.WithMetrics(m),
		verify.WithAuditPublisher(auditPublisher),
	)

	validator := token.NewValidator(cfg.JWTSigningKey, cfg.AdminTokenHash)
	router := httptransport.NewRouter(registry,
		httptransport.NewVerifyHandler(service, log),
		httptransport.NewAdminHandler(auditPublisher, validator, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting peselgate", "addr", cfg.Addr)
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

	return g.Wait()
}

// buildResultStore selects the cache backend: Redis when configured, then
// PostgreSQL, falling back to the in-process store.
func buildResultStore(cfg config.Config, log *slog.Logger) (verify.Store, func(), error) {
	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis result store")
		return store.NewRedisStore(client.Client, cfg.ResultTTL), func() { _ = client.Close() }, nil
	}

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		pg := store.NewPostgresStore(db, cfg.ResultTTL)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("using postgres result store")
		return pg, func() { _ = db.Close() }, nil
	}

	log.Info("using in-memory result store")
	return store.NewMemoryStore(cfg.ResultTTL), func() {}, nil
}

func buildAuditPublisher(cfg config.Config, log *slog.Logger) (*publisher.Publisher, error) {
	opts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithAsyncBuffer(256),
	}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := auditkafka.New(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return nil, err
		}
		log.Info("audit events published to kafka", "topic", cfg.AuditTopic)
		opts = append(opts, publisher.WithSink(sink))
	}
	return publisher.NewPublisher(auditmemory.NewInMemoryStore(), opts...), nil
}
