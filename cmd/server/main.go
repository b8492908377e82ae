package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"fordeling/internal/journal"
	journalhandler "fordeling/internal/journal/handler"
	journalstore "fordeling/internal/journal/store/postgres"
	"fordeling/internal/norg"
	"fordeling/internal/platform/config"
	"fordeling/internal/platform/httpserver"
	"fordeling/internal/platform/kafka/consumer"
	"fordeling/internal/platform/logger"
	platformmetrics "fordeling/internal/platform/metrics"
	"fordeling/internal/platform/postgres"
	platformredis "fordeling/internal/platform/redis"
	"fordeling/internal/platform/tracing"
	"fordeling/internal/routing"
	"fordeling/internal/routing/handler"
	"fordeling/internal/routing/metrics"
	"fordeling/internal/routing/units"
	"fordeling/pkg/platform/circuit"
)

// main wires dependencies and keeps the process lifecycle small. Routing
// logic lives in internal/routing.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fordeling stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	var db *sql.DB
	if cfg.Database.URL != "" {
		if db, err = postgres.Open(ctx, cfg.Database); err != nil {
			return err
		}
		defer db.Close()
	}

	registry, err := loadRegistry(ctx, cfg.Units, db)
	if err != nil {
		return fmt.Errorf("load unit registry: %w", err)
	}
	log.Info("unit registry loaded", "source", cfg.Units.Source, "units", registry.Len())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	routingMetrics := metrics.New(reg)

	checks := []handler.Check{}
	if db != nil {
		checks = append(checks, handler.Check{Name: "postgres", Ping: db.PingContext})
	}

	var lookup routing.UnitLookup
	if cfg.Norg.Enabled() {
		cache, redisClient, err := buildCache(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		if redisClient != nil {
			defer redisClient.Close()
			checks = append(checks, handler.Check{Name: "redis", Ping: redisClient.Health})
		}
		client := norg.NewHTTPClient(cfg.Norg.URL, cfg.Norg.Timeout,
			norg.WithHeader("Nav-Consumer-Id", cfg.Norg.ConsumerID),
		)
		lookup = norg.NewLookup(client, registry,
			norg.WithCache(cache, cfg.Norg.CacheTTL),
			norg.WithBreaker(circuit.New("norg")),
			norg.WithLookupLogger(log),
			norg.WithLookupMetrics(routingMetrics),
		)
	} else {
		log.Warn("NORG_URL not set, routing uses the static table only")
	}

	router, err := routing.New(registry, lookup,
		routing.WithLogger(log),
		routing.WithMetrics(routingMetrics),
	)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled() {
		c, err := newConsumer(cfg.Kafka, router, db, log)
		if err != nil {
			return err
		}
		defer c.Close()
		checks = append(checks, handler.Check{Name: "kafka", Ping: c.Health})
		g.Go(func() error { return c.Run(gctx) })
	}

	registrars := []httpserver.Registrar{
		handler.New(router, registry, log),
		handler.NewHealth(checks...),
	}
	if db != nil {
		registrars = append(registrars, journalhandler.New(journalstore.New(db), log))
	}
	mux := httpserver.NewRouter(platformmetrics.NewHTTP(reg), reg, registrars...)
	srv := httpserver.New(cfg.Addr, mux)

	g.Go(func() error {
		log.Info("starting fordeling", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
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

func loadRegistry(ctx context.Context, cfg config.UnitsConfig, db *sql.DB) (*units.Registry, error) {
	switch cfg.Source {
	case config.UnitsSourcePostgres:
		return units.Load(ctx, units.NewPostgresSource(db))
	case config.UnitsSourceFile:
		src, err := units.YAMLFileSource(cfg.File)
		if err != nil {
			return nil, err
		}
		return units.Load(ctx, src)
	default:
		return units.Load(ctx, units.EmbeddedSource())
	}
}

func buildCache(ctx context.Context, cfg config.RedisConfig) (norg.Cache, *platformredis.Client, error) {
	client, err := platformredis.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return norg.NewMemoryCache(), nil, nil
	}
	return norg.NewRedisCache(client.Client), client, nil
}

func newConsumer(cfg config.KafkaConfig, router *routing.Router, db *sql.DB, log *slog.Logger) (*consumer.Consumer, error) {
	// No person register is wired: events carry no residency or relation, so
	// they classify as UNKNOWN residency and take the foreign defaults.
	log.Warn("kafka events are routed without person register data, residency is unresolved",
		"topic", cfg.Topic,
	)
	var sink journal.DecisionSink = journal.NewLogSink(log)
	if db != nil {
		sink = journal.MultiSink{journalstore.New(db), sink}
	}
	h := journal.NewHandler(router,
		journal.EventPersonResolver{},
		journal.UnknownCaseStatus{},
		journal.SedTypeBenefitResolver{},
		sink,
		journal.WithHandlerLogger(log),
	)
	return consumer.New(consumer.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		Group:   cfg.Group,
	}, h, consumer.WithLogger(log))
}
