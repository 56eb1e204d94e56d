package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"FinVault/internal/domain/models"
	"FinVault/internal/domain/repository"
	"FinVault/internal/handler/api"
	mid "FinVault/internal/middleware"
	internalrepo "FinVault/internal/repository"
	"FinVault/internal/service/alphavantage"
	"FinVault/internal/service/exchangerate"
	"FinVault/internal/service/goldapi"
	"FinVault/internal/service/ratelimit"
	"FinVault/internal/usecase"
	"FinVault/pkg/cache"
	"FinVault/pkg/config"
	pkghttp "FinVault/pkg/http"
	pkgkafka "FinVault/pkg/kafka"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/metrics"
	"FinVault/pkg/server"
	pkgsqlite "FinVault/pkg/sqlite"
)

// FetchJob is everything a one-shot ingestion run needs.
type FetchJob struct {
	Run    *usecase.IngestRun
	Logger *applogger.Logger
}

// ImportJob is everything the bulk importer needs.
type ImportJob struct {
	Importer *usecase.Importer
	Catalog  *models.Catalog
	Logger   *applogger.Logger
}

// ProvideLogger creates the process logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideCatalog freezes the configured instruments.
func ProvideCatalog(cfg *config.Config) (*models.Catalog, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

// ProvideSQLiteClient opens the price database.
func ProvideSQLiteClient(cfg *config.Config) (*pkgsqlite.Client, func(), error) {
	client, err := pkgsqlite.NewClient(
		pkgsqlite.WithPath(cfg.Database.Path),
		pkgsqlite.WithBusyTimeout(cfg.Database.BusyTimeout),
		pkgsqlite.WithJournalMode(cfg.Database.JournalMode),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvidePriceStore creates the SQLite price store and checks it answers.
func ProvidePriceStore(client *pkgsqlite.Client, l *applogger.Logger) (repository.PriceStore, error) {
	store := internalrepo.NewSQLitePriceStore(client.DB())
	store.SetLogger(l)
	if err := pingStore(store); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideMetrics registers the pipeline collectors on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHTTPClient creates the outbound client shared by all providers.
func ProvideHTTPClient(cfg *config.Config) *pkghttp.Client {
	return pkghttp.NewClient(
		pkghttp.WithTimeout(cfg.Sources.Timeout),
		pkghttp.WithUserAgent("finvault/1.0"),
	)
}

// ProvideRateLimiter applies the provider quotas.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	lim := ratelimit.New()
	lim.Configure(alphavantage.Source, cfg.Sources.AlphaVantage.RatePerMinute, cfg.Sources.AlphaVantage.Burst)
	return lim
}

// ProvideCache creates the cache backend selected by cache.backend.
func ProvideCache(cfg *config.Config) (cache.Service, func(), error) {
	var svc cache.Service
	switch cfg.Cache.Backend {
	case "redis", "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Addr),
			cache.WithRedisPassword(cfg.Cache.Password),
			cache.WithRedisDB(cfg.Cache.DB),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		svc = rc
		if cfg.Cache.Backend == "layered" {
			svc = cache.NewLayeredCache(rc, 10*time.Minute, cache.WithMemoryMaxSize(1000))
		}
	default:
		svc = cache.NewMemoryCache(cache.WithMemoryMaxSize(1000))
	}
	return svc, func() { _ = svc.Close() }, nil
}

// ProvideRunLock uses the cache backend for the run lock. With redis it
// spans processes; in memory it only guards this process.
func ProvideRunLock(svc cache.Service) repository.RunLock {
	return svc
}

// ProvideSources builds the provider clients behind caching and metrics.
func ProvideSources(
	cfg *config.Config,
	hc *pkghttp.Client,
	lim *ratelimit.Limiter,
	svc cache.Service,
	m repository.Metrics,
	l *applogger.Logger,
) *mid.InstrumentedSources {
	av := alphavantage.New(cfg.Sources.AlphaVantage.BaseURL, cfg.Sources.AlphaVantage.APIKey, hc, lim)
	return &mid.InstrumentedSources{
		Spot: goldapi.New(cfg.Sources.GoldAPI.BaseURL, hc),
		DailyClose: mid.NewCachedDailyClose(av, svc,
			mid.WithCacheTTL(cfg.Sources.AlphaVantage.CacheTTL),
			mid.WithTargetDate(func(now time.Time) time.Time { return usecase.TargetDate(now, cfg.Run.TargetDate) }),
			mid.WithUpstreamTimeout(cfg.Sources.Timeout),
			mid.WithCacheLogger(l),
		),
		Rates:   exchangerate.New(cfg.Sources.ExchangeRate.BaseURL, cfg.Sources.ExchangeRate.APIKey, hc),
		Metrics: m,
	}
}

// ProvideEventPublisher ships run reports to Kafka when enabled and hooks
// the log collector onto the same producer.
func ProvideEventPublisher(cfg *config.Config, l *applogger.Logger) (repository.EventPublisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopEventPublisher{}, func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.WriteTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)

	if cfg.Log.Collector.Enabled {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.Interval,
			CountThreshold: cfg.Log.Collector.CountThreshold,
			Topic:          cfg.Log.Collector.Topic,
			Publisher:      pub,
		})
	}

	return pub, func() {
		// flush aggregated logs before the producer goes away
		l.RemoveCollector()
		_ = pub.Close()
	}, nil
}

// ProvideRetentionPruner creates the retention pass.
func ProvideRetentionPruner(store repository.PriceStore, catalog *models.Catalog, cfg *config.Config, m repository.Metrics, l *applogger.Logger) *usecase.RetentionPruner {
	return usecase.NewRetentionPruner(store, catalog, cfg.Retention.Years, m, l)
}

// ProvideIngestRun assembles the orchestrator.
func ProvideIngestRun(
	cfg *config.Config,
	catalog *models.Catalog,
	store repository.PriceStore,
	sources *mid.InstrumentedSources,
	pruner *usecase.RetentionPruner,
	m repository.Metrics,
	events repository.EventPublisher,
	lock repository.RunLock,
	l *applogger.Logger,
) *usecase.IngestRun {
	return usecase.NewIngestRun(catalog, store, sources, sources, sources, pruner, m, l,
		usecase.IngestConfig{
			TargetDate:   cfg.Run.TargetDate,
			AbortScope:   cfg.Run.AbortScope,
			Concurrency:  cfg.Run.Concurrency,
			QuoteBase:    cfg.Sources.ExchangeRate.QuoteBase,
			Base:         cfg.Sources.ExchangeRate.Base,
			FetchTimeout: cfg.Sources.Timeout,
			PruneTimeout: cfg.Retention.Timeout,
			LockTTL:      cfg.Run.LockTTL,
		},
		usecase.WithEventPublisher(events),
		usecase.WithRunLock(lock),
	)
}

func ProvideHistoryUseCase(catalog *models.Catalog, store repository.PriceStore) *usecase.HistoryUseCase {
	return usecase.NewHistoryUseCase(catalog, store)
}

func ProvideImporter(catalog *models.Catalog, store repository.PriceStore, l *applogger.Logger) *usecase.Importer {
	return usecase.NewImporter(catalog, store, l)
}

// ProvideHTTPServer creates the read API server.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, history *usecase.HistoryUseCase) *pkghttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return pkghttp.NewServer(l,
		[]pkghttp.Handler{api.NewPricesEchoHandler(l, history)},
		pkghttp.WithPort(cfg.Server.Port),
		pkghttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		pkghttp.WithMetricsPath(metricsPath),
	)
}

// ProvideApp creates the long-running application.
func ProvideApp(cfg *config.Config, l *applogger.Logger, run *usecase.IngestRun, srv *pkghttp.Server) (*server.App, error) {
	return server.New(cfg, l, run, srv)
}

func ProvideFetchJob(run *usecase.IngestRun, l *applogger.Logger) *FetchJob {
	return &FetchJob{Run: run, Logger: l}
}

func ProvideImportJob(im *usecase.Importer, catalog *models.Catalog, l *applogger.Logger) *ImportJob {
	return &ImportJob{Importer: im, Catalog: catalog, Logger: l}
}

// pingStore fails fast when the database cannot be reached at startup.
func pingStore(store repository.PriceStore) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Health(ctx); err != nil {
		return fmt.Errorf("price store: %w", err)
	}
	return nil
}
