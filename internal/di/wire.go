//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"FinVault/pkg/config"
	"FinVault/pkg/server"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideCatalog,
	ProvideSQLiteClient,
	ProvidePriceStore,
	ProvideMetrics,
)

var pipelineSet = wire.NewSet(
	infraSet,
	ProvideHTTPClient,
	ProvideRateLimiter,
	ProvideCache,
	ProvideRunLock,
	ProvideSources,
	ProvideEventPublisher,
	ProvideRetentionPruner,
	ProvideIngestRun,
)

// InitializeApp wires the scheduler and read API.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		pipelineSet,
		ProvideHistoryUseCase,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeFetch wires a single ingestion run.
func InitializeFetch(cfg *config.Config) (*FetchJob, func(), error) {
	wire.Build(
		pipelineSet,
		ProvideFetchJob,
	)
	return nil, nil, nil
}

// InitializeImport wires the bulk importer.
func InitializeImport(cfg *config.Config) (*ImportJob, func(), error) {
	wire.Build(
		infraSet,
		ProvideImporter,
		ProvideImportJob,
	)
	return nil, nil, nil
}
