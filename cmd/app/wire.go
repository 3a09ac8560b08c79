//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/agri-advisor/internal/bootstrap"
	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/disease"
	"github.com/yanqian/agri-advisor/internal/infra/config"
	httpiface "github.com/yanqian/agri-advisor/internal/interface/http"
	"github.com/yanqian/agri-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDurableStore,
		provideValkeyTier,
		provideHealth,
		provideAdvisoryStore,
		provideGenerator,
		provideAttemptRecorder,
		provideRunner,
		provideGenerationConfig,
		provideAdvisoryConfig,
		provideDiseaseConfig,
		provideClassifier,
		provideOpenWeatherClient,
		provideGeoResolver,
		provideWeatherService,
		provideMarketService,
		provideExtensionService,
		advisory.NewAggregator,
		advisory.NewService,
		disease.NewService,
		provideHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
