package services

import (
	"context"

	"co2-platform/internal/models"
	"co2-platform/internal/repository"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// Forecaster produces CO₂ projections for a positive horizon in months.
type Forecaster interface {
	Forecast(ctx context.Context, months int) (*models.ForecastResult, error)
}

// ForecastService serves forecasts through the persistent cache. The first
// request for a horizon computes and caches; later requests are served
// from storage without touching the engine. Concurrent first-requests may
// compute redundantly and race on the upsert; last write wins.
type ForecastService struct {
	engine  Forecaster
	repo    repository.CacheRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewForecastService creates a new forecast service
func NewForecastService(engine Forecaster, repo repository.CacheRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ForecastService {
	return &ForecastService{
		engine:  engine,
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// GetForecast returns the forecast for a horizon, computing it on a cache
// miss. A cache read failure is treated as a miss; a cache write failure
// is logged but does not fail the request.
func (s *ForecastService) GetForecast(ctx context.Context, months int) (*models.ForecastResult, error) {
	cached, err := s.repo.GetForecast(ctx, months)
	if err != nil {
		s.logger.Error(ctx, "[FORECAST_CACHE_READ_ERROR] Falling back to computation", logging.Fields{
			"months": months,
		}, err)
	}

	if cached != nil {
		s.metrics.RecordCacheHit("forecast_cache")
		s.logger.Info(ctx, "[FORECAST_CACHE_HIT] Serving cached forecast", logging.Fields{
			"months": months,
		})
		return cached, nil
	}

	s.metrics.RecordCacheMiss("forecast_cache")

	result, err := s.engine.Forecast(ctx, months)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpsertForecast(ctx, months, result); err != nil {
		s.logger.Error(ctx, "[FORECAST_CACHE_WRITE_ERROR] Forecast computed but not cached", logging.Fields{
			"months": months,
		}, err)
	}

	return result, nil
}
