package services

import (
	"context"
	"errors"
	"testing"

	"co2-platform/internal/models"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// Shared across service tests; promauto registers globally, so the
// collector must be created once per test binary.
var testMetrics = metrics.NewCollector("services_test")

var testLogger = logging.NewStructuredLogger("services-test", "test", logging.FatalLevel)

// fakeCacheRepo is an in-memory CacheRepository with injectable failures.
type fakeCacheRepo struct {
	forecasts    map[int]*models.ForecastResult
	consequences map[int][]models.ConsequenceRecord

	readErr  error
	writeErr error

	forecastUpserts    int
	consequenceUpserts int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{
		forecasts:    make(map[int]*models.ForecastResult),
		consequences: make(map[int][]models.ConsequenceRecord),
	}
}

func (r *fakeCacheRepo) GetForecast(ctx context.Context, months int) (*models.ForecastResult, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.forecasts[months], nil
}

func (r *fakeCacheRepo) UpsertForecast(ctx context.Context, months int, result *models.ForecastResult) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.forecastUpserts++
	r.forecasts[months] = result
	return nil
}

func (r *fakeCacheRepo) GetConsequences(ctx context.Context, months int) ([]models.ConsequenceRecord, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.consequences[months], nil
}

func (r *fakeCacheRepo) UpsertConsequences(ctx context.Context, months int, records []models.ConsequenceRecord) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.consequenceUpserts++
	r.consequences[months] = records
	return nil
}

func (r *fakeCacheRepo) HealthCheck(ctx context.Context) error {
	return nil
}

// fakeEngine counts invocations and can be forced to fail.
type fakeEngine struct {
	calls int
	err   error
}

func (e *fakeEngine) Forecast(ctx context.Context, months int) (*models.ForecastResult, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return &models.ForecastResult{
		Dates:        []string{"2025-01-01"},
		Predictions:  []float64{425.5},
		Last16Dates:  []string{"2024-12-01"},
		Last16Values: []float64{424.0},
	}, nil
}

// TestForecastService_GetForecast tests the cache-or-compute flow
func TestForecastService_GetForecast(t *testing.T) {
	ctx := context.Background()

	t.Run("first request computes, second is served from cache", func(t *testing.T) {
		repo := newFakeCacheRepo()
		engine := &fakeEngine{}
		svc := NewForecastService(engine, repo, testLogger, testMetrics)

		first, err := svc.GetForecast(ctx, 12)
		if err != nil {
			t.Fatalf("GetForecast() error = %v", err)
		}
		if engine.calls != 1 {
			t.Errorf("engine calls = %d, want 1", engine.calls)
		}
		if repo.forecastUpserts != 1 {
			t.Errorf("forecast upserts = %d, want 1", repo.forecastUpserts)
		}

		// Break the engine; the cached entry must carry the second call.
		engine.err = errors.New("engine offline")

		second, err := svc.GetForecast(ctx, 12)
		if err != nil {
			t.Fatalf("GetForecast() second call error = %v", err)
		}
		if engine.calls != 1 {
			t.Errorf("engine calls after cached read = %d, want 1", engine.calls)
		}
		if second.Predictions[0] != first.Predictions[0] {
			t.Errorf("cached prediction = %v, want %v", second.Predictions[0], first.Predictions[0])
		}
	})

	t.Run("distinct horizons are cached independently", func(t *testing.T) {
		repo := newFakeCacheRepo()
		engine := &fakeEngine{}
		svc := NewForecastService(engine, repo, testLogger, testMetrics)

		if _, err := svc.GetForecast(ctx, 12); err != nil {
			t.Fatalf("GetForecast(12) error = %v", err)
		}
		if _, err := svc.GetForecast(ctx, 24); err != nil {
			t.Fatalf("GetForecast(24) error = %v", err)
		}

		if engine.calls != 2 {
			t.Errorf("engine calls = %d, want 2", engine.calls)
		}
	})

	t.Run("engine failure propagates", func(t *testing.T) {
		repo := newFakeCacheRepo()
		engine := &fakeEngine{err: errors.New("dataset unreadable")}
		svc := NewForecastService(engine, repo, testLogger, testMetrics)

		if _, err := svc.GetForecast(ctx, 12); err == nil {
			t.Error("GetForecast() should propagate engine errors")
		}
		if repo.forecastUpserts != 0 {
			t.Errorf("forecast upserts = %d, want 0", repo.forecastUpserts)
		}
	})

	t.Run("cache read failure degrades to computation", func(t *testing.T) {
		repo := newFakeCacheRepo()
		repo.readErr = errors.New("connection refused")
		engine := &fakeEngine{}
		svc := NewForecastService(engine, repo, testLogger, testMetrics)

		result, err := svc.GetForecast(ctx, 12)
		if err != nil {
			t.Fatalf("GetForecast() error = %v", err)
		}
		if result == nil {
			t.Fatal("GetForecast() returned nil result")
		}
		if engine.calls != 1 {
			t.Errorf("engine calls = %d, want 1", engine.calls)
		}
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		repo := newFakeCacheRepo()
		repo.writeErr = errors.New("disk full")
		engine := &fakeEngine{}
		svc := NewForecastService(engine, repo, testLogger, testMetrics)

		result, err := svc.GetForecast(ctx, 12)
		if err != nil {
			t.Fatalf("GetForecast() error = %v", err)
		}
		if result == nil {
			t.Fatal("GetForecast() returned nil result")
		}
	})
}
