package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"co2-platform/internal/models"
	"co2-platform/pkg/database"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// CacheRepository persists forecast results and consequence lists keyed by
// horizon (months). Entries are never expired or invalidated; an upsert
// for an existing key overwrites it (last write wins).
type CacheRepository interface {
	GetForecast(ctx context.Context, months int) (*models.ForecastResult, error)
	UpsertForecast(ctx context.Context, months int, result *models.ForecastResult) error

	GetConsequences(ctx context.Context, months int) ([]models.ConsequenceRecord, error)
	UpsertConsequences(ctx context.Context, months int, records []models.ConsequenceRecord) error

	HealthCheck(ctx context.Context) error
}

// cacheRepository implements CacheRepository
type cacheRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) CacheRepository {
	return &cacheRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

type forecastRow struct {
	Months      int    `db:"months"`
	Dates       string `db:"dates"`
	Predictions string `db:"predictions"`
	LastDates   string `db:"last_dates"`
	LastValues  string `db:"last_values"`
}

// GetForecast returns the cached forecast for a horizon, or (nil, nil) on
// a cache miss.
func (r *cacheRepository) GetForecast(ctx context.Context, months int) (*models.ForecastResult, error) {
	query := `
		SELECT months, dates, predictions, last_dates, last_values
		FROM forecast_cache
		WHERE months = $1
	`

	var row forecastRow
	err := r.db.GetContext(ctx, "get_forecast", &row, query, months)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get cached forecast: %w", err)
	}

	result := &models.ForecastResult{}
	if err := json.Unmarshal([]byte(row.Dates), &result.Dates); err != nil {
		return nil, fmt.Errorf("corrupt cached forecast dates for horizon %d: %w", months, err)
	}
	if err := json.Unmarshal([]byte(row.Predictions), &result.Predictions); err != nil {
		return nil, fmt.Errorf("corrupt cached forecast predictions for horizon %d: %w", months, err)
	}
	if err := json.Unmarshal([]byte(row.LastDates), &result.Last16Dates); err != nil {
		return nil, fmt.Errorf("corrupt cached forecast context dates for horizon %d: %w", months, err)
	}
	if err := json.Unmarshal([]byte(row.LastValues), &result.Last16Values); err != nil {
		return nil, fmt.Errorf("corrupt cached forecast context values for horizon %d: %w", months, err)
	}

	return result, nil
}

// UpsertForecast stores a forecast result for a horizon, overwriting any
// previous entry.
func (r *cacheRepository) UpsertForecast(ctx context.Context, months int, result *models.ForecastResult) error {
	dates, err := json.Marshal(result.Dates)
	if err != nil {
		return fmt.Errorf("failed to serialize forecast dates: %w", err)
	}
	predictions, err := json.Marshal(result.Predictions)
	if err != nil {
		return fmt.Errorf("failed to serialize forecast predictions: %w", err)
	}
	lastDates, err := json.Marshal(result.Last16Dates)
	if err != nil {
		return fmt.Errorf("failed to serialize forecast context dates: %w", err)
	}
	lastValues, err := json.Marshal(result.Last16Values)
	if err != nil {
		return fmt.Errorf("failed to serialize forecast context values: %w", err)
	}

	query := `
		INSERT INTO forecast_cache (months, dates, predictions, last_dates, last_values)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (months) DO UPDATE SET
			dates = EXCLUDED.dates,
			predictions = EXCLUDED.predictions,
			last_dates = EXCLUDED.last_dates,
			last_values = EXCLUDED.last_values,
			updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, "upsert_forecast", query,
		months,
		string(dates),
		string(predictions),
		string(lastDates),
		string(lastValues),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert forecast: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_UPSERT_FORECAST] Forecast cached", logging.Fields{
		"months": months,
	})

	return nil
}

// GetConsequences returns the cached consequence list for a horizon, or
// (nil, nil) on a cache miss.
func (r *cacheRepository) GetConsequences(ctx context.Context, months int) ([]models.ConsequenceRecord, error) {
	query := `
		SELECT payload
		FROM consequences
		WHERE months = $1
	`

	var payload string
	err := r.db.GetContext(ctx, "get_consequences", &payload, query, months)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get cached consequences: %w", err)
	}

	var records []models.ConsequenceRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("corrupt cached consequences for horizon %d: %w", months, err)
	}

	return records, nil
}

// UpsertConsequences stores a consequence list for a horizon, overwriting
// any previous entry.
func (r *cacheRepository) UpsertConsequences(ctx context.Context, months int, records []models.ConsequenceRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize consequences: %w", err)
	}

	query := `
		INSERT INTO consequences (months, payload)
		VALUES ($1, $2)
		ON CONFLICT (months) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, "upsert_consequences", query, months, string(payload))
	if err != nil {
		return fmt.Errorf("failed to upsert consequences: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_UPSERT_CONSEQUENCES] Consequences cached", logging.Fields{
		"months": months,
	})

	return nil
}

// HealthCheck performs a repository health check
func (r *cacheRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
