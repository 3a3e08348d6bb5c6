package forecast

import (
	"context"
	"fmt"
	"time"

	"co2-platform/internal/config"
	"co2-platform/internal/models"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// Engine produces CO₂ projections via autoregressive rollout of the
// pretrained sequence model. It is constructed once at startup; artifact
// loading failure is a fatal initialization error, there is no per-request
// recovery.
type Engine struct {
	model       *SequenceModel
	scaler      *MinMaxScaler
	datasetPath string
	logger      *logging.StructuredLogger
	metrics     *metrics.Collector
}

// NewEngine loads the model and scaler artifacts and verifies the dataset
// is readable.
func NewEngine(cfg config.ForecastConfig, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) (*Engine, error) {
	model, err := LoadModel(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sequence model: %w", err)
	}

	scaler, err := LoadScaler(cfg.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scaler: %w", err)
	}

	// The dataset is re-read per forecast, but a broken file must fail the
	// process at startup, not on the first request.
	series, err := LoadSeries(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	if len(series) < model.LookBack() {
		return nil, fmt.Errorf("dataset has %d observations, need at least %d", len(series), model.LookBack())
	}

	logger.Info(context.Background(), "[ENGINE_INIT] Forecast engine initialized", logging.Fields{
		"model_path":   cfg.ModelPath,
		"scaler_path":  cfg.ScalerPath,
		"dataset_path": cfg.DatasetPath,
		"look_back":    model.LookBack(),
		"observations": len(series),
	})

	return &Engine{
		model:       model,
		scaler:      scaler,
		datasetPath: cfg.DatasetPath,
		logger:      logger,
		metrics:     metricsCollector,
	}, nil
}

// Forecast runs months sequential single-step predictions, sliding the
// context window by one after each step. Rollout error compounds with the
// horizon; that is accepted behavior.
func (e *Engine) Forecast(ctx context.Context, months int) (*models.ForecastResult, error) {
	if months <= 0 {
		return nil, &models.ValidationError{
			Field:   "months",
			Value:   fmt.Sprintf("%d", months),
			Message: "months must be positive",
		}
	}

	timer := time.Now()
	defer func() {
		e.metrics.ForecastComputeDuration.Observe(time.Since(timer).Seconds())
	}()

	series, err := LoadSeries(e.datasetPath)
	if err != nil {
		return nil, err
	}

	lookBack := e.model.LookBack()
	if len(series) < lookBack {
		return nil, fmt.Errorf("dataset has %d observations, need at least %d", len(series), lookBack)
	}

	values := make([]float64, len(series))
	for i, obs := range series {
		values[i] = obs.Value
	}

	scaled := e.scaler.Transform(values)

	window := make([]float64, lookBack)
	copy(window, scaled[len(scaled)-lookBack:])

	scaledPreds := make([]float64, 0, months)
	for step := 0; step < months; step++ {
		next, err := e.model.Predict(window)
		if err != nil {
			return nil, fmt.Errorf("prediction step %d failed: %w", step, err)
		}

		scaledPreds = append(scaledPreds, next)
		window = append(window[1:], next)
		e.metrics.ForecastStepsTotal.Inc()
	}

	predictions := e.scaler.InverseTransform(scaledPreds)

	lastDate := series[len(series)-1].Date
	dates := make([]string, months)
	for i := range dates {
		dates[i] = lastDate.AddDate(0, i+1, 0).Format(models.DateFormat)
	}

	contextSize := models.ContextWindowSize
	if len(series) < contextSize {
		contextSize = len(series)
	}

	tail := series[len(series)-contextSize:]
	lastDates := make([]string, contextSize)
	lastValues := make([]float64, contextSize)
	for i, obs := range tail {
		lastDates[i] = obs.Date.Format(models.DateFormat)
		lastValues[i] = obs.Value
	}

	e.logger.Debug(ctx, "[ENGINE_FORECAST] Autoregressive rollout completed", logging.Fields{
		"months":     months,
		"first_date": dates[0],
		"last_date":  dates[len(dates)-1],
	})

	return &models.ForecastResult{
		Dates:        dates,
		Predictions:  predictions,
		Last16Dates:  lastDates,
		Last16Values: lastValues,
	}, nil
}
