package services

import (
	"context"

	"co2-platform/internal/consequences"
	"co2-platform/internal/llm"
	"co2-platform/internal/models"
	"co2-platform/internal/repository"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// TextCompleter issues one prompt to a hosted generative model. Failures
// come back as error-description text, never as an error value.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) string
}

// ConsequenceService serves the narrative consequence list for a horizon.
// Consequences are decorative: this service never returns an error, it
// degrades to the fixed fallback list instead.
type ConsequenceService struct {
	completer TextCompleter
	repo      repository.CacheRepository
	logger    *logging.StructuredLogger
	metrics   *metrics.Collector
}

// NewConsequenceService creates a new consequence service
func NewConsequenceService(completer TextCompleter, repo repository.CacheRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ConsequenceService {
	return &ConsequenceService{
		completer: completer,
		repo:      repo,
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// GetConsequences returns exactly models.ConsequenceCount records for a
// horizon. Cache hits are reused; on a miss the generative model is
// prompted with the projected series and its output normalized. Only
// successful normalizations are cached, so a horizon served from fallback
// retries generation on its next request.
func (s *ConsequenceService) GetConsequences(ctx context.Context, months int, predictions []float64) []models.ConsequenceRecord {
	cached, err := s.repo.GetConsequences(ctx, months)
	if err != nil {
		s.logger.Error(ctx, "[CONSEQUENCE_CACHE_READ_ERROR] Falling back to generation", logging.Fields{
			"months": months,
		}, err)
	}

	if len(cached) > 0 {
		s.metrics.RecordCacheHit("consequences")
		s.logger.Info(ctx, "[CONSEQUENCE_CACHE_HIT] Serving cached consequences", logging.Fields{
			"months": months,
		})
		return cached
	}

	s.metrics.RecordCacheMiss("consequences")

	prompt := llm.BuildConsequencesPrompt(predictions, months)
	raw := s.completer.Complete(ctx, prompt)

	records, ok := consequences.Normalize(raw)
	if !ok {
		s.metrics.FallbackTotal.Inc()
		s.logger.Error(ctx, "[CONSEQUENCE_PARSE_ERROR] Serving static fallback", logging.Fields{
			"months":   months,
			"raw_text": raw,
		}, nil)
		return records
	}

	if err := s.repo.UpsertConsequences(ctx, months, records); err != nil {
		s.logger.Error(ctx, "[CONSEQUENCE_CACHE_WRITE_ERROR] Consequences generated but not cached", logging.Fields{
			"months": months,
		}, err)
	}

	return records
}
