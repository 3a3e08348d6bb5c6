package services

import (
	"math/rand"
	"sort"

	"co2-platform/internal/models"
)

// ActionService samples entries from the static climate-action catalog.
type ActionService struct {
	catalog map[string]models.ClimateAction
}

// NewActionService creates an action service over the built-in catalog.
func NewActionService() *ActionService {
	return &ActionService{catalog: models.ClimateActions}
}

// Sample returns n distinct catalog entries in random order. n is clamped
// to [1, catalog size]; sampling is without replacement and not required
// to be deterministic.
func (s *ActionService) Sample(n int) []models.ActionPair {
	if n < 1 {
		n = 1
	}
	if n > len(s.catalog) {
		n = len(s.catalog)
	}

	// Stable enumeration of the map before shuffling.
	keys := make([]string, 0, len(s.catalog))
	for key := range s.catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sampled := make([]models.ActionPair, 0, n)
	for _, idx := range rand.Perm(len(keys))[:n] {
		key := keys[idx]
		sampled = append(sampled, models.ActionPair{Key: key, Action: s.catalog[key]})
	}

	return sampled
}

// CatalogSize returns the number of catalog entries.
func (s *ActionService) CatalogSize() int {
	return len(s.catalog)
}
