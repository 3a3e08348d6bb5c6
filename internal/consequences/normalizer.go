// Package consequences turns untrusted generative-model output into
// exactly five validated climate consequence records.
//
// Normalization is a two-stage pipeline: sanitize-and-extract isolates a
// JSON array from whatever text came back (markdown fences, smart quotes,
// leading prose), then strict-parse-and-validate coerces each element into
// a ConsequenceRecord. Total parse failure yields a fixed fallback list
// that callers must never persist.
package consequences

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"co2-platform/internal/models"
)

var (
	fenceOpen  = regexp.MustCompile("^```[a-zA-Z]*")
	fenceClose = regexp.MustCompile("```$")
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double
	"”", `"`, // right double
	"‘", "'", // left single
	"’", "'", // right single
)

// Sanitize cleans raw generative output and isolates the JSON array slice.
// Returns false when nothing parseable remains after cleanup.
func Sanitize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	s = strings.ReplaceAll(s, "\uFEFF", "")
	s = quoteReplacer.Replace(s)

	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		return -1
	}, s)

	// Tolerate commentary around the array: slice from the first '[' to
	// the last ']' when both exist.
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start != -1 && end != -1 && end > start {
		s = s[start : end+1]
	}

	s = strings.TrimSpace(s)
	return s, s != ""
}

// Normalize converts raw generative output into exactly
// models.ConsequenceCount records. The boolean reports success: on parse
// failure it is false and the fixed fallback list is returned instead.
func Normalize(raw string) ([]models.ConsequenceRecord, bool) {
	cleaned, ok := Sanitize(raw)
	if !ok {
		return models.FallbackConsequences(), false
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return models.FallbackConsequences(), false
	}

	// A single object is coerced into a one-element list.
	items, ok := parsed.([]interface{})
	if !ok {
		items = []interface{}{parsed}
	}

	normalized := make([]models.ConsequenceRecord, 0, models.ConsequenceCount)
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		description, _ := entry["description"].(string)
		description = strings.TrimSpace(description)
		if description == "" {
			continue
		}

		normalized = append(normalized, models.ConsequenceRecord{
			Description: description,
			ImpactLevel: coerceImpact(entry["impact_level"]),
			Icon:        coerceIcon(entry["icon"]),
		})

		if len(normalized) == models.ConsequenceCount {
			break
		}
	}

	for len(normalized) < models.ConsequenceCount {
		normalized = append(normalized, models.FillerConsequence())
	}

	return normalized, true
}

// coerceImpact clamps the impact level to [1,5], defaulting on any
// coercion error.
func coerceImpact(value interface{}) int {
	impact := models.DefaultImpactLevel

	switch v := value.(type) {
	case float64:
		impact = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return models.DefaultImpactLevel
		}
		impact = parsed
	case nil:
		return models.DefaultImpactLevel
	default:
		return models.DefaultImpactLevel
	}

	if impact < 1 {
		impact = 1
	}
	if impact > 5 {
		impact = 5
	}
	return impact
}

// coerceIcon validates the icon against the fixed vocabulary.
func coerceIcon(value interface{}) string {
	icon, ok := value.(string)
	if !ok || !models.IsValidIcon(icon) {
		return models.DefaultIcon
	}
	return icon
}
