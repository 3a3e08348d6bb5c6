package models

// DateFormat is the wire format for all calendar dates (month starts).
const DateFormat = "2006-01-02"

// ContextWindowSize is the number of trailing historical observations
// returned alongside every forecast for charting context.
const ContextWindowSize = 16

// ForecastResult holds one autoregressive CO₂ projection. Dates and
// Predictions are parallel slices of equal length (the requested horizon);
// Last16Dates and Last16Values carry the trailing historical window.
type ForecastResult struct {
	Dates        []string  `json:"dates"`
	Predictions  []float64 `json:"predictions"`
	Last16Dates  []string  `json:"last_16_dates"`
	Last16Values []float64 `json:"last_16_values"`
}

// ForecastResponse is the wire shape of GET /api/1/forecast/{months}.
// The Consequences key is capitalized for compatibility with existing
// consumers.
type ForecastResponse struct {
	Data         *ForecastResult     `json:"data"`
	Consequences []ConsequenceRecord `json:"Consequences"`
}

// ValidationError represents a request validation error.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
