package forecast

import (
	"encoding/json"
	"fmt"
	"os"
)

// MinMaxScaler mirrors a min-max scaler fitted offline alongside the
// sequence model. The artifact stores per-feature minima and maxima; the
// CO₂ series is univariate so exactly one feature is expected.
type MinMaxScaler struct {
	min float64
	max float64
}

type scalerArtifact struct {
	DataMin []float64 `json:"data_min"`
	DataMax []float64 `json:"data_max"`
}

// LoadScaler reads a fitted scaler artifact from disk.
func LoadScaler(path string) (*MinMaxScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler artifact: %w", err)
	}

	var artifact scalerArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse scaler artifact: %w", err)
	}

	if len(artifact.DataMin) != 1 || len(artifact.DataMax) != 1 {
		return nil, fmt.Errorf("scaler artifact must be univariate, got %d/%d features",
			len(artifact.DataMin), len(artifact.DataMax))
	}

	if artifact.DataMax[0] <= artifact.DataMin[0] {
		return nil, fmt.Errorf("scaler artifact has degenerate range [%f, %f]",
			artifact.DataMin[0], artifact.DataMax[0])
	}

	return &MinMaxScaler{min: artifact.DataMin[0], max: artifact.DataMax[0]}, nil
}

// Transform scales values into the model's [0,1] training range.
func (s *MinMaxScaler) Transform(values []float64) []float64 {
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = (v - s.min) / (s.max - s.min)
	}
	return scaled
}

// InverseTransform maps scaled predictions back to physical units (ppm).
func (s *MinMaxScaler) InverseTransform(values []float64) []float64 {
	restored := make([]float64, len(values))
	for i, v := range values {
		restored[i] = v*(s.max-s.min) + s.min
	}
	return restored
}
