package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// SequenceModel evaluates a pretrained stacked LSTM + dense network
// exported offline as a JSON weights artifact. The network consumes a
// fixed-size window of scaled values and emits one scaled prediction.
type SequenceModel struct {
	lookBack int
	layers   []layer
}

type layer struct {
	Type            string      `json:"type"` // "lstm" or "dense"
	Units           int         `json:"units"`
	ReturnSequences bool        `json:"return_sequences"`
	Kernel          [][]float64 `json:"kernel"`
	Recurrent       [][]float64 `json:"recurrent,omitempty"`
	Bias            []float64   `json:"bias"`
}

type modelArtifact struct {
	LookBack int     `json:"look_back"`
	Layers   []layer `json:"layers"`
}

// LoadModel reads a sequence model artifact from disk and validates the
// layer shapes.
func LoadModel(path string) (*SequenceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if artifact.LookBack <= 0 {
		return nil, fmt.Errorf("model artifact has invalid look_back %d", artifact.LookBack)
	}

	if len(artifact.Layers) == 0 {
		return nil, fmt.Errorf("model artifact has no layers")
	}

	inputDim := 1
	for i, l := range artifact.Layers {
		switch l.Type {
		case "lstm":
			if err := validateLSTM(l, inputDim); err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
		case "dense":
			if err := validateDense(l, inputDim); err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("layer %d: unsupported type %q", i, l.Type)
		}
		inputDim = l.Units
	}

	last := artifact.Layers[len(artifact.Layers)-1]
	if last.Type != "dense" || last.Units != 1 {
		return nil, fmt.Errorf("model artifact must end in a single-unit dense layer")
	}

	return &SequenceModel{lookBack: artifact.LookBack, layers: artifact.Layers}, nil
}

func validateLSTM(l layer, inputDim int) error {
	if l.Units <= 0 {
		return fmt.Errorf("invalid unit count %d", l.Units)
	}
	if len(l.Kernel) != inputDim {
		return fmt.Errorf("kernel expects %d input rows, got %d", inputDim, len(l.Kernel))
	}
	for _, row := range l.Kernel {
		if len(row) != 4*l.Units {
			return fmt.Errorf("kernel rows must have %d columns", 4*l.Units)
		}
	}
	if len(l.Recurrent) != l.Units {
		return fmt.Errorf("recurrent kernel expects %d rows, got %d", l.Units, len(l.Recurrent))
	}
	for _, row := range l.Recurrent {
		if len(row) != 4*l.Units {
			return fmt.Errorf("recurrent rows must have %d columns", 4*l.Units)
		}
	}
	if len(l.Bias) != 4*l.Units {
		return fmt.Errorf("bias must have %d entries, got %d", 4*l.Units, len(l.Bias))
	}
	return nil
}

func validateDense(l layer, inputDim int) error {
	if l.Units <= 0 {
		return fmt.Errorf("invalid unit count %d", l.Units)
	}
	if len(l.Kernel) != inputDim {
		return fmt.Errorf("kernel expects %d input rows, got %d", inputDim, len(l.Kernel))
	}
	for _, row := range l.Kernel {
		if len(row) != l.Units {
			return fmt.Errorf("kernel rows must have %d columns", l.Units)
		}
	}
	if len(l.Bias) != l.Units {
		return fmt.Errorf("bias must have %d entries, got %d", l.Units, len(l.Bias))
	}
	return nil
}

// LookBack returns the context window size the network was trained with.
func (m *SequenceModel) LookBack() int {
	return m.lookBack
}

// Predict runs one forward pass over a scaled window and returns the next
// scaled value.
func (m *SequenceModel) Predict(window []float64) (float64, error) {
	if len(window) != m.lookBack {
		return 0, fmt.Errorf("window length %d does not match look_back %d", len(window), m.lookBack)
	}

	// The input sequence starts as lookBack timesteps of a 1-dim feature.
	sequence := make([][]float64, len(window))
	for i, v := range window {
		sequence[i] = []float64{v}
	}

	for _, l := range m.layers {
		switch l.Type {
		case "lstm":
			sequence = lstmForward(l, sequence)
		case "dense":
			out := make([][]float64, len(sequence))
			for i, vec := range sequence {
				out[i] = denseForward(l, vec)
			}
			sequence = out
		}
	}

	final := sequence[len(sequence)-1]
	return final[0], nil
}

// lstmForward processes a sequence through one LSTM layer using the keras
// gate ordering (input, forget, cell, output). When return_sequences is
// unset only the final hidden state is emitted.
func lstmForward(l layer, sequence [][]float64) [][]float64 {
	units := l.Units
	hidden := make([]float64, units)
	cell := make([]float64, units)

	outputs := make([][]float64, 0, len(sequence))

	for _, x := range sequence {
		z := make([]float64, 4*units)
		copy(z, l.Bias)

		for i, xv := range x {
			for j := range z {
				z[j] += xv * l.Kernel[i][j]
			}
		}

		for i, hv := range hidden {
			for j := range z {
				z[j] += hv * l.Recurrent[i][j]
			}
		}

		next := make([]float64, units)
		for u := 0; u < units; u++ {
			input := sigmoid(z[u])
			forget := sigmoid(z[units+u])
			candidate := math.Tanh(z[2*units+u])
			output := sigmoid(z[3*units+u])

			cell[u] = forget*cell[u] + input*candidate
			next[u] = output * math.Tanh(cell[u])
		}
		hidden = next

		if l.ReturnSequences {
			state := make([]float64, units)
			copy(state, hidden)
			outputs = append(outputs, state)
		}
	}

	if l.ReturnSequences {
		return outputs
	}
	return [][]float64{hidden}
}

// denseForward applies a linear dense layer to one vector.
func denseForward(l layer, x []float64) []float64 {
	out := make([]float64, l.Units)
	copy(out, l.Bias)
	for i, xv := range x {
		for j := range out {
			out[j] += xv * l.Kernel[i][j]
		}
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
