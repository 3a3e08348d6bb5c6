package forecast

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// TestLoadScaler tests scaler artifact parsing and validation
func TestLoadScaler(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid univariate scaler",
			content: `{"data_min": [313.04], "data_max": [426.91]}`,
			wantErr: false,
		},
		{
			name:    "multivariate scaler rejected",
			content: `{"data_min": [1.0, 2.0], "data_max": [3.0, 4.0]}`,
			wantErr: true,
		},
		{
			name:    "degenerate range rejected",
			content: `{"data_min": [400.0], "data_max": [400.0]}`,
			wantErr: true,
		},
		{
			name:    "malformed JSON rejected",
			content: `{"data_min": [313.04`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "scaler.json", tt.content)

			_, err := LoadScaler(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadScaler() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadScaler(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Error("LoadScaler() should fail for a missing file")
		}
	})
}

// TestMinMaxScaler_RoundTrip tests that Transform and InverseTransform
// are inverses over the fitted range
func TestMinMaxScaler_RoundTrip(t *testing.T) {
	path := writeTempFile(t, "scaler.json", `{"data_min": [300.0], "data_max": [400.0]}`)

	scaler, err := LoadScaler(path)
	if err != nil {
		t.Fatalf("LoadScaler() error = %v", err)
	}

	values := []float64{300.0, 325.5, 350.0, 400.0, 412.5}
	scaled := scaler.Transform(values)

	if scaled[0] != 0.0 {
		t.Errorf("Transform(min) = %v, want 0", scaled[0])
	}
	if scaled[3] != 1.0 {
		t.Errorf("Transform(max) = %v, want 1", scaled[3])
	}
	if scaled[4] <= 1.0 {
		t.Errorf("Transform above fitted max = %v, want > 1", scaled[4])
	}

	restored := scaler.InverseTransform(scaled)
	for i := range values {
		if math.Abs(restored[i]-values[i]) > 1e-9 {
			t.Errorf("round trip[%d] = %v, want %v", i, restored[i], values[i])
		}
	}
}
