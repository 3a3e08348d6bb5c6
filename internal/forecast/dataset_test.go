package forecast

import (
	"testing"
	"time"
)

// TestLoadSeries tests dataset parsing including commentary lines and
// sentinel values
func TestLoadSeries(t *testing.T) {
	t.Run("valid dataset with comments and sentinels", func(t *testing.T) {
		content := `# Mauna Loa CO2 monthly means
# Units: ppm
year,month,decimal date,average,deseasonalized
2023,10,2023.79,418.82,419.56
2023,11,2023.87,420.46,419.68
2023,12,2023.96,-99.99,419.80
2024,1,2024.04,422.80,420.01
not-a-year,2,2024.12,423.00,420.10
2024,13,2024.20,423.10,420.20
`
		path := writeTempFile(t, "co2.csv", content)

		series, err := LoadSeries(path)
		if err != nil {
			t.Fatalf("LoadSeries() error = %v", err)
		}

		// Sentinel, bad year and bad month rows are skipped.
		if len(series) != 3 {
			t.Fatalf("LoadSeries() returned %d observations, want 3", len(series))
		}

		wantFirst := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
		if !series[0].Date.Equal(wantFirst) {
			t.Errorf("series[0].Date = %v, want %v", series[0].Date, wantFirst)
		}
		if series[0].Value != 418.82 {
			t.Errorf("series[0].Value = %v, want 418.82", series[0].Value)
		}

		wantLast := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !series[2].Date.Equal(wantLast) {
			t.Errorf("series[2].Date = %v, want %v", series[2].Date, wantLast)
		}
		if series[2].Value != 422.80 {
			t.Errorf("series[2].Value = %v, want 422.80", series[2].Value)
		}
	})

	t.Run("missing required columns", func(t *testing.T) {
		path := writeTempFile(t, "co2.csv", "year,month,mean\n2024,1,420.0\n")

		if _, err := LoadSeries(path); err == nil {
			t.Error("LoadSeries() should fail without an average column")
		}
	})

	t.Run("all rows filtered out", func(t *testing.T) {
		path := writeTempFile(t, "co2.csv", "year,month,average\n2024,1,-99.99\n")

		if _, err := LoadSeries(path); err == nil {
			t.Error("LoadSeries() should fail with no usable observations")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSeries("does/not/exist.csv"); err == nil {
			t.Error("LoadSeries() should fail for a missing file")
		}
	})
}
