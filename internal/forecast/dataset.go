package forecast

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// missingValue is the sentinel used by the observatory dataset for months
// without a usable average.
const missingValue = -99.99

// Observation is one monthly mean CO₂ reading.
type Observation struct {
	Date  time.Time
	Value float64
}

// LoadSeries reads the monthly CO₂ dataset. The file is CSV with year,
// month and average columns; lines starting with '#' are commentary.
// Sentinel averages are skipped.
func LoadSeries(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	yearCol, monthCol, avgCol := -1, -1, -1
	for i, name := range records[0] {
		switch name {
		case "year":
			yearCol = i
		case "month":
			monthCol = i
		case "average":
			avgCol = i
		}
	}

	if yearCol < 0 || monthCol < 0 || avgCol < 0 {
		return nil, fmt.Errorf("dataset %s missing year/month/average columns", path)
	}

	observations := make([]Observation, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) <= yearCol || len(row) <= monthCol || len(row) <= avgCol {
			continue
		}

		year, err := strconv.Atoi(row[yearCol])
		if err != nil {
			continue
		}

		month, err := strconv.Atoi(row[monthCol])
		if err != nil || month < 1 || month > 12 {
			continue
		}

		value, err := strconv.ParseFloat(row[avgCol], 64)
		if err != nil || value <= missingValue {
			continue
		}

		observations = append(observations, Observation{
			Date:  time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
			Value: value,
		})
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("dataset %s contains no usable observations", path)
	}

	return observations, nil
}
