package consequences

import (
	"testing"

	"co2-platform/internal/models"
)

// TestNormalize covers the defensive pipeline that turns raw generative
// output into exactly five validated records.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOK      bool
		checkValues func(*testing.T, []models.ConsequenceRecord)
	}{
		{
			name: "clean array of five",
			raw: `[
				{"description": "Subida del nivel del mar", "impact_level": 4, "icon": "water"},
				{"description": "Olas de calor", "impact_level": 5, "icon": "temperature-high"},
				{"description": "Sequías prolongadas", "impact_level": 4, "icon": "sun"},
				{"description": "Incendios forestales", "impact_level": 5, "icon": "fire"},
				{"description": "Pérdida de cosechas", "impact_level": 3, "icon": "seedling"}
			]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Description != "Subida del nivel del mar" {
					t.Errorf("Description = %v, want %v", records[0].Description, "Subida del nivel del mar")
				}
				if records[1].ImpactLevel != 5 {
					t.Errorf("ImpactLevel = %v, want 5", records[1].ImpactLevel)
				}
				if records[3].Icon != "fire" {
					t.Errorf("Icon = %v, want fire", records[3].Icon)
				}
			},
		},
		{
			name:   "markdown fenced output",
			raw:    "```json\n[{\"description\": \"Acidificación\", \"impact_level\": 4, \"icon\": \"droplet\"}]\n```",
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Description != "Acidificación" {
					t.Errorf("Description = %v, want %v", records[0].Description, "Acidificación")
				}
				if records[0].Icon != "droplet" {
					t.Errorf("Icon = %v, want droplet", records[0].Icon)
				}
			},
		},
		{
			name:   "smart quotes mapped to ASCII",
			raw:    `[{“description”: “Deshielo polar”, “impact_level”: 4, “icon”: “snowflake”}]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Description != "Deshielo polar" {
					t.Errorf("Description = %v, want %v", records[0].Description, "Deshielo polar")
				}
			},
		},
		{
			name:   "prose around the array",
			raw:    `Claro, aquí tienes el JSON solicitado: [{"description": "Eventos extremos", "impact_level": 5, "icon": "bolt"}] Espero que sirva.`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Description != "Eventos extremos" {
					t.Errorf("Description = %v, want %v", records[0].Description, "Eventos extremos")
				}
			},
		},
		{
			name:   "single object coerced to list",
			raw:    `{"description": "Blanqueamiento de corales", "impact_level": 4, "icon": "fish"}`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Description != "Blanqueamiento de corales" {
					t.Errorf("Description = %v, want %v", records[0].Description, "Blanqueamiento de corales")
				}
				for i := 1; i < models.ConsequenceCount; i++ {
					if records[i] != models.FillerConsequence() {
						t.Errorf("records[%d] should be the filler record", i)
					}
				}
			},
		},
		{
			name: "seven entries truncated to five",
			raw: `[
				{"description": "a1", "impact_level": 1, "icon": "fire"},
				{"description": "a2", "impact_level": 2, "icon": "fire"},
				{"description": "a3", "impact_level": 3, "icon": "fire"},
				{"description": "a4", "impact_level": 4, "icon": "fire"},
				{"description": "a5", "impact_level": 5, "icon": "fire"},
				{"description": "a6", "impact_level": 5, "icon": "fire"},
				{"description": "a7", "impact_level": 5, "icon": "fire"}
			]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[4].Description != "a5" {
					t.Errorf("records[4].Description = %v, want a5", records[4].Description)
				}
			},
		},
		{
			name:   "impact level as string",
			raw:    `[{"description": "x", "impact_level": "4", "icon": "fire"}]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].ImpactLevel != 4 {
					t.Errorf("ImpactLevel = %v, want 4", records[0].ImpactLevel)
				}
			},
		},
		{
			name:   "impact level above range clamped",
			raw:    `[{"description": "x", "impact_level": 9, "icon": "fire"}]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].ImpactLevel != 5 {
					t.Errorf("ImpactLevel = %v, want 5", records[0].ImpactLevel)
				}
			},
		},
		{
			name:   "impact level below range clamped",
			raw:    `[{"description": "x", "impact_level": -2, "icon": "fire"}]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].ImpactLevel != 1 {
					t.Errorf("ImpactLevel = %v, want 1", records[0].ImpactLevel)
				}
			},
		},
		{
			name:   "unparseable impact level defaults",
			raw:    `[{"description": "x", "impact_level": "alto", "icon": "fire"}]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].ImpactLevel != models.DefaultImpactLevel {
					t.Errorf("ImpactLevel = %v, want %v", records[0].ImpactLevel, models.DefaultImpactLevel)
				}
			},
		},
		{
			name:   "unknown icon replaced with default",
			raw:    `[{"description": "x", "impact_level": 3, "icon": "not-an-icon"}]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Icon != models.DefaultIcon {
					t.Errorf("Icon = %v, want %v", records[0].Icon, models.DefaultIcon)
				}
			},
		},
		{
			name: "blank descriptions skipped",
			raw: `[
				{"description": "  ", "impact_level": 3, "icon": "fire"},
				{"description": "válida", "impact_level": 3, "icon": "fire"}
			]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				if records[0].Description != "válida" {
					t.Errorf("records[0].Description = %v, want válida", records[0].Description)
				}
			},
		},
		{
			name:   "array of all invalid entries padded with fillers",
			raw:    `[1, 2, "tres"]`,
			wantOK: true,
			checkValues: func(t *testing.T, records []models.ConsequenceRecord) {
				for i, rec := range records {
					if rec != models.FillerConsequence() {
						t.Errorf("records[%d] should be the filler record", i)
					}
				}
			},
		},
		{
			name:   "non-JSON text falls back",
			raw:    "Error during API call: provider returned status 503",
			wantOK: false,
		},
		{
			name:   "empty input falls back",
			raw:    "   ",
			wantOK: false,
		},
		{
			name:   "truncated JSON falls back",
			raw:    `[{"description": "cortado", "impact_`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, ok := Normalize(tt.raw)

			if ok != tt.wantOK {
				t.Errorf("Normalize() ok = %v, want %v", ok, tt.wantOK)
			}

			if len(records) != models.ConsequenceCount {
				t.Fatalf("Normalize() returned %d records, want %d", len(records), models.ConsequenceCount)
			}

			if !tt.wantOK {
				fallback := models.FallbackConsequences()
				for i := range records {
					if records[i] != fallback[i] {
						t.Errorf("records[%d] = %+v, want fallback %+v", i, records[i], fallback[i])
					}
				}
			}

			if tt.checkValues != nil {
				tt.checkValues(t, records)
			}
		})
	}
}

// TestSanitize tests JSON extraction from noisy output
func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "already clean",
			raw:    `[{"a": 1}]`,
			want:   `[{"a": 1}]`,
			wantOK: true,
		},
		{
			name:   "fence with language tag",
			raw:    "```json\n[{\"a\": 1}]\n```",
			want:   `[{"a": 1}]`,
			wantOK: true,
		},
		{
			name:   "slices first bracket to last bracket",
			raw:    `texto [1, 2] más texto [3] final`,
			want:   `[1, 2] más texto [3]`,
			wantOK: true,
		},
		{
			name:   "whitespace only",
			raw:    " \n\t ",
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sanitize(tt.raw)

			if ok != tt.wantOK {
				t.Errorf("Sanitize() ok = %v, want %v", ok, tt.wantOK)
			}

			if got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}
