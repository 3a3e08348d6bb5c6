package config

import "testing"

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Host: "localhost", MaxOpenConns: 25},
		Forecast: ForecastConfig{
			ModelPath:   "artifacts/model_final.json",
			ScalerPath:  "artifacts/scaler_final.json",
			DatasetPath: "artifacts/co2_mm_mlo.csv",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// TestConfig_Validate tests startup invariants
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid configuration",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing generative credentials allowed",
			mutate:  func(c *Config) { c.Gemini.APIKey = "" },
			wantErr: false,
		},
		{
			name:    "missing SMTP credentials allowed",
			mutate:  func(c *Config) { c.SMTP.Address = "" },
			wantErr: false,
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "empty database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: true,
		},
		{
			name:    "non-positive pool size",
			mutate:  func(c *Config) { c.Database.MaxOpenConns = 0 },
			wantErr: true,
		},
		{
			name:    "empty model path",
			mutate:  func(c *Config) { c.Forecast.ModelPath = "" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
