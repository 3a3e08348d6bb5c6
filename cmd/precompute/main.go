package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"co2-platform/internal/config"
	"co2-platform/internal/forecast"
	"co2-platform/internal/repository"
	"co2-platform/internal/services"
	"co2-platform/pkg/database"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	horizons := flag.String("months", "12,24,36", "Comma-separated forecast horizons to precompute")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	months, err := parseHorizons(*horizons)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -months value: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("co2-precompute", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[PRECOMPUTE_START] Starting forecast cache precompute", logging.Fields{
		"version": "1.0.0",
		"months":  *horizons,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("co2_precompute")

	// Initialize database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[PRECOMPUTE_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	// Initialize repository and forecast pipeline
	cacheRepo := repository.NewCacheRepository(db, logger, metricsCollector)

	engine, err := forecast.NewEngine(cfg.Forecast, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[PRECOMPUTE_ERROR] Failed to load forecast artifacts", logging.Fields{
			"model_path":  cfg.Forecast.ModelPath,
			"scaler_path": cfg.Forecast.ScalerPath,
		}, err)
	}

	forecastService := services.NewForecastService(engine, cacheRepo, logger, metricsCollector)

	// Warm the cache one horizon at a time
	start := time.Now()
	failed := 0

	for _, m := range months {
		if _, err := forecastService.GetForecast(ctx, m); err != nil {
			failed++
			logger.Error(ctx, "[PRECOMPUTE_HORIZON_ERROR] Forecast failed", logging.Fields{
				"months": m,
			}, err)
			continue
		}

		logger.Info(ctx, "[PRECOMPUTE_HORIZON] Forecast cached", logging.Fields{
			"months": m,
		})
	}

	duration := time.Since(start)

	// Print results
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("PRECOMPUTE COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Horizons Requested: %d\n", len(months))
	fmt.Printf("Horizons Cached:    %d\n", len(months)-failed)
	fmt.Printf("Horizons Failed:    %d\n", failed)
	fmt.Printf("Duration:           %v\n", duration)

	logger.Info(ctx, "[PRECOMPUTE_COMPLETE] Precompute completed", logging.Fields{
		"horizons_requested": len(months),
		"horizons_failed":    failed,
		"duration_seconds":   duration.Seconds(),
	})

	if failed > 0 {
		os.Exit(1)
	}
}

// parseHorizons parses a comma-separated list of positive horizons.
func parseHorizons(raw string) ([]int, error) {
	var months []int

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		m, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", part)
		}
		if m <= 0 {
			return nil, fmt.Errorf("horizon %d must be positive", m)
		}

		months = append(months, m)
	}

	if len(months) == 0 {
		return nil, fmt.Errorf("no horizons given")
	}

	return months, nil
}
