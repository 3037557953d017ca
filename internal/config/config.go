package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Pipeline PipelineConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	pipeline, err := loadPipelineConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Log:      LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
		Pipeline: pipeline,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// LogConfig describes logging behavior.
type LogConfig struct {
	Level string
}

// PipelineConfig carries the fixed decision thresholds. Defaults match the
// documented constants; overrides exist mainly for tuning in staging.
type PipelineConfig struct {
	ShoutRatio            float64
	MinShoutLetters       int
	ExclamationThreshold  int
	RepeatTicketThreshold int
	HistoryLimit          int
	CustomerSeedFile      string
	LiveFeedInterval      time.Duration
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadPipelineConfig() (PipelineConfig, error) {
	cfg := PipelineConfig{
		ShoutRatio:            0.6,
		MinShoutLetters:       8,
		ExclamationThreshold:  3,
		RepeatTicketThreshold: 3,
		HistoryLimit:          50,
		CustomerSeedFile:      strings.TrimSpace(os.Getenv("CUSTOMER_SEED_FILE")),
		LiveFeedInterval:      5 * time.Second,
	}

	if ratio, err := parseOptionalFloatEnv("SHOUT_RATIO"); err != nil {
		return PipelineConfig{}, err
	} else if ratio != nil {
		if *ratio <= 0 || *ratio >= 1 {
			return PipelineConfig{}, fmt.Errorf("SHOUT_RATIO must be in (0,1), got %v", *ratio)
		}
		cfg.ShoutRatio = *ratio
	}

	for _, v := range []struct {
		key    string
		target *int
		min    int
	}{
		{"MIN_SHOUT_LETTERS", &cfg.MinShoutLetters, 1},
		{"EXCLAMATION_THRESHOLD", &cfg.ExclamationThreshold, 1},
		{"REPEAT_TICKET_THRESHOLD", &cfg.RepeatTicketThreshold, 1},
		{"HISTORY_LIMIT", &cfg.HistoryLimit, 1},
	} {
		override, err := parseOptionalIntEnv(v.key)
		if err != nil {
			return PipelineConfig{}, err
		}
		if override != nil {
			if *override < v.min {
				return PipelineConfig{}, fmt.Errorf("%s must be at least %d, got %d", v.key, v.min, *override)
			}
			*v.target = *override
		}
	}

	if seconds, err := parseOptionalIntEnv("LIVE_FEED_INTERVAL_SECONDS"); err != nil {
		return PipelineConfig{}, err
	} else if seconds != nil {
		if *seconds < 1 {
			return PipelineConfig{}, fmt.Errorf("LIVE_FEED_INTERVAL_SECONDS must be at least 1, got %d", *seconds)
		}
		cfg.LiveFeedInterval = time.Duration(*seconds) * time.Second
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
