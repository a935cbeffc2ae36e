package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Logs    LogConfig
	Backend BackendConfig
	Addr    string
}

type LogConfig struct {
	Style string
	Level string
}

// BackendConfig points at the analysis backend and bounds its calls.
// AnalyzeTimeout is deliberately long: a full-game engine analysis runs
// for several seconds.
type BackendConfig struct {
	BaseURL        string
	HTTPTimeout    time.Duration
	AnalyzeTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("BACKEND_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	httpTimeout, err := secondsEnv("BACKEND_HTTP_TIMEOUT", 15)
	if err != nil {
		return nil, err
	}
	analyzeTimeout, err := secondsEnv("BACKEND_ANALYZE_TIMEOUT", 90)
	if err != nil {
		return nil, err
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		Backend: BackendConfig{
			BaseURL:        baseURL,
			HTTPTimeout:    httpTimeout,
			AnalyzeTimeout: analyzeTimeout,
		},
		Addr: addr,
	}

	return cfg, nil
}

func secondsEnv(key string, fallback int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}
