/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, port, log level, CORS allowed origins, connection
queue sizes and the rate limits applied to WebSocket upgrades and the API.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int
	LogLevel    string

	// Security Settings
	AllowedOrigins []string
	UpgradeRate    float64
	UpgradeBurst   int
	APIRate        float64
	APIBurst       int

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	// Connection Settings
	SendQueueSize  int
	MaxMessageSize int64

	// Observability Settings
	MetricsEnabled bool
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		if cfg.IsDevelopment() {
			cfg.LogLevel = "debug"
		} else {
			cfg.LogLevel = "info"
		}
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	cfg.AllowedOrigins = []string{}
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	if cfg.UpgradeRate, cfg.UpgradeBurst, err = limitEnv("UPGRADE", 1, 5); err != nil {
		return nil, err
	}

	if cfg.APIRate, cfg.APIBurst, err = limitEnv("API", 5, 10); err != nil {
		return nil, err
	}

	if cfg.TrustProxy, err = boolEnv("TRUST_PROXY", false); err != nil {
		return nil, err
	}

	// --- Connection Settings ---
	queueSize, err := intEnv("SEND_QUEUE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	if queueSize < 1 {
		return nil, fmt.Errorf("SEND_QUEUE_SIZE must be at least 1, got %d", queueSize)
	}
	cfg.SendQueueSize = queueSize

	maxSize, err := intEnv("MAX_MESSAGE_SIZE", 8192)
	if err != nil {
		return nil, err
	}
	if maxSize < 512 {
		return nil, fmt.Errorf("MAX_MESSAGE_SIZE must be at least 512 bytes, got %d", maxSize)
	}
	cfg.MaxMessageSize = int64(maxSize)

	// --- Observability Settings ---
	if cfg.MetricsEnabled, err = boolEnv("METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// limitEnv reads the <prefix>_RATE (events per second) and <prefix>_BURST pair of a token bucket.
func limitEnv(prefix string, defRate float64, defBurst int) (float64, int, error) {
	rateKey := prefix + "_RATE"
	r := defRate
	if raw := os.Getenv(rateKey); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid %s environment variable: %w", rateKey, err)
		}
		r = v
	}
	if r <= 0 {
		return 0, 0, fmt.Errorf("%s must be positive, got %v", rateKey, r)
	}

	burstKey := prefix + "_BURST"
	burst, err := intEnv(burstKey, defBurst)
	if err != nil {
		return 0, 0, err
	}
	if burst < 1 {
		return 0, 0, fmt.Errorf("%s must be at least 1, got %d", burstKey, burst)
	}

	return r, burst, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

// intEnv reads an integer environment variable, falling back to def when it is unset.
func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
