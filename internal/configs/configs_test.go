package configs

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "LOG_LEVEL", "ALLOWED_ORIGINS", "UPGRADE_RATE",
		"UPGRADE_BURST", "API_RATE", "API_BURST", "TRUST_PROXY",
		"SEND_QUEUE_SIZE", "MAX_MESSAGE_SIZE", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !cfg.IsDevelopment() {
		t.Errorf("Expected development environment, got %q", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug log level in development, got %q", cfg.LogLevel)
	}
	if cfg.SendQueueSize != 256 {
		t.Errorf("Expected send queue size 256, got %d", cfg.SendQueueSize)
	}
	if cfg.MaxMessageSize != 8192 {
		t.Errorf("Expected max message size 8192, got %d", cfg.MaxMessageSize)
	}
	if !cfg.MetricsEnabled {
		t.Error("Expected metrics to be enabled by default")
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("Expected no allowed origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.UpgradeRate != 1 || cfg.UpgradeBurst != 5 {
		t.Errorf("Unexpected upgrade limits %v/%d", cfg.UpgradeRate, cfg.UpgradeBurst)
	}
	if cfg.APIRate != 5 || cfg.APIBurst != 10 {
		t.Errorf("Unexpected API limits %v/%d", cfg.APIRate, cfg.APIBurst)
	}
	if cfg.TrustProxy {
		t.Error("Expected proxy headers to be untrusted by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("UPGRADE_RATE", "0.5")
	t.Setenv("UPGRADE_BURST", "3")
	t.Setenv("API_RATE", "2")
	t.Setenv("API_BURST", "4")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("SEND_QUEUE_SIZE", "16")
	t.Setenv("MAX_MESSAGE_SIZE", "1024")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("Expected production environment")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected info log level in production, got %q", cfg.LogLevel)
	}
	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected allowed origins %v", cfg.AllowedOrigins)
	}
	if cfg.UpgradeRate != 0.5 || cfg.UpgradeBurst != 3 {
		t.Errorf("Unexpected upgrade limits %v/%d", cfg.UpgradeRate, cfg.UpgradeBurst)
	}
	if cfg.APIRate != 2 || cfg.APIBurst != 4 {
		t.Errorf("Unexpected API limits %v/%d", cfg.APIRate, cfg.APIBurst)
	}
	if !cfg.TrustProxy {
		t.Error("Expected proxy headers to be trusted")
	}
	if cfg.SendQueueSize != 16 || cfg.MaxMessageSize != 1024 {
		t.Errorf("Unexpected connection settings %d/%d", cfg.SendQueueSize, cfg.MaxMessageSize)
	}
	if cfg.MetricsEnabled {
		t.Error("Expected metrics to be disabled")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":             "80",
		"UPGRADE_RATE":     "fast",
		"UPGRADE_BURST":    "0",
		"API_RATE":         "-2",
		"API_BURST":        "none",
		"TRUST_PROXY":      "sometimes",
		"SEND_QUEUE_SIZE":  "-1",
		"MAX_MESSAGE_SIZE": "10",
		"METRICS_ENABLED":  "maybe",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=%s", key, value)
			}
		})
	}
}
