package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "CURRENT_USER_ID", "UPLOAD_DELAY_MS", "PLACEHOLDER_IMAGE", "DEV_MODE", "SHUTDOWN_TIMEOUT_SEC"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != ":8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.CurrentUserID != 3 {
		t.Errorf("CurrentUserID = %d", cfg.CurrentUserID)
	}
	if cfg.UploadDelay != 1500*time.Millisecond {
		t.Errorf("UploadDelay = %s", cfg.UploadDelay)
	}
	if cfg.PlaceholderImage != "/api/placeholder/600/400" {
		t.Errorf("PlaceholderImage = %q", cfg.PlaceholderImage)
	}
	if !cfg.DevMode {
		t.Error("DevMode should default to true")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*Config) bool
	}{
		{name: "Port", key: "SERVER_PORT", value: ":9090", check: func(c *Config) bool { return c.ServerPort == ":9090" }},
		{name: "Upload delay", key: "UPLOAD_DELAY_MS", value: "20", check: func(c *Config) bool { return c.UploadDelay == 20*time.Millisecond }},
		{name: "Invalid int falls back", key: "CURRENT_USER_ID", value: "abc", check: func(c *Config) bool { return c.CurrentUserID == 3 }},
		{name: "Current user", key: "CURRENT_USER_ID", value: "1", check: func(c *Config) bool { return c.CurrentUserID == 1 }},
		{name: "Dev mode off", key: "DEV_MODE", value: "false", check: func(c *Config) bool { return !c.DevMode }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if cfg := Load(); !tt.check(cfg) {
				t.Errorf("%s=%q not applied: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}
