package core

import (
	"strings"
	"testing"

	"tgmusicbot/internal/i18n"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.App.Language != i18n.DefaultLanguage {
		t.Errorf("Expected default language to be %s, got %s", i18n.DefaultLanguage, config.App.Language)
	}
	if config.App.FloodLimitPerMinute != DefaultFloodLimitPerMinute {
		t.Errorf("Expected flood limit %d, got %d", DefaultFloodLimitPerMinute, config.App.FloodLimitPerMinute)
	}
	if config.Store.Path != DefaultDatabasePath {
		t.Errorf("Expected database path %q, got %q", DefaultDatabasePath, config.Store.Path)
	}
	if !config.Server.Enabled {
		t.Error("Expected HTTP server to be enabled by default")
	}
}

func TestLanguageConfiguration(t *testing.T) {
	config := DefaultConfig()

	for _, lang := range i18n.GetSupportedLanguages() {
		config.App.Language = lang
		localizer := i18n.NewLocalizer(config.App.Language)
		if localizer == nil {
			t.Fatalf("Failed to create localizer for language %s", lang)
		}
		if message := localizer.T("error.generic"); message == "" {
			t.Errorf("Empty message for key 'error.generic' in language %s", lang)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Telegram.BotToken = "" }, wantErr: "token"},
		{name: "missing database", mutate: func(c *Config) { c.Store.Path = "" }, wantErr: "database"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "port"},
		{name: "port ignored when disabled", mutate: func(c *Config) {
			c.Server.Enabled = false
			c.Server.Port = 0
		}},
		{name: "unsupported language", mutate: func(c *Config) { c.App.Language = "xx" }, wantErr: "language"},
		{name: "janitor interval", mutate: func(c *Config) { c.App.JanitorInterval = 0 }, wantErr: "janitor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Telegram.BotToken = "123:abc"
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigConstants(t *testing.T) {
	if DefaultServerPort <= 0 || DefaultServerPort > 65535 {
		t.Error("DefaultServerPort should be a valid port number")
	}
	if DefaultAdminCacheTTL <= 0 || DefaultIdleTimeout <= DefaultJanitorInterval {
		t.Error("timeouts should be positive and idle timeout longer than the janitor interval")
	}
}
