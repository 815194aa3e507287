// Package core holds the bot configuration shared by every component.
package core

import (
	"errors"
	"fmt"
	"time"

	"tgmusicbot/internal/i18n"
)

// Default values for configuration.
const (
	DefaultServerPort          = 8080
	DefaultFloodLimitPerMinute = 20
	DefaultAdminCacheSize      = 5000
	DefaultAdminCacheTTL       = 10 * time.Minute
	DefaultIdleTimeout         = 30 * time.Minute
	DefaultJanitorInterval     = time.Minute
	DefaultDatabasePath        = "./tgmusicbot.db"
)

// Config is the complete bot configuration.
type Config struct {
	Telegram TelegramConfig
	Store    StoreConfig
	Server   ServerConfig
	Log      LogConfig
	App      AppConfig
}

// TelegramConfig configures the Bot API client.
type TelegramConfig struct {
	BotToken string
	// BotUsername is used to accept /command@bot forms; resolved at startup when empty.
	BotUsername string
}

// StoreConfig configures the settings database.
type StoreConfig struct {
	Path string
}

// ServerConfig configures the health and metrics HTTP server.
type ServerConfig struct {
	Enabled      bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig holds bot behaviour settings.
type AppConfig struct {
	Language            string
	FloodLimitPerMinute int
	AdminCacheSize      int
	AdminCacheTTL       time.Duration
	// IdleTimeout ends playback in chats without activity for this long; zero disables it.
	IdleTimeout     time.Duration
	JanitorInterval time.Duration
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: DefaultDatabasePath,
		},
		Server: ServerConfig{
			Enabled:      true,
			Host:         "0.0.0.0",
			Port:         DefaultServerPort,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		App: AppConfig{
			Language:            i18n.DefaultLanguage,
			FloodLimitPerMinute: DefaultFloodLimitPerMinute,
			AdminCacheSize:      DefaultAdminCacheSize,
			AdminCacheTTL:       DefaultAdminCacheTTL,
			IdleTimeout:         DefaultIdleTimeout,
			JanitorInterval:     DefaultJanitorInterval,
		},
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram bot token is required")
	}
	if c.Store.Path == "" {
		return errors.New("database path is required")
	}
	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if !i18n.IsSupported(c.App.Language) {
		return fmt.Errorf("unsupported language %q", c.App.Language)
	}
	if c.App.IdleTimeout > 0 && c.App.JanitorInterval <= 0 {
		return errors.New("janitor interval must be positive when idle timeout is set")
	}
	return nil
}
