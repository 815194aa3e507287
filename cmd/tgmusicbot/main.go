// Package main provides the tgmusicbot CLI application entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"tgmusicbot/internal/admins"
	"tgmusicbot/internal/cache"
	"tgmusicbot/internal/call"
	"tgmusicbot/internal/chat/telegram"
	"tgmusicbot/internal/core"
	"tgmusicbot/internal/flood"
	"tgmusicbot/internal/handlers"
	httpserver "tgmusicbot/internal/http"
	"tgmusicbot/internal/i18n"
	"tgmusicbot/internal/store"
	"tgmusicbot/pkg/musiclink"
)

const (
	envPrefix = "TGMUSIC"

	seenUpdates           = 10000
	seenFalsePositiveRate = 0.001
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tgmusicbot",
	Short: "tgmusicbot - Telegram group music bot",
	Long: `tgmusicbot plays music in Telegram group calls. Admins control playback with
commands and inline buttons; group owners toggle per-chat settings.`,
	RunE: runBot,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := core.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is .env)")
	flags.String("log-level", defaults.Log.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "log format (json, console)")
	flags.String("telegram-bot-token", "", "Telegram bot token")
	flags.String("telegram-bot-username", "", "Telegram bot username (resolved at startup when empty)")
	flags.String("database-path", defaults.Store.Path, "SQLite settings database path")
	flags.Bool("server-enabled", defaults.Server.Enabled, "Serve health and metrics endpoints")
	flags.String("server-host", defaults.Server.Host, "HTTP server host")
	flags.Int("server-port", defaults.Server.Port, "HTTP server port")
	flags.String("language", defaults.App.Language,
		fmt.Sprintf("Default bot language (%s)", strings.Join(i18n.GetSupportedLanguages(), ", ")))
	flags.Int("flood-limit-per-minute", defaults.App.FloodLimitPerMinute, "Maximum commands and presses per user per minute, 0 disables")
	flags.Int("admin-cache-size", defaults.App.AdminCacheSize, "Number of chats whose admin lists are cached")
	flags.Duration("admin-cache-ttl", defaults.App.AdminCacheTTL, "How long a cached admin list is trusted")
	flags.Duration("idle-timeout", defaults.App.IdleTimeout, "End playback after this much inactivity, 0 disables")
	flags.Duration("janitor-interval", defaults.App.JanitorInterval, "How often idle chats are swept")
	flags.Bool("generate-env-example", false, "Generate .env.example file from current configuration and exit")

	if err := viper.BindPFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	envFile := ".env"
	if cfgFile != "" {
		envFile = cfgFile
	}

	if err := gotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	config = buildConfig()
	logger = buildLogger(config.Log.Level, config.Log.Format)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	cfg.Telegram.BotToken = viper.GetString("telegram-bot-token")
	cfg.Telegram.BotUsername = strings.TrimPrefix(viper.GetString("telegram-bot-username"), "@")

	cfg.Store.Path = viper.GetString("database-path")

	cfg.Server.Enabled = viper.GetBool("server-enabled")
	cfg.Server.Host = viper.GetString("server-host")
	cfg.Server.Port = viper.GetInt("server-port")

	cfg.Log.Level = viper.GetString("log-level")
	cfg.Log.Format = viper.GetString("log-format")

	cfg.App.Language = viper.GetString("language")
	if cfg.App.Language == "" {
		cfg.App.Language = i18n.DefaultLanguage
	}
	cfg.App.FloodLimitPerMinute = viper.GetInt("flood-limit-per-minute")
	cfg.App.AdminCacheSize = viper.GetInt("admin-cache-size")
	cfg.App.AdminCacheTTL = viper.GetDuration("admin-cache-ttl")
	cfg.App.IdleTimeout = viper.GetDuration("idle-timeout")
	cfg.App.JanitorInterval = viper.GetDuration("janitor-interval")

	return cfg
}

func buildLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func runBot(cmd *cobra.Command, _ []string) error {
	if viper.GetBool("generate-env-example") {
		return generateEnvExample(cmd)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting tgmusicbot",
		zap.String("language", config.App.Language),
		zap.String("database", config.Store.Path),
		zap.Bool("server_enabled", config.Server.Enabled))

	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	svcs, err := initializeServices(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svcs.settings.Close(); closeErr != nil {
			logger.Warn("Failed to close settings database", zap.Error(closeErr))
		}
	}()

	return runServices(ctx, svcs)
}

type services struct {
	settings   *store.Settings
	frontend   *telegram.Frontend
	controller *call.Controller
	handlers   *handlers.Handlers
	limiter    *flood.Floodgate
	metrics    *httpserver.Metrics
	httpServer *httpserver.Server
	ready      *atomic.Bool
}

func initializeServices(ctx context.Context) (*services, error) {
	settings, err := store.Open(ctx, config.Store.Path)
	if err != nil {
		return nil, err
	}

	seen, err := store.NewSeenSet(seenUpdates, seenFalsePositiveRate)
	if err != nil {
		_ = settings.Close()
		return nil, err
	}

	frontend := telegram.NewFrontend(&telegram.Config{
		BotToken:    config.Telegram.BotToken,
		BotUsername: config.Telegram.BotUsername,
	}, seen, logger.Named("telegram"))
	if err := frontend.Start(ctx); err != nil {
		_ = settings.Close()
		return nil, err
	}

	locales := i18n.NewManager(config.App.Language)
	queue := cache.NewChatCache()
	adminCache := admins.NewCache(frontend, config.App.AdminCacheSize, config.App.AdminCacheTTL, logger.Named("admins"))
	controller := call.NewController(queue, frontend, settings, locales,
		call.NewLogStreamer(logger.Named("streamer")), logger.Named("call"))
	metrics := httpserver.NewMetrics()
	limiter := flood.New(config.App.FloodLimitPerMinute)

	h := handlers.New(handlers.Deps{
		Frontend:    frontend,
		Queue:       queue,
		Admins:      adminCache,
		Settings:    settings,
		Calls:       controller,
		Resolver:    musiclink.NewManager(),
		Locales:     locales,
		Limiter:     limiter,
		Metrics:     metrics,
		BotUsername: frontend.BotUsername(),
	}, logger.Named("handlers"))

	commands := h.Commands()
	sort.Strings(commands)
	logger.Info("Handlers ready", zap.Strings("commands", commands))

	ready := &atomic.Bool{}
	return &services{
		settings:   settings,
		frontend:   frontend,
		controller: controller,
		handlers:   h,
		limiter:    limiter,
		metrics:    metrics,
		httpServer: httpserver.NewServer(&config.Server, metrics, ready.Load, logger.Named("http")),
		ready:      ready,
	}, nil
}

func runServices(ctx context.Context, svcs *services) error {
	g, gCtx := errgroup.WithContext(ctx)

	if config.Server.Enabled {
		g.Go(func() error {
			return svcs.httpServer.Start(gCtx)
		})
	}

	if config.App.JanitorInterval > 0 {
		g.Go(func() error {
			return svcs.controller.RunIdleSweeper(gCtx, config.App.JanitorInterval, config.App.IdleTimeout,
				func(active int) {
					svcs.metrics.SetActiveChats(active)
					svcs.metrics.SetFloodTracked(svcs.limiter.GetStats().ActiveUsers)
				})
		})
	}

	g.Go(func() error {
		svcs.ready.Store(true)
		defer svcs.ready.Store(false)
		return svcs.frontend.Listen(gCtx, svcs.handlers)
	})

	logger.Info("tgmusicbot started successfully",
		zap.String("bot_username", svcs.frontend.BotUsername()),
		zap.String("http_addr", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)))

	if err := g.Wait(); err != nil {
		logger.Error("tgmusicbot stopped with error", zap.Error(err))
		return err
	}

	logger.Info("tgmusicbot stopped gracefully")
	return nil
}

func generateEnvExample(cmd *cobra.Command) error {
	fmt.Println("Generating .env.example file from current configuration...")

	if err := os.WriteFile(".env.example", []byte(generateEnvExampleContent(cmd)), 0600); err != nil {
		return fmt.Errorf("failed to write .env.example: %w", err)
	}

	fmt.Println("Successfully generated .env.example file")
	return nil
}

func generateEnvExampleContent(cmd *cobra.Command) string {
	var content strings.Builder

	content.WriteString("# tgmusicbot configuration\n")
	content.WriteString("# Copy this file to .env and update with your values.\n")
	fmt.Fprintf(&content, "# Format: %s_<SETTING>=value, CLI equivalent: --<setting>\n\n", envPrefix)

	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "generate-env-example" {
			return
		}
		fmt.Fprintf(&content, "# %s\n%s=%s\n\n", f.Usage, flagToEnvVar(f.Name), f.DefValue)
	})

	return content.String()
}

func flagToEnvVar(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
