// Package http serves health checks and Prometheus metrics for the bot.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tgmusicbot/internal/core"
)

// Server exposes /healthz, /readyz and /metrics.
type Server struct {
	config  *core.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
	ready   func() bool
}

// Metrics holds the bot's Prometheus collectors.
type Metrics struct {
	registry       *prometheus.Registry
	CommandsTotal  *prometheus.CounterVec
	CallbacksTotal *prometheus.CounterVec
	CallErrors     *prometheus.CounterVec
	HandlerTime    *prometheus.HistogramVec
	ActiveChats    prometheus.Gauge
	FloodTracked   prometheus.Gauge
}

// NewMetrics creates collectors registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tgmusicbot_commands_total",
				Help: "Total number of commands handled",
			},
			[]string{"command", "outcome"},
		),
		CallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tgmusicbot_callbacks_total",
				Help: "Total number of button presses handled",
			},
			[]string{"action", "outcome"},
		),
		CallErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tgmusicbot_call_errors_total",
				Help: "Total number of failed playback operations",
			},
			[]string{"op"},
		),
		HandlerTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tgmusicbot_handler_duration_seconds",
				Help:    "Time spent handling updates",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		ActiveChats: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tgmusicbot_active_chats",
				Help: "Number of chats with an active playback session",
			},
		),
		FloodTracked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tgmusicbot_flood_tracked_users",
				Help: "Number of chat and user pairs tracked by the flood limiter",
			},
		),
	}

	m.registry.MustRegister(
		m.CommandsTotal,
		m.CallbacksTotal,
		m.CallErrors,
		m.HandlerTime,
		m.ActiveChats,
		m.FloodTracked,
	)
	return m
}

// RecordCommand counts a handled command.
func (m *Metrics) RecordCommand(command, outcome string) {
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
}

// RecordCallback counts a handled button press.
func (m *Metrics) RecordCallback(action, outcome string) {
	m.CallbacksTotal.WithLabelValues(action, outcome).Inc()
}

// RecordCallError counts a failed playback operation.
func (m *Metrics) RecordCallError(op string) {
	m.CallErrors.WithLabelValues(op).Inc()
}

// ObserveHandler records how long handling an update took.
func (m *Metrics) ObserveHandler(kind string, duration time.Duration) {
	m.HandlerTime.WithLabelValues(kind).Observe(duration.Seconds())
}

// SetActiveChats sets the active chat gauge.
func (m *Metrics) SetActiveChats(count int) {
	m.ActiveChats.Set(float64(count))
}

// SetFloodTracked sets the flood limiter gauge.
func (m *Metrics) SetFloodTracked(count int) {
	m.FloodTracked.Set(float64(count))
}

// Handler serves the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// NewServer creates the HTTP server. ready reports readiness; nil means always ready.
func NewServer(config *core.ServerConfig, metrics *Metrics, ready func() bool, logger *zap.Logger) *Server {
	s := &Server{
		config:  config,
		logger:  logger,
		metrics: metrics,
		ready:   ready,
	}
	s.server = createHTTPServer(config, s.setupRoutes())
	return s
}

func createHTTPServer(config *core.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}

func (s *Server) writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := fmt.Fprintf(w, `{"status":%q,"service":"tgmusicbot"}`, status); err != nil {
		s.logger.Debug("Failed to write status response", zap.Error(err))
	}
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeStatus(w, http.StatusOK, "ok")
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if s.ready != nil && !s.ready() {
			s.writeStatus(w, http.StatusServiceUnavailable, "starting")
			return
		}
		s.writeStatus(w, http.StatusOK, "ready")
	})

	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}
