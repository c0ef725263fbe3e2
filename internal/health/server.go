// Package health exposes liveness and readiness endpoints for the
// backtest daemon. Readiness is derived from the cron scheduler and
// the market data provider rather than a flag the daemon has to flip.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPort = "8081"
	pingTimeout = 3 * time.Second
)

// ProviderPinger reports market data provider connectivity.
type ProviderPinger interface {
	Ping(ctx context.Context) error
}

// ScheduleInspector reports the state of the cron scheduler driving
// watchlist runs.
type ScheduleInspector interface {
	IsRunning() bool
	GetNextRun() time.Time
}

// LiveResponse is the payload served by /health and /live.
type LiveResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse is the payload served by /ready.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks"`
	NextRun  string            `json:"next_run,omitempty"`
	Duration string            `json:"duration"`
}

// Server serves health endpoints on a dedicated port.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        string
	server      *http.Server
	logger      *logrus.Logger
	provider    ProviderPinger
	schedule    ScheduleInspector
}

// Config holds the health server dependencies.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	Provider    ProviderPinger
	Schedule    ScheduleInspector
}

// NewServer builds a health server. Port resolution order: Config.Port,
// HEALTH_PORT, then the default.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = defaultPort
	}

	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		logger:      cfg.Logger,
		provider:    cfg.Provider,
		schedule:    cfg.Schedule,
	}
}

// Start serves the endpoints in the background until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleLive)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Health check server starting")
		}

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health check server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown stops the server, waiting up to five seconds for in-flight
// requests.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("Health check server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LiveResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response := ReadyResponse{
		Service: s.serviceName,
		Checks:  make(map[string]string),
	}
	healthy := true

	if s.schedule != nil {
		if s.schedule.IsRunning() {
			response.Checks["scheduler"] = "ok"
			if next := s.schedule.GetNextRun(); !next.IsZero() {
				response.NextRun = next.UTC().Format(time.RFC3339)
			}
		} else {
			healthy = false
			response.Checks["scheduler"] = "stopped"
		}
	}

	if s.provider != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := s.provider.Ping(ctx); err != nil {
			healthy = false
			response.Checks["market_data"] = fmt.Sprintf("error: %v", err)
		} else {
			response.Checks["market_data"] = "ok"
		}
	}

	response.Duration = time.Since(start).String()

	if healthy {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
