package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/infrastructure/config"
)

// Server exposes a registry over HTTP for Prometheus scraping
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a metrics server for the given registry
func NewServer(cfg config.MetricsConfig, registry *prometheus.Registry) *Server {
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start binds the listener and serves in a background goroutine
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind metrics server: %w", err)
	}
	s.listener = listener

	logger := common.LoggerFromContext(ctx)
	logger.Log(common.LevelInfo, "Metrics server listening", map[string]interface{}{
		"address": listener.Addr().String(),
	})

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(common.LevelError, "Metrics server stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
