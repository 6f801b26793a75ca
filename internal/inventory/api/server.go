// Package api exposes the inventory over HTTP: peer and group management
// plus the bulk export and import endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/peervault/peervault/internal/inventory/events"
	"github.com/peervault/peervault/internal/inventory/peer"
	"github.com/peervault/peervault/internal/inventory/transfer"
	applogger "github.com/peervault/peervault/pkg/logger"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DefaultConfig returns sensible server defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		AllowedOrigins:  []string{"*"},
	}
}

// KeyProvisioner generates key pairs for peers created without one.
type KeyProvisioner = transfer.KeyProvisioner

// Server is the inventory HTTP API server.
type Server struct {
	config   Config
	logger   *applogger.Logger
	peers    peer.Repository
	groups   peer.GroupRepository
	keys     KeyProvisioner
	importer *transfer.Importer
	exporter *transfer.Exporter
	bus      *events.InventoryEventBus

	httpServer *http.Server
}

// NewServer creates the API server over the given dependencies.
func NewServer(
	cfg Config,
	log *applogger.Logger,
	peers peer.Repository,
	groups peer.GroupRepository,
	keys KeyProvisioner,
	importer *transfer.Importer,
	exporter *transfer.Exporter,
	bus *events.InventoryEventBus,
) *Server {
	return &Server{
		config:   cfg,
		logger:   log.WithComponent("api"),
		peers:    peers,
		groups:   groups,
		keys:     keys,
		importer: importer,
		exporter: exporter,
		bus:      bus,
	}
}

// Start begins serving HTTP requests. Blocks until the listener fails or the
// server is shut down.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := Chain(
		RequestID(s.logger),
		Logging(),
		CORS(s.config.AllowedOrigins),
	)(mux)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("starting API server", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("API server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler builds the full middleware-wrapped handler without binding a
// listener. Used by tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return Chain(
		RequestID(s.logger),
		Logging(),
		CORS(s.config.AllowedOrigins),
	)(mux)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/v1/peers", s.handleListPeers)
	mux.HandleFunc("POST /api/v1/peers", s.handleCreatePeer)
	mux.HandleFunc("GET /api/v1/peers/{peerID}", s.handleGetPeer)
	mux.HandleFunc("DELETE /api/v1/peers/{peerID}", s.handleDeletePeer)

	mux.HandleFunc("GET /api/v1/groups", s.handleListGroups)
	mux.HandleFunc("POST /api/v1/groups", s.handleCreateGroup)
	mux.HandleFunc("DELETE /api/v1/groups/{groupID}", s.handleDeleteGroup)

	mux.HandleFunc("GET /api/v1/export", s.handleExport)
	mux.HandleFunc("POST /api/v1/import", s.handleImport)
}
