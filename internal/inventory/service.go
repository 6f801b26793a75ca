// Package inventory wires the peer inventory service together: storage,
// repositories, the reconciliation engine, events, and the HTTP API.
package inventory

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peervault/peervault/internal/inventory/api"
	"github.com/peervault/peervault/internal/inventory/config"
	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/internal/inventory/events"
	"github.com/peervault/peervault/internal/inventory/store"
	"github.com/peervault/peervault/internal/inventory/transfer"
	"github.com/peervault/peervault/pkg/crypto"
	"github.com/peervault/peervault/pkg/logger"
)

// Service is the composed inventory service.
type Service struct {
	config *config.Config
	logger *logger.Logger

	store  db.Store
	bus    *events.InventoryEventBus
	server *api.Server

	errCh chan error
}

// NewService builds the service in dependency order.
func NewService(cfg *config.Config, log *logger.Logger) (*Service, error) {
	st, err := db.NewStore(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	peers := store.NewPeerRepository(st)
	groups := store.NewGroupRepository(st)

	keys := transfer.KeyProvisionerFunc(crypto.GenerateKeyPair)
	importer := transfer.NewImporter(peers, groups, keys, log)
	exporter := transfer.NewExporter(peers, groups, log)

	bus := events.NewInventoryEventBus(log.Unwrap())

	server := api.NewServer(cfg.API, log, peers, groups, keys, importer, exporter, bus)

	return &Service{
		config: cfg,
		logger: log.WithComponent("service"),
		store:  st,
		bus:    bus,
		server: server,
		errCh:  make(chan error, 1),
	}, nil
}

// Start launches the HTTP server in the background.
func (s *Service) Start(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store is not reachable: %w", err)
	}

	s.logger.Info("starting service",
		"name", s.config.Service.Name,
		"version", s.config.Service.Version,
	)

	go func() {
		if err := s.server.Start(); err != nil {
			s.errCh <- err
		}
	}()

	return nil
}

// WaitForShutdown blocks until a termination signal arrives or the server
// fails, then shuts down cleanly.
func (s *Service) WaitForShutdown(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-s.errCh:
		s.logger.Error("server failed", "error", err)
		return s.stopWith(ctx, err)
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
	}

	return s.Stop(ctx)
}

// Stop shuts down the server, event bus, and store in reverse order.
func (s *Service) Stop(ctx context.Context) error {
	return s.stopWith(ctx, nil)
}

func (s *Service) stopWith(ctx context.Context, cause error) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed", "error", err)
		if cause == nil {
			cause = err
		}
	}

	if err := s.bus.Close(); err != nil {
		s.logger.Error("event bus close failed", "error", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("store close failed", "error", err)
		if cause == nil {
			cause = err
		}
	}

	s.logger.Info("service stopped")
	return cause
}
