package events

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gookit/event"
)

// InventoryEventBus wraps the gookit event manager for inventory events.
type InventoryEventBus struct {
	bus    *event.Manager
	logger *slog.Logger
}

// NewInventoryEventBus creates a new event bus for inventory events.
func NewInventoryEventBus(logger *slog.Logger) *InventoryEventBus {
	return &InventoryEventBus{
		bus:    event.NewManager("inventory"),
		logger: logger,
	}
}

// PublishImportCompleted publishes the per-batch import completion event.
func (eb *InventoryEventBus) PublishImportCompleted(succeeded, failed int, duration time.Duration) error {
	payload := ImportCompletedEvent{
		Succeeded: succeeded,
		Failed:    failed,
		Duration:  duration,
		Timestamp: time.Now(),
	}

	eb.logger.Debug("publishing import completed event",
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed))

	err, _ := eb.bus.Fire(EventImportCompleted, event.M{"payload": payload})
	if err != nil {
		return fmt.Errorf("failed to publish import completed event: %w", err)
	}
	return nil
}

// PublishExportCompleted publishes the export completion event.
func (eb *InventoryEventBus) PublishExportCompleted(peersCount int) error {
	payload := ExportCompletedEvent{
		PeersCount: peersCount,
		Timestamp:  time.Now(),
	}

	err, _ := eb.bus.Fire(EventExportCompleted, event.M{"payload": payload})
	if err != nil {
		return fmt.Errorf("failed to publish export completed event: %w", err)
	}
	return nil
}

// PublishPeerCreated publishes a peer creation event.
func (eb *InventoryEventBus) PublishPeerCreated(peerID, name string) error {
	payload := PeerCreatedEvent{
		PeerID:    peerID,
		Name:      name,
		Timestamp: time.Now(),
	}

	err, _ := eb.bus.Fire(EventPeerCreated, event.M{"payload": payload})
	if err != nil {
		return fmt.Errorf("failed to publish peer created event: %w", err)
	}
	return nil
}

// PublishPeerDeleted publishes a peer deletion event.
func (eb *InventoryEventBus) PublishPeerDeleted(peerID string) error {
	payload := PeerDeletedEvent{
		PeerID:    peerID,
		Timestamp: time.Now(),
	}

	err, _ := eb.bus.Fire(EventPeerDeleted, event.M{"payload": payload})
	if err != nil {
		return fmt.Errorf("failed to publish peer deleted event: %w", err)
	}
	return nil
}

// SubscribeToImportCompleted registers a listener for import completion.
func (eb *InventoryEventBus) SubscribeToImportCompleted(listener event.Listener) {
	eb.bus.On(EventImportCompleted, listener, event.Normal)
}

// SubscribeToExportCompleted registers a listener for export completion.
func (eb *InventoryEventBus) SubscribeToExportCompleted(listener event.Listener) {
	eb.bus.On(EventExportCompleted, listener, event.Normal)
}

// SubscribeToPeerEvents registers a listener for peer lifecycle events.
func (eb *InventoryEventBus) SubscribeToPeerEvents(listener event.Listener) {
	eb.bus.On(EventPeerCreated, listener, event.Normal)
	eb.bus.On(EventPeerDeleted, listener, event.Normal)
}

// Close shuts the bus down and releases its listeners.
func (eb *InventoryEventBus) Close() error {
	eb.bus.Clear()
	return nil
}
