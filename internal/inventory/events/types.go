// Package events defines the inventory event bus and its event types.
package events

import "time"

// Event type constants.
const (
	EventImportCompleted = "inventory.import.completed"
	EventExportCompleted = "inventory.export.completed"
	EventPeerCreated     = "inventory.peer.created"
	EventPeerDeleted     = "inventory.peer.deleted"
)

// ImportCompletedEvent is fired once per import batch. UI refresh and
// notification tooling subscribe to it.
type ImportCompletedEvent struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// ExportCompletedEvent is fired after a successful export.
type ExportCompletedEvent struct {
	PeersCount int       `json:"peers_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// PeerCreatedEvent is fired when a single peer is added outside of an import.
type PeerCreatedEvent struct {
	PeerID    string    `json:"peer_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// PeerDeletedEvent is fired when a peer is removed.
type PeerDeletedEvent struct {
	PeerID    string    `json:"peer_id"`
	Timestamp time.Time `json:"timestamp"`
}
