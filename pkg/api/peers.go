package api

import "time"

// Peer is the API representation of an inventory peer. Private keys are only
// returned on creation when the server generated them.
type Peer struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	PublicKey           string    `json:"public_key"`
	PrivateKey          *string   `json:"private_key,omitempty"`
	AllowedIPs          string    `json:"allowed_ips"`
	DNS                 string    `json:"dns"`
	PersistentKeepalive int       `json:"persistent_keepalive"`
	GroupID             *string   `json:"group_id,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CreatePeerRequest creates a single peer. When PublicKey is nil the server
// provisions a fresh key pair.
type CreatePeerRequest struct {
	Name                string  `json:"name"`
	PublicKey           *string `json:"public_key,omitempty"`
	AllowedIPs          *string `json:"allowed_ips,omitempty"`
	DNS                 *string `json:"dns,omitempty"`
	PersistentKeepalive *int    `json:"persistent_keepalive,omitempty"`
	GroupID             *string `json:"group_id,omitempty"`
}

// Group is the API representation of a peer group.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGroupRequest creates a named, colored group.
type CreateGroupRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
