// Package peer holds the inventory domain model: peers, groups, their
// invariants, and the repository contracts the rest of the service consumes.
package peer

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied to optional peer fields when absent from input.
const (
	DefaultAllowedIPs          = "10.0.0.2/32"
	DefaultDNS                 = "1.1.1.1"
	DefaultPersistentKeepalive = 25
)

// Peer is a VPN endpoint identified by its public key. Names are unique
// case-insensitively; public keys are unique exactly.
type Peer struct {
	ID                  string
	Name                string
	PublicKey           string
	PrivateKey          *string
	AllowedIPs          string
	DNS                 string
	PersistentKeepalive int
	GroupID             *string
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Group is a named, colored category peers may belong to. The inventory
// engine only reads groups; their lifecycle is managed separately.
type Group struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPeer builds a validated peer with defaults applied to missing optional
// fields. New peers always start pending: the inventory never asserts live
// connectivity it has not observed.
func NewPeer(name, publicKey string, privateKey *string) (*Peer, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidatePublicKey(publicKey); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Peer{
		ID:                  uuid.New().String(),
		Name:                name,
		PublicKey:           publicKey,
		PrivateKey:          privateKey,
		AllowedIPs:          DefaultAllowedIPs,
		DNS:                 DefaultDNS,
		PersistentKeepalive: DefaultPersistentKeepalive,
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// ApplyDefaults fills any unset optional field with the inventory defaults.
func (p *Peer) ApplyDefaults() {
	if p.AllowedIPs == "" {
		p.AllowedIPs = DefaultAllowedIPs
	}
	if p.DNS == "" {
		p.DNS = DefaultDNS
	}
	if p.PersistentKeepalive == 0 {
		p.PersistentKeepalive = DefaultPersistentKeepalive
	}
}

// NewGroup builds a validated group.
func NewGroup(name, color string) (*Group, error) {
	if err := ValidateGroupName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Group{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
