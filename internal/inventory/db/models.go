package db

import (
	"database/sql"
	"time"
)

// Peer is the database row for an inventory peer.
type Peer struct {
	ID                  string
	Name                string
	PublicKey           string
	PrivateKey          sql.NullString
	AllowedIps          string
	Dns                 string
	PersistentKeepalive int64
	GroupID             sql.NullString
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Group is the database row for a peer group.
type Group struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
