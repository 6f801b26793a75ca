package store

import (
	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/internal/inventory/peer"
)

func toDomainPeer(row *db.Peer) *peer.Peer {
	p := &peer.Peer{
		ID:                  row.ID,
		Name:                row.Name,
		PublicKey:           row.PublicKey,
		AllowedIPs:          row.AllowedIps,
		DNS:                 row.Dns,
		PersistentKeepalive: int(row.PersistentKeepalive),
		Status:              peer.Status(row.Status),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
	if row.PrivateKey.Valid {
		v := row.PrivateKey.String
		p.PrivateKey = &v
	}
	if row.GroupID.Valid {
		v := row.GroupID.String
		p.GroupID = &v
	}
	return p
}

func toDomainGroup(row *db.Group) *peer.Group {
	return &peer.Group{
		ID:        row.ID,
		Name:      row.Name,
		Color:     row.Color,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
