// Package store implements the domain repositories on top of the SQLite
// store, translating rows to entities and constraint violations to domain
// conflict errors.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/internal/inventory/peer"
	apperrors "github.com/peervault/peervault/internal/shared/errors"
)

type peerRepository struct {
	store db.Store
}

// NewPeerRepository creates a peer repository backed by the SQLite store.
func NewPeerRepository(store db.Store) peer.Repository {
	return &peerRepository{store: store}
}

func (r *peerRepository) Create(ctx context.Context, p *peer.Peer) error {
	params := db.CreatePeerParams{
		ID:                  p.ID,
		Name:                p.Name,
		PublicKey:           p.PublicKey,
		AllowedIps:          p.AllowedIPs,
		Dns:                 p.DNS,
		PersistentKeepalive: int64(p.PersistentKeepalive),
		Status:              p.Status.String(),
	}
	if p.PrivateKey != nil {
		params.PrivateKey = sql.NullString{String: *p.PrivateKey, Valid: true}
	}
	if p.GroupID != nil {
		params.GroupID = sql.NullString{String: *p.GroupID, Valid: true}
	}

	row, err := r.store.CreatePeer(ctx, params)
	if err != nil {
		if conflictErr := mapPeerConflict(err, p); conflictErr != nil {
			return conflictErr
		}
		return apperrors.NewStoreError("failed to create peer", err)
	}

	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *peerRepository) Get(ctx context.Context, peerID string) (*peer.Peer, error) {
	row, err := r.store.GetPeer(ctx, peerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, peer.ErrNotFound(peerID)
		}
		return nil, apperrors.NewStoreError("failed to get peer", err)
	}
	return toDomainPeer(&row), nil
}

func (r *peerRepository) GetByName(ctx context.Context, name string) (*peer.Peer, error) {
	row, err := r.store.GetPeerByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, peer.ErrNotFound(name)
		}
		return nil, apperrors.NewStoreError("failed to get peer by name", err)
	}
	return toDomainPeer(&row), nil
}

func (r *peerRepository) List(ctx context.Context) ([]*peer.Peer, error) {
	rows, err := r.store.GetAllPeers(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list peers", err)
	}

	peers := make([]*peer.Peer, 0, len(rows))
	for i := range rows {
		peers = append(peers, toDomainPeer(&rows[i]))
	}
	return peers, nil
}

func (r *peerRepository) Delete(ctx context.Context, peerID string) error {
	if err := r.store.DeletePeer(ctx, peerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return peer.ErrNotFound(peerID)
		}
		return apperrors.NewStoreError("failed to delete peer", err)
	}
	return nil
}

func (r *peerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := r.store.PeerExistsByName(ctx, name)
	if err != nil {
		return false, apperrors.NewStoreError("failed to check peer name", err)
	}
	return exists, nil
}

func (r *peerRepository) ExistsByPublicKey(ctx context.Context, publicKey string) (bool, error) {
	exists, err := r.store.PeerExistsByPublicKey(ctx, publicKey)
	if err != nil {
		return false, apperrors.NewStoreError("failed to check peer public key", err)
	}
	return exists, nil
}

func (r *peerRepository) UpdateStatus(ctx context.Context, peerID string, status peer.Status) error {
	if !status.IsValid() {
		return apperrors.NewPeerError(apperrors.ErrCodePeerValidation,
			fmt.Sprintf("invalid status %q", status), false, nil)
	}
	err := r.store.UpdatePeerStatus(ctx, db.UpdatePeerStatusParams{ID: peerID, Status: status.String()})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return peer.ErrNotFound(peerID)
		}
		return apperrors.NewStoreError("failed to update peer status", err)
	}
	return nil
}

func (r *peerRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.store.CountPeers(ctx)
	if err != nil {
		return 0, apperrors.NewStoreError("failed to count peers", err)
	}
	return count, nil
}

// mapPeerConflict converts a sqlite unique-constraint violation into the
// matching domain conflict, or returns nil when err is something else. This
// is what turns a lost uniqueness race into an ordinary per-record failure.
func mapPeerConflict(err error, p *peer.Peer) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
		sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return nil
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "peers.public_key"):
		return peer.ErrPublicKeyExists(p.PublicKey)
	case strings.Contains(msg, "peers.name"):
		return peer.ErrNameExists(p.Name)
	default:
		return apperrors.NewPeerError(apperrors.ErrCodePeerConflict, "peer conflicts with an existing record", false, err)
	}
}
