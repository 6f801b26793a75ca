package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the minimal database handle both *sql.DB and *sql.Tx satisfy.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries executes typed queries against a database handle.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Querier defines all typed query operations.
type Querier interface {
	CreatePeer(ctx context.Context, arg CreatePeerParams) (Peer, error)
	GetPeer(ctx context.Context, id string) (Peer, error)
	GetPeerByName(ctx context.Context, name string) (Peer, error)
	GetPeerByPublicKey(ctx context.Context, publicKey string) (Peer, error)
	GetAllPeers(ctx context.Context) ([]Peer, error)
	DeletePeer(ctx context.Context, id string) error
	UpdatePeerStatus(ctx context.Context, arg UpdatePeerStatusParams) error
	PeerExistsByName(ctx context.Context, name string) (bool, error)
	PeerExistsByPublicKey(ctx context.Context, publicKey string) (bool, error)
	CountPeers(ctx context.Context) (int64, error)

	CreateGroup(ctx context.Context, arg CreateGroupParams) (Group, error)
	GetGroup(ctx context.Context, id string) (Group, error)
	GetAllGroups(ctx context.Context) ([]Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

var _ Querier = (*Queries)(nil)

const peerColumns = `id, name, public_key, private_key, allowed_ips, dns,
	persistent_keepalive, group_id, status, created_at, updated_at`

// CreatePeerParams holds the values for inserting a peer.
type CreatePeerParams struct {
	ID                  string
	Name                string
	PublicKey           string
	PrivateKey          sql.NullString
	AllowedIps          string
	Dns                 string
	PersistentKeepalive int64
	GroupID             sql.NullString
	Status              string
}

// CreatePeer inserts a peer and returns the stored row. The unique indexes on
// name and public_key make the insert itself enforce inventory uniqueness.
func (q *Queries) CreatePeer(ctx context.Context, arg CreatePeerParams) (Peer, error) {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO peers (id, name, public_key, private_key, allowed_ips, dns,
			persistent_keepalive, group_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Name, arg.PublicKey, arg.PrivateKey, arg.AllowedIps, arg.Dns,
		arg.PersistentKeepalive, arg.GroupID, arg.Status, now, now,
	)
	if err != nil {
		return Peer{}, err
	}
	return Peer{
		ID:                  arg.ID,
		Name:                arg.Name,
		PublicKey:           arg.PublicKey,
		PrivateKey:          arg.PrivateKey,
		AllowedIps:          arg.AllowedIps,
		Dns:                 arg.Dns,
		PersistentKeepalive: arg.PersistentKeepalive,
		GroupID:             arg.GroupID,
		Status:              arg.Status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// GetPeer returns the peer with the given ID.
func (q *Queries) GetPeer(ctx context.Context, id string) (Peer, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+peerColumns+` FROM peers WHERE id = ?`, id)
	return scanPeer(row)
}

// GetPeerByName returns the peer with the given name (case-insensitive).
func (q *Queries) GetPeerByName(ctx context.Context, name string) (Peer, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+peerColumns+` FROM peers WHERE name = ? COLLATE NOCASE`, name)
	return scanPeer(row)
}

// GetPeerByPublicKey returns the peer with the given public key.
func (q *Queries) GetPeerByPublicKey(ctx context.Context, publicKey string) (Peer, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+peerColumns+` FROM peers WHERE public_key = ?`, publicKey)
	return scanPeer(row)
}

// GetAllPeers returns all peers ordered by name. The stable ordering keeps
// exports of an unchanged inventory identical.
func (q *Queries) GetAllPeers(ctx context.Context) ([]Peer, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+peerColumns+` FROM peers ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peers []Peer
	for rows.Next() {
		p, err := scanPeerRows(rows)
		if err != nil {
			return nil, err
		}
		peers = append(peers, p)
	}
	return peers, rows.Err()
}

// DeletePeer removes a peer by ID.
func (q *Queries) DeletePeer(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM peers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePeerStatusParams holds the values for a peer status change.
type UpdatePeerStatusParams struct {
	ID     string
	Status string
}

// UpdatePeerStatus changes a peer's status.
func (q *Queries) UpdatePeerStatus(ctx context.Context, arg UpdatePeerStatusParams) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE peers SET status = ?, updated_at = ? WHERE id = ?`,
		arg.Status, time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PeerExistsByName reports whether any peer has the given name, compared
// case-insensitively.
func (q *Queries) PeerExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM peers WHERE name = ? COLLATE NOCASE)`, name,
	).Scan(&exists)
	return exists, err
}

// PeerExistsByPublicKey reports whether any peer has the given public key.
func (q *Queries) PeerExistsByPublicKey(ctx context.Context, publicKey string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM peers WHERE public_key = ?)`, publicKey,
	).Scan(&exists)
	return exists, err
}

// CountPeers returns the number of peers in the inventory.
func (q *Queries) CountPeers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM peers`).Scan(&count)
	return count, err
}

// CreateGroupParams holds the values for inserting a group.
type CreateGroupParams struct {
	ID    string
	Name  string
	Color string
}

// CreateGroup inserts a group and returns the stored row.
func (q *Queries) CreateGroup(ctx context.Context, arg CreateGroupParams) (Group, error) {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		arg.ID, arg.Name, arg.Color, now, now,
	)
	if err != nil {
		return Group{}, err
	}
	return Group{ID: arg.ID, Name: arg.Name, Color: arg.Color, CreatedAt: now, UpdatedAt: now}, nil
}

// GetGroup returns the group with the given ID.
func (q *Queries) GetGroup(ctx context.Context, id string) (Group, error) {
	var g Group
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at, updated_at FROM groups WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.Color, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// GetAllGroups returns all groups ordered by name.
func (q *Queries) GetAllGroups(ctx context.Context) ([]Group, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, color, created_at, updated_at FROM groups ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Color, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// DeleteGroup removes a group by ID. Member peers fall back to ungrouped via
// the ON DELETE SET NULL reference.
func (q *Queries) DeleteGroup(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanPeer(row *sql.Row) (Peer, error) {
	var p Peer
	err := row.Scan(&p.ID, &p.Name, &p.PublicKey, &p.PrivateKey, &p.AllowedIps, &p.Dns,
		&p.PersistentKeepalive, &p.GroupID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanPeerRows(rows *sql.Rows) (Peer, error) {
	var p Peer
	err := rows.Scan(&p.ID, &p.Name, &p.PublicKey, &p.PrivateKey, &p.AllowedIps, &p.Dns,
		&p.PersistentKeepalive, &p.GroupID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
