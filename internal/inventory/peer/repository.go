package peer

import "context"

// Repository defines peer data access.
type Repository interface {
	Create(ctx context.Context, p *Peer) error
	Get(ctx context.Context, peerID string) (*Peer, error)
	GetByName(ctx context.Context, name string) (*Peer, error)
	List(ctx context.Context) ([]*Peer, error)
	Delete(ctx context.Context, peerID string) error

	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByPublicKey(ctx context.Context, publicKey string) (bool, error)

	UpdateStatus(ctx context.Context, peerID string, status Status) error
	Count(ctx context.Context) (int64, error)
}

// GroupRepository defines group data access. The reconciliation engine only
// uses the read side; the write side serves the management API.
type GroupRepository interface {
	Create(ctx context.Context, g *Group) error
	Get(ctx context.Context, groupID string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
	Delete(ctx context.Context, groupID string) error
}
