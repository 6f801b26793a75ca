package transfer

import (
	"context"
	"strings"
	"sync"

	"github.com/peervault/peervault/internal/inventory/peer"
	apperrors "github.com/peervault/peervault/internal/shared/errors"
	"github.com/peervault/peervault/pkg/crypto"
	"github.com/peervault/peervault/pkg/logger"
)

// Conflict messages surfaced verbatim in per-record results.
const (
	msgNameExists = "Peer with this name already exists"
	msgKeyExists  = "Peer with this public key already exists"
)

// KeyProvisioner produces a fresh key pair on demand.
type KeyProvisioner interface {
	GenerateKeyPair() (*crypto.KeyPair, error)
}

// KeyProvisionerFunc adapts a function to the KeyProvisioner interface.
type KeyProvisionerFunc func() (*crypto.KeyPair, error)

func (f KeyProvisionerFunc) GenerateKeyPair() (*crypto.KeyPair, error) { return f() }

// Importer merges candidate peer sets into the inventory: one snapshot of
// existing names, keys, and groups up front, then record-by-record
// validation, key provisioning, group resolution, and insert.
//
// Imports are not transactional across records. A caller that cancels
// mid-batch keeps every record inserted so far; each insert is its own unit
// of durability. Callers needing whole-batch atomicity must provide their own
// transaction boundary.
type Importer struct {
	peers  peer.Repository
	groups peer.GroupRepository
	keys   KeyProvisioner
	logger *logger.Logger

	// mu serializes imports from snapshot read through last insert, so two
	// batches cannot validate against each other's stale snapshots. The
	// unique indexes in the store remain the backstop either way.
	mu sync.Mutex
}

// NewImporter creates an Importer over the given collaborators.
func NewImporter(peers peer.Repository, groups peer.GroupRepository, keys KeyProvisioner, log *logger.Logger) *Importer {
	return &Importer{
		peers:  peers,
		groups: groups,
		keys:   keys,
		logger: log.WithComponent("importer"),
	}
}

// snapshot is the one-time read of existing names, keys, and groups taken at
// the start of an import. The seen-sets grow as the batch inserts records so
// intra-batch duplicates are rejected too.
type snapshot struct {
	names    map[string]struct{}
	keys     map[string]struct{}
	groupIDs map[string]string // lowercased group name -> id
}

// Import processes candidates in input order and returns exactly one Result
// per candidate, in the same order. Individual record failures never abort
// the batch; the operation itself fails only when the initial snapshot reads
// fail.
func (i *Importer) Import(ctx context.Context, candidates []BundlePeer) ([]Result, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	op := i.logger.StartOp(ctx, "inventory_import", "candidates", len(candidates))

	snap, err := i.readSnapshot(ctx)
	if err != nil {
		op.Fail(err, "failed to read inventory snapshot")
		return nil, apperrors.NewBundleError(apperrors.ErrCodeSnapshotRead, "failed to read inventory snapshot", err)
	}

	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// Keep the one-result-per-record contract even when the caller
			// gives up: already-inserted records stay, the rest fail.
			results = append(results, Result{Name: candidate.Name, Error: ctxErr.Error()})
			continue
		}
		results = append(results, i.importOne(ctx, snap, candidate))
	}

	summary := Summarize(results)
	op.Complete("import finished", "succeeded", summary.Succeeded, "failed", summary.Failed)
	return results, nil
}

func (i *Importer) readSnapshot(ctx context.Context) (*snapshot, error) {
	existing, err := i.peers.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := i.groups.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		names:    make(map[string]struct{}, len(existing)),
		keys:     make(map[string]struct{}, len(existing)),
		groupIDs: make(map[string]string, len(groups)),
	}
	for _, p := range existing {
		snap.names[peer.NormalizeName(p.Name)] = struct{}{}
		snap.keys[p.PublicKey] = struct{}{}
	}
	for _, g := range groups {
		snap.groupIDs[strings.ToLower(g.Name)] = g.ID
	}
	return snap, nil
}

// importOne runs the per-record pipeline: name collision check, key
// provisioning, key collision check, group resolution, defaulting, insert.
func (i *Importer) importOne(ctx context.Context, snap *snapshot, candidate BundlePeer) Result {
	if err := peer.ValidateName(candidate.Name); err != nil {
		return Result{Name: candidate.Name, Error: err.Error()}
	}

	// Name collision against the inventory and records accepted earlier in
	// this batch. Rejected records never get key material provisioned.
	if _, taken := snap.names[peer.NormalizeName(candidate.Name)]; taken {
		return Result{Name: candidate.Name, Error: msgNameExists}
	}

	publicKey := candidate.PublicKey
	var privateKey *string
	if publicKey == "" {
		pair, err := i.keys.GenerateKeyPair()
		if err != nil {
			return Result{Name: candidate.Name, Error: err.Error()}
		}
		publicKey = pair.PublicKey
		privateKey = &pair.PrivateKey
	} else {
		if err := peer.ValidatePublicKey(publicKey); err != nil {
			return Result{Name: candidate.Name, Error: err.Error()}
		}
		// A supplied private key is carried through, never validated.
		if candidate.PrivateKey != "" {
			privateKey = &candidate.PrivateKey
		}
	}

	if _, taken := snap.keys[publicKey]; taken {
		return Result{Name: candidate.Name, Error: msgKeyExists}
	}

	p, err := peer.NewPeer(candidate.Name, publicKey, privateKey)
	if err != nil {
		return Result{Name: candidate.Name, Error: err.Error()}
	}

	// Unresolved group names degrade to ungrouped, never to an error.
	if candidate.GroupName != "" {
		if id, ok := snap.groupIDs[strings.ToLower(candidate.GroupName)]; ok {
			p.GroupID = &id
		}
	}

	if candidate.AllowedIPs != "" {
		p.AllowedIPs = candidate.AllowedIPs
	}
	if candidate.DNS != "" {
		p.DNS = candidate.DNS
	}
	if candidate.PersistentKeepalive > 0 {
		p.PersistentKeepalive = candidate.PersistentKeepalive
	}

	if err := i.peers.Create(ctx, p); err != nil {
		// A lost uniqueness race surfaces as a constraint violation here and
		// becomes an ordinary per-record failure, exactly like the fast-path
		// snapshot rejections above.
		switch apperrors.CodeOf(err) {
		case apperrors.ErrCodePeerConflict:
			return Result{Name: candidate.Name, Error: msgNameExists}
		case apperrors.ErrCodePeerKeyConflict:
			return Result{Name: candidate.Name, Error: msgKeyExists}
		default:
			return Result{Name: candidate.Name, Error: err.Error()}
		}
	}

	snap.names[peer.NormalizeName(p.Name)] = struct{}{}
	snap.keys[p.PublicKey] = struct{}{}
	return Result{Success: true, Name: p.Name}
}
