package transfer

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/internal/inventory/peer"
	"github.com/peervault/peervault/internal/inventory/store"
	"github.com/peervault/peervault/pkg/crypto"
	"github.com/peervault/peervault/pkg/logger"
)

// fakeKeys hands out deterministic, distinct key pairs and counts calls.
type fakeKeys struct {
	calls int
}

func (f *fakeKeys) GenerateKeyPair() (*crypto.KeyPair, error) {
	f.calls++
	priv := make([]byte, 32)
	pub := make([]byte, 32)
	binary.BigEndian.PutUint32(priv[:4], uint32(f.calls))
	binary.BigEndian.PutUint32(pub[:4], uint32(f.calls))
	pub[31] = 1
	return &crypto.KeyPair{
		PrivateKey: base64.StdEncoding.EncodeToString(priv),
		PublicKey:  base64.StdEncoding.EncodeToString(pub),
	}, nil
}

func staticKey(b byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = b
	}
	return base64.StdEncoding.EncodeToString(raw)
}

type engineEnv struct {
	peers  peer.Repository
	groups peer.GroupRepository
	keys   *fakeKeys
	imp    *Importer
	exp    *Exporter
}

func newEngineEnv(t *testing.T) *engineEnv {
	t.Helper()

	_, s := db.NewTestDB(t)
	peers := store.NewPeerRepository(s)
	groups := store.NewGroupRepository(s)
	keys := &fakeKeys{}
	log := logger.NewDevelopment("transfer-test")

	return &engineEnv{
		peers:  peers,
		groups: groups,
		keys:   keys,
		imp:    NewImporter(peers, groups, keys, log),
		exp:    NewExporter(peers, groups, log),
	}
}

func (e *engineEnv) seedGroup(t *testing.T, name string) *peer.Group {
	t.Helper()
	g, err := peer.NewGroup(name, "#3366ff")
	require.NoError(t, err)
	require.NoError(t, e.groups.Create(context.Background(), g))
	return g
}

func (e *engineEnv) seedPeer(t *testing.T, name, key string) *peer.Peer {
	t.Helper()
	p, err := peer.NewPeer(name, key, nil)
	require.NoError(t, err)
	require.NoError(t, e.peers.Create(context.Background(), p))
	return p
}

func envLogger() *logger.Logger {
	return logger.NewDevelopment("transfer-test")
}

// failingPeerRepo wraps a real repository and injects failures.
type failingPeerRepo struct {
	peer.Repository
	listErr      error
	failCreateAt string // peer name whose insert fails
}

func (f *failingPeerRepo) List(ctx context.Context) ([]*peer.Peer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Repository.List(ctx)
}

func (f *failingPeerRepo) Create(ctx context.Context, p *peer.Peer) error {
	if f.failCreateAt != "" && peer.EqualNames(p.Name, f.failCreateAt) {
		return errors.New("database is locked")
	}
	return f.Repository.Create(ctx, p)
}
