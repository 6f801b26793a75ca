package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_EmptyInventory(t *testing.T) {
	env := newEngineEnv(t)

	bundle, err := env.exp.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BundleVersion, bundle.Version)
	assert.Zero(t, bundle.PeersCount)
	assert.Empty(t, bundle.Peers)
	assert.False(t, bundle.ExportedAt.IsZero())
}

func TestExport_ResolvesGroupNames(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	g := env.seedGroup(t, "Office")
	p := env.seedPeer(t, "laptop", staticKey(1))
	require.NoError(t, env.peers.Delete(ctx, p.ID))

	grouped, err := env.imp.Import(ctx, []BundlePeer{{Name: "laptop", GroupName: g.Name}})
	require.NoError(t, err)
	require.True(t, grouped[0].Success)
	env.seedPeer(t, "ungrouped", staticKey(2))

	bundle, err := env.exp.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, bundle.PeersCount)
	require.Len(t, bundle.Peers, 2)

	// GetAllPeers orders by name: laptop, ungrouped.
	assert.Equal(t, "Office", bundle.Peers[0].GroupName)
	assert.Empty(t, bundle.Peers[1].GroupName)
}

func TestExport_Idempotent(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	env.seedGroup(t, "Office")
	env.seedPeer(t, "alpha", staticKey(1))
	env.seedPeer(t, "beta", staticKey(2))

	first, err := env.exp.Export(ctx)
	require.NoError(t, err)
	second, err := env.exp.Export(ctx)
	require.NoError(t, err)

	// Identical except for the export timestamp.
	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.PeersCount, second.PeersCount)
	assert.Equal(t, first.Peers, second.Peers)
}

func TestExportImport_RoundTrip(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	g := env.seedGroup(t, "Office")

	_, err := env.imp.Import(ctx, []BundlePeer{
		{Name: "alpha", PublicKey: staticKey(1), AllowedIPs: "10.8.0.2/32", DNS: "8.8.8.8", PersistentKeepalive: 37, GroupName: g.Name},
		{Name: "beta"},
	})
	require.NoError(t, err)

	bundle, err := env.exp.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, bundle.PeersCount)

	// Import the export into an empty inventory.
	target := newEngineEnv(t)
	target.seedGroup(t, "Office")

	results, err := target.imp.Import(ctx, bundle.Peers)
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Success, "round-trip import of %q failed: %s", r.Name, r.Error)
	}

	reexport, err := target.exp.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, bundle.PeersCount, reexport.PeersCount)

	for i := range bundle.Peers {
		orig, copied := bundle.Peers[i], reexport.Peers[i]
		assert.Equal(t, orig.Name, copied.Name)
		assert.Equal(t, orig.AllowedIPs, copied.AllowedIPs)
		assert.Equal(t, orig.DNS, copied.DNS)
		assert.Equal(t, orig.PersistentKeepalive, copied.PersistentKeepalive)
		assert.Equal(t, orig.GroupName, copied.GroupName)
		// Keys present in the bundle are preserved exactly.
		assert.Equal(t, orig.PublicKey, copied.PublicKey)
		assert.Equal(t, orig.PrivateKey, copied.PrivateKey)
	}
}

func TestExport_FailsWhenReadFails(t *testing.T) {
	env := newEngineEnv(t)

	failing := &failingPeerRepo{Repository: env.peers, listErr: assert.AnError}
	exp := NewExporter(failing, env.groups, envLogger())

	_, err := exp.Export(context.Background())
	require.Error(t, err)
}
