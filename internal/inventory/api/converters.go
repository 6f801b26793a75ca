package api

import (
	"github.com/peervault/peervault/internal/inventory/peer"
	pkgapi "github.com/peervault/peervault/pkg/api"
)

func toAPIPeer(p *peer.Peer, includePrivateKey bool) pkgapi.Peer {
	out := pkgapi.Peer{
		ID:                  p.ID,
		Name:                p.Name,
		PublicKey:           p.PublicKey,
		AllowedIPs:          p.AllowedIPs,
		DNS:                 p.DNS,
		PersistentKeepalive: p.PersistentKeepalive,
		GroupID:             p.GroupID,
		Status:              string(p.Status),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	if includePrivateKey {
		out.PrivateKey = p.PrivateKey
	}
	return out
}

func toAPIPeers(peers []*peer.Peer) []pkgapi.Peer {
	out := make([]pkgapi.Peer, len(peers))
	for i, p := range peers {
		out[i] = toAPIPeer(p, false)
	}
	return out
}

func toAPIGroup(g *peer.Group) pkgapi.Group {
	return pkgapi.Group{
		ID:        g.ID,
		Name:      g.Name,
		Color:     g.Color,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func toAPIGroups(groups []*peer.Group) []pkgapi.Group {
	out := make([]pkgapi.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}
	return out
}
