// Package transfer implements the bulk reconciliation engine: export of the
// peer inventory to a portable bundle and import of candidate peer sets with
// per-record outcomes.
package transfer

import (
	"bytes"
	"encoding/json"
	"time"

	apperrors "github.com/peervault/peervault/internal/shared/errors"
)

// BundleVersion identifies the bundle format produced by this engine.
const BundleVersion = "1.0"

// Bundle is the versioned, self-describing representation of an exported
// inventory. Group membership travels by name; internal IDs and live status
// never leave the system.
type Bundle struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	PeersCount int          `json:"peers_count"`
	Peers      []BundlePeer `json:"peers"`
}

// BundlePeer is one peer record in a bundle. On import every field except
// Name is optional: a missing public key triggers provisioning, and missing
// settings fall back to the inventory defaults.
type BundlePeer struct {
	Name                string `json:"name"`
	PublicKey           string `json:"public_key,omitempty"`
	PrivateKey          string `json:"private_key,omitempty"`
	AllowedIPs          string `json:"allowed_ips,omitempty"`
	DNS                 string `json:"dns,omitempty"`
	PersistentKeepalive int    `json:"persistent_keepalive,omitempty"`
	GroupName           string `json:"group_name,omitempty"`
}

// ParseBundle extracts candidate peer records from raw import input. Both a
// full bundle object (anything with a "peers" array, including our own
// exports) and a bare array of peer records are accepted. Any other shape is
// rejected before reconciliation begins.
func ParseBundle(data []byte) ([]BundlePeer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, apperrors.NewBundleError(apperrors.ErrCodeBundleInvalid, "import input is empty", nil)
	}

	if trimmed[0] == '[' {
		var peers []BundlePeer
		if err := json.Unmarshal(trimmed, &peers); err != nil {
			return nil, apperrors.NewBundleError(apperrors.ErrCodeBundleInvalid, "import input is not a valid peer array", err)
		}
		return peers, nil
	}

	var wrapper struct {
		Peers *[]BundlePeer `json:"peers"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, apperrors.NewBundleError(apperrors.ErrCodeBundleInvalid, "import input is not valid JSON", err)
	}
	if wrapper.Peers == nil {
		return nil, apperrors.NewBundleError(apperrors.ErrCodeBundleInvalid, `import input has no "peers" array`, nil)
	}
	return *wrapper.Peers, nil
}
