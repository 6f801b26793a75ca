package peer

import (
	apperrors "github.com/peervault/peervault/internal/shared/errors"
)

// Sentinel-style constructors for the conflicts the inventory can report.
// The messages are part of the import result contract and surface verbatim
// to callers.

// ErrNameExists reports a case-insensitive peer name collision.
func ErrNameExists(name string) apperrors.DomainError {
	return apperrors.NewPeerError(apperrors.ErrCodePeerConflict,
		"Peer with this name already exists", false, nil).
		WithMetadata("name", name)
}

// ErrPublicKeyExists reports a public key collision.
func ErrPublicKeyExists(publicKey string) apperrors.DomainError {
	return apperrors.NewPeerError(apperrors.ErrCodePeerKeyConflict,
		"Peer with this public key already exists", false, nil).
		WithMetadata("public_key", publicKey)
}

// ErrNotFound reports a missing peer.
func ErrNotFound(peerID string) apperrors.DomainError {
	return apperrors.NewPeerError(apperrors.ErrCodePeerNotFound,
		"peer not found", false, nil).
		WithMetadata("peer_id", peerID)
}

// ErrGroupNotFound reports a missing group.
func ErrGroupNotFound(groupID string) apperrors.DomainError {
	return apperrors.NewGroupError(apperrors.ErrCodeGroupNotFound,
		"group not found", false, nil).
		WithMetadata("group_id", groupID)
}
