package peer

import (
	"strings"

	apperrors "github.com/peervault/peervault/internal/shared/errors"
	"github.com/peervault/peervault/pkg/crypto"
)

const maxNameLength = 64

// ValidateName checks that a peer name is present and reasonably sized.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperrors.NewPeerError(apperrors.ErrCodePeerValidation, "peer name must not be empty", false, nil)
	}
	if len(trimmed) > maxNameLength {
		return apperrors.NewPeerError(apperrors.ErrCodePeerValidation, "peer name is too long", false, nil).
			WithMetadata("max_length", maxNameLength)
	}
	return nil
}

// ValidatePublicKey checks key format well-formedness. The key is otherwise
// treated as an opaque identity token.
func ValidatePublicKey(key string) error {
	if !crypto.IsValidKey(key) {
		return apperrors.NewPeerError(apperrors.ErrCodePeerValidation, "public key is not a valid WireGuard key", false, nil)
	}
	return nil
}

// ValidateGroupName checks that a group name is present.
func ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewGroupError(apperrors.ErrCodeGroupValidation, "group name must not be empty", false, nil)
	}
	return nil
}

// EqualNames reports whether two peer names collide under the inventory's
// case-insensitive uniqueness rule.
func EqualNames(a, b string) bool {
	return strings.EqualFold(a, b)
}

// NormalizeName returns the canonical lowercase form used for name lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
