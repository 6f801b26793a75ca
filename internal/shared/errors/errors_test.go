package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestBaseError_Error(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewPeerError(ErrCodePeerConflict, "peer already exists", false, cause)

	msg := err.Error()
	if !strings.Contains(msg, "peer_conflict") || !strings.Contains(msg, "disk full") {
		t.Errorf("unexpected error string: %q", msg)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
}

func TestWithMetadata_DoesNotMutateOriginal(t *testing.T) {
	base := NewPeerError(ErrCodePeerValidation, "bad name", false, nil)
	enriched := base.WithMetadata("name", "alpha")

	if len(base.Metadata()) != 0 {
		t.Errorf("original error metadata mutated: %v", base.Metadata())
	}
	if enriched.Metadata()["name"] != "alpha" {
		t.Errorf("expected metadata on enriched error, got %v", enriched.Metadata())
	}
	if enriched.Code() != base.Code() {
		t.Error("expected enriched error to keep the code")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewGroupError(ErrCodeGroupNotFound, "no such group", false, nil)); got != ErrCodeGroupNotFound {
		t.Errorf("CodeOf = %q, want %q", got, ErrCodeGroupNotFound)
	}
	if got := CodeOf(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain error) = %q, want %q", got, ErrCodeInternal)
	}

	// Wrapped DomainErrors are still recognized.
	wrapped := fmt.Errorf("outer: %w", NewPeerError(ErrCodePeerNotFound, "gone", false, nil))
	if got := CodeOf(wrapped); got != ErrCodePeerNotFound {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ErrCodePeerNotFound)
	}
}

func TestConflictAndNotFoundHelpers(t *testing.T) {
	if !IsConflict(NewPeerError(ErrCodePeerKeyConflict, "key taken", false, nil)) {
		t.Error("expected key conflict to be a conflict")
	}
	if IsConflict(NewStoreError("io error", nil)) {
		t.Error("store error is not a conflict")
	}
	if !IsNotFound(NewPeerError(ErrCodePeerNotFound, "gone", false, nil)) {
		t.Error("expected peer_not_found to be not-found")
	}
}
