package db

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// NewTestDB creates a new in-memory SQLite database for testing.
func NewTestDB(t *testing.T) (*sql.DB, Store) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive and consistent.
	db.SetMaxOpenConns(1)

	store := NewStoreFromDB(db)
	if err := store.(*SQLStore).Setup(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to setup test database schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db, store
}

// SeedTestGroup creates a group for tests.
func SeedTestGroup(t *testing.T, store Store, params CreateGroupParams) Group {
	t.Helper()

	group, err := store.CreateGroup(context.Background(), params)
	if err != nil {
		t.Fatalf("failed to seed test group: %v", err)
	}
	return group
}

// SeedTestPeer creates a peer for tests.
func SeedTestPeer(t *testing.T, store Store, params CreatePeerParams) Peer {
	t.Helper()

	peer, err := store.CreatePeer(context.Background(), params)
	if err != nil {
		t.Fatalf("failed to seed test peer: %v", err)
	}
	return peer
}
