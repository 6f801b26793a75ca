package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/internal/inventory/peer"
	apperrors "github.com/peervault/peervault/internal/shared/errors"
)

type groupRepository struct {
	store db.Store
}

// NewGroupRepository creates a group repository backed by the SQLite store.
func NewGroupRepository(store db.Store) peer.GroupRepository {
	return &groupRepository{store: store}
}

func (r *groupRepository) Create(ctx context.Context, g *peer.Group) error {
	row, err := r.store.CreateGroup(ctx, db.CreateGroupParams{
		ID:    g.ID,
		Name:  g.Name,
		Color: g.Color,
	})
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
			strings.Contains(sqliteErr.Error(), "groups.name") {
			return apperrors.NewGroupError(apperrors.ErrCodeGroupConflict,
				"Group with this name already exists", false, nil).
				WithMetadata("name", g.Name)
		}
		return apperrors.NewStoreError("failed to create group", err)
	}

	g.CreatedAt = row.CreatedAt
	g.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *groupRepository) Get(ctx context.Context, groupID string) (*peer.Group, error) {
	row, err := r.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, peer.ErrGroupNotFound(groupID)
		}
		return nil, apperrors.NewStoreError("failed to get group", err)
	}
	return toDomainGroup(&row), nil
}

func (r *groupRepository) List(ctx context.Context) ([]*peer.Group, error) {
	rows, err := r.store.GetAllGroups(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list groups", err)
	}

	groups := make([]*peer.Group, 0, len(rows))
	for i := range rows {
		groups = append(groups, toDomainGroup(&rows[i]))
	}
	return groups, nil
}

func (r *groupRepository) Delete(ctx context.Context, groupID string) error {
	if err := r.store.DeleteGroup(ctx, groupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return peer.ErrGroupNotFound(groupID)
		}
		return apperrors.NewStoreError("failed to delete group", err)
	}
	return nil
}
