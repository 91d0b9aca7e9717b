package store

import (
	"context"
	"database/sql"

	"greychat/models"
)

// Queries composes the other stores for the client's read-heavy views.
// It holds no state of its own.
type Queries struct {
	db            *sql.DB
	users         *IdentityStore
	relationships *RelationshipStore
}

func NewQueries(db *sql.DB, users *IdentityStore, relationships *RelationshipStore) *Queries {
	return &Queries{db: db, users: users, relationships: relationships}
}

// ListOtherUsers returns the profile of every registered user except the
// viewer, for the "find people" screen.
func (q *Queries) ListOtherUsers(ctx context.Context, viewerID string) ([]models.Profile, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, name, email, image FROM users WHERE id != ? ORDER BY name, id",
		viewerID,
	)
	if err != nil {
		return nil, unavailable("list users", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Image); err != nil {
			return nil, unavailable("scan user", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list users", err)
	}
	return profiles, nil
}

// FriendIDs is the bare-id view of the viewer's friend set.
func (q *Queries) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	return q.relationships.FriendIDs(ctx, userID)
}

// UserDetails looks up a single profile, for chat headers and the like.
func (q *Queries) UserDetails(ctx context.Context, userID string) (*models.Profile, error) {
	return q.users.GetByID(ctx, userID)
}
