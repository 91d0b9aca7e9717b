package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"greychat/models"
)

// FriendLister is the slice of the relationship graph the status feed
// needs: who counts as a friend right now.
type FriendLister interface {
	FriendIDs(ctx context.Context, userID string) ([]string, error)
}

// StatusStore holds per-author timed posts. A post is visible to a reader
// if and only if the reader is one of the author's confirmed friends.
type StatusStore struct {
	db      *sql.DB
	friends FriendLister
	now     func() time.Time
}

func NewStatusStore(db *sql.DB, friends FriendLister) *StatusStore {
	return &StatusStore{db: db, friends: friends, now: time.Now}
}

// Post stores one immutable status with a server-assigned timestamp.
// Media references are opaque blob paths; they are serialized as JSON the
// same way message content is.
func (s *StatusStore) Post(ctx context.Context, authorID, text string, media []models.MediaRef) (string, error) {
	if text == "" && len(media) == 0 {
		return "", Invalidf("a status needs text or at least one media reference")
	}
	for _, m := range media {
		if m.URL == "" {
			return "", Invalidf("media reference with empty url")
		}
		if m.Kind != models.MediaImage && m.Kind != models.MediaVideo {
			return "", Invalidf("unknown media kind %q", m.Kind)
		}
	}

	mediaJSON, err := json.Marshal(media)
	if err != nil {
		return "", Invalidf("unencodable media references: %v", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO statuses (id, author_id, text, media, posted_at) VALUES (?, ?, ?, ?, ?)",
		id, authorID, text, string(mediaJSON), s.now(),
	)
	if err != nil {
		return "", unavailable("post status", err)
	}
	return id, nil
}

// FeedFor returns every post authored by one of userID's confirmed
// friends, newest first, with the author's id, name and image attached.
// The friend set is evaluated at call time.
func (s *StatusStore) FeedFor(ctx context.Context, userID string) ([]models.FeedPost, error) {
	friendIDs, err := s.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.FeedPost{}, nil
	}

	args := make([]any, len(friendIDs))
	for i, id := range friendIDs {
		args[i] = id
	}
	placeholders := strings.Repeat("?,", len(friendIDs)-1) + "?"

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, u.id, u.name, u.image, p.text, p.media, p.posted_at
		 FROM statuses p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.author_id IN (`+placeholders+`)
		 ORDER BY p.posted_at DESC, p.seq DESC`,
		args...,
	)
	if err != nil {
		return nil, unavailable("load feed", err)
	}
	defer rows.Close()

	feed := []models.FeedPost{}
	for rows.Next() {
		var (
			post      models.FeedPost
			mediaJSON string
		)
		if err := rows.Scan(&post.ID, &post.Author.ID, &post.Author.Name, &post.Author.Image,
			&post.Text, &mediaJSON, &post.PostedAt); err != nil {
			return nil, unavailable("scan feed post", err)
		}
		if err := json.Unmarshal([]byte(mediaJSON), &post.Media); err != nil {
			return nil, unavailable("decode media references", err)
		}
		feed = append(feed, post)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("load feed", err)
	}
	return feed, nil
}
