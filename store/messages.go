package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"greychat/models"
)

// MessageStore is the append-only direct-message log. Conversations are
// keyed by the unordered sender/recipient pair, so both participants read
// the same log regardless of direction.
type MessageStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db, now: time.Now}
}

func validateBody(b models.MessageBody) error {
	switch b.Kind {
	case models.MessageText:
		if b.Text == "" {
			return Invalidf("text message must not be empty")
		}
		if b.ImageRef != "" {
			return Invalidf("text message must not carry an image reference")
		}
	case models.MessageImage:
		if b.ImageRef == "" {
			return Invalidf("image message requires an image reference")
		}
		if b.Text != "" {
			return Invalidf("image message must not carry text")
		}
	default:
		return Invalidf("unknown message kind %q", b.Kind)
	}
	return nil
}

// Append stores one immutable message and returns its id. The timestamp
// is assigned here, at write time.
func (s *MessageStore) Append(ctx context.Context, senderID, recipientID string, body models.MessageBody) (string, error) {
	if senderID == "" || recipientID == "" {
		return "", Invalidf("sender and recipient are required")
	}
	if err := validateBody(body); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, pair_key, sender_id, recipient_id, kind, body, image_ref, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, pairKey(senderID, recipientID), senderID, recipientID,
		string(body.Kind), body.Text, body.ImageRef, s.now(),
	)
	if err != nil {
		return "", unavailable("append message", err)
	}
	return id, nil
}

// ListConversation returns every message between the two users in either
// direction, timestamp ascending with insertion order as tie-break. Each
// message carries the sender's id and name for display.
func (s *MessageStore) ListConversation(ctx context.Context, userA, userB string) ([]models.ConversationMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.sender_id, u.name, m.recipient_id, m.kind, m.body, m.image_ref, m.sent_at
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.pair_key = ?
		 ORDER BY m.sent_at, m.seq`,
		pairKey(userA, userB),
	)
	if err != nil {
		return nil, unavailable("list conversation", err)
	}
	defer rows.Close()

	messages := []models.ConversationMessage{}
	for rows.Next() {
		var (
			m    models.ConversationMessage
			kind string
		)
		if err := rows.Scan(&m.ID, &m.Sender.ID, &m.Sender.Name, &m.RecipientID,
			&kind, &m.Body.Text, &m.Body.ImageRef, &m.SentAt); err != nil {
			return nil, unavailable("scan message", err)
		}
		m.Body.Kind = models.MessageKind(kind)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list conversation", err)
	}
	return messages, nil
}

// DeleteMany removes the listed messages. Unknown ids are ignored, so the
// operation is idempotent; the returned count is the number of rows
// actually deleted.
func (s *MessageStore) DeleteMany(ctx context.Context, messageIDs []string) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, Invalidf("message id list must not be empty")
	}
	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		if id == "" {
			return 0, Invalidf("message id list contains a blank id")
		}
		args[i] = id
	}

	placeholders := strings.Repeat("?,", len(messageIDs)-1) + "?"
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM messages WHERE id IN ("+placeholders+")", args...,
	)
	if err != nil {
		return 0, unavailable("delete messages", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("delete messages", err)
	}
	return deleted, nil
}
