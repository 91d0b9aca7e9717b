package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"greychat/models"
)

// RelationshipStore enforces the friend-request state machine. A single
// row per unordered user pair moves through
//
//	none -> pending (SendRequest) -> accepted (Accept)
//	                              -> none     (Reject)
//
// The unique pair_key index means a pair can never hold a request in each
// direction or a request alongside a friendship, and accepted is terminal.
type RelationshipStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewRelationshipStore(db *sql.DB) *RelationshipStore {
	return &RelationshipStore{db: db, now: time.Now}
}

const (
	statusPending  = "pending"
	statusAccepted = "accepted"
)

// SendRequest records a pending friend request from sender to recipient.
// The guard checks and the insert run in one transaction; racing inserts
// for the same pair are resolved by the unique pair_key index.
func (s *RelationshipStore) SendRequest(ctx context.Context, senderID, recipientID string) error {
	if senderID == recipientID {
		return Invalidf("cannot send a friend request to yourself")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin send request", err)
	}
	defer tx.Rollback()

	for _, id := range []string{senderID, recipientID} {
		if err := requireUser(ctx, tx, id); err != nil {
			return err
		}
	}

	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM relationships WHERE pair_key = ?",
		pairKey(senderID, recipientID),
	).Scan(&status)
	switch {
	case err == nil && status == statusAccepted:
		return Invalidf("already friends")
	case err == nil:
		return Invalidf("a friend request between these users is already pending")
	case err != sql.ErrNoRows:
		return unavailable("check relationship", err)
	}

	now := s.now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO relationships (id, pair_key, requester_id, addressee_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), pairKey(senderID, recipientID), senderID, recipientID, statusPending, now,
	)
	if isDuplicateEntry(err) {
		// Lost a race with a concurrent request for the same pair.
		return Invalidf("a friend request between these users is already pending")
	}
	if err != nil {
		return unavailable("create friend request", err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit send request", err)
	}
	return nil
}

// Accept converts the pending request senderID -> recipientID into a
// friendship. The status flip is one guarded UPDATE, so both users gain
// each other and both one-sided request entries vanish atomically; a
// second Accept for the same pair affects zero rows and fails without
// changing state.
func (s *RelationshipStore) Accept(ctx context.Context, senderID, recipientID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin accept", err)
	}
	defer tx.Rollback()

	for _, id := range []string{senderID, recipientID} {
		if err := requireUser(ctx, tx, id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE relationships SET status = ?, accepted_at = ?
		 WHERE pair_key = ? AND requester_id = ? AND addressee_id = ? AND status = ?`,
		statusAccepted, s.now(), pairKey(senderID, recipientID), senderID, recipientID, statusPending,
	)
	if err != nil {
		return unavailable("accept friend request", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable("accept friend request", err)
	}
	if affected == 0 {
		return Invalidf("no pending friend request from %s", senderID)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit accept", err)
	}
	return nil
}

// Reject discards the pending request senderID -> recipientID, returning
// the pair to the unrelated state.
func (s *RelationshipStore) Reject(ctx context.Context, senderID, recipientID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin reject", err)
	}
	defer tx.Rollback()

	for _, id := range []string{senderID, recipientID} {
		if err := requireUser(ctx, tx, id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM relationships
		 WHERE pair_key = ? AND requester_id = ? AND addressee_id = ? AND status = ?`,
		pairKey(senderID, recipientID), senderID, recipientID, statusPending,
	)
	if err != nil {
		return unavailable("reject friend request", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable("reject friend request", err)
	}
	if affected == 0 {
		return Invalidf("no pending friend request from %s", senderID)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit reject", err)
	}
	return nil
}

// ListIncoming returns the profiles of users who asked to friend userID,
// oldest request first.
func (s *RelationshipStore) ListIncoming(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.listRequests(ctx, userID, "requester_id", "addressee_id")
}

// ListOutgoing returns the profiles of users userID has asked, oldest
// request first.
func (s *RelationshipStore) ListOutgoing(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.listRequests(ctx, userID, "addressee_id", "requester_id")
}

func (s *RelationshipStore) listRequests(ctx context.Context, userID, joinCol, whereCol string) ([]models.Profile, error) {
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.image
		 FROM relationships r
		 JOIN users u ON u.id = r.`+joinCol+`
		 WHERE r.`+whereCol+` = ? AND r.status = ?
		 ORDER BY r.seq`,
		userID, statusPending,
	)
	if err != nil {
		return nil, unavailable("list friend requests", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Image); err != nil {
			return nil, unavailable("scan friend request", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list friend requests", err)
	}
	return profiles, nil
}

// ListFriends returns the profiles of userID's confirmed friends in the
// order the friendships were accepted.
func (s *RelationshipStore) ListFriends(ctx context.Context, userID string) ([]models.Profile, error) {
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.image
		 FROM relationships r
		 JOIN users u ON u.id = CASE WHEN r.requester_id = ? THEN r.addressee_id ELSE r.requester_id END
		 WHERE r.status = ? AND (r.requester_id = ? OR r.addressee_id = ?)
		 ORDER BY r.accepted_at, r.seq`,
		userID, statusAccepted, userID, userID,
	)
	if err != nil {
		return nil, unavailable("list friends", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Image); err != nil {
			return nil, unavailable("scan friend", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list friends", err)
	}
	return profiles, nil
}

// FriendIDs returns the bare ids of userID's confirmed friends. The status
// feed uses it to decide post visibility.
func (s *RelationshipStore) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT CASE WHEN requester_id = ? THEN addressee_id ELSE requester_id END
		 FROM relationships
		 WHERE status = ? AND (requester_id = ? OR addressee_id = ?)
		 ORDER BY accepted_at, seq`,
		userID, statusAccepted, userID, userID,
	)
	if err != nil {
		return nil, unavailable("list friend ids", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, unavailable("scan friend id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list friend ids", err)
	}
	return ids, nil
}

// AreFriends reports whether the pair holds a confirmed friendship.
func (s *RelationshipStore) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM relationships WHERE pair_key = ? AND status = ?)",
		pairKey(a, b), statusAccepted,
	).Scan(&exists)
	if err != nil {
		return false, unavailable("check friendship", err)
	}
	return exists, nil
}
