package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"penpal/models"
)

// FriendStore manages the friend-request and friendship edges.
//
// A request is a directed (sender, receiver) row. A friendship is stored as
// a single canonical row with the smaller user id in user_lo, so accepting
// and removing are single-row writes and a half-written symmetric pair
// cannot exist. A pending request and a friendship for the same pair are
// mutually exclusive: accept deletes every request between the two users in
// the same transaction that inserts the edge.
type FriendStore struct {
	db    *sql.DB
	users *UserStore
}

func NewFriendStore(db *sql.DB, users *UserStore) *FriendStore {
	return &FriendStore{db: db, users: users}
}

func sortPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// SendRequest records a pending request from caller to target. Concurrent
// duplicates serialize on the unique (sender, receiver) key; the loser gets
// ErrDuplicateRequest.
func (s *FriendStore) SendRequest(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return ErrSelfReference
	}

	for _, id := range []string{callerID, targetID} {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}

	friends, err := s.AreFriends(ctx, callerID, targetID)
	if err != nil {
		return err
	}
	if friends {
		return ErrAlreadyFriends
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO friend_requests (id, sender_id, receiver_id, created_at) VALUES (?, ?, ?, ?)",
		uuid.New().String(), callerID, targetID, time.Now(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRequest
		}
		return unavailable("insert friend request", err)
	}

	return nil
}

// AcceptRequest turns the pending (requester, caller) request into a
// friendship. Both request directions are cleared so a mutual request
// cannot linger next to the new edge.
func (s *FriendStore) AcceptRequest(ctx context.Context, callerID, requesterID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin accept", err)
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM friend_requests WHERE sender_id = ? AND receiver_id = ?",
		requesterID, callerID,
	)
	if err != nil {
		tx.Rollback()
		return unavailable("delete friend request", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return unavailable("delete friend request", err)
	}
	if affected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM friend_requests WHERE sender_id = ? AND receiver_id = ?",
		callerID, requesterID,
	); err != nil {
		tx.Rollback()
		return unavailable("delete reverse request", err)
	}

	lo, hi := sortPair(callerID, requesterID)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO friendships (id, user_lo, user_hi, created_at) VALUES (?, ?, ?, ?)",
		uuid.New().String(), lo, hi, time.Now(),
	); err != nil {
		tx.Rollback()
		if isDuplicateKey(err) {
			return ErrAlreadyFriends
		}
		return unavailable("insert friendship", err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit accept", err)
	}
	return nil
}

// RejectRequest drops the pending (requester, caller) request.
func (s *FriendStore) RejectRequest(ctx context.Context, callerID, requesterID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM friend_requests WHERE sender_id = ? AND receiver_id = ?",
		requesterID, callerID,
	)
	if err != nil {
		return unavailable("delete friend request", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return unavailable("delete friend request", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveFriendship deletes the canonical edge between caller and friend.
func (s *FriendStore) RemoveFriendship(ctx context.Context, callerID, friendID string) error {
	lo, hi := sortPair(callerID, friendID)
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM friendships WHERE user_lo = ? AND user_hi = ?",
		lo, hi,
	)
	if err != nil {
		return unavailable("delete friendship", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return unavailable("delete friendship", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FriendStore) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	lo, hi := sortPair(userID, otherID)
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM friendships WHERE user_lo = ? AND user_hi = ?)",
		lo, hi,
	).Scan(&exists)
	if err != nil {
		return false, unavailable("check friendship", err)
	}
	return exists, nil
}

// ListFriends returns the caller's friends in acceptance order.
func (s *FriendStore) ListFriends(ctx context.Context, userID string) ([]models.UserResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.created_at
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user_lo = ? THEN f.user_hi ELSE f.user_lo END
		WHERE ? IN (f.user_lo, f.user_hi)
		ORDER BY f.created_at, f.id
	`, userID, userID)
	if err != nil {
		return nil, unavailable("list friends", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

// ListSentRequests returns the caller's outstanding requests with each
// receiver's summary.
func (s *FriendStore) ListSentRequests(ctx context.Context, userID string) ([]models.RequestWithUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.sender_id, r.receiver_id, r.created_at, u.id, u.username, u.created_at
		FROM friend_requests r
		JOIN users u ON u.id = r.receiver_id
		WHERE r.sender_id = ?
		ORDER BY r.created_at, r.id
	`, userID)
	if err != nil {
		return nil, unavailable("list sent requests", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ListReceivedRequests returns pending requests addressed to the caller
// with each sender's summary.
func (s *FriendStore) ListReceivedRequests(ctx context.Context, userID string) ([]models.RequestWithUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.sender_id, r.receiver_id, r.created_at, u.id, u.username, u.created_at
		FROM friend_requests r
		JOIN users u ON u.id = r.sender_id
		WHERE r.receiver_id = ?
		ORDER BY r.created_at, r.id
	`, userID)
	if err != nil {
		return nil, unavailable("list received requests", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func scanRequests(rows *sql.Rows) ([]models.RequestWithUser, error) {
	requests := []models.RequestWithUser{}
	for rows.Next() {
		var r models.RequestWithUser
		if err := rows.Scan(
			&r.ID, &r.SenderID, &r.ReceiverID, &r.CreatedAt,
			&r.User.ID, &r.User.Username, &r.User.CreatedAt,
		); err != nil {
			return nil, unavailable("scan request", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate requests", err)
	}
	return requests, nil
}
