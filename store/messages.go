package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"penpal/models"
)

// MessageStore appends and reads the pairwise message ledger. Friendship is
// a precondition at send time only; stored messages stay readable after an
// unfriend.
type MessageStore struct {
	db      *sql.DB
	users   *UserStore
	friends *FriendStore
}

func NewMessageStore(db *sql.DB, users *UserStore, friends *FriendStore) *MessageStore {
	return &MessageStore{db: db, users: users, friends: friends}
}

func (s *MessageStore) Send(ctx context.Context, senderID, receiverID, body string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfReference
	}

	for _, id := range []string{senderID, receiverID} {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
	}

	friends, err := s.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  time.Now(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO messages (id, sender_id, receiver_id, body, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return nil, unavailable("insert message", err)
	}

	return msg, nil
}

// History returns every message between the two users, oldest first. The
// (created_at, id) order keeps equal timestamps stable, and the result is
// identical for (a, b) and (b, a).
func (s *MessageStore) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, body, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at, id
	`, userA, userB, userB, userA)
	if err != nil {
		return nil, unavailable("query history", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.CreatedAt); err != nil {
			return nil, unavailable("scan message", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate messages", err)
	}
	return messages, nil
}
