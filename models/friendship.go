package models

import "time"

type FriendRequest struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// RequestWithUser pairs a pending request with the counterpart's summary:
// the receiver for sent requests, the sender for received ones.
type RequestWithUser struct {
	FriendRequest
	User UserResponse `json:"user"`
}

// Friendship is the canonical undirected edge. UserLo sorts before UserHi,
// so each friendship is exactly one row regardless of who accepted.
type Friendship struct {
	ID        string    `json:"id"`
	UserLo    string    `json:"user_lo"`
	UserHi    string    `json:"user_hi"`
	CreatedAt time.Time `json:"created_at"`
}
