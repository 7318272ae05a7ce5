package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"penpal/models"
)

// testSchema mirrors database.CreateTables in SQLite dialect. Tests run
// against an in-memory SQLite database through the same database/sql code
// paths the MySQL store uses.
var testSchema = []string{
	`CREATE TABLE users (
		id          TEXT PRIMARY KEY,
		username    TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE friend_requests (
		id          TEXT PRIMARY KEY,
		sender_id   TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		created_at  DATETIME NOT NULL,
		UNIQUE (sender_id, receiver_id)
	)`,
	`CREATE TABLE friendships (
		id          TEXT PRIMARY KEY,
		user_lo     TEXT NOT NULL,
		user_hi     TEXT NOT NULL,
		created_at  DATETIME NOT NULL,
		UNIQUE (user_lo, user_hi)
	)`,
	`CREATE TABLE messages (
		id          TEXT PRIMARY KEY,
		sender_id   TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		body        TEXT NOT NULL,
		created_at  DATETIME NOT NULL
	)`,
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// SQLite allows one writer; a single pooled connection also keeps the
	// in-memory database alive across calls.
	db.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func newTestStores(t *testing.T) (*UserStore, *FriendStore, *MessageStore) {
	t.Helper()

	db := newTestDB(t)
	users := NewUserStore(db)
	friends := NewFriendStore(db, users)
	messages := NewMessageStore(db, users, friends)
	return users, friends, messages
}

func mustCreateUser(t *testing.T, users *UserStore, username string) *models.User {
	t.Helper()

	user, err := users.Create(context.Background(), username, "hashed-password")
	require.NoError(t, err)
	return user
}
