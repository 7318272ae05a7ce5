package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"penpal/config"
	"penpal/models"
	"penpal/store"
)

// Mirrors database.CreateTables in SQLite dialect, same as the store tests.
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

type testEnv struct {
	users    *store.UserStore
	friends  *store.FriendStore
	messages *store.MessageStore
	cfg      *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	users := store.NewUserStore(db)
	friends := store.NewFriendStore(db, users)
	return &testEnv{
		users:    users,
		friends:  friends,
		messages: store.NewMessageStore(db, users, friends),
		cfg: &config.Config{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := e.users.Create(context.Background(), username, "hashed-password")
	require.NoError(t, err)
	return user
}

// jsonContext builds a test context carrying an authenticated caller, an
// optional JSON body and optional route params.
func jsonContext(t *testing.T, callerID string, body interface{}, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(http.MethodPost, "/", reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	if callerID != "" {
		c.Set("user_id", callerID)
	}

	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
