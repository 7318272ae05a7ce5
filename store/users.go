package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"penpal/models"
)

// UserStore persists user accounts. Usernames are unique; rows are never
// deleted.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  passwordHash,
		CreatedAt: time.Now(),
	}
	user.UpdatedAt = user.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Password, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateName
		}
		return nil, unavailable("insert user", err)
	}

	return user, nil
}

func (s *UserStore) FindByName(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find user by name", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find user by id", err)
	}
	return &user, nil
}

func (s *UserStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id,
	).Scan(&exists)
	if err != nil {
		return false, unavailable("check user exists", err)
	}
	return exists, nil
}

// List returns every user except the caller.
func (s *UserStore) List(ctx context.Context, exceptID string) ([]models.UserResponse, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, created_at FROM users WHERE id != ? ORDER BY username",
		exceptID,
	)
	if err != nil {
		return nil, unavailable("list users", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

func (s *UserStore) Search(ctx context.Context, exceptID, query string) ([]models.UserResponse, error) {
	pattern := "%" + escapeLikePattern(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, created_at FROM users
		 WHERE id != ? AND username LIKE ?
		 ORDER BY username LIMIT 20`,
		exceptID, pattern,
	)
	if err != nil {
		return nil, unavailable("search users", err)
	}
	defer rows.Close()

	return scanUserSummaries(rows)
}

func scanUserSummaries(rows *sql.Rows) ([]models.UserResponse, error) {
	users := []models.UserResponse{}
	for rows.Next() {
		var u models.UserResponse
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, unavailable("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate users", err)
	}
	return users, nil
}

func escapeLikePattern(pattern string) string {
	pattern = strings.ReplaceAll(pattern, `\`, `\\`)
	pattern = strings.ReplaceAll(pattern, "%", `\%`)
	pattern = strings.ReplaceAll(pattern, "_", `\_`)
	return pattern
}
