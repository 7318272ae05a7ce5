package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Domain outcomes surfaced to the handler layer. Everything else coming out
// of the store wraps ErrUnavailable.
var (
	ErrNotFound         = errors.New("not found")
	ErrSelfReference    = errors.New("operation targets the caller itself")
	ErrDuplicateRequest = errors.New("friend request already pending")
	ErrDuplicateName    = errors.New("username already exists")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrNotFriends       = errors.New("users are not friends")
	ErrUnavailable      = errors.New("storage unavailable")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// MySQL error 1062 in production; the string check covers the SQLite
// backend used by the tests.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
