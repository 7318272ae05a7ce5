package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	logrus.Info("database connected")
	return db, nil
}

func CreateTables(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          VARCHAR(36) PRIMARY KEY,
			username    VARCHAR(50) NOT NULL,
			password    VARCHAR(255) NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_username (username)
		)`,
		`CREATE TABLE IF NOT EXISTS friend_requests (
			id          VARCHAR(36) PRIMARY KEY,
			sender_id   VARCHAR(36) NOT NULL,
			receiver_id VARCHAR(36) NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uk_request (sender_id, receiver_id),
			INDEX idx_receiver (receiver_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id          VARCHAR(36) PRIMARY KEY,
			user_lo     VARCHAR(36) NOT NULL,
			user_hi     VARCHAR(36) NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uk_pair (user_lo, user_hi),
			INDEX idx_hi (user_hi)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id          VARCHAR(36) PRIMARY KEY,
			sender_id   VARCHAR(36) NOT NULL,
			receiver_id VARCHAR(36) NOT NULL,
			body        TEXT NOT NULL,
			created_at  DATETIME(6) NOT NULL,
			INDEX idx_pair_time (sender_id, receiver_id, created_at)
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}

	logrus.Info("database tables created")
	return nil
}
