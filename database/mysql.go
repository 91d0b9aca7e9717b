package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// Open connects to MySQL and returns the handle. The handle is passed
// explicitly to every store; nothing in this package keeps package-level
// state.
func Open(dsn string) (*sql.DB, error) {
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

// CreateTables creates the schema if it does not exist yet.
//
// relationships holds exactly one row per unordered user pair (uk_pair on
// the canonical pair key); the seq columns preserve insertion order for
// stable listing.
func CreateTables(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			email       VARCHAR(255) NOT NULL,
			image       VARCHAR(255) NOT NULL DEFAULT '',
			password    VARCHAR(255) NOT NULL,
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL,
			UNIQUE KEY uk_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS relationships (
			seq          BIGINT NOT NULL AUTO_INCREMENT,
			id           VARCHAR(36) NOT NULL,
			pair_key     VARCHAR(73) NOT NULL,
			requester_id VARCHAR(36) NOT NULL,
			addressee_id VARCHAR(36) NOT NULL,
			status       ENUM('pending', 'accepted') NOT NULL,
			created_at   DATETIME NOT NULL,
			accepted_at  DATETIME NULL,
			PRIMARY KEY (seq),
			UNIQUE KEY uk_id (id),
			UNIQUE KEY uk_pair (pair_key),
			INDEX idx_requester (requester_id, status),
			INDEX idx_addressee (addressee_id, status)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			seq          BIGINT NOT NULL AUTO_INCREMENT,
			id           VARCHAR(36) NOT NULL,
			pair_key     VARCHAR(73) NOT NULL,
			sender_id    VARCHAR(36) NOT NULL,
			recipient_id VARCHAR(36) NOT NULL,
			kind         ENUM('text', 'image') NOT NULL,
			body         TEXT NOT NULL,
			image_ref    VARCHAR(255) NOT NULL DEFAULT '',
			sent_at      DATETIME NOT NULL,
			PRIMARY KEY (seq),
			UNIQUE KEY uk_id (id),
			INDEX idx_pair_time (pair_key, sent_at)
		)`,
		`CREATE TABLE IF NOT EXISTS statuses (
			seq        BIGINT NOT NULL AUTO_INCREMENT,
			id         VARCHAR(36) NOT NULL,
			author_id  VARCHAR(36) NOT NULL,
			text       TEXT NOT NULL,
			media      JSON NOT NULL,
			posted_at  DATETIME NOT NULL,
			PRIMARY KEY (seq),
			UNIQUE KEY uk_id (id),
			INDEX idx_author_time (author_id, posted_at)
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}

	logrus.Info("database tables ready")
	return nil
}
