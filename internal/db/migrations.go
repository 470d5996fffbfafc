package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT    NOT NULL,
		description  TEXT    NOT NULL DEFAULT '',
		address      TEXT    NOT NULL DEFAULT '',
		price        INTEGER NOT NULL CHECK (price >= 0),
		bedrooms     INTEGER NOT NULL DEFAULT 0,
		bathrooms    INTEGER NOT NULL DEFAULT 0,
		listing_type TEXT    NOT NULL CHECK (listing_type IN ('for_sale', 'for_rent')),
		cover_image  TEXT    NOT NULL DEFAULT '',
		agent_name   TEXT    NOT NULL DEFAULT 'General Inquiry',
		agent_email  TEXT    NOT NULL DEFAULT 'info@realestate.com',
		agent_phone  TEXT    NOT NULL DEFAULT '',
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS property_images (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		filename    TEXT    NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS agents (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name  TEXT    NOT NULL,
		email      TEXT    NOT NULL,
		phone      TEXT    NOT NULL DEFAULT '',
		avatar     TEXT    NOT NULL DEFAULT 'default-avatar.png',
		bio        TEXT    NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id INTEGER NOT NULL,
		user_email  TEXT    NOT NULL,
		message     TEXT    NOT NULL,
		archived    INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS saved_properties (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_email  TEXT    NOT NULL,
		property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_email, property_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT    NOT NULL UNIQUE,
		name          TEXT    NOT NULL DEFAULT '',
		password_hash TEXT    NOT NULL,
		is_admin      INTEGER NOT NULL DEFAULT 0,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT     PRIMARY KEY,
		email      TEXT     NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id           INTEGER  PRIMARY KEY AUTOINCREMENT,
		name         TEXT     NOT NULL,
		key_prefix   TEXT     NOT NULL,
		key_hash     TEXT     NOT NULL UNIQUE,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_used_at DATETIME
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
