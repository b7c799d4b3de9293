// Package testutil provides an in-memory database with the service schema
// for repository and service tests.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// schema mirrors migrations/0001_init.sql in sqlite dialect. TIMESTAMP
// declared types make the driver hand back time.Time values.
const schema = `
CREATE TABLE users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name     TEXT NOT NULL DEFAULT '',
    is_verified   BOOLEAN NOT NULL DEFAULT 0,
    created_at    TIMESTAMP NOT NULL
);

CREATE TABLE destinations (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    country     TEXT NOT NULL,
    region      TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE places (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    destination_id INTEGER NOT NULL REFERENCES destinations (id),
    name           TEXT NOT NULL,
    category       TEXT NOT NULL CHECK (category IN ('hotel', 'restaurant', 'attraction')),
    description    TEXT NOT NULL DEFAULT '',
    average_rating REAL,
    created_at     TIMESTAMP NOT NULL
);

CREATE TABLE reviews (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    place_id   INTEGER NOT NULL REFERENCES places (id),
    user_id    INTEGER NOT NULL REFERENCES users (id),
    rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    body       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE review_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    review_id  INTEGER NOT NULL,
    place_id   INTEGER NOT NULL,
    user_id    INTEGER NOT NULL,
    rating     INTEGER NOT NULL,
    body       TEXT NOT NULL DEFAULT '',
    operation  TEXT NOT NULL CHECK (operation IN ('INS', 'DEL')),
    changed_at TIMESTAMP NOT NULL
);

CREATE TABLE photos (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    place_id    INTEGER NOT NULL REFERENCES places (id),
    user_id     INTEGER NOT NULL REFERENCES users (id),
    file_id     TEXT NOT NULL,
    caption     TEXT NOT NULL DEFAULT '',
    uploaded_at TIMESTAMP NOT NULL
);

CREATE TABLE trips (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL REFERENCES users (id),
    name       TEXT NOT NULL,
    start_date TIMESTAMP NOT NULL,
    end_date   TIMESTAMP NOT NULL,
    notes      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    CHECK (start_date <= end_date)
);

CREATE TABLE trip_places (
    trip_id    INTEGER NOT NULL REFERENCES trips (id),
    place_id   INTEGER NOT NULL REFERENCES places (id),
    day_number INTEGER NOT NULL CHECK (day_number >= 1),
    notes      TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (trip_id, place_id)
);
`

// NewDB opens an in-memory sqlite database with the full schema. The pool is
// capped at one connection so every query sees the same memory database.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
