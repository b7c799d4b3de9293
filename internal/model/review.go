package model

import "time"

// Review is one user's rating of one place. A review is immutable once
// audited; an edit is a delete followed by an insert.
type Review struct {
	ID        int64     `db:"id" json:"id"`
	PlaceID   int64     `db:"place_id" json:"place_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"` // 1..5
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// History operation tags.
const (
	OpInsert = "INS"
	OpDelete = "DEL"
)

// ReviewHistory is one append-only audit row: a full snapshot of the review
// as it was inserted or deleted. Rows are never updated or removed.
type ReviewHistory struct {
	ID        int64     `db:"id" json:"id"`
	ReviewID  int64     `db:"review_id" json:"review_id"`
	PlaceID   int64     `db:"place_id" json:"place_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Body      string    `db:"body" json:"body"`
	Operation string    `db:"operation" json:"operation"` // INS or DEL
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}
