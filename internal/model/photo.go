package model

import "time"

// Photo is the metadata row for a picture a user attached to a place.
// FileID points at the binary stored in GridFS.
type Photo struct {
	ID         int64     `db:"id" json:"id"`
	PlaceID    int64     `db:"place_id" json:"place_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	FileID     string    `db:"file_id" json:"file_id"`
	Caption    string    `db:"caption" json:"caption"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}
