package model

// Destination is a named geographic entity that places belong to.
type Destination struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Country     string `db:"country" json:"country"`
	Region      string `db:"region" json:"region"`
	Description string `db:"description" json:"description"`
}
