package model

import "time"

// Trip is a user's named itinerary. StartDate never exceeds EndDate.
type Trip struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TripPlace associates a place with a trip on a given day. The (trip, place)
// pair is unique within a trip.
type TripPlace struct {
	TripID    int64  `db:"trip_id" json:"trip_id"`
	PlaceID   int64  `db:"place_id" json:"place_id"`
	DayNumber int    `db:"day_number" json:"day_number"`
	Notes     string `db:"notes" json:"notes"`
}

// TripStop is one itinerary entry joined with its place.
type TripStop struct {
	Place     `json:"place"`
	DayNumber int    `db:"day_number" json:"day_number"`
	StopNotes string `db:"stop_notes" json:"stop_notes"`
}
