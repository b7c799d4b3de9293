package model

import "time"

// Place categories.
const (
	CategoryHotel      = "hotel"
	CategoryRestaurant = "restaurant"
	CategoryAttraction = "attraction"
)

// Place is a point of interest inside one destination. AverageRating is a
// materialized cache over the place's reviews: nil until the first review
// exists, recomputed on every review mutation.
type Place struct {
	ID            int64     `db:"id" json:"id"`
	DestinationID int64     `db:"destination_id" json:"destination_id"`
	Name          string    `db:"name" json:"name"`
	Category      string    `db:"category" json:"category"` // hotel/restaurant/attraction
	Description   string    `db:"description" json:"description"`
	AverageRating *float64  `db:"average_rating" json:"average_rating"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ValidCategory reports whether c is one of the known place categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryHotel, CategoryRestaurant, CategoryAttraction:
		return true
	}
	return false
}
