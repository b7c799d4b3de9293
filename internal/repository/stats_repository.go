package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PlaceStatsRow is one line of the place report: a place outer-joined to its
// reviews, so zero-review places show up with a count of 0 and no rating.
type PlaceStatsRow struct {
	PlaceID         int64    `db:"place_id" json:"place_id"`
	Name            string   `db:"name" json:"name"`
	Category        string   `db:"category" json:"category"`
	DestinationName string   `db:"destination_name" json:"destination_name"`
	ReviewCount     int64    `db:"review_count" json:"review_count"`
	AvgRating       *float64 `db:"avg_rating" json:"avg_rating"`
}

// StatsRepository holds the read-only reporting projections.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// PlaceStats joins places to destinations and outer-joins reviews.
func (r *StatsRepository) PlaceStats(ctx context.Context) ([]PlaceStatsRow, error) {
	rows := []PlaceStatsRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.id AS place_id, p.name, p.category,
		       d.name AS destination_name,
		       COUNT(r.id) AS review_count,
		       AVG(r.rating) AS avg_rating
		FROM places p
		JOIN destinations d ON p.destination_id = d.id
		LEFT JOIN reviews r ON r.place_id = p.id
		GROUP BY p.id, p.name, p.category, d.name
		ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("StatsRepository.PlaceStats: %w", err)
	}
	return rows, nil
}

// AvgRatingByDestination is the straight mean over every review row of every
// place in the destination, unweighted by place. Nil when no reviews exist.
func (r *StatsRepository) AvgRatingByDestination(ctx context.Context, destinationID int64) (*float64, error) {
	var avg *float64
	query := r.db.Rebind(`
		SELECT AVG(r.rating)
		FROM reviews r
		JOIN places p ON r.place_id = p.id
		WHERE p.destination_id = ?`)
	if err := r.db.GetContext(ctx, &avg, query, destinationID); err != nil {
		return nil, fmt.Errorf("StatsRepository.AvgRatingByDestination: %w", err)
	}
	return avg, nil
}
