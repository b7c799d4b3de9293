package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// TripRepository gives access to trips and their place itineraries.
type TripRepository struct {
	db *sqlx.DB
}

func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a trip and returns its generated ID.
func (r *TripRepository) Create(ctx context.Context, t *model.Trip) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO trips (user_id, name, start_date, end_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		t.UserID, t.Name, t.StartDate, t.EndDate, t.Notes, t.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("TripRepository.Create: %w", err)
	}
	t.ID = id
	return id, nil
}

// GetByID returns one trip. sql.ErrNoRows when missing.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*model.Trip, error) {
	var t model.Trip
	err := r.db.GetContext(ctx, &t, r.db.Rebind(`SELECT * FROM trips WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddPlace puts a place on the trip's day plan.
func (r *TripRepository) AddPlace(ctx context.Context, tp *model.TripPlace) error {
	query := r.db.Rebind(`
		INSERT INTO trip_places (trip_id, place_id, day_number, notes)
		VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, tp.TripID, tp.PlaceID, tp.DayNumber, tp.Notes)
	if err != nil {
		return fmt.Errorf("TripRepository.AddPlace: %w", err)
	}
	return nil
}

// HasPlace reports whether the place is already on the trip.
func (r *TripRepository) HasPlace(ctx context.Context, tripID, placeID int64) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(1) FROM trip_places WHERE trip_id = ? AND place_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, tripID, placeID); err != nil {
		return false, fmt.Errorf("TripRepository.HasPlace: %w", err)
	}
	return count > 0, nil
}

// RemovePlace takes a place off the trip and reports how many rows went.
func (r *TripRepository) RemovePlace(ctx context.Context, tripID, placeID int64) (int64, error) {
	query := r.db.Rebind(`DELETE FROM trip_places WHERE trip_id = ? AND place_id = ?`)
	res, err := r.db.ExecContext(ctx, query, tripID, placeID)
	if err != nil {
		return 0, fmt.Errorf("TripRepository.RemovePlace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("TripRepository.RemovePlace: rows affected: %w", err)
	}
	return n, nil
}

// Itinerary returns the trip's places joined with their details, in day order.
func (r *TripRepository) Itinerary(ctx context.Context, tripID int64) ([]model.TripStop, error) {
	stops := []model.TripStop{}
	query := r.db.Rebind(`
		SELECT p.*, tp.day_number, tp.notes AS stop_notes
		FROM trip_places tp
		JOIN places p ON tp.place_id = p.id
		WHERE tp.trip_id = ?
		ORDER BY tp.day_number, p.name`)
	if err := r.db.SelectContext(ctx, &stops, query, tripID); err != nil {
		return nil, fmt.Errorf("TripRepository.Itinerary: %w", err)
	}
	return stops, nil
}
