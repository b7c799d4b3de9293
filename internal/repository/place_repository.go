package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// PlaceRepository gives access to places and their cached average rating.
type PlaceRepository struct {
	db *sqlx.DB
}

func NewPlaceRepository(db *sqlx.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// Create inserts a place and returns its generated ID. A new place starts
// with a NULL average rating.
func (r *PlaceRepository) Create(ctx context.Context, p *model.Place) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO places (destination_id, name, category, description, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		p.DestinationID, p.Name, p.Category, p.Description, p.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("PlaceRepository.Create: %w", err)
	}
	p.ID = id
	return id, nil
}

// GetByID returns one place. sql.ErrNoRows when missing.
func (r *PlaceRepository) GetByID(ctx context.Context, id int64) (*model.Place, error) {
	var p model.Place
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT * FROM places WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Exists reports whether the place exists. Runs on q so it can join a
// caller's transaction.
func (r *PlaceRepository) Exists(ctx context.Context, q sqlx.ExtContext, id int64) (bool, error) {
	var count int
	query := q.Rebind(`SELECT COUNT(1) FROM places WHERE id = ?`)
	if err := sqlx.GetContext(ctx, q, &count, query, id); err != nil {
		return false, fmt.Errorf("PlaceRepository.Exists: %w", err)
	}
	return count > 0, nil
}

// FindByFilters searches places by category, destination, minimum cached
// rating and a name/description keyword. Empty filters are skipped.
func (r *PlaceRepository) FindByFilters(ctx context.Context, category string, destinationID int64, minRating float64, keyword string) ([]model.Place, error) {
	query := `SELECT * FROM places WHERE 1=1`
	args := []interface{}{}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if destinationID > 0 {
		query += ` AND destination_id = ?`
		args = append(args, destinationID)
	}
	if minRating > 0 {
		query += ` AND average_rating >= ?`
		args = append(args, minRating)
	}
	if keyword != "" {
		kw := "%" + strings.ToLower(keyword) + "%"
		query += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, kw, kw)
	}
	query += ` ORDER BY name`
	places := []model.Place{}
	if err := r.db.SelectContext(ctx, &places, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("PlaceRepository.FindByFilters: %w", err)
	}
	return places, nil
}

// SetAverageRating writes the cached aggregate for a place. A nil value
// stores NULL (no live reviews). Runs on q so the write joins the review
// mutation's transaction.
func (r *PlaceRepository) SetAverageRating(ctx context.Context, q sqlx.ExtContext, placeID int64, avg *float64) error {
	query := q.Rebind(`UPDATE places SET average_rating = ? WHERE id = ?`)
	if _, err := q.ExecContext(ctx, query, avg, placeID); err != nil {
		return fmt.Errorf("PlaceRepository.SetAverageRating: %w", err)
	}
	return nil
}
