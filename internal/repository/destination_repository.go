package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// DestinationRepository gives access to destinations.
type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepository(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// Create inserts a destination and returns its generated ID.
func (r *DestinationRepository) Create(ctx context.Context, d *model.Destination) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO destinations (name, country, region, description)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query, d.Name, d.Country, d.Region, d.Description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("DestinationRepository.Create: %w", err)
	}
	d.ID = id
	return id, nil
}

// GetByID returns one destination. sql.ErrNoRows when missing.
func (r *DestinationRepository) GetByID(ctx context.Context, id int64) (*model.Destination, error) {
	var d model.Destination
	err := r.db.GetContext(ctx, &d, r.db.Rebind(`SELECT * FROM destinations WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all destinations ordered by name.
func (r *DestinationRepository) List(ctx context.Context) ([]model.Destination, error) {
	list := []model.Destination{}
	err := r.db.SelectContext(ctx, &list, `SELECT * FROM destinations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("DestinationRepository.List: %w", err)
	}
	return list, nil
}

// Exists reports whether the destination exists.
func (r *DestinationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(1) FROM destinations WHERE id = ?`)
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return false, fmt.Errorf("DestinationRepository.Exists: %w", err)
	}
	return count > 0, nil
}
