package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// PhotoRepository stores photo metadata rows; the bytes themselves live in
// GridFS behind PhotoStore.
type PhotoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create inserts a metadata row and returns its generated ID.
func (r *PhotoRepository) Create(ctx context.Context, p *model.Photo) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO photos (place_id, user_id, file_id, caption, uploaded_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		p.PlaceID, p.UserID, p.FileID, p.Caption, p.UploadedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("PhotoRepository.Create: %w", err)
	}
	p.ID = id
	return id, nil
}

// GetByID returns one metadata row. sql.ErrNoRows when missing.
func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	var p model.Photo
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT * FROM photos WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByPlace returns the photo metadata of a place, newest first.
func (r *PhotoRepository) ListByPlace(ctx context.Context, placeID int64) ([]model.Photo, error) {
	photos := []model.Photo{}
	query := r.db.Rebind(`
		SELECT * FROM photos
		WHERE place_id = ?
		ORDER BY uploaded_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &photos, query, placeID); err != nil {
		return nil, fmt.Errorf("PhotoRepository.ListByPlace: %w", err)
	}
	return photos, nil
}
