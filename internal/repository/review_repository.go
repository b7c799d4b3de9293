package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// ReviewRepository is the ledger of review facts. Mutations take an
// sqlx.ExtContext so the service can run them on one transaction together
// with the audit append and the aggregate write.
type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Insert appends a review to the ledger and returns its generated ID.
func (r *ReviewRepository) Insert(ctx context.Context, q sqlx.ExtContext, rev *model.Review) (int64, error) {
	query := q.Rebind(`
		INSERT INTO reviews (place_id, user_id, rating, body, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := q.QueryRowxContext(ctx, query,
		rev.PlaceID, rev.UserID, rev.Rating, rev.Body, rev.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ReviewRepository.Insert: %w", err)
	}
	rev.ID = id
	return id, nil
}

// Get returns one review on q. sql.ErrNoRows when missing.
func (r *ReviewRepository) Get(ctx context.Context, q sqlx.ExtContext, id int64) (*model.Review, error) {
	var rev model.Review
	err := sqlx.GetContext(ctx, q, &rev, q.Rebind(`SELECT * FROM reviews WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// Delete removes a review from the ledger and reports how many rows went.
func (r *ReviewRepository) Delete(ctx context.Context, q sqlx.ExtContext, id int64) (int64, error) {
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM reviews WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("ReviewRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ReviewRepository.Delete: rows affected: %w", err)
	}
	return n, nil
}

// RatingsForPlace returns the live ratings of a place, the input of the
// aggregate recompute.
func (r *ReviewRepository) RatingsForPlace(ctx context.Context, q sqlx.ExtContext, placeID int64) ([]int, error) {
	ratings := []int{}
	query := q.Rebind(`SELECT rating FROM reviews WHERE place_id = ?`)
	if err := sqlx.SelectContext(ctx, q, &ratings, query, placeID); err != nil {
		return nil, fmt.Errorf("ReviewRepository.RatingsForPlace: %w", err)
	}
	return ratings, nil
}

// ListByPlace returns all reviews for a place, newest first.
func (r *ReviewRepository) ListByPlace(ctx context.Context, placeID int64) ([]model.Review, error) {
	reviews := []model.Review{}
	query := r.db.Rebind(`
		SELECT * FROM reviews
		WHERE place_id = ?
		ORDER BY created_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &reviews, query, placeID); err != nil {
		return nil, fmt.Errorf("ReviewRepository.ListByPlace: %w", err)
	}
	return reviews, nil
}
