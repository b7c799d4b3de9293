package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// HistoryRepository is the audit recorder: a pure append into review_history.
// Rows are never updated or deleted.
type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record appends one audit row for a ledger mutation. It runs on q so the
// append commits or rolls back together with the ledger write.
func (r *HistoryRepository) Record(ctx context.Context, q sqlx.ExtContext, snapshot *model.Review, op string, at time.Time) error {
	query := q.Rebind(`
		INSERT INTO review_history (review_id, place_id, user_id, rating, body, operation, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		snapshot.ID, snapshot.PlaceID, snapshot.UserID, snapshot.Rating, snapshot.Body, op, at,
	)
	if err != nil {
		return fmt.Errorf("HistoryRepository.Record: %w", err)
	}
	return nil
}

// ByPlace returns the audit trail of a place, oldest first.
func (r *HistoryRepository) ByPlace(ctx context.Context, placeID int64) ([]model.ReviewHistory, error) {
	rows := []model.ReviewHistory{}
	query := r.db.Rebind(`
		SELECT * FROM review_history
		WHERE place_id = ?
		ORDER BY changed_at, id`)
	if err := r.db.SelectContext(ctx, &rows, query, placeID); err != nil {
		return nil, fmt.Errorf("HistoryRepository.ByPlace: %w", err)
	}
	return rows, nil
}

// ByReview returns the audit trail of one review, oldest first.
func (r *HistoryRepository) ByReview(ctx context.Context, reviewID int64) ([]model.ReviewHistory, error) {
	rows := []model.ReviewHistory{}
	query := r.db.Rebind(`
		SELECT * FROM review_history
		WHERE review_id = ?
		ORDER BY changed_at, id`)
	if err := r.db.SelectContext(ctx, &rows, query, reviewID); err != nil {
		return nil, fmt.Errorf("HistoryRepository.ByReview: %w", err)
	}
	return rows, nil
}

// Count returns the total number of audit rows ever written.
func (r *HistoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM review_history`); err != nil {
		return 0, fmt.Errorf("HistoryRepository.Count: %w", err)
	}
	return n, nil
}
