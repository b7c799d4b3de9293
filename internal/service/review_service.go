package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/apperr"
	"travelreview/internal/model"
	"travelreview/internal/repository"
)

// ReviewService is the review ledger. Every mutation runs as one unit of
// work: the ledger write, the audit append and the aggregate recompute
// commit together or not at all.
type ReviewService struct {
	db          *sqlx.DB
	reviewRepo  *repository.ReviewRepository
	historyRepo *repository.HistoryRepository
	placeRepo   *repository.PlaceRepository
	userRepo    *repository.UserRepository
}

func NewReviewService(
	db *sqlx.DB,
	rr *repository.ReviewRepository,
	hr *repository.HistoryRepository,
	pr *repository.PlaceRepository,
	ur *repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		db:          db,
		reviewRepo:  rr,
		historyRepo: hr,
		placeRepo:   pr,
		userRepo:    ur,
	}
}

// SubmitReview validates the rating and the references, then inserts the
// review, appends an INS audit row and recomputes the place aggregate in one
// transaction.
func (s *ReviewService) SubmitReview(ctx context.Context, placeID, userID int64, rating int, body string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %d outside [1,5]", apperr.ErrValidation, rating)
	}
	if err := s.checkReferences(ctx, placeID, userID); err != nil {
		return nil, err
	}

	rev := &model.Review{
		PlaceID:   placeID,
		UserID:    userID,
		Rating:    rating,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.reviewRepo.Insert(ctx, tx, rev); err != nil {
			return err
		}
		if err := s.historyRepo.Record(ctx, tx, rev, model.OpInsert, rev.CreatedAt); err != nil {
			return err
		}
		return s.recalculate(ctx, tx, placeID)
	})
	if err != nil {
		return nil, fmt.Errorf("ReviewService.SubmitReview: %w", err)
	}
	return rev, nil
}

// DeleteReview removes the review, appends a DEL audit row with the full row
// image and recomputes the place aggregate in one transaction. Deleting a
// review that does not exist is a conflict.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID int64) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		snapshot, err := s.reviewRepo.Get(ctx, tx, reviewID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: review %d does not exist", apperr.ErrConflict, reviewID)
		}
		if err != nil {
			return err
		}
		if _, err := s.reviewRepo.Delete(ctx, tx, reviewID); err != nil {
			return err
		}
		if err := s.historyRepo.Record(ctx, tx, snapshot, model.OpDelete, time.Now().UTC()); err != nil {
			return err
		}
		return s.recalculate(ctx, tx, snapshot.PlaceID)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return err
		}
		return fmt.Errorf("ReviewService.DeleteReview: %w", err)
	}
	return nil
}

// UpdateReview edits a review as delete+insert in one transaction: a DEL
// audit row for the old image, an INS row for the new one. When the review
// moves to another place both aggregates are recomputed.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, placeID int64, rating int, body string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %d outside [1,5]", apperr.ErrValidation, rating)
	}
	exists, err := s.placeRepo.Exists(ctx, s.db, placeID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.UpdateReview: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
	}

	var updated *model.Review
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		old, err := s.reviewRepo.Get(ctx, tx, reviewID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: review %d does not exist", apperr.ErrConflict, reviewID)
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if _, err := s.reviewRepo.Delete(ctx, tx, reviewID); err != nil {
			return err
		}
		if err := s.historyRepo.Record(ctx, tx, old, model.OpDelete, now); err != nil {
			return err
		}

		updated = &model.Review{
			PlaceID:   placeID,
			UserID:    old.UserID,
			Rating:    rating,
			Body:      body,
			CreatedAt: now,
		}
		if _, err := s.reviewRepo.Insert(ctx, tx, updated); err != nil {
			return err
		}
		if err := s.historyRepo.Record(ctx, tx, updated, model.OpInsert, now); err != nil {
			return err
		}

		if err := s.recalculate(ctx, tx, placeID); err != nil {
			return err
		}
		if old.PlaceID != placeID {
			return s.recalculate(ctx, tx, old.PlaceID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("ReviewService.UpdateReview: %w", err)
	}
	return updated, nil
}

// ReviewsForPlace lists the live reviews of a place, newest first.
func (s *ReviewService) ReviewsForPlace(ctx context.Context, placeID int64) ([]model.Review, error) {
	exists, err := s.placeRepo.Exists(ctx, s.db, placeID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.ReviewsForPlace: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
	}
	return s.reviewRepo.ListByPlace(ctx, placeID)
}

// HistoryForPlace returns the audit trail of a place, oldest first.
func (s *ReviewService) HistoryForPlace(ctx context.Context, placeID int64) ([]model.ReviewHistory, error) {
	exists, err := s.placeRepo.Exists(ctx, s.db, placeID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.HistoryForPlace: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
	}
	return s.historyRepo.ByPlace(ctx, placeID)
}

// Recalculate recomputes the cached average rating of a place from its live
// reviews. The mean is a pure function of the review set, so running it
// again with no intervening mutation leaves the value unchanged.
func (s *ReviewService) Recalculate(ctx context.Context, placeID int64) error {
	exists, err := s.placeRepo.Exists(ctx, s.db, placeID)
	if err != nil {
		return fmt.Errorf("ReviewService.Recalculate: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
	}
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		return s.recalculate(ctx, tx, placeID)
	})
	if err != nil {
		return fmt.Errorf("ReviewService.Recalculate: %w", err)
	}
	return nil
}

// recalculate reads the place's live ratings on the caller's transaction,
// computes the mean rounded to 2 decimals and writes it back. No reviews
// left means NULL, never zero.
func (s *ReviewService) recalculate(ctx context.Context, q sqlx.ExtContext, placeID int64) error {
	ratings, err := s.reviewRepo.RatingsForPlace(ctx, q, placeID)
	if err != nil {
		return err
	}
	var avg *float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		mean := math.Round(float64(sum)/float64(len(ratings))*100) / 100
		avg = &mean
	}
	return s.placeRepo.SetAverageRating(ctx, q, placeID, avg)
}

// checkReferences rejects dangling place/user references before any write.
func (s *ReviewService) checkReferences(ctx context.Context, placeID, userID int64) error {
	exists, err := s.placeRepo.Exists(ctx, s.db, placeID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if !exists {
		return fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
	}
	exists, err = s.userRepo.Exists(ctx, s.db, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if !exists {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	return nil
}

// inTx runs fn in a transaction, rolling back on any error so partial
// application is never visible.
func (s *ReviewService) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", apperr.ErrStorage, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperr.ErrStorage, err)
	}
	return nil
}
