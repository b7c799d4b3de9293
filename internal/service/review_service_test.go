package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/apperr"
	"travelreview/internal/model"
	"travelreview/internal/repository"
	"travelreview/internal/testutil"
)

type reviewFixture struct {
	db        *sqlx.DB
	svc       *ReviewService
	placeRepo *repository.PlaceRepository
	histRepo  *repository.HistoryRepository
	userID    int64
	placeID   int64
	place2ID  int64
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	db := testutil.NewDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	destRepo := repository.NewDestinationRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	histRepo := repository.NewHistoryRepository(db)

	userID, err := userRepo.Create(ctx, &model.UserAccount{
		Username: "wanderer", Email: "w@example.com", PasswordHash: "x",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	destID, err := destRepo.Create(ctx, &model.Destination{Name: "Lisbon", Country: "Portugal"})
	if err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	placeID, err := placeRepo.Create(ctx, &model.Place{
		DestinationID: destID, Name: "Belem Tower", Category: model.CategoryAttraction,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed place: %v", err)
	}
	place2ID, err := placeRepo.Create(ctx, &model.Place{
		DestinationID: destID, Name: "Time Out Market", Category: model.CategoryRestaurant,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed second place: %v", err)
	}

	svc := NewReviewService(db, reviewRepo, histRepo, placeRepo, userRepo)
	return &reviewFixture{
		db: db, svc: svc, placeRepo: placeRepo, histRepo: histRepo,
		userID: userID, placeID: placeID, place2ID: place2ID,
	}
}

func (f *reviewFixture) averageRating(t *testing.T) *float64 {
	t.Helper()
	p, err := f.placeRepo.GetByID(context.Background(), f.placeID)
	if err != nil {
		t.Fatalf("get place: %v", err)
	}
	return p.AverageRating
}

func TestSubmitReviewRejectsBadRating(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, rating, "")
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("rating %d: want ErrValidation, got %v", rating, err)
		}
	}

	// Nothing may be written on a rejected submit.
	if n, err := f.histRepo.Count(ctx); err != nil || n != 0 {
		t.Fatalf("history count after rejects = %d (err %v), want 0", n, err)
	}
	if avg := f.averageRating(t); avg != nil {
		t.Fatalf("average after rejects = %v, want nil", *avg)
	}
}

func TestSubmitReviewRejectsDanglingReferences(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SubmitReview(ctx, 9999, f.userID, 4, ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing place: want ErrNotFound, got %v", err)
	}
	if _, err := f.svc.SubmitReview(ctx, f.placeID, 9999, 4, ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing user: want ErrNotFound, got %v", err)
	}
}

func TestAggregateFollowsReviewSet(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	var ids []int64
	for _, rating := range []int{5, 4, 3} {
		rev, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, rating, "")
		if err != nil {
			t.Fatalf("submit rating %d: %v", rating, err)
		}
		ids = append(ids, rev.ID)
	}
	if avg := f.averageRating(t); avg == nil || *avg != 4.00 {
		t.Fatalf("average after (5,4,3) = %v, want 4.00", avg)
	}

	// Drop the 3.
	if err := f.svc.DeleteReview(ctx, ids[2]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if avg := f.averageRating(t); avg == nil || *avg != 4.50 {
		t.Fatalf("average after dropping 3 = %v, want 4.50", avg)
	}

	// Drop the rest: no reviews means unknown, never zero.
	if err := f.svc.DeleteReview(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.DeleteReview(ctx, ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if avg := f.averageRating(t); avg != nil {
		t.Fatalf("average with no reviews = %v, want nil", *avg)
	}
}

func TestAggregateRoundsToTwoDecimals(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{1, 1, 2} {
		if _, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, rating, ""); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if avg := f.averageRating(t); avg == nil || *avg != 1.33 {
		t.Fatalf("average of (1,1,2) = %v, want 1.33", avg)
	}
}

func TestDeleteMissingReviewIsConflict(t *testing.T) {
	f := newReviewFixture(t)

	err := f.svc.DeleteReview(context.Background(), 12345)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestEveryMutationLeavesOneAuditRow(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	rev, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, 5, "stunning")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.DeleteReview(ctx, rev.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	trail, err := f.histRepo.ByReview(ctx, rev.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("history rows = %d, want 2", len(trail))
	}
	if trail[0].Operation != model.OpInsert || trail[1].Operation != model.OpDelete {
		t.Fatalf("operations = %s,%s, want INS,DEL", trail[0].Operation, trail[1].Operation)
	}
	// The DEL row carries the full image of the deleted review.
	if trail[1].Rating != 5 || trail[1].Body != "stunning" || trail[1].PlaceID != f.placeID {
		t.Fatalf("DEL snapshot mismatch: %+v", trail[1])
	}
}

func TestHistoryCountIsMonotonic(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		rev, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, 4, "")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := f.svc.DeleteReview(ctx, rev.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		n, err := f.histRepo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n <= last {
			t.Fatalf("history count %d did not grow past %d", n, last)
		}
		last = n
	}
	if last != 6 {
		t.Fatalf("history count = %d, want 6 for 3 inserts + 3 deletes", last)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{2, 5} {
		if _, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, rating, ""); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if err := f.svc.Recalculate(ctx, f.placeID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	first := f.averageRating(t)
	if err := f.svc.Recalculate(ctx, f.placeID); err != nil {
		t.Fatalf("second recalculate: %v", err)
	}
	second := f.averageRating(t)
	if first == nil || second == nil || *first != *second {
		t.Fatalf("recalculate changed the value: %v then %v", first, second)
	}
	if *second != 3.5 {
		t.Fatalf("average = %v, want 3.5", *second)
	}
}

func TestUpdateReviewMovesAcrossPlaces(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	rev, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, 2, "meh")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := f.svc.UpdateReview(ctx, rev.ID, f.place2ID, 5, "changed my mind")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID == rev.ID {
		t.Fatalf("edit must be delete+insert, got the same id %d", rev.ID)
	}

	// The old place is left with no reviews, the new one with the new rating.
	if avg := f.averageRating(t); avg != nil {
		t.Fatalf("old place average = %v, want nil", *avg)
	}
	p2, err := f.placeRepo.GetByID(ctx, f.place2ID)
	if err != nil {
		t.Fatalf("get new place: %v", err)
	}
	if p2.AverageRating == nil || *p2.AverageRating != 5.00 {
		t.Fatalf("new place average = %v, want 5.00", p2.AverageRating)
	}

	// The edit audits as a DEL of the old image and an INS of the new one.
	trail, err := f.histRepo.ByPlace(ctx, f.placeID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 2 || trail[1].Operation != model.OpDelete {
		t.Fatalf("old place trail = %+v, want INS then DEL", trail)
	}
	trail2, err := f.histRepo.ByPlace(ctx, f.place2ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail2) != 1 || trail2[0].Operation != model.OpInsert || trail2[0].Rating != 5 {
		t.Fatalf("new place trail = %+v, want one INS with rating 5", trail2)
	}
}

func TestUpdateMissingReviewIsConflict(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.UpdateReview(context.Background(), 777, f.placeID, 4, "")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestReviewsForPlaceNewestFirst(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{3, 4} {
		if _, err := f.svc.SubmitReview(ctx, f.placeID, f.userID, rating, ""); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	reviews, err := f.svc.ReviewsForPlace(ctx, f.placeID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(reviews))
	}
	if reviews[0].ID < reviews[1].ID {
		t.Fatalf("want newest first, got ids %d, %d", reviews[0].ID, reviews[1].ID)
	}

	if _, err := f.svc.ReviewsForPlace(ctx, 9999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing place: want ErrNotFound, got %v", err)
	}
}
