package service

import (
	"context"
	"errors"
	"testing"

	"travelreview/internal/apperr"
	"travelreview/internal/model"
	"travelreview/internal/repository"
	"travelreview/internal/testutil"
)

func newPlaceService(t *testing.T) (*PlaceService, int64) {
	t.Helper()
	db := testutil.NewDB(t)
	destRepo := repository.NewDestinationRepository(db)
	svc := NewPlaceService(
		repository.NewPlaceRepository(db),
		destRepo,
		repository.NewPhotoRepository(db),
	)
	destID, err := destRepo.Create(context.Background(), &model.Destination{Name: "Oslo", Country: "Norway"})
	if err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	return svc, destID
}

func TestCreatePlaceValidation(t *testing.T) {
	svc, destID := newPlaceService(t)
	ctx := context.Background()

	if _, err := svc.CreatePlace(ctx, destID, "", model.CategoryHotel, ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty name: want ErrValidation, got %v", err)
	}
	if _, err := svc.CreatePlace(ctx, destID, "Somewhere", "museum", ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad category: want ErrValidation, got %v", err)
	}
	if _, err := svc.CreatePlace(ctx, 9999, "Somewhere", model.CategoryHotel, ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing destination: want ErrNotFound, got %v", err)
	}
}

func TestCreatePlaceStartsUnrated(t *testing.T) {
	svc, destID := newPlaceService(t)
	ctx := context.Background()

	p, err := svc.CreatePlace(ctx, destID, "Grand Hotel", model.CategoryHotel, "by the palace")
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	got, photos, err := svc.GetPlace(ctx, p.ID)
	if err != nil {
		t.Fatalf("get place: %v", err)
	}
	if got.AverageRating != nil {
		t.Fatalf("new place average = %v, want nil", *got.AverageRating)
	}
	if len(photos) != 0 {
		t.Fatalf("photos = %d, want 0", len(photos))
	}
}

func TestSearchPlacesFilters(t *testing.T) {
	svc, destID := newPlaceService(t)
	ctx := context.Background()

	if _, err := svc.CreatePlace(ctx, destID, "Grand Hotel", model.CategoryHotel, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreatePlace(ctx, destID, "Maaemo", model.CategoryRestaurant, "tasting menu"); err != nil {
		t.Fatalf("create: %v", err)
	}

	hotels, err := svc.SearchPlaces(ctx, model.CategoryHotel, 0, 0, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Name != "Grand Hotel" {
		t.Fatalf("hotel search = %+v", hotels)
	}

	byKeyword, err := svc.SearchPlaces(ctx, "", 0, 0, "tasting")
	if err != nil {
		t.Fatalf("keyword search: %v", err)
	}
	if len(byKeyword) != 1 || byKeyword[0].Name != "Maaemo" {
		t.Fatalf("keyword search = %+v", byKeyword)
	}

	if _, err := svc.SearchPlaces(ctx, "castle", 0, 0, ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad category filter: want ErrValidation, got %v", err)
	}

	all, err := svc.SearchPlaces(ctx, "", destID, 0, "")
	if err != nil {
		t.Fatalf("destination search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("destination search = %d places, want 2", len(all))
	}
}
