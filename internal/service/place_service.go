package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"travelreview/internal/apperr"
	"travelreview/internal/model"
	"travelreview/internal/repository"
)

// PlaceService contains business logic for destinations, places and the
// place search.
type PlaceService struct {
	placeRepo       *repository.PlaceRepository
	destinationRepo *repository.DestinationRepository
	photoRepo       *repository.PhotoRepository
}

func NewPlaceService(
	pr *repository.PlaceRepository,
	dr *repository.DestinationRepository,
	phr *repository.PhotoRepository,
) *PlaceService {
	return &PlaceService{placeRepo: pr, destinationRepo: dr, photoRepo: phr}
}

// CreateDestination adds a new destination.
func (s *PlaceService) CreateDestination(ctx context.Context, name, country, region, description string) (*model.Destination, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(country) == "" {
		return nil, fmt.Errorf("%w: destination name and country are required", apperr.ErrValidation)
	}
	d := &model.Destination{Name: name, Country: country, Region: region, Description: description}
	if _, err := s.destinationRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return d, nil
}

// ListDestinations returns all destinations.
func (s *PlaceService) ListDestinations(ctx context.Context) ([]model.Destination, error) {
	return s.destinationRepo.List(ctx)
}

// CreatePlace adds a place to a destination. The category must be one of the
// known kinds and the destination must exist.
func (s *PlaceService) CreatePlace(ctx context.Context, destinationID int64, name, category, description string) (*model.Place, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: place name is required", apperr.ErrValidation)
	}
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperr.ErrValidation, category)
	}
	exists, err := s.destinationRepo.Exists(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: destination %d", apperr.ErrNotFound, destinationID)
	}

	p := &model.Place{
		DestinationID: destinationID,
		Name:          name,
		Category:      category,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.placeRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return p, nil
}

// GetPlace returns a place together with its photo metadata.
func (s *PlaceService) GetPlace(ctx context.Context, id int64) (*model.Place, []model.Photo, error) {
	p, err := s.placeRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: place %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	photos, err := s.photoRepo.ListByPlace(ctx, id)
	if err != nil {
		return p, nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return p, photos, nil
}

// SearchPlaces filters places by category, destination, minimum cached
// rating and keyword.
func (s *PlaceService) SearchPlaces(ctx context.Context, category string, destinationID int64, minRating float64, keyword string) ([]model.Place, error) {
	if category != "" && !model.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperr.ErrValidation, category)
	}
	return s.placeRepo.FindByFilters(ctx, category, destinationID, minRating, keyword)
}
