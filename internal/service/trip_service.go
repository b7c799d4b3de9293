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

// TripService contains business logic for trips and their day plans.
type TripService struct {
	tripRepo  *repository.TripRepository
	placeRepo *repository.PlaceRepository
	userRepo  *repository.UserRepository
}

func NewTripService(tr *repository.TripRepository, pr *repository.PlaceRepository, ur *repository.UserRepository) *TripService {
	return &TripService{tripRepo: tr, placeRepo: pr, userRepo: ur}
}

// CreateTrip creates a trip for a user. A start date after the end date is
// rejected before anything is written.
func (s *TripService) CreateTrip(ctx context.Context, userID int64, name string, startDate, endDate time.Time, notes string) (*model.Trip, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: trip name is required", apperr.ErrValidation)
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s",
			apperr.ErrValidation, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}

	t := &model.Trip{
		UserID:    userID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.tripRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return t, nil
}

// GetTrip returns one trip.
func (s *TripService) GetTrip(ctx context.Context, id int64) (*model.Trip, error) {
	t, err := s.tripRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trip %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return t, nil
}

// AddPlace puts a place on the trip's day plan. A place can appear on a trip
// only once.
func (s *TripService) AddPlace(ctx context.Context, tripID, placeID int64, dayNumber int, notes string) error {
	if dayNumber < 1 {
		return fmt.Errorf("%w: day number must be at least 1", apperr.ErrValidation)
	}
	if _, err := s.GetTrip(ctx, tripID); err != nil {
		return err
	}
	p, err := s.placeRepo.GetByID(ctx, placeID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}

	has, err := s.tripRepo.HasPlace(ctx, tripID, placeID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if has {
		return fmt.Errorf("%w: place %q is already on the trip", apperr.ErrConflict, p.Name)
	}

	tp := &model.TripPlace{TripID: tripID, PlaceID: placeID, DayNumber: dayNumber, Notes: notes}
	if err := s.tripRepo.AddPlace(ctx, tp); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return nil
}

// RemovePlace takes a place off the trip. Removing a place that is not on
// the trip is a conflict.
func (s *TripService) RemovePlace(ctx context.Context, tripID, placeID int64) error {
	if _, err := s.GetTrip(ctx, tripID); err != nil {
		return err
	}
	n, err := s.tripRepo.RemovePlace(ctx, tripID, placeID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: place %d is not on trip %d", apperr.ErrConflict, placeID, tripID)
	}
	return nil
}

// Itinerary returns the trip's places in day order.
func (s *TripService) Itinerary(ctx context.Context, tripID int64) ([]model.TripStop, error) {
	if _, err := s.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.tripRepo.Itinerary(ctx, tripID)
}
