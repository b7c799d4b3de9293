package service

import (
	"context"
	"fmt"
	"math"

	"travelreview/internal/apperr"
	"travelreview/internal/repository"
)

// StatsService is the read-only reporting layer over places, destinations
// and review aggregates.
type StatsService struct {
	statsRepo       *repository.StatsRepository
	destinationRepo *repository.DestinationRepository
}

func NewStatsService(sr *repository.StatsRepository, dr *repository.DestinationRepository) *StatsService {
	return &StatsService{statsRepo: sr, destinationRepo: dr}
}

// PlaceStats returns one row per place with its destination name, review
// count and average rating. Places without reviews appear with a count of 0
// and a nil rating.
func (s *StatsService) PlaceStats(ctx context.Context) ([]repository.PlaceStatsRow, error) {
	rows, err := s.statsRepo.PlaceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	for i := range rows {
		rows[i].AvgRating = round2(rows[i].AvgRating)
	}
	return rows, nil
}

// AvgRatingByDestination returns the unweighted mean over all reviews of all
// places in the destination, or nil when no reviews exist.
func (s *StatsService) AvgRatingByDestination(ctx context.Context, destinationID int64) (*float64, error) {
	exists, err := s.destinationRepo.Exists(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: destination %d", apperr.ErrNotFound, destinationID)
	}
	avg, err := s.statsRepo.AvgRatingByDestination(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return round2(avg), nil
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
