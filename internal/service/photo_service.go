package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"travelreview/internal/apperr"
	"travelreview/internal/model"
	"travelreview/internal/repository"
)

// PhotoService attaches photos to (user, place) pairs: bytes go to GridFS,
// the metadata row to SQL.
type PhotoService struct {
	store     *repository.PhotoStore
	photoRepo *repository.PhotoRepository
	placeRepo *repository.PlaceRepository
	userRepo  *repository.UserRepository
}

func NewPhotoService(
	store *repository.PhotoStore,
	phr *repository.PhotoRepository,
	pr *repository.PlaceRepository,
	ur *repository.UserRepository,
) *PhotoService {
	return &PhotoService{store: store, photoRepo: phr, placeRepo: pr, userRepo: ur}
}

// Upload stores the file in GridFS and records the metadata row. The place
// and the user must both exist.
func (s *PhotoService) Upload(ctx context.Context, placeID, userID int64, file multipart.File, filename, caption string) (*model.Photo, error) {
	if _, err := s.placeRepo.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: place %d", apperr.ErrNotFound, placeID)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}

	fileID, err := s.store.Upload(file, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: gridfs upload: %v", apperr.ErrStorage, err)
	}

	p := &model.Photo{
		PlaceID:    placeID,
		UserID:     userID,
		FileID:     fileID,
		Caption:    caption,
		UploadedAt: time.Now().UTC(),
	}
	if _, err := s.photoRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	return p, nil
}

// Download returns the photo bytes for a metadata row ID.
func (s *PhotoService) Download(ctx context.Context, photoID int64) ([]byte, *model.Photo, error) {
	meta, err := s.photoRepo.GetByID(ctx, photoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: photo %d", apperr.ErrNotFound, photoID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperr.ErrStorage, err)
	}
	data, err := s.store.Download(meta.FileID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: gridfs download: %v", apperr.ErrStorage, err)
	}
	return data, meta, nil
}

// ListByPlace returns the photo metadata of a place.
func (s *PhotoService) ListByPlace(ctx context.Context, placeID int64) ([]model.Photo, error) {
	return s.photoRepo.ListByPlace(ctx, placeID)
}
