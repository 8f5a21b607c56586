package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shuttlehub/club-system/models"
	"github.com/shuttlehub/club-system/repositories"
	"github.com/shuttlehub/club-system/storage"
)

type CreateVenueInput struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	CourtCount int     `json:"court_count"`
	Notes      *string `json:"notes,omitempty"`
}

type VenueService interface {
	Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, id int, input CreateVenueInput) (*models.Venue, error)
	UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Venue, error)
	Delete(ctx context.Context, id int) error
}

type venueService struct {
	venueRepo repositories.VenueRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewVenueService(venueRepo repositories.VenueRepository, uploader storage.FileUploader, logger *slog.Logger) VenueService {
	return &venueService{venueRepo: venueRepo, uploader: uploader, logger: logger}
}

func (s *venueService) Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error) {
	if err := validateVenueInput(input); err != nil {
		return nil, err
	}
	venue := &models.Venue{
		Name:       input.Name,
		Address:    input.Address,
		CourtCount: input.CourtCount,
		Notes:      input.Notes,
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	s.fillPhotoURL(venue)
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range venues {
		s.fillPhotoURL(&venues[i])
	}
	return venues, nil
}

func (s *venueService) Update(ctx context.Context, id int, input CreateVenueInput) (*models.Venue, error) {
	if err := validateVenueInput(input); err != nil {
		return nil, err
	}
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	venue.Name = input.Name
	venue.Address = input.Address
	venue.CourtCount = input.CourtCount
	venue.Notes = input.Notes
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	s.fillPhotoURL(venue)
	return venue, nil
}

// UploadPhoto stores a venue photo in object storage and records its key.
// A previous photo, if any, is removed after the new one is in place.
func (s *venueService) UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: photo storage is not configured", ErrValidationFailed)
	}

	key := fmt.Sprintf("venues/%d/%s", id, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("upload venue photo: %w", err)
	}

	oldKey := venue.PhotoKey
	if err := s.venueRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}
	if oldKey != nil {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete replaced venue photo",
				slog.Int("venue_id", id), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	venue.PhotoKey = &result.Key
	s.fillPhotoURL(venue)
	return venue, nil
}

func (s *venueService) Delete(ctx context.Context, id int) error {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		return err
	}
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		return err
	}
	if venue.PhotoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *venue.PhotoKey); err != nil {
			s.logger.Warn("failed to delete venue photo",
				slog.Int("venue_id", id), slog.String("key", *venue.PhotoKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *venueService) fillPhotoURL(v *models.Venue) {
	if v.PhotoKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*v.PhotoKey)
	if url != "" {
		v.PhotoURL = &url
	}
}

func validateVenueInput(input CreateVenueInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: venue name required", ErrValidationFailed)
	}
	if input.CourtCount < 1 {
		return fmt.Errorf("%w: venue must have at least one court", ErrValidationFailed)
	}
	return nil
}
