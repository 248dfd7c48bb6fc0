package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/models"
)

// sampleLimitMax caps the content sample size a client may request for key
// validation. The sample endpoint must never grow into a bulk export path.
const sampleLimitMax = 10

// sliceService is the concrete implementation of SliceService. It validates
// inbound data and delegates persistence to the SliceRepository; it never
// inspects content - plaintext and envelopes are indistinguishable to it.
type sliceService struct {
	sliceRepository store.SliceRepository
	logger          *logger.Logger
}

func NewSliceService(sliceRepository store.SliceRepository, logger *logger.Logger) SliceService {
	return &sliceService{
		sliceRepository: sliceRepository,
		logger:          logger,
	}
}

// UploadSlice persists a new slice. UserID comes from the auth token and
// must already be set; ClientSideID and Type are required.
func (s *sliceService) UploadSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	log := logger.FromContext(ctx)

	if err := validateSlice(slice); err != nil {
		log.Error().
			Int64("user_id", slice.UserID).
			Str("client_side_id", slice.ClientSideID).
			Msg("invalid slice data provided")
		return models.Slice{}, err
	}

	saved, err := s.sliceRepository.SaveSlice(ctx, slice)
	if err != nil {
		return models.Slice{}, fmt.Errorf("slice upload ended with error: %w", err)
	}

	return saved, nil
}

// UpdateSlice replaces the content, token index, and type of an existing
// slice. Concurrent updates are last-writer-wins.
func (s *sliceService) UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	log := logger.FromContext(ctx)

	if err := validateSlice(slice); err != nil {
		log.Error().
			Int64("user_id", slice.UserID).
			Str("client_side_id", slice.ClientSideID).
			Msg("invalid slice data provided")
		return models.Slice{}, err
	}

	updated, err := s.sliceRepository.UpdateSlice(ctx, slice)
	if err != nil {
		return models.Slice{}, fmt.Errorf("slice update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteSlices removes the identified slices and reports how many were
// actually deleted.
func (s *sliceService) DeleteSlices(ctx context.Context, deleteRequest models.DeleteRequest) (int64, error) {
	if deleteRequest.UserID == 0 || len(deleteRequest.ClientSideIDs) == 0 {
		return 0, ErrInvalidDataProvided
	}

	deleted, err := s.sliceRepository.DeleteSlices(ctx, deleteRequest.UserID, deleteRequest.ClientSideIDs)
	if err != nil {
		return 0, fmt.Errorf("slice deletion ended with error: %w", err)
	}

	return deleted, nil
}

// GetAllSlices lists the owner's slices, newest first.
func (s *sliceService) GetAllSlices(ctx context.Context, userID int64) ([]models.Slice, error) {
	if userID == 0 {
		return nil, ErrInvalidDataProvided
	}

	slices, err := s.sliceRepository.GetAllSlices(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("slice listing ended with error: %w", err)
	}

	return slices, nil
}

// SearchSlices runs a token set-membership search (or a plaintext substring
// search when no tokens are supplied). Token matches are candidates only;
// the client re-filters after decryption.
func (s *sliceService) SearchSlices(ctx context.Context, searchRequest models.SearchRequest) ([]models.Slice, error) {
	if searchRequest.UserID == 0 {
		return nil, ErrInvalidDataProvided
	}

	found, err := s.sliceRepository.SearchSlices(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("slice search ended with error: %w", err)
	}

	return found, nil
}

// GetContentSample returns the content column of the most recent slices,
// capped at sampleLimitMax. Used exclusively for client key validation.
func (s *sliceService) GetContentSample(ctx context.Context, sampleRequest models.SampleRequest) ([]string, error) {
	if sampleRequest.UserID == 0 {
		return nil, ErrInvalidDataProvided
	}

	limit := sampleRequest.Limit
	if limit <= 0 || limit > sampleLimitMax {
		limit = sampleLimitMax
	}

	contents, err := s.sliceRepository.GetContentSample(ctx, sampleRequest.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("content sampling ended with error: %w", err)
	}

	return contents, nil
}

func validateSlice(slice models.Slice) error {
	if slice.UserID == 0 || slice.ClientSideID == "" {
		return ErrInvalidDataProvided
	}

	switch slice.Type {
	case models.SliceTypeNote, models.SliceTypeJournal, models.SliceTypeBookmark:
		return nil
	default:
		return ErrInvalidDataProvided
	}
}
