package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-slice-keeper/internal/adapter"
	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
	"github.com/MKhiriev/go-slice-keeper/models"
)

// clientSliceService is the concrete implementation of ClientSliceService.
// It is the encryption boundary of the client: everything leaving it toward
// the adapter is sealed, everything returned for display is opened.
type clientSliceService struct {
	serverAdapter adapter.ServerAdapter
	keyService    ClientKeyService
	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

func NewClientSliceService(
	serverAdapter adapter.ServerAdapter,
	keyService ClientKeyService,
	logger *logger.Logger,
) ClientSliceService {
	return &clientSliceService{
		serverAdapter: serverAdapter,
		keyService:    keyService,
		uuidGenerator: utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// Create implements [ClientSliceService].
func (c *clientSliceService) Create(ctx context.Context, sliceType models.SliceType, text string) (models.Slice, error) {
	if strings.TrimSpace(text) == "" {
		return models.Slice{}, ErrInvalidDataProvided
	}

	content, tokens, err := c.keyService.EncryptContent(text)
	if err != nil {
		return models.Slice{}, err
	}

	slice := models.Slice{
		ClientSideID: c.uuidGenerator.Generate(),
		Type:         sliceType,
		Content:      content,
		SearchTokens: tokens,
	}

	saved, err := c.serverAdapter.UploadSlice(ctx, slice)
	if err != nil {
		return models.Slice{}, fmt.Errorf("uploading slice: %w", err)
	}

	saved.Content = text
	return saved, nil
}

// Update implements [ClientSliceService].
func (c *clientSliceService) Update(ctx context.Context, clientSideID string, sliceType models.SliceType, text string) (models.Slice, error) {
	if clientSideID == "" || strings.TrimSpace(text) == "" {
		return models.Slice{}, ErrInvalidDataProvided
	}

	content, tokens, err := c.keyService.EncryptContent(text)
	if err != nil {
		return models.Slice{}, err
	}

	updated, err := c.serverAdapter.UpdateSlice(ctx, models.Slice{
		ClientSideID: clientSideID,
		Type:         sliceType,
		Content:      content,
		SearchTokens: tokens,
	})
	if err != nil {
		return models.Slice{}, fmt.Errorf("updating slice: %w", err)
	}

	updated.Content = text
	return updated, nil
}

// Delete implements [ClientSliceService].
func (c *clientSliceService) Delete(ctx context.Context, clientSideID string) error {
	if clientSideID == "" {
		return ErrInvalidDataProvided
	}

	if err := c.serverAdapter.DeleteSlice(ctx, clientSideID); err != nil {
		return fmt.Errorf("deleting slice: %w", err)
	}

	return nil
}

// List implements [ClientSliceService].
func (c *clientSliceService) List(ctx context.Context) ([]models.Slice, error) {
	slices, err := c.serverAdapter.ListSlices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing slices: %w", err)
	}

	for i := range slices {
		slices[i].Content = c.keyService.DecryptForDisplay(slices[i].Content)
	}

	return slices, nil
}

// Search implements [ClientSliceService]. Token matches are candidates only
// (different bigrams can collide in the truncated token space), so results
// are re-filtered by case-insensitive substring after decryption. Slices
// that fail to decrypt are dropped, not shown as placeholders: a search hit
// the user cannot read is noise.
func (c *clientSliceService) Search(ctx context.Context, query string) ([]models.Slice, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < crypto.MinQueryLength {
		return nil, ErrInvalidDataProvided
	}

	search := models.SearchRequest{}
	if c.keyService.HasKey() {
		search.SearchTokens = c.keyService.TokensForQuery(query)
	} else {
		search.Query = query
	}

	candidates, err := c.serverAdapter.SearchSlices(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("searching slices: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]models.Slice, 0, len(candidates))
	for _, candidate := range candidates {
		plaintext := c.keyService.DecryptForDisplay(candidate.Content)
		if plaintext == crypto.DisplayPlaceholder {
			continue
		}
		if !strings.Contains(strings.ToLower(plaintext), needle) {
			continue
		}
		candidate.Content = plaintext
		results = append(results, candidate)
	}

	return results, nil
}
