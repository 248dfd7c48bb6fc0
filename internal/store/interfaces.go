package store

import (
	"context"

	"github.com/MKhiriev/go-slice-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// SliceRepository is the persisted store of slices for all owners.
//
// The rotation primitives (Stage/Count/Commit/Rollback) are the only methods
// that touch the staging columns; every other method operates strictly on
// live fields, so readers can never observe a half-rotated entry.
type SliceRepository interface {
	// SaveSlice inserts a new slice and returns it with server-assigned
	// fields (ID, timestamps) populated.
	SaveSlice(ctx context.Context, slice models.Slice) (models.Slice, error)

	// UpdateSlice replaces content, search tokens, and type of the slice
	// identified by (UserID, ClientSideID).
	UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error)

	// DeleteSlices removes the identified slices and reports how many rows
	// were deleted.
	DeleteSlices(ctx context.Context, userID int64, clientSideIDs []string) (int64, error)

	// GetAllSlices returns every slice owned by userID, newest first.
	GetAllSlices(ctx context.Context, userID int64) ([]models.Slice, error)

	// SearchSlices filters the owner's slices. With SearchTokens present
	// it performs token set-membership over the bigram index; otherwise it
	// falls back to a plaintext substring filter.
	SearchSlices(ctx context.Context, search models.SearchRequest) ([]models.Slice, error)

	// GetContentSample returns only the content field of the limit most
	// recent slices. Used exclusively for key validation.
	GetContentSample(ctx context.Context, userID int64, limit int) ([]string, error)

	// GetAllRecords returns the (ID, Content) projection of the owner's
	// whole corpus for the rotation coordinator.
	GetAllRecords(ctx context.Context, userID int64) ([]models.SliceRecord, error)

	// CountSlices returns the owner's total entry count.
	CountSlices(ctx context.Context, userID int64) (int, error)

	// StageRotation writes the re-encrypted content and recomputed tokens
	// of one slice into its staging columns, leaving live fields untouched.
	StageRotation(ctx context.Context, userID, sliceID int64, content string, tokens []string) error

	// CountStaged returns how many of the owner's slices currently carry a
	// staged value. Equality with CountSlices is the phase-2 gate.
	CountStaged(ctx context.Context, userID int64) (int, error)

	// CommitRotation atomically promotes all staged values to the live
	// columns and clears staging, in one bulk statement. Returns the number
	// of rows updated.
	CommitRotation(ctx context.Context, userID int64) (int64, error)

	// RollbackRotation unconditionally clears all staging columns for the
	// owner. Idempotent; safe to run when nothing is staged.
	RollbackRotation(ctx context.Context, userID int64) error
}
