package service

import (
	"context"

	"github.com/MKhiriev/go-slice-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type SliceService interface {
	UploadSlice(ctx context.Context, slice models.Slice) (models.Slice, error)
	UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error)
	DeleteSlices(ctx context.Context, deleteRequest models.DeleteRequest) (int64, error)

	GetAllSlices(ctx context.Context, userID int64) ([]models.Slice, error)
	SearchSlices(ctx context.Context, searchRequest models.SearchRequest) ([]models.Slice, error)
	GetContentSample(ctx context.Context, sampleRequest models.SampleRequest) ([]string, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// KeyRotationService re-encrypts a user's whole corpus under a new key.
// Rotations are all-or-nothing: either every slice is rewritten or none is.
type KeyRotationService interface {
	// RotateKey runs the full rotation protocol for one owner and returns
	// the number of slices rewritten. oldKey and newKey arrive encoded
	// (base64, empty string = no key).
	RotateKey(ctx context.Context, rotateRequest models.RotateKeyRequest) (int64, error)
}
