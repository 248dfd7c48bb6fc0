package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalKeyStore persists the client's session and derived key material
// between runs. Key material is stored encoded; an empty encoded key means
// encryption is disabled.
type LocalKeyStore interface {
	SaveSession(ctx context.Context, userID int64, token string) error
	GetSession(ctx context.Context) (userID int64, token string, err error)
	ClearSession(ctx context.Context) error

	SaveKey(ctx context.Context, encodedKey string) error
	GetKey(ctx context.Context) (string, error)
}
