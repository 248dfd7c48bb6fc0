package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-slice-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for account registration
// and authentication against the remote server.
type ClientAuthService interface {
	// Register creates a new account on the server and persists the
	// resulting session locally.
	Register(ctx context.Context, login, password string) error

	// Login authenticates against the server and persists the resulting
	// session locally.
	Login(ctx context.Context, login, password string) error

	// RestoreSession loads a previously persisted session from the local
	// store into the adapter. Returns store.ErrLocalSessionNotFound when
	// the client has never logged in.
	RestoreSession(ctx context.Context) error

	// Logout clears the persisted session and the adapter token.
	Logout(ctx context.Context) error
}

// ClientKeyService owns the content key on the client: deriving it from the
// passphrase, persisting it encoded in the local store, validating it
// against the server-side corpus, and driving key rotation.
//
// The passphrase itself is never persisted or transmitted anywhere.
type ClientKeyService interface {
	// LoadKey restores the persisted key material into memory. A missing
	// or empty stored key loads as "no key" without error.
	LoadKey(ctx context.Context) error

	// HasKey reports whether key material is currently held.
	HasKey() bool

	// SetPassphrase derives the key from passphrase and holds + persists
	// it locally. It does not touch the server: use ChangePassphrase to
	// re-encrypt the corpus.
	SetPassphrase(ctx context.Context, passphrase string) error

	// Validate checks the held key against a sample of the user's most
	// recent server-side contents. An empty corpus is always valid. When
	// invalid, the returned error explains the first failure.
	Validate(ctx context.Context) (bool, error)

	// ChangePassphrase derives keys from both passphrases, asks the
	// server to rotate the corpus from old to new, and on success swaps
	// the locally held key. Empty strings mean "no encryption" on the
	// respective side. Returns the number of slices rewritten.
	ChangePassphrase(ctx context.Context, currentPassphrase, newPassphrase string) (int64, error)

	// EncryptContent seals text under the held key and returns the
	// envelope plus its token index. With no key held it returns the text
	// unchanged and no tokens.
	EncryptContent(text string) (content string, tokens []string, err error)

	// DecryptForDisplay renders stored content for the UI, substituting
	// the placeholder when it cannot be decrypted.
	DecryptForDisplay(content string) string

	// TokensForQuery derives search tokens for a query under the held
	// key. Nil when no key is held.
	TokensForQuery(query string) []string
}

// ClientSliceService manages the user's slices from the client side: all
// content is encrypted and indexed before upload and decrypted only for
// display.
type ClientSliceService interface {
	// Create encrypts text, assigns a new client-side UUID, and uploads
	// the slice.
	Create(ctx context.Context, sliceType models.SliceType, text string) (models.Slice, error)

	// Update re-encrypts text and replaces the identified slice.
	Update(ctx context.Context, clientSideID string, sliceType models.SliceType, text string) (models.Slice, error)

	// Delete removes the identified slice.
	Delete(ctx context.Context, clientSideID string) error

	// List returns the user's slices with content decrypted for display
	// (undecryptable content is replaced by the placeholder).
	List(ctx context.Context) ([]models.Slice, error)

	// Search finds slices containing query. With a key held, the query is
	// tokenized and candidates from the server are decrypted and
	// re-filtered by exact substring; without a key the server matches
	// plaintext directly.
	Search(ctx context.Context, query string) ([]models.Slice, error)
}

// ClientKeyJob is a background worker that periodically re-validates the
// held key against the server, detecting a passphrase change made from
// another device.
type ClientKeyJob interface {
	// Start launches the background goroutine. It validates every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
