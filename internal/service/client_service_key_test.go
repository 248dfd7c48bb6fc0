// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fakes: adapter.ServerAdapter, store.LocalKeyStore
// ─────────────────────────────────────────────

type fakeServerAdapter struct {
	token string

	sampleFn func(ctx context.Context, limit int) ([]string, error)
	rotateFn func(ctx context.Context, oldKey, newKey string) (models.RotateKeyResponse, error)
	uploadFn func(ctx context.Context, slice models.Slice) (models.Slice, error)
	updateFn func(ctx context.Context, slice models.Slice) (models.Slice, error)
	deleteFn func(ctx context.Context, clientSideID string) error
	listFn   func(ctx context.Context) ([]models.Slice, error)
	searchFn func(ctx context.Context, search models.SearchRequest) ([]models.Slice, error)
}

func (f *fakeServerAdapter) SetToken(token string) { f.token = token }
func (f *fakeServerAdapter) Token() string         { return f.token }

func (f *fakeServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (f *fakeServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (f *fakeServerAdapter) UploadSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, slice)
	}
	return slice, nil
}

func (f *fakeServerAdapter) UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, slice)
	}
	return slice, nil
}

func (f *fakeServerAdapter) DeleteSlice(ctx context.Context, clientSideID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, clientSideID)
	}
	return nil
}

func (f *fakeServerAdapter) ListSlices(ctx context.Context) ([]models.Slice, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeServerAdapter) SearchSlices(ctx context.Context, search models.SearchRequest) ([]models.Slice, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, search)
	}
	return nil, nil
}

func (f *fakeServerAdapter) FetchContentSample(ctx context.Context, limit int) ([]string, error) {
	if f.sampleFn != nil {
		return f.sampleFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeServerAdapter) RotateKey(ctx context.Context, oldKey, newKey string) (models.RotateKeyResponse, error) {
	if f.rotateFn != nil {
		return f.rotateFn(ctx, oldKey, newKey)
	}
	return models.RotateKeyResponse{Success: true}, nil
}

type fakeLocalKeyStore struct {
	mu            sync.Mutex
	userID        int64
	token         string
	key           string
	saveErr       error
	getSessionErr error
}

func (f *fakeLocalKeyStore) SaveSession(ctx context.Context, userID int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID, f.token = userID, token
	return nil
}

func (f *fakeLocalKeyStore) GetSession(ctx context.Context) (int64, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getSessionErr != nil {
		return 0, "", f.getSessionErr
	}
	return f.userID, f.token, nil
}

func (f *fakeLocalKeyStore) ClearSession(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID, f.token = 0, ""
	return nil
}

func (f *fakeLocalKeyStore) SaveKey(ctx context.Context, encodedKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.key = encodedKey
	return nil
}

func (f *fakeLocalKeyStore) GetKey(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key, nil
}

func (f *fakeLocalKeyStore) storedKey() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func newTestKeyService(srv *fakeServerAdapter, local *fakeLocalKeyStore) ClientKeyService {
	return NewClientKeyService(srv, local, testCipher, testTokenizer, logger.Nop())
}

func TestKeyService_SetAndLoadPassphrase(t *testing.T) {
	local := &fakeLocalKeyStore{}
	svc := newTestKeyService(&fakeServerAdapter{}, local)

	require.NoError(t, svc.SetPassphrase(context.Background(), "my passphrase"))
	assert.True(t, svc.HasKey())
	assert.NotEmpty(t, local.storedKey())

	// a fresh service restores the same key from the local store
	restored := newTestKeyService(&fakeServerAdapter{}, local)
	require.NoError(t, restored.LoadKey(context.Background()))
	assert.True(t, restored.HasKey())

	content, _, err := svc.EncryptContent("round trip")
	require.NoError(t, err)
	assert.Equal(t, "round trip", restored.DecryptForDisplay(content))
}

func TestKeyService_EmptyPassphraseDisablesEncryption(t *testing.T) {
	local := &fakeLocalKeyStore{}
	svc := newTestKeyService(&fakeServerAdapter{}, local)

	require.NoError(t, svc.SetPassphrase(context.Background(), ""))
	assert.False(t, svc.HasKey())

	content, tokens, err := svc.EncryptContent("stays plain")
	require.NoError(t, err)
	assert.Equal(t, "stays plain", content)
	assert.Empty(t, tokens)
}

func TestKeyService_ValidateAgainstMatchingCorpus(t *testing.T) {
	key := testCipher.DeriveKey("shared passphrase")
	sealed, err := testCipher.Encrypt("server side content", key)
	require.NoError(t, err)

	srv := &fakeServerAdapter{
		sampleFn: func(ctx context.Context, limit int) ([]string, error) {
			assert.Equal(t, keyValidationSampleLimit, limit)
			return []string{sealed}, nil
		},
	}

	svc := newTestKeyService(srv, &fakeLocalKeyStore{})
	require.NoError(t, svc.SetPassphrase(context.Background(), "shared passphrase"))

	valid, err := svc.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestKeyService_ValidateDetectsForeignKey(t *testing.T) {
	otherKey := testCipher.DeriveKey("somebody else's passphrase")
	sealed, err := testCipher.Encrypt("content", otherKey)
	require.NoError(t, err)

	srv := &fakeServerAdapter{
		sampleFn: func(ctx context.Context, limit int) ([]string, error) {
			return []string{sealed}, nil
		},
	}

	svc := newTestKeyService(srv, &fakeLocalKeyStore{})
	require.NoError(t, svc.SetPassphrase(context.Background(), "my passphrase"))

	valid, err := svc.Validate(context.Background())
	assert.False(t, valid)

	var decErr *crypto.DecryptError
	require.ErrorAs(t, err, &decErr)
}

func TestKeyService_ValidateEmptyCorpusIsValid(t *testing.T) {
	svc := newTestKeyService(&fakeServerAdapter{}, &fakeLocalKeyStore{})
	require.NoError(t, svc.SetPassphrase(context.Background(), "any passphrase"))

	valid, err := svc.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestKeyService_ChangePassphraseCommitsLocallyOnSuccess(t *testing.T) {
	local := &fakeLocalKeyStore{}

	var sentOld, sentNew string
	srv := &fakeServerAdapter{
		rotateFn: func(ctx context.Context, oldKey, newKey string) (models.RotateKeyResponse, error) {
			sentOld, sentNew = oldKey, newKey
			return models.RotateKeyResponse{Success: true, SlicesUpdated: 4}, nil
		},
	}

	svc := newTestKeyService(srv, local)
	require.NoError(t, svc.SetPassphrase(context.Background(), "old passphrase"))

	updated, err := svc.ChangePassphrase(context.Background(), "old passphrase", "new passphrase")
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)

	assert.Equal(t, crypto.EncodeKey(testCipher.DeriveKey("old passphrase")), sentOld)
	assert.Equal(t, crypto.EncodeKey(testCipher.DeriveKey("new passphrase")), sentNew)
	assert.Equal(t, crypto.EncodeKey(testCipher.DeriveKey("new passphrase")), local.storedKey(),
		"new key must be persisted after a successful rotation")
}

func TestKeyService_ChangePassphraseKeepsOldKeyOnFailure(t *testing.T) {
	local := &fakeLocalKeyStore{}
	srv := &fakeServerAdapter{
		rotateFn: func(ctx context.Context, oldKey, newKey string) (models.RotateKeyResponse, error) {
			return models.RotateKeyResponse{Success: false, Error: "old key does not match the stored corpus"},
				errors.New("conflict")
		},
	}

	svc := newTestKeyService(srv, local)
	require.NoError(t, svc.SetPassphrase(context.Background(), "old passphrase"))
	before := local.storedKey()

	_, err := svc.ChangePassphrase(context.Background(), "old passphrase", "new passphrase")
	require.Error(t, err)
	assert.Equal(t, before, local.storedKey(), "local key must not change when rotation fails")
}

func TestKeyService_ChangePassphraseToEmptyDisables(t *testing.T) {
	local := &fakeLocalKeyStore{}
	srv := &fakeServerAdapter{}

	svc := newTestKeyService(srv, local)
	require.NoError(t, svc.SetPassphrase(context.Background(), "old passphrase"))

	_, err := svc.ChangePassphrase(context.Background(), "old passphrase", "")
	require.NoError(t, err)
	assert.False(t, svc.HasKey())
	assert.Empty(t, local.storedKey())
}
