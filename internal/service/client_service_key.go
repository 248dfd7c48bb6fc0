// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-slice-keeper/internal/adapter"
	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
)

// keyValidationSampleLimit is how many recent contents Validate fetches to
// check the held key against. Small on purpose: validation is a liveness
// probe, not an audit.
const keyValidationSampleLimit = 5

// clientKeyService is the concrete implementation of ClientKeyService.
type clientKeyService struct {
	serverAdapter adapter.ServerAdapter
	localStore    store.LocalKeyStore
	cipher        crypto.CipherEngine
	tokenizer     crypto.SearchTokenizer
	logger        *logger.Logger

	mu  sync.RWMutex
	key crypto.KeyMaterial
}

func NewClientKeyService(
	serverAdapter adapter.ServerAdapter,
	localStore store.LocalKeyStore,
	cipher crypto.CipherEngine,
	tokenizer crypto.SearchTokenizer,
	logger *logger.Logger,
) ClientKeyService {
	return &clientKeyService{
		serverAdapter: serverAdapter,
		localStore:    localStore,
		cipher:        cipher,
		tokenizer:     tokenizer,
		logger:        logger,
	}
}

// LoadKey implements [ClientKeyService].
func (c *clientKeyService) LoadKey(ctx context.Context) error {
	encoded, err := c.localStore.GetKey(ctx)
	if err != nil {
		return fmt.Errorf("loading key material: %w", err)
	}

	key, err := crypto.DecodeKey(encoded)
	if err != nil {
		return fmt.Errorf("decoding stored key material: %w", err)
	}

	c.mu.Lock()
	c.key = key
	c.mu.Unlock()

	return nil
}

// HasKey implements [ClientKeyService].
func (c *clientKeyService) HasKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key != nil
}

// SetPassphrase implements [ClientKeyService]. It derives, holds, and
// persists the key without touching the server.
func (c *clientKeyService) SetPassphrase(ctx context.Context, passphrase string) error {
	key := c.cipher.DeriveKey(passphrase)

	if err := c.localStore.SaveKey(ctx, crypto.EncodeKey(key)); err != nil {
		return fmt.Errorf("persisting key material: %w", err)
	}

	c.mu.Lock()
	c.key = key
	c.mu.Unlock()

	return nil
}

// Validate implements [ClientKeyService]. It strict-decrypts a sample of
// the user's most recent server-side contents under the held key. Every
// content must decrypt (or pass through, when no key is held); the first
// failure makes the key invalid.
func (c *clientKeyService) Validate(ctx context.Context) (bool, error) {
	sample, err := c.serverAdapter.FetchContentSample(ctx, keyValidationSampleLimit)
	if err != nil {
		return false, fmt.Errorf("fetching validation sample: %w", err)
	}

	key := c.currentKey()
	for _, content := range sample {
		if _, decErr := c.cipher.Decrypt(content, key); decErr != nil {
			return false, decErr
		}
	}

	return true, nil
}

// ChangePassphrase implements [ClientKeyService]. The server performs the
// actual corpus rotation; the local key is swapped only after the server
// reports success, so a failed rotation leaves the client able to read the
// still-unrotated corpus.
func (c *clientKeyService) ChangePassphrase(ctx context.Context, currentPassphrase, newPassphrase string) (int64, error) {
	log := logger.FromContext(ctx)

	oldKey := c.cipher.DeriveKey(currentPassphrase)
	newKey := c.cipher.DeriveKey(newPassphrase)

	result, err := c.serverAdapter.RotateKey(ctx, crypto.EncodeKey(oldKey), crypto.EncodeKey(newKey))
	if err != nil {
		log.Err(err).Str("func", "*clientKeyService.ChangePassphrase").Msg("server rejected key rotation")
		return 0, err
	}
	if !result.Success {
		return 0, fmt.Errorf("key rotation failed: %s", result.Error)
	}

	if err := c.localStore.SaveKey(ctx, crypto.EncodeKey(newKey)); err != nil {
		// The corpus is already rotated; losing the local copy of the new
		// key is recoverable by re-entering the passphrase.
		log.Err(err).Str("func", "*clientKeyService.ChangePassphrase").Msg("failed to persist rotated key")
	}

	c.mu.Lock()
	c.key = newKey
	c.mu.Unlock()

	log.Info().Int64("slices_updated", result.SlicesUpdated).Msg("passphrase changed")
	return result.SlicesUpdated, nil
}

// EncryptContent implements [ClientKeyService].
func (c *clientKeyService) EncryptContent(text string) (string, []string, error) {
	key := c.currentKey()

	content, err := c.cipher.Encrypt(text, key)
	if err != nil {
		return "", nil, fmt.Errorf("encrypting content: %w", err)
	}

	return content, c.tokenizer.TokensForContent(text, key), nil
}

// DecryptForDisplay implements [ClientKeyService].
func (c *clientKeyService) DecryptForDisplay(content string) string {
	return c.cipher.DecryptForDisplay(content, c.currentKey())
}

// TokensForQuery implements [ClientKeyService].
func (c *clientKeyService) TokensForQuery(query string) []string {
	return c.tokenizer.TokensForQuery(query, c.currentKey())
}

func (c *clientKeyService) currentKey() crypto.KeyMaterial {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}
