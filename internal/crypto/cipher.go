// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Wire-contract constants. Changing any of them silently invalidates every
// previously stored envelope, so they are constants, not configuration.
const (
	// keyDomainSeparator prefixes the passphrase before hashing so the
	// content key can never collide with any other SHA-256 use of the
	// same passphrase.
	keyDomainSeparator = "go-slice-keeper/content-key/v1:"

	// keyDerivationRounds is the number of extra SHA-256 rounds applied
	// on top of the initial digest.
	keyDerivationRounds = 4096

	// envelopeIVSize is the AES-GCM nonce length in bytes.
	envelopeIVSize = 12

	// envelopeTagSize is the GCM authentication tag length in bytes.
	envelopeTagSize = 16

	// envelopeMinSize is the smallest raw envelope: IV, one ciphertext
	// byte, tag. Shorter (or non-base64) input is not an envelope.
	envelopeMinSize = envelopeIVSize + 1 + envelopeTagSize
)

// DisplayPlaceholder is what DecryptForDisplay shows in place of content
// that cannot be decrypted. Fixed and non-leaking: it carries no information
// about the input.
const DisplayPlaceholder = "[protected]"

// cipherEngine is the private implementation of [CipherEngine].
type cipherEngine struct{}

// NewCipherEngine constructs a stateless [CipherEngine]. The returned value
// is safe for concurrent use; the key is an explicit argument of every call
// rather than engine state, so multiple keys can coexist in one process.
func NewCipherEngine() CipherEngine {
	return &cipherEngine{}
}

// DeriveKey implements [CipherEngine]. The key is
// SHA-256(domainSeparator ‖ passphrase) re-hashed keyDerivationRounds times.
// No per-user salt: determinism across devices is the point - two clients
// holding the same passphrase must derive byte-identical keys.
func (c *cipherEngine) DeriveKey(passphrase string) KeyMaterial {
	if passphrase == "" {
		return nil
	}

	sum := sha256.Sum256([]byte(keyDomainSeparator + passphrase))
	buf := sum[:]
	for i := 0; i < keyDerivationRounds; i++ {
		tmp := sha256.Sum256(buf)
		buf = tmp[:]
	}

	out := make(KeyMaterial, 32)
	copy(out, buf)
	return out
}

// Encrypt implements [CipherEngine].
func (c *cipherEngine) Encrypt(plaintext string, key KeyMaterial) (string, error) {
	if len(key) == 0 {
		return plaintext, nil
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, envelopeIVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends the auth tag, giving blob = IV || ciphertext || tag.
	ct := gcm.Seal(nil, iv, []byte(plaintext), nil)
	blob := append(iv, ct...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CipherEngine].
func (c *cipherEngine) Decrypt(input string, key KeyMaterial) (string, error) {
	blob, isEnvelope := decodeEnvelope(input)

	if len(key) == 0 {
		if isEnvelope {
			return "", &DecryptError{Reason: ReasonKeyMissing}
		}
		// Encryption disabled and the content is plain: pass through.
		return input, nil
	}

	if !isEnvelope {
		return "", &DecryptError{Reason: ReasonNotEnvelope}
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv, ct := blob[:envelopeIVSize], blob[envelopeIVSize:]
	plaintext, err := gcm.Open(nil, iv, ct, nil)
	if err != nil {
		return "", &DecryptError{Reason: ReasonAuthFailed, Err: err}
	}

	return string(plaintext), nil
}

// DecryptForDisplay implements [CipherEngine]. Non-decrypt errors (cipher
// construction with a malformed key) also collapse into the placeholder:
// the display path never fails, it only redacts.
func (c *cipherEngine) DecryptForDisplay(input string, key KeyMaterial) string {
	plaintext, err := c.Decrypt(input, key)
	if err != nil {
		return DisplayPlaceholder
	}
	return plaintext
}

// IsEnvelope reports whether input is a syntactically valid envelope:
// standard base64 whose decoded form is at least envelopeMinSize bytes.
// The rotation coordinator uses it to sanity-check "no old key" requests.
func IsEnvelope(input string) bool {
	_, ok := decodeEnvelope(input)
	return ok
}

// EncodeKey returns the at-rest representation of key material: standard
// base64 of the raw 32 bytes. A nil key encodes to the empty string.
func EncodeKey(key KeyMaterial) string {
	if len(key) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeKey reverses [EncodeKey]. The empty string decodes to a nil key
// ("encryption disabled"); anything else must be base64 of exactly 32 bytes.
func DecodeKey(encoded string) (KeyMaterial, error) {
	if encoded == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode key material: %w", err)
	}
	if len(raw) != 32 {
		return nil, errors.New("key material must be exactly 32 bytes")
	}

	return KeyMaterial(raw), nil
}

func decodeEnvelope(input string) ([]byte, bool) {
	blob, err := base64.StdEncoding.DecodeString(input)
	if err != nil || len(blob) < envelopeMinSize {
		return nil, false
	}
	return blob, true
}

func newGCM(key KeyMaterial) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
