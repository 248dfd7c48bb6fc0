package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestDeriveKey_DeterministicAndSized(t *testing.T) {
	engine := NewCipherEngine()

	k1 := engine.DeriveKey("correct horse battery staple")
	k2 := engine.DeriveKey("correct horse battery staple")

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected identical keys for the same passphrase")
	}
}

func TestDeriveKey_DifferentPassphrasesDiffer(t *testing.T) {
	engine := NewCipherEngine()

	k1 := engine.DeriveKey("passphrase one")
	k2 := engine.DeriveKey("passphrase two")

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different keys for different passphrases")
	}
}

func TestDeriveKey_EmptyPassphraseMeansNoKey(t *testing.T) {
	engine := NewCipherEngine()

	if key := engine.DeriveKey(""); key != nil {
		t.Fatalf("empty passphrase must derive to nil key, got %d bytes", len(key))
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("round trip")

	plaintexts := []string{
		"went for a run",
		"a",
		"",
		"многостраничный текст with mixed scripts and emoji 🔑",
	}

	for _, plaintext := range plaintexts {
		envelope, err := engine.Encrypt(plaintext, key)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plaintext, err)
		}

		got, err := engine.Decrypt(envelope, key)
		if err != nil {
			t.Fatalf("Decrypt error for %q: %v", plaintext, err)
		}
		if got != plaintext {
			t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestEncrypt_FreshIVPerCall(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("iv freshness")

	e1, err := engine.Encrypt("same plaintext", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	e2, err := engine.Encrypt("same plaintext", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if e1 == e2 {
		t.Fatalf("expected different envelopes for repeated encryption")
	}
}

func TestEncrypt_NilKeyPassesThrough(t *testing.T) {
	engine := NewCipherEngine()

	out, err := engine.Encrypt("plain as day", nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if out != "plain as day" {
		t.Fatalf("expected pass-through, got %q", out)
	}
}

func TestDecrypt_WrongKeyFailsTyped(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("the right key")
	wrongKey := engine.DeriveKey("the wrong key")

	envelope, err := engine.Encrypt("secret text", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = engine.Decrypt(envelope, wrongKey)
	var decryptErr *DecryptError
	if !errors.As(err, &decryptErr) {
		t.Fatalf("expected *DecryptError, got %v", err)
	}
	if decryptErr.Reason != ReasonAuthFailed {
		t.Fatalf("reason = %q, want %q", decryptErr.Reason, ReasonAuthFailed)
	}
}

func TestDecrypt_NonEnvelopeWithKeyFails(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("some key")

	for _, input := range []string{
		"went for a run",   // not base64
		"YWJj",             // base64 but far too short
		base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 28)), // one byte short
	} {
		_, err := engine.Decrypt(input, key)
		var decryptErr *DecryptError
		if !errors.As(err, &decryptErr) {
			t.Fatalf("Decrypt(%q): expected *DecryptError, got %v", input, err)
		}
		if decryptErr.Reason != ReasonNotEnvelope {
			t.Fatalf("Decrypt(%q): reason = %q, want %q", input, decryptErr.Reason, ReasonNotEnvelope)
		}
	}
}

func TestDecrypt_EnvelopeWithoutKeyFails(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("protecting key")

	envelope, err := engine.Encrypt("protected content", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = engine.Decrypt(envelope, nil)
	var decryptErr *DecryptError
	if !errors.As(err, &decryptErr) {
		t.Fatalf("expected *DecryptError, got %v", err)
	}
	if decryptErr.Reason != ReasonKeyMissing {
		t.Fatalf("reason = %q, want %q", decryptErr.Reason, ReasonKeyMissing)
	}
}

func TestDecrypt_NoKeyPlainContentPassesThrough(t *testing.T) {
	engine := NewCipherEngine()

	got, err := engine.Decrypt("went for a run", nil)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if got != "went for a run" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestDecryptForDisplay_RedactsFailures(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("display key")
	other := engine.DeriveKey("other key")

	envelope, err := engine.Encrypt("visible only to the owner", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if got := engine.DecryptForDisplay(envelope, key); got != "visible only to the owner" {
		t.Fatalf("expected plaintext for the right key, got %q", got)
	}
	if got := engine.DecryptForDisplay(envelope, other); got != DisplayPlaceholder {
		t.Fatalf("expected placeholder for the wrong key, got %q", got)
	}
	if got := engine.DecryptForDisplay(envelope, nil); got != DisplayPlaceholder {
		t.Fatalf("expected placeholder for missing key, got %q", got)
	}
	if strings.Contains(DisplayPlaceholder, "visible") {
		t.Fatalf("placeholder must not leak content")
	}
}

func TestIsEnvelope(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("envelope shape")

	envelope, err := engine.Encrypt("x", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if !IsEnvelope(envelope) {
		t.Fatalf("expected a real envelope to be recognized")
	}
	if IsEnvelope("went for a run") {
		t.Fatalf("plain text must not look like an envelope")
	}
	if IsEnvelope(base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x02}, 28))) {
		t.Fatalf("28 raw bytes is below the envelope minimum")
	}
}

func TestEncodeDecodeKey_RoundTrip(t *testing.T) {
	engine := NewCipherEngine()
	key := engine.DeriveKey("storable key")

	encoded := EncodeKey(key)
	decoded, err := DecodeKey(encoded)
	if err != nil {
		t.Fatalf("DecodeKey error: %v", err)
	}
	if !bytes.Equal(key, decoded) {
		t.Fatalf("key round trip mismatch")
	}

	if EncodeKey(nil) != "" {
		t.Fatalf("nil key must encode to the empty string")
	}

	decoded, err = DecodeKey("")
	if err != nil || decoded != nil {
		t.Fatalf("empty string must decode to nil key, got %v, %v", decoded, err)
	}
}

func TestDecodeKey_RejectsBadMaterial(t *testing.T) {
	if _, err := DecodeKey("not base64 at all!"); err == nil {
		t.Fatalf("expected error for non-base64 key material")
	}

	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	if _, err := DecodeKey(short); err == nil {
		t.Fatalf("expected error for key material shorter than 32 bytes")
	}
}
