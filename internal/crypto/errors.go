package crypto

import "fmt"

// Failure reasons carried by [DecryptError]. They describe the shape of the
// failure without ever including the input, the key, or the passphrase.
const (
	// ReasonNotEnvelope: a key is held but the input is not a
	// syntactically valid envelope.
	ReasonNotEnvelope = "input is not a valid envelope"

	// ReasonAuthFailed: the envelope decoded but the GCM authentication
	// tag did not verify - wrong key or tampered ciphertext.
	ReasonAuthFailed = "authentication failed"

	// ReasonKeyMissing: the input is envelope-shaped but no key is
	// configured, so the content is protected and unreadable.
	ReasonKeyMissing = "content is protected but no key is configured"
)

// DecryptError is the typed error returned by strict decryption. Callers
// match it with [errors.As]; the rotation coordinator propagates it, the
// presentation layer converts it into [DisplayPlaceholder].
//
// The error text never contains ciphertext, plaintext, or key material.
type DecryptError struct {
	// Reason is one of the Reason* constants above.
	Reason string

	// Err is the underlying cause, if any (e.g. the cipher.AEAD error).
	Err error
}

func (e *DecryptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decrypt: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decrypt: %s", e.Reason)
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}
