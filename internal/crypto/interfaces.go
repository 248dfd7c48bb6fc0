package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyMaterial is a 32-byte symmetric content key derived from the user's
// passphrase. A nil (or empty) KeyMaterial means "encryption disabled":
// content is stored as plaintext and no search tokens are generated.
//
// Key material is held by the client. The only time it is ever transmitted
// to the server is as the explicit (oldKey, newKey) pair of a rotation
// request - never as part of routine read/write traffic.
type KeyMaterial []byte

// CipherEngine performs passphrase key derivation and authenticated
// encryption of slice content. It knows nothing about the network, the
// database, or users; all methods are pure functions of their arguments.
//
// The envelope produced by Encrypt and consumed by Decrypt is the wire and
// storage contract shared with any alternate client:
//
//	base64( IV(12 bytes) ‖ ciphertext ‖ auth tag(16 bytes) )
type CipherEngine interface {
	// DeriveKey derives the 32-byte content key from a passphrase.
	// Deterministic and one-way: the same passphrase always yields the
	// same key, which lets clients compare keys without ever storing the
	// passphrase. An empty passphrase derives to nil ("no key").
	DeriveKey(passphrase string) KeyMaterial

	// Encrypt seals plaintext under key with AES-256-GCM using a fresh
	// random IV per call and returns the base64 envelope. With a nil key
	// it returns the plaintext unchanged; callers must not assume the
	// output is protected.
	Encrypt(plaintext string, key KeyMaterial) (string, error)

	// Decrypt strictly reverses Encrypt. It fails with a *DecryptError
	// when input is not a syntactically valid envelope (while a key is
	// held), when the authentication tag does not verify (wrong key or
	// tampering), or when no key is held but input is envelope-shaped.
	// With a nil key and non-envelope input it passes the input through.
	// It never falls back to returning ciphertext as plaintext.
	Decrypt(input string, key KeyMaterial) (string, error)

	// DecryptForDisplay is the presentation-boundary wrapper around
	// Decrypt: any *DecryptError becomes the fixed DisplayPlaceholder.
	// Must never be used inside the rotation path.
	DecryptForDisplay(input string, key KeyMaterial) string
}

// SearchTokenizer derives the deterministic, keyed token set that makes
// protected content searchable without revealing plaintext to the server.
type SearchTokenizer interface {
	// TokensForContent normalizes text (lowercase, trimmed), slides a
	// two-character window across it, and keyed-hashes every window into
	// a fixed-length opaque token. The result is duplicate-free and
	// sorted. Inputs shorter than two characters, or a nil key, yield an
	// empty set.
	TokensForContent(text string, key KeyMaterial) []string

	// TokensForQuery applies the identical algorithm to a search query so
	// the server can intersect query tokens with stored ones. Matching on
	// tokens is a superset of true matches; callers re-filter after
	// decryption.
	TokensForQuery(query string, key KeyMaterial) []string
}
