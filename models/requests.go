package models

// SearchRequest represents search criteria for querying slices.
// Only unencrypted fields can be used for database-level filtering.
type SearchRequest struct {
	// UserID filters records by owner. Populated server-side from the
	// auth token.
	UserID int64 `json:"-"`

	// SearchTokens, when non-empty, switches the server to set-membership
	// filtering over the keyed bigram index: a slice matches when any of
	// its stored tokens is in this list. The result is a superset of true
	// matches; the client re-filters after decryption.
	SearchTokens []string `json:"search_tokens,omitempty"`

	// Query is a plaintext substring filter applied only when
	// SearchTokens is empty, i.e. when the corpus is not protected.
	Query string `json:"query,omitempty"`

	// Types optionally narrows the result to specific slice categories.
	Types []SliceType `json:"types,omitempty"`
}

// SampleRequest asks for the content field of the N most recent slices.
// Used exclusively for client-side key validation, never general listing.
type SampleRequest struct {
	UserID int64 `json:"-"`

	// Limit bounds the sample size. The server clamps it to its own cap.
	Limit int `json:"limit"`
}

// RotateKeyRequest carries both keys of a rotation as base64-encoded
// 32-byte key material. An empty string means "no key": an empty OldKey
// declares the corpus is currently plaintext, an empty NewKey disables
// encryption. This is the only request in the protocol that ever contains
// key material.
type RotateKeyRequest struct {
	UserID int64 `json:"-"`

	OldKey string `json:"old_key"`
	NewKey string `json:"new_key"`
}

// DeleteRequest identifies slices to delete by their client-side IDs.
type DeleteRequest struct {
	UserID int64 `json:"-"`

	ClientSideIDs []string `json:"client_side_ids"`
}
