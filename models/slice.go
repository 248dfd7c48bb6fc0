package models

import "time"

// SliceType is the fixed categorical kind of a slice. The server treats it
// as an opaque label; it is never encrypted so that clients can filter by
// category without decrypting anything.
type SliceType string

const (
	SliceTypeNote     SliceType = "note"
	SliceTypeJournal  SliceType = "journal"
	SliceTypeBookmark SliceType = "bookmark"
)

// Slice is a single short text entry owned by exactly one user.
//
// Content is either plaintext or an encrypted envelope
// (base64 of IV ‖ ciphertext ‖ tag); the two are indistinguishable to the
// server. SearchTokens is the keyed bigram index for the content - an
// order-irrelevant, duplicate-free list of opaque fixed-length strings,
// empty when the owning client has encryption disabled.
//
// The staging columns used during key rotation are deliberately absent from
// this model: they must never travel through normal read or write paths.
type Slice struct {
	// ID is the internal database identifier. Not exposed via JSON.
	ID int64 `json:"-"`

	// UserID is the owner. Populated server-side from the auth token,
	// never trusted from the request body.
	UserID int64 `json:"-"`

	// ClientSideID is the client-generated UUID identifying the slice
	// across devices.
	ClientSideID string `json:"client_side_id"`

	// Type is the categorical kind of the slice.
	Type SliceType `json:"type"`

	// Content is the slice text: plaintext, or an encrypted envelope when
	// the owner protects the corpus with a passphrase.
	Content string `json:"content"`

	// SearchTokens is the keyed bigram index over Content. Empty when
	// encryption is disabled.
	SearchTokens []string `json:"search_tokens,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with the
// Slice model.
func (s Slice) TableName() string {
	return "slices"
}

// SliceRecord is the minimal projection of a slice used by the key-rotation
// coordinator: just enough to decrypt, re-encrypt, and re-index one entry.
type SliceRecord struct {
	ID      int64
	Content string
}
