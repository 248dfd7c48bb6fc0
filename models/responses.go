package models

// SlicesResponse wraps a list of slices returned by list and search
// endpoints.
type SlicesResponse struct {
	Slices []Slice `json:"slices"`

	// Length is the total number of entries in Slices. Provided for
	// convenience so the client can pre-allocate or validate the response
	// without iterating the slice.
	Length int `json:"length"`
}

// SampleResponse carries the content-only validation sample. No other slice
// fields are ever included.
type SampleResponse struct {
	Contents []string `json:"contents"`
}

// RotateKeyResponse reports the outcome of a key rotation.
//
// Error and Details, when present, are non-leaking summaries: they never
// contain slice content, key material, or the passphrase.
type RotateKeyResponse struct {
	Success bool `json:"success"`

	// SlicesUpdated is the number of entries re-encrypted and committed.
	// Zero on failure: a failed rotation leaves the corpus untouched.
	SlicesUpdated int64 `json:"slices_updated"`

	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
