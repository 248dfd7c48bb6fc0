package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrOldKeyMismatch is returned when the pre-validation sample shows
	// that the supplied old key does not match the stored corpus. Nothing
	// has been mutated when this is returned.
	ErrOldKeyMismatch = errors.New("old key does not match the stored corpus")

	// ErrRotationInProgress is returned when another rotation for the same
	// owner is still running. The caller should retry later.
	ErrRotationInProgress = errors.New("key rotation already in progress")
)

// CorpusIntegrityError reports slices whose stored content is unusable
// (empty, or undecryptable under the old key) discovered before any
// mutation. It carries slice IDs only - never content.
type CorpusIntegrityError struct {
	SliceIDs []int64
	Reason   string
	Err      error
}

func (e *CorpusIntegrityError) Error() string {
	return fmt.Sprintf("corpus integrity check failed for %d slice(s) %v: %s", len(e.SliceIDs), e.SliceIDs, e.Reason)
}

func (e *CorpusIntegrityError) Unwrap() error {
	return e.Err
}

// RotationIncompleteError is returned when the staged count does not match
// the owner's total slice count at the commit gate. The staging area has
// been rolled back when this is returned.
type RotationIncompleteError struct {
	Staged int
	Total  int
}

func (e *RotationIncompleteError) Error() string {
	return fmt.Sprintf("rotation incomplete: staged %d of %d slices", e.Staged, e.Total)
}

// RotationCommitWarning records a commit whose affected-row count differed
// from the staged count. The rotation still succeeds (the commit is a
// single statement, so whatever it touched is consistent); the warning is
// surfaced in logs for operator follow-up.
type RotationCommitWarning struct {
	Expected int64
	Updated  int64
}

func (w *RotationCommitWarning) Error() string {
	return fmt.Sprintf("rotation commit updated %d rows, expected %d", w.Updated, w.Expected)
}
