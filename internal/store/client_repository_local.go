package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
)

// ErrLocalSessionNotFound is returned by [LocalKeyStore.GetSession] when
// the client has never logged in (or the session was cleared).
var ErrLocalSessionNotFound = errors.New("local session not found")

// localKeyStore is the SQLite-backed implementation of [LocalKeyStore].
type localKeyStore struct {
	db     *DB
	logger *logger.Logger
}

func NewLocalKeyStore(db *DB, log *logger.Logger) LocalKeyStore {
	return &localKeyStore{db: db, logger: log}
}

func (s *localKeyStore) SaveSession(ctx context.Context, userID int64, token string) error {
	if _, err := s.db.ExecContext(ctx, saveLocalSession, userID, token); err != nil {
		s.logger.Err(err).Str("func", "*localKeyStore.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *localKeyStore) GetSession(ctx context.Context) (int64, string, error) {
	var userID int64
	var token string

	err := s.db.QueryRowContext(ctx, getLocalSession).Scan(&userID, &token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrLocalSessionNotFound
		}
		s.logger.Err(err).Str("func", "*localKeyStore.GetSession").Msg("failed to read session")
		return 0, "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if token == "" {
		return 0, "", ErrLocalSessionNotFound
	}

	return userID, token, nil
}

func (s *localKeyStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, clearLocalSession); err != nil {
		s.logger.Err(err).Str("func", "*localKeyStore.ClearSession").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// SaveKey persists the encoded key material. The empty string is a valid
// value and means encryption is disabled.
func (s *localKeyStore) SaveKey(ctx context.Context, encodedKey string) error {
	if _, err := s.db.ExecContext(ctx, saveLocalKey, encodedKey); err != nil {
		s.logger.Err(err).Str("func", "*localKeyStore.SaveKey").Msg("failed to save key material")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *localKeyStore) GetKey(ctx context.Context) (string, error) {
	var encoded string

	err := s.db.QueryRowContext(ctx, getLocalKey).Scan(&encoded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		s.logger.Err(err).Str("func", "*localKeyStore.GetKey").Msg("failed to read key material")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return encoded, nil
}
