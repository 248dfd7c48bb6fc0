// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/models"
)

// sliceRepository is the PostgreSQL-backed implementation of
// [SliceRepository]. It executes all slice operations directly against the
// "slices" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, slice_id, counts). Content never appears in
// log fields.
type sliceRepository struct {
	*DB
	logger *logger.Logger
}

// NewSliceRepository constructs a [SliceRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewSliceRepository(db *DB, logger *logger.Logger) SliceRepository {
	return &sliceRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveSlice inserts a new slice and returns it with server-assigned fields.
func (p *sliceRepository) SaveSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	log := logger.FromContext(ctx)

	tokens, err := marshalTokens(slice.SearchTokens)
	if err != nil {
		return models.Slice{}, err
	}

	row := p.DB.QueryRowContext(ctx, saveSlice,
		slice.UserID, slice.ClientSideID, slice.Type, slice.Content, tokens)
	if err := row.Scan(&slice.ID, &slice.CreatedAt, &slice.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Slice{}, ErrSliceNotSaved
		}
		log.Err(err).
			Str("func", "*sliceRepository.SaveSlice").
			Int64("user_id", slice.UserID).
			Str("client_side_id", slice.ClientSideID).
			Msg("failed to insert slice")
		return models.Slice{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return slice, nil
}

// UpdateSlice replaces the live content, token index, and type of a slice.
func (p *sliceRepository) UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	log := logger.FromContext(ctx)

	tokens, err := marshalTokens(slice.SearchTokens)
	if err != nil {
		return models.Slice{}, err
	}

	row := p.DB.QueryRowContext(ctx, updateSlice,
		slice.UserID, slice.ClientSideID, slice.Type, slice.Content, tokens)
	if err := row.Scan(&slice.ID, &slice.CreatedAt, &slice.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Slice{}, ErrSliceNotFound
		}
		log.Err(err).
			Str("func", "*sliceRepository.UpdateSlice").
			Int64("user_id", slice.UserID).
			Str("client_side_id", slice.ClientSideID).
			Msg("failed to update slice")
		return models.Slice{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return slice, nil
}

// DeleteSlices removes the identified slices and reports the deleted count.
func (p *sliceRepository) DeleteSlices(ctx context.Context, userID int64, clientSideIDs []string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSlicesQuery(userID, clientSideIDs)
	if err != nil {
		log.Err(err).
			Str("func", "*sliceRepository.DeleteSlices").
			Int64("user_id", userID).
			Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*sliceRepository.DeleteSlices").
			Int64("user_id", userID).
			Int("ids count", len(clientSideIDs)).
			Msg("failed to execute delete statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

// GetAllSlices retrieves every slice owned by the given user, newest first.
//
// Returns an empty slice when no records are found.
func (p *sliceRepository) GetAllSlices(ctx context.Context, userID int64) ([]models.Slice, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.QueryContext(ctx, getAllSlices, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*sliceRepository.GetAllSlices").
			Int64("user_id", userID).
			Msg("failed to execute query for getting all user slices")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	return scanSliceRows(ctx, rows, userID)
}

// SearchSlices filters the owner's slices by token set-membership (when
// SearchTokens is present) or by plaintext substring, optionally narrowed
// by type.
func (p *sliceRepository) SearchSlices(ctx context.Context, search models.SearchRequest) ([]models.Slice, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchSlicesQuery(search)
	if err != nil {
		log.Err(err).
			Str("func", "*sliceRepository.SearchSlices").
			Int64("user_id", search.UserID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := p.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*sliceRepository.SearchSlices").
			Int64("user_id", search.UserID).
			Int("tokens count", len(search.SearchTokens)).
			Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	return scanSliceRows(ctx, rows, search.UserID)
}

// GetContentSample returns the content column of the limit most recent
// slices. Used exclusively by the key-validation endpoints.
func (p *sliceRepository) GetContentSample(ctx context.Context, userID int64, limit int) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.QueryContext(ctx, getContentSample, userID, limit)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*sliceRepository.GetContentSample").
			Int64("user_id", userID).
			Msg("failed to execute content sample query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	contents := make([]string, 0, limit)
	for rows.Next() {
		var content string
		if scanErr := rows.Scan(&content); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*sliceRepository.GetContentSample").
				Int64("user_id", userID).
				Msg("failed to scan content row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		contents = append(contents, content)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*sliceRepository.GetContentSample").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return contents, nil
}

// GetAllRecords returns the (ID, Content) projection of the owner's corpus
// in stable ID order, for the rotation coordinator.
func (p *sliceRepository) GetAllRecords(ctx context.Context, userID int64) ([]models.SliceRecord, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.QueryContext(ctx, getAllRecords, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*sliceRepository.GetAllRecords").
			Int64("user_id", userID).
			Msg("failed to execute records query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	records := make([]models.SliceRecord, 0, 50)
	for rows.Next() {
		var record models.SliceRecord
		if scanErr := rows.Scan(&record.ID, &record.Content); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*sliceRepository.GetAllRecords").
				Int64("user_id", userID).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*sliceRepository.GetAllRecords").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// CountSlices returns the owner's total entry count.
func (p *sliceRepository) CountSlices(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := p.DB.QueryRowContext(ctx, countSlices, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// StageRotation writes one slice's re-encrypted content and recomputed
// tokens into the staging columns. Live columns are untouched.
func (p *sliceRepository) StageRotation(ctx context.Context, userID, sliceID int64, content string, tokens []string) error {
	log := logger.FromContext(ctx)

	tokensJSON, err := marshalTokens(tokens)
	if err != nil {
		return err
	}

	result, err := p.DB.ExecContext(ctx, stageRotation, userID, sliceID, content, tokensJSON)
	if err != nil {
		log.Err(err).
			Str("func", "*sliceRepository.StageRotation").
			Int64("user_id", userID).
			Int64("slice_id", sliceID).
			Msg("failed to stage slice")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSliceNotFound
	}

	return nil
}

// CountStaged returns how many of the owner's slices carry a staged value.
func (p *sliceRepository) CountStaged(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := p.DB.QueryRowContext(ctx, countStaged, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// CommitRotation promotes all staged values to the live columns in one bulk
// statement and reports the number of rows updated.
func (p *sliceRepository) CommitRotation(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, commitRotation, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*sliceRepository.CommitRotation").
			Int64("user_id", userID).
			Msg("failed to commit rotation")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// RollbackRotation unconditionally clears all staging columns for the
// owner. Idempotent by construction.
func (p *sliceRepository) RollbackRotation(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := p.DB.ExecContext(ctx, rollbackRotation, userID); err != nil {
		log.Err(err).
			Str("func", "*sliceRepository.RollbackRotation").
			Int64("user_id", userID).
			Msg("failed to roll back rotation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// scanSliceRows drains rows produced by a full-column slice SELECT.
func scanSliceRows(ctx context.Context, rows *sql.Rows, userID int64) ([]models.Slice, error) {
	log := logger.FromContext(ctx)

	results := make([]models.Slice, 0, 50)
	for rows.Next() {
		var item models.Slice
		var tokensJSON []byte

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ClientSideID,
			&item.Type,
			&item.Content,
			&tokensJSON,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "scanSliceRows").
				Int64("user_id", userID).
				Msg("failed to scan slice row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		tokens, err := unmarshalTokens(tokensJSON)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		item.SearchTokens = tokens

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "scanSliceRows").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// marshalTokens renders the token set as the jsonb value stored in
// search_tokens / pending_tokens. A nil set is stored as the empty array.
func marshalTokens(tokens []string) (string, error) {
	if tokens == nil {
		tokens = []string{}
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("marshal search tokens: %w", err)
	}
	return string(raw), nil
}

func unmarshalTokens(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tokens []string
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("unmarshal search tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	return tokens, nil
}
