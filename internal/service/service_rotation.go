// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/models"
)

// preValidationSampleLimit bounds how many recent contents the old key is
// checked against before a rotation touches anything.
const preValidationSampleLimit = 10

// keyRotationService is the concrete implementation of KeyRotationService.
//
// A rotation rewrites the owner's whole corpus: decrypt every slice under
// the old key, re-encrypt under the new one, recompute the token index, and
// swap everything in at once. The swap is staged: new values go into
// pending columns first, and a single bulk UPDATE promotes them only after
// every slice has been staged. A crash at any point before the commit
// leaves the live corpus untouched.
type keyRotationService struct {
	sliceRepository store.SliceRepository
	cipher          crypto.CipherEngine
	tokenizer       crypto.SearchTokenizer
	logger          *logger.Logger

	// mu guards active. One rotation per owner at a time; the lock is
	// in-process, which is sufficient for a single-server deployment.
	mu     sync.Mutex
	active map[int64]struct{}
}

func NewKeyRotationService(
	sliceRepository store.SliceRepository,
	cipher crypto.CipherEngine,
	tokenizer crypto.SearchTokenizer,
	logger *logger.Logger,
) KeyRotationService {
	return &keyRotationService{
		sliceRepository: sliceRepository,
		cipher:          cipher,
		tokenizer:       tokenizer,
		logger:          logger,
		active:          make(map[int64]struct{}),
	}
}

// RotateKey implements [KeyRotationService].
//
// Protocol:
//  1. Acquire the per-owner rotation lock (ErrRotationInProgress if held).
//  2. Pre-validate the old key against a sample of recent contents
//     (ErrOldKeyMismatch, nothing mutated).
//  3. Load the full corpus and scan it for unusable entries
//     (*CorpusIntegrityError, nothing mutated).
//  4. Stage: per slice, decrypt → re-encrypt → re-tokenize → write to the
//     staging columns. Any failure rolls the staging area back.
//  5. Gate: the staged count must equal the corpus size
//     (*RotationIncompleteError → rollback).
//  6. Commit: one bulk UPDATE promotes staged values to live.
//
// Rollback runs detached from ctx cancellation: once staging has begun,
// clearing it must not be skipped because the client went away.
func (k *keyRotationService) RotateKey(ctx context.Context, rotateRequest models.RotateKeyRequest) (int64, error) {
	log := logger.FromContext(ctx)
	userID := rotateRequest.UserID

	if userID == 0 {
		return 0, ErrInvalidDataProvided
	}

	oldKey, err := crypto.DecodeKey(rotateRequest.OldKey)
	if err != nil {
		return 0, fmt.Errorf("%w: bad old key encoding", ErrInvalidDataProvided)
	}
	newKey, err := crypto.DecodeKey(rotateRequest.NewKey)
	if err != nil {
		return 0, fmt.Errorf("%w: bad new key encoding", ErrInvalidDataProvided)
	}

	if !k.acquire(userID) {
		log.Warn().Int64("user_id", userID).Msg("rotation rejected: another rotation is running")
		return 0, ErrRotationInProgress
	}
	defer k.release(userID)

	if err := k.preValidateOldKey(ctx, userID, oldKey); err != nil {
		return 0, err
	}

	records, err := k.sliceRepository.GetAllRecords(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading corpus for rotation: %w", err)
	}
	if len(records) == 0 {
		log.Info().Int64("user_id", userID).Msg("rotation on empty corpus, nothing to do")
		return 0, nil
	}

	if err := k.checkCorpusIntegrity(records); err != nil {
		return 0, err
	}

	if err := k.stageAll(ctx, userID, records, oldKey, newKey); err != nil {
		k.rollback(ctx, userID)
		return 0, err
	}

	staged, err := k.sliceRepository.CountStaged(ctx, userID)
	if err != nil {
		k.rollback(ctx, userID)
		return 0, fmt.Errorf("counting staged slices: %w", err)
	}
	total, err := k.sliceRepository.CountSlices(ctx, userID)
	if err != nil {
		k.rollback(ctx, userID)
		return 0, fmt.Errorf("counting slices: %w", err)
	}
	if staged != total {
		k.rollback(ctx, userID)
		return 0, &RotationIncompleteError{Staged: staged, Total: total}
	}

	updated, err := k.sliceRepository.CommitRotation(ctx, userID)
	if err != nil {
		k.rollback(ctx, userID)
		return 0, fmt.Errorf("committing rotation: %w", err)
	}

	if updated != int64(staged) {
		// The commit is a single statement, so the corpus is consistent
		// either way. Surface the discrepancy for operator follow-up.
		warning := &RotationCommitWarning{Expected: int64(staged), Updated: updated}
		log.Warn().
			Int64("user_id", userID).
			Int64("expected", warning.Expected).
			Int64("updated", warning.Updated).
			Msg(warning.Error())
	}

	log.Info().
		Int64("user_id", userID).
		Int64("slices_updated", updated).
		Msg("key rotation committed")

	return updated, nil
}

func (k *keyRotationService) acquire(userID int64) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, busy := k.active[userID]; busy {
		return false
	}
	k.active[userID] = struct{}{}
	return true
}

func (k *keyRotationService) release(userID int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.active, userID)
}

// preValidateOldKey checks the claimed old key against a sample of the
// owner's most recent contents before anything is mutated.
//
// With a non-empty old key, each sampled content is strict-decrypted; more
// failures than successes means the claimed key does not fit the corpus.
// With an empty old key ("corpus is plaintext"), a majority of
// envelope-shaped contents means the corpus is in fact encrypted and the
// claim is wrong. An empty sample passes.
func (k *keyRotationService) preValidateOldKey(ctx context.Context, userID int64, oldKey crypto.KeyMaterial) error {
	sample, err := k.sliceRepository.GetContentSample(ctx, userID, preValidationSampleLimit)
	if err != nil {
		return fmt.Errorf("sampling contents for key validation: %w", err)
	}
	if len(sample) == 0 {
		return nil
	}

	failures := 0
	if oldKey == nil {
		for _, content := range sample {
			if crypto.IsEnvelope(content) {
				failures++
			}
		}
	} else {
		for _, content := range sample {
			if _, decErr := k.cipher.Decrypt(content, oldKey); decErr != nil {
				failures++
			}
		}
	}

	if failures > len(sample)-failures {
		logger.FromContext(ctx).Warn().
			Int64("user_id", userID).
			Int("sample_size", len(sample)).
			Int("failures", failures).
			Msg("old key rejected by pre-validation")
		return ErrOldKeyMismatch
	}

	return nil
}

// checkCorpusIntegrity refuses to rotate over slices with empty content.
// Empty content cannot round-trip through decrypt/re-encrypt, and finding
// it means an earlier write went wrong; rotation is the wrong place to
// paper over that.
func (k *keyRotationService) checkCorpusIntegrity(records []models.SliceRecord) error {
	var badIDs []int64
	for _, record := range records {
		if record.Content == "" {
			badIDs = append(badIDs, record.ID)
		}
	}

	if len(badIDs) > 0 {
		return &CorpusIntegrityError{SliceIDs: badIDs, Reason: "empty content"}
	}

	return nil
}

// stageAll runs phase one: every slice's re-encrypted content and
// recomputed token set is written to the staging columns. Live columns are
// untouched. The first failure aborts; the caller rolls back.
func (k *keyRotationService) stageAll(ctx context.Context, userID int64, records []models.SliceRecord, oldKey, newKey crypto.KeyMaterial) error {
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rotation cancelled while staging: %w", err)
		}

		plaintext, err := k.cipher.Decrypt(record.Content, oldKey)
		if err != nil {
			var decErr *crypto.DecryptError
			if errors.As(err, &decErr) {
				return &CorpusIntegrityError{
					SliceIDs: []int64{record.ID},
					Reason:   decErr.Reason,
					Err:      decErr,
				}
			}
			return fmt.Errorf("decrypting slice %d: %w", record.ID, err)
		}

		reencrypted, err := k.cipher.Encrypt(plaintext, newKey)
		if err != nil {
			return fmt.Errorf("re-encrypting slice %d: %w", record.ID, err)
		}

		tokens := k.tokenizer.TokensForContent(plaintext, newKey)

		if err := k.sliceRepository.StageRotation(ctx, userID, record.ID, reencrypted, tokens); err != nil {
			return fmt.Errorf("staging slice %d: %w", record.ID, err)
		}
	}

	return nil
}

// rollback clears the owner's staging columns. It runs on a context
// detached from cancellation: an abandoned rotation must still be cleaned
// up even when the client has hung up.
func (k *keyRotationService) rollback(ctx context.Context, userID int64) {
	cleanupCtx := context.WithoutCancel(ctx)

	if err := k.sliceRepository.RollbackRotation(cleanupCtx, userID); err != nil {
		// Stale staging values are invisible to normal reads and are
		// overwritten by the next rotation, so a failed rollback is
		// survivable. Log it loudly anyway.
		k.logger.Err(err).
			Str("func", "*keyRotationService.rollback").
			Int64("user_id", userID).
			Msg("failed to clear rotation staging")
	}
}
