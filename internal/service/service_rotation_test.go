// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fake: store.SliceRepository with a live + staging corpus
// ─────────────────────────────────────────────

type fakeRow struct {
	id             int64
	content        string
	tokens         []string
	pendingContent *string
	pendingTokens  []string
}

type fakeSliceRepo struct {
	mu   sync.Mutex
	rows []*fakeRow

	// failure injection
	stageErrOn  int64 // fail StageRotation for this slice ID (0 = never)
	stagedDrift int   // subtracted from the real staged count
}

func (f *fakeSliceRepo) SaveSlice(ctx context.Context, s models.Slice) (models.Slice, error) {
	return s, nil
}

func (f *fakeSliceRepo) UpdateSlice(ctx context.Context, s models.Slice) (models.Slice, error) {
	return s, nil
}

func (f *fakeSliceRepo) DeleteSlices(ctx context.Context, userID int64, ids []string) (int64, error) {
	return 0, nil
}

func (f *fakeSliceRepo) GetAllSlices(ctx context.Context, userID int64) ([]models.Slice, error) {
	return nil, nil
}

func (f *fakeSliceRepo) SearchSlices(ctx context.Context, req models.SearchRequest) ([]models.Slice, error) {
	return nil, nil
}

func (f *fakeSliceRepo) GetContentSample(ctx context.Context, userID int64, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// newest = highest ID
	sorted := make([]*fakeRow, len(f.rows))
	copy(sorted, f.rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].id > sorted[j].id })

	contents := make([]string, 0, limit)
	for _, row := range sorted {
		if len(contents) == limit {
			break
		}
		contents = append(contents, row.content)
	}
	return contents, nil
}

func (f *fakeSliceRepo) GetAllRecords(ctx context.Context, userID int64) ([]models.SliceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	records := make([]models.SliceRecord, 0, len(f.rows))
	for _, row := range f.rows {
		records = append(records, models.SliceRecord{ID: row.id, Content: row.content})
	}
	return records, nil
}

func (f *fakeSliceRepo) CountSlices(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows), nil
}

func (f *fakeSliceRepo) StageRotation(ctx context.Context, userID, sliceID int64, content string, tokens []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stageErrOn != 0 && sliceID == f.stageErrOn {
		return errors.New("injected staging failure")
	}

	for _, row := range f.rows {
		if row.id == sliceID {
			c := content
			row.pendingContent = &c
			row.pendingTokens = tokens
			return nil
		}
	}
	return errors.New("slice not found")
}

func (f *fakeSliceRepo) CountStaged(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := 0
	for _, row := range f.rows {
		if row.pendingContent != nil {
			staged++
		}
	}
	return staged - f.stagedDrift, nil
}

func (f *fakeSliceRepo) CommitRotation(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var updated int64
	for _, row := range f.rows {
		if row.pendingContent != nil {
			row.content = *row.pendingContent
			row.tokens = row.pendingTokens
			row.pendingContent = nil
			row.pendingTokens = nil
			updated++
		}
	}
	return updated, nil
}

func (f *fakeSliceRepo) RollbackRotation(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.rows {
		row.pendingContent = nil
		row.pendingTokens = nil
	}
	return nil
}

func (f *fakeSliceRepo) stagedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := 0
	for _, row := range f.rows {
		if row.pendingContent != nil {
			staged++
		}
	}
	return staged
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	testCipher    = crypto.NewCipherEngine()
	testTokenizer = crypto.NewSearchTokenizer()
)

func newRotationService(repo *fakeSliceRepo) *keyRotationService {
	return &keyRotationService{
		sliceRepository: repo,
		cipher:          testCipher,
		tokenizer:       testTokenizer,
		logger:          logger.Nop(),
		active:          make(map[int64]struct{}),
	}
}

// seedEncrypted fills repo with n slices encrypted under key (plaintext
// when key is nil), returning the plaintexts by slice ID.
func seedEncrypted(t *testing.T, repo *fakeSliceRepo, key crypto.KeyMaterial, plaintexts []string) map[int64]string {
	t.Helper()

	byID := make(map[int64]string, len(plaintexts))
	for i, plaintext := range plaintexts {
		content, err := testCipher.Encrypt(plaintext, key)
		require.NoError(t, err)

		id := int64(i + 1)
		repo.rows = append(repo.rows, &fakeRow{
			id:      id,
			content: content,
			tokens:  testTokenizer.TokensForContent(plaintext, key),
		})
		byID[id] = plaintext
	}
	return byID
}

func rotateRequest(oldKey, newKey crypto.KeyMaterial) models.RotateKeyRequest {
	return models.RotateKeyRequest{
		UserID: 7,
		OldKey: crypto.EncodeKey(oldKey),
		NewKey: crypto.EncodeKey(newKey),
	}
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestRotateKey_ReencryptsWholeCorpus(t *testing.T) {
	oldKey := testCipher.DeriveKey("first passphrase")
	newKey := testCipher.DeriveKey("second passphrase")

	repo := &fakeSliceRepo{}
	plaintexts := seedEncrypted(t, repo, oldKey, []string{
		"went for a run",
		"paid the electric bill",
		"book: the left hand of darkness",
	})

	svc := newRotationService(repo)
	updated, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, newKey))

	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	assert.Zero(t, repo.stagedCount(), "staging must be clear after commit")

	for _, row := range repo.rows {
		plaintext, decErr := testCipher.Decrypt(row.content, newKey)
		require.NoError(t, decErr, "slice %d must decrypt under the new key", row.id)
		assert.Equal(t, plaintexts[row.id], plaintext)
		assert.Equal(t, testTokenizer.TokensForContent(plaintext, newKey), row.tokens,
			"token index must be recomputed under the new key")
	}
}

func TestRotateKey_EnablesEncryption(t *testing.T) {
	newKey := testCipher.DeriveKey("fresh passphrase")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, nil, []string{"plain one", "plain two"})

	svc := newRotationService(repo)
	updated, err := svc.RotateKey(context.Background(), rotateRequest(nil, newKey))

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	for _, row := range repo.rows {
		assert.True(t, crypto.IsEnvelope(row.content), "slice %d must now be an envelope", row.id)
		assert.NotEmpty(t, row.tokens)
	}
}

func TestRotateKey_DisablesEncryption(t *testing.T) {
	oldKey := testCipher.DeriveKey("retiring passphrase")

	repo := &fakeSliceRepo{}
	plaintexts := seedEncrypted(t, repo, oldKey, []string{"secret note", "secret journal"})

	svc := newRotationService(repo)
	updated, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, nil))

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	for _, row := range repo.rows {
		assert.Equal(t, plaintexts[row.id], row.content, "slice %d must be stored as plaintext", row.id)
		assert.Empty(t, row.tokens, "no token index without a key")
	}
}

func TestRotateKey_RejectsWrongOldKey(t *testing.T) {
	realKey := testCipher.DeriveKey("the actual passphrase")
	wrongKey := testCipher.DeriveKey("a guessed passphrase")
	newKey := testCipher.DeriveKey("whatever comes next")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, realKey, []string{"one", "two", "three"})
	before := snapshotContents(repo)

	svc := newRotationService(repo)
	_, err := svc.RotateKey(context.Background(), rotateRequest(wrongKey, newKey))

	require.ErrorIs(t, err, ErrOldKeyMismatch)
	assert.Equal(t, before, snapshotContents(repo), "a rejected rotation must not mutate anything")
	assert.Zero(t, repo.stagedCount())
}

func TestRotateKey_RejectsEmptyOldKeyOverEncryptedCorpus(t *testing.T) {
	realKey := testCipher.DeriveKey("the actual passphrase")
	newKey := testCipher.DeriveKey("next passphrase")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, realKey, []string{"one", "two", "three"})

	svc := newRotationService(repo)
	_, err := svc.RotateKey(context.Background(), rotateRequest(nil, newKey))

	require.ErrorIs(t, err, ErrOldKeyMismatch)
}

func TestRotateKey_ConcurrentRotationRejected(t *testing.T) {
	oldKey := testCipher.DeriveKey("held passphrase")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, oldKey, []string{"one"})

	svc := newRotationService(repo)
	require.True(t, svc.acquire(7), "first acquisition must succeed")
	defer svc.release(7)

	_, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, nil))
	require.ErrorIs(t, err, ErrRotationInProgress)
}

func TestRotateKey_CorpusIntegrityAbortsBeforeMutation(t *testing.T) {
	oldKey := testCipher.DeriveKey("passphrase")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, oldKey, []string{"fine", "also fine"})
	repo.rows = append(repo.rows, &fakeRow{id: 99, content: ""})

	svc := newRotationService(repo)
	_, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, nil))

	var integrityErr *CorpusIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, []int64{99}, integrityErr.SliceIDs)
	assert.NotContains(t, integrityErr.Error(), "fine", "error must never carry content")
	assert.Zero(t, repo.stagedCount())
}

func TestRotateKey_UndecryptableSliceAbortsWithRollback(t *testing.T) {
	oldKey := testCipher.DeriveKey("passphrase one")
	strayKey := testCipher.DeriveKey("passphrase two")
	newKey := testCipher.DeriveKey("passphrase three")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, oldKey, []string{"a1", "a2", "a3", "a4", "a5"})

	// one stray slice under the wrong key; a minority, so pre-validation passes
	stray, err := testCipher.Encrypt("stray", strayKey)
	require.NoError(t, err)
	repo.rows[0].content = stray

	svc := newRotationService(repo)
	_, err = svc.RotateKey(context.Background(), rotateRequest(oldKey, newKey))

	var integrityErr *CorpusIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, []int64{1}, integrityErr.SliceIDs)
	assert.Zero(t, repo.stagedCount(), "staging must be rolled back after an aborted rotation")
}

func TestRotateKey_StagingFailureRollsBack(t *testing.T) {
	oldKey := testCipher.DeriveKey("passphrase")
	newKey := testCipher.DeriveKey("new passphrase")

	repo := &fakeSliceRepo{stageErrOn: 2}
	seedEncrypted(t, repo, oldKey, []string{"one", "two", "three"})
	before := snapshotContents(repo)

	svc := newRotationService(repo)
	_, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, newKey))

	require.Error(t, err)
	assert.Zero(t, repo.stagedCount(), "staging must be rolled back")
	assert.Equal(t, before, snapshotContents(repo), "live corpus must be untouched")
}

func TestRotateKey_IncompleteStagingFailsGate(t *testing.T) {
	oldKey := testCipher.DeriveKey("passphrase")
	newKey := testCipher.DeriveKey("new passphrase")

	repo := &fakeSliceRepo{stagedDrift: 1}
	seedEncrypted(t, repo, oldKey, []string{"one", "two", "three"})
	before := snapshotContents(repo)

	svc := newRotationService(repo)
	_, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, newKey))

	var incompleteErr *RotationIncompleteError
	require.ErrorAs(t, err, &incompleteErr)
	assert.Equal(t, 2, incompleteErr.Staged)
	assert.Equal(t, 3, incompleteErr.Total)
	assert.Equal(t, before, snapshotContents(repo))
}

func TestRotateKey_EmptyCorpusSucceeds(t *testing.T) {
	oldKey := testCipher.DeriveKey("passphrase")
	newKey := testCipher.DeriveKey("new passphrase")

	svc := newRotationService(&fakeSliceRepo{})
	updated, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, newKey))

	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestRotateKey_BadKeyEncodingRejected(t *testing.T) {
	svc := newRotationService(&fakeSliceRepo{})

	_, err := svc.RotateKey(context.Background(), models.RotateKeyRequest{
		UserID: 7,
		OldKey: "not!!base64",
		NewKey: "",
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRotateKey_LockReleasedAfterRotation(t *testing.T) {
	oldKey := testCipher.DeriveKey("passphrase")
	newKey := testCipher.DeriveKey("new passphrase")

	repo := &fakeSliceRepo{}
	seedEncrypted(t, repo, oldKey, []string{"one"})

	svc := newRotationService(repo)

	_, err := svc.RotateKey(context.Background(), rotateRequest(oldKey, newKey))
	require.NoError(t, err)

	// a second rotation must be able to run after the first finishes
	_, err = svc.RotateKey(context.Background(), rotateRequest(newKey, oldKey))
	require.NoError(t, err)
}

func snapshotContents(repo *fakeSliceRepo) map[int64]string {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	snapshot := make(map[int64]string, len(repo.rows))
	for _, row := range repo.rows {
		snapshot[row.id] = row.content
	}
	return snapshot
}
