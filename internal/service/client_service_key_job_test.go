package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientKeyJob_ReportsInvalidKey(t *testing.T) {
	otherKey := testCipher.DeriveKey("changed on another device")
	sealed, err := testCipher.Encrypt("content", otherKey)
	require.NoError(t, err)

	srv := &fakeServerAdapter{
		sampleFn: func(ctx context.Context, limit int) ([]string, error) {
			return []string{sealed}, nil
		},
	}

	keySvc := newTestKeyService(srv, &fakeLocalKeyStore{})
	require.NoError(t, keySvc.SetPassphrase(context.Background(), "stale passphrase"))

	var invalidations atomic.Int32
	job := NewClientKeyJob(keySvc, func(error) { invalidations.Add(1) })

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return invalidations.Load() >= 1
	}, time.Second, 10*time.Millisecond, "the job must report a key that no longer fits the corpus")
}

func TestClientKeyJob_StopTerminates(t *testing.T) {
	var calls atomic.Int32
	srv := &fakeServerAdapter{
		sampleFn: func(ctx context.Context, limit int) ([]string, error) {
			calls.Add(1)
			return nil, nil
		},
	}

	keySvc := newTestKeyService(srv, &fakeLocalKeyStore{})
	job := NewClientKeyJob(keySvc, nil)

	job.Start(context.Background(), 5*time.Millisecond)
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	job.Stop()
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no validations may run after Stop returns")
}

func TestClientKeyJob_StartIsRestartable(t *testing.T) {
	keySvc := newTestKeyService(&fakeServerAdapter{}, &fakeLocalKeyStore{})
	job := NewClientKeyJob(keySvc, nil)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), time.Hour) // must stop the first run cleanly
	job.Stop()
}
