package service

import (
	"context"
	"sync"
	"time"
)

type clientKeyJob struct {
	keyService ClientKeyService

	// onInvalid is called whenever a validation round finds the held key
	// no longer fits the server-side corpus (e.g. the passphrase was
	// changed from another device). May be nil.
	onInvalid func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientKeyJob creates a clientKeyJob that calls keyService.Validate on a
// ticker. The job is idle until Start is called. onInvalid may be nil.
func NewClientKeyJob(keyService ClientKeyService, onInvalid func(error)) ClientKeyJob {
	return &clientKeyJob{keyService: keyService, onInvalid: onInvalid}
}

// Start implements ClientKeyJob. It stops any previously running job, then
// launches a background goroutine that validates the held key every interval.
// If interval is zero or negative it defaults to 5 minutes. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *clientKeyJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				valid, err := j.keyService.Validate(jobCtx)
				if jobCtx.Err() != nil {
					return
				}
				if !valid && j.onInvalid != nil {
					j.onInvalid(err)
				}
			}
		}
	}()
}

// Stop implements ClientKeyJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *clientKeyJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
