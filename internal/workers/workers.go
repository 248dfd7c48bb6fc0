package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-slice-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the client's background workers: currently a single
// key-validation job that periodically checks the held key against the
// server-side corpus.
func NewWorkers(ctx context.Context, keyJob service.ClientKeyJob, interval time.Duration) *Workers {
	return &Workers{
		workers: []Worker{
			&keyJobWorker{ctx: ctx, job: keyJob, interval: interval},
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop terminates workers that support termination. Workers without a
// stoppable lifecycle are left to exit with the process.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if stoppable, ok := worker.(interface{ Stop() }); ok {
			stoppable.Stop()
		}
	}
}

// keyJobWorker adapts service.ClientKeyJob to the Worker interface.
type keyJobWorker struct {
	ctx      context.Context
	job      service.ClientKeyJob
	interval time.Duration
}

func (k *keyJobWorker) Run() {
	k.job.Start(k.ctx, k.interval)
}

func (k *keyJobWorker) Stop() {
	k.job.Stop()
}
