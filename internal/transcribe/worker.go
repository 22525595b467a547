// ABOUTME: Transcription worker queue
// ABOUTME: Serially transcribes recordings and stores completed text
package transcribe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxdeck/voxdeck-go/internal/store"
)

// DefaultQueueSize bounds the number of recordings waiting to be
// transcribed before Enqueue starts refusing work.
const DefaultQueueSize = 64

// Job identifies one queued transcription.
type Job struct {
	ID   string
	Path string
}

// Worker drains a job queue one recording at a time: each job is
// marked pending in the store, handed to the transcriber, and stored
// as completed on success. Per-job failures are logged, never fatal.
type Worker struct {
	tr    Transcriber
	store *store.Store
	jobs  chan Job
	log   *zap.Logger
}

// NewWorker creates a worker over the given transcriber and store.
func NewWorker(tr Transcriber, st *store.Store, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		tr:    tr,
		store: st,
		jobs:  make(chan Job, DefaultQueueSize),
		log:   logger,
	}
}

// Enqueue queues path for transcription and marks it pending.
func (w *Worker) Enqueue(path string) (Job, error) {
	job := Job{ID: uuid.NewString(), Path: path}

	if err := w.store.MarkPending(path); err != nil {
		return Job{}, err
	}

	select {
	case w.jobs <- job:
		w.log.Debug("transcription queued", zap.String("job", job.ID), zap.String("path", path))
		return job, nil
	default:
		return Job{}, errors.New("transcription queue is full")
	}
}

// Do transcribes path synchronously: mark pending, transcribe, store.
func (w *Worker) Do(ctx context.Context, path string) error {
	if err := w.store.MarkPending(path); err != nil {
		return err
	}
	return w.process(ctx, Job{ID: uuid.NewString(), Path: path})
}

// Run processes jobs until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			if err := w.process(ctx, job); err != nil {
				w.log.Warn("transcription failed",
					zap.String("job", job.ID),
					zap.String("path", job.Path),
					zap.Error(err))
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, job Job) error {
	text, err := w.tr.Transcribe(ctx, job.Path)
	if err != nil {
		return err
	}
	if err := w.store.Add(job.Path, text); err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	w.log.Info("transcription completed",
		zap.String("job", job.ID),
		zap.String("path", job.Path),
		zap.Int("chars", len(text)))
	return nil
}
