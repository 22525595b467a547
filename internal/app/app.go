// ABOUTME: Main application orchestration
// ABOUTME: Wires the engine, transcript store, library, and worker together
package app

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/voxdeck/voxdeck-go/internal/config"
	"github.com/voxdeck/voxdeck-go/internal/engine"
	"github.com/voxdeck/voxdeck-go/internal/library"
	"github.com/voxdeck/voxdeck-go/internal/store"
	"github.com/voxdeck/voxdeck-go/internal/transcribe"
)

// MinQueryLength is the shortest transcript search the application
// forwards to the store; shorter queries fall back to the full listing.
const MinQueryLength = 3

// App owns the long-lived components and their shutdown order.
type App struct {
	Engine *engine.Engine
	Store  *store.Store

	cfg    config.Config
	worker *transcribe.Worker
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New builds the application from configuration. The audio engine
// starts degraded (silent) when no device is available; a broken
// transcript database is a hard failure.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, err := store.Open(cfg.DBPath, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("open transcript store: %w", err)
	}

	eng := engine.New(engine.Config{
		Backend:    cfg.AudioBackend,
		SampleRate: cfg.SampleRate,
		Logger:     logger.Named("engine"),
	})

	tr, err := transcribe.NewExecTranscriber(cfg.WhisperPath, cfg.ModelPath, logger.Named("transcribe"))
	if err != nil {
		_ = eng.Close()
		_ = st.Close()
		return nil, fmt.Errorf("configure transcriber: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Engine: eng,
		Store:  st,
		cfg:    cfg,
		worker: transcribe.NewWorker(tr, st, logger.Named("worker")),
		log:    logger,
		ctx:    ctx,
		cancel: cancel,
	}
	go app.worker.Run(ctx)

	return app, nil
}

// Files lists the recordings in the configured library directory.
func (a *App) Files() ([]library.File, error) {
	return library.List(a.cfg.AudioDir)
}

// WatchLibrary starts a watcher on the library directory. The caller
// owns the returned watcher; it stops with the app's context.
func (a *App) WatchLibrary(onChange func()) (*library.Watcher, error) {
	return library.Watch(a.ctx, a.cfg.AudioDir, library.DefaultDebounce, onChange, a.log.Named("watcher"))
}

// Transcribe queues a recording for background transcription.
func (a *App) Transcribe(path string) (transcribe.Job, error) {
	return a.worker.Enqueue(path)
}

// TranscribeSync transcribes a recording and waits for the result.
func (a *App) TranscribeSync(ctx context.Context, path string) error {
	return a.worker.Do(ctx, path)
}

// Search returns transcripts matching query. Queries shorter than
// MinQueryLength are ignored and the full completed listing is
// returned instead; the store itself never enforces a minimum.
func (a *App) Search(query string) ([]store.Entry, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return a.Store.All()
	}
	return a.Store.Search(query)
}

// Close shuts everything down: worker first, then the audio engine,
// then the store.
func (a *App) Close() error {
	a.cancel()
	err := a.Engine.Close()
	if cerr := a.Store.Close(); err == nil {
		err = cerr
	}
	return err
}
