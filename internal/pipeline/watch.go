package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumescreen/internal/errors"
	"resumescreen/internal/types"
	"resumescreen/internal/utils"

	"github.com/fsnotify/fsnotify"
)

// ResultFunc receives each completed screening run in watch mode
type ResultFunc func(types.ScreenResult)

// DirWatcher re-runs the pipeline whenever resume files in a directory
// change. Events are debounced so a batch copy triggers one run.
type DirWatcher struct {
	mu sync.Mutex

	pipeline  *Pipeline
	resumeDir string
	jobFile   string
	onResult  ResultFunc

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	runChan  chan struct{}
	stopChan chan struct{}

	logger  *errors.Logger
	running bool
}

func NewDirWatcher(p *Pipeline, resumeDir, jobFile string, debounceDelay time.Duration, onResult ResultFunc, logger *errors.Logger) *DirWatcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &DirWatcher{
		pipeline:      p,
		resumeDir:     resumeDir,
		jobFile:       jobFile,
		onResult:      onResult,
		debounceDelay: debounceDelay,
		runChan:       make(chan struct{}, 1), // Buffered to prevent blocking
		stopChan:      make(chan struct{}),
		logger:        logger,
	}
}

// Start runs an initial screening pass and then watches the directory
// until the context is cancelled or Stop is called.
func (dw *DirWatcher) Start(ctx context.Context) error {
	dw.mu.Lock()
	if dw.running {
		dw.mu.Unlock()
		return fmt.Errorf("directory watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		dw.mu.Unlock()
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	dw.fsWatcher = watcher

	if err := dw.fsWatcher.Add(dw.resumeDir); err != nil {
		dw.cleanupWatcher()
		dw.mu.Unlock()
		return fmt.Errorf("failed to watch directory %s: %w", dw.resumeDir, err)
	}

	dw.running = true
	dw.mu.Unlock()

	dw.logger.Info("Watching resume directory",
		"dir", dw.resumeDir,
		"debounce_delay", dw.debounceDelay)

	dw.runOnce(ctx)
	dw.watchLoop(ctx)
	return nil
}

// Stop stops the watcher
func (dw *DirWatcher) Stop() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if !dw.running {
		return
	}

	close(dw.stopChan)
	if dw.debounceTimer != nil {
		dw.debounceTimer.Stop()
	}
	dw.cleanupWatcher()
	dw.running = false

	dw.logger.Info("Resume directory watcher stopped")
}

func (dw *DirWatcher) cleanupWatcher() {
	if dw.fsWatcher != nil {
		if err := dw.fsWatcher.Close(); err != nil {
			dw.logger.LogError(err, "Failed to close file watcher")
		}
	}
}

func (dw *DirWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-dw.fsWatcher.Events:
			if !ok {
				return
			}
			if dw.shouldProcessEvent(event) {
				dw.scheduleRun()
			}

		case err, ok := <-dw.fsWatcher.Errors:
			if !ok {
				return
			}
			dw.logger.LogError(err, "File watcher error")

		case <-dw.runChan:
			dw.runOnce(ctx)

		case <-dw.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// shouldProcessEvent keeps only events on resume files that add,
// change, or remove content.
func (dw *DirWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !utils.IsResumeFile(event.Name) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (dw *DirWatcher) scheduleRun() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.debounceTimer != nil {
		dw.debounceTimer.Stop()
	}

	dw.debounceTimer = time.AfterFunc(dw.debounceDelay, func() {
		select {
		case dw.runChan <- struct{}{}:
		default:
			// Run already scheduled
		}
	})
}

func (dw *DirWatcher) runOnce(ctx context.Context) {
	result, err := dw.pipeline.Run(ctx, dw.resumeDir, dw.jobFile)
	if err != nil {
		dw.logger.LogError(err, "Screening run failed", "dir", dw.resumeDir)
		return
	}
	if dw.onResult != nil {
		dw.onResult(result)
	}
}
