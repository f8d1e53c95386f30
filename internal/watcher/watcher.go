package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
)

// Start blocks on the event loop until the context is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.cfg.MaxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Waiting for %s files", w.cfg.TranscriptName)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			// Write events matter too: a caption file grows for the
			// whole meeting, and a write after a failed stability
			// wait is what re-arms it
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			if info.IsDir() {
				if event.Op&fsnotify.Create == 0 {
					continue
				}
				// New meeting folder: watch it, and pick up a
				// transcript that landed before the watch was added
				if err := w.watcher.Add(event.Name); err != nil {
					w.logger.Warn(ctx, "Failed to watch new folder %s: %v", event.Name, err)
					continue
				}
				w.logger.Debug(ctx, "Watching new meeting folder: %s", event.Name)
				existing := filepath.Join(event.Name, w.cfg.TranscriptName)
				if _, err := os.Stat(existing); err == nil {
					w.dispatch(ctx, existing)
				}
				continue
			}

			if w.isTranscript(event.Name) {
				w.dispatch(ctx, event.Name)
			} else {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// ScanExisting walks the input tree once and dispatches transcripts
// that arrived while the pipeline was down. Files older than the scan
// window are left for manual runs. Returns the number dispatched.
func (w *implWatcher) ScanExisting(ctx context.Context) int {
	cutoff := time.Now().Add(-time.Duration(w.cfg.ScanMaxAgeHours) * time.Hour)
	count := 0

	err := filepath.WalkDir(w.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !w.isTranscript(path) {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			w.logger.Debug(ctx, "Skipping stale transcript: %s", path)
			return nil
		}

		w.logger.Info(ctx, "Found unprocessed transcript: %s", path)
		w.dispatch(ctx, path)
		count++
		return nil
	})
	if err != nil {
		w.logger.Error(ctx, "Startup scan failed: %v", err)
	}

	return count
}

// Stop closes the underlying fsnotify watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch acquires a concurrency slot and processes the transcript in
// a goroutine once it stops growing. At most one dispatch is in flight
// per path; write events for a file already being waited on are
// dropped, and a write after a failed wait starts a fresh one.
func (w *implWatcher) dispatch(ctx context.Context, path string) {
	w.mu.Lock()
	if _, busy := w.pending[path]; busy {
		w.mu.Unlock()
		return
	}
	w.pending[path] = struct{}{}
	w.mu.Unlock()

	release := func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
	}

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		release()
		return
	}

	w.logger.Info(ctx, "Transcript detected: %s", path)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()
		defer release()

		if err := w.waitStable(ctx, path); err != nil {
			w.logger.Warn(ctx, "Transcript still growing, will retry on its next write: %s: %v", path, err)
			return
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
}

// waitStable polls the file until its size is unchanged across one
// polling interval and above the minimum size. Caption files grow for
// the whole meeting, so processing must wait for the recorder to
// finish writing. Giving up here is safe: the next write event starts
// a new wait.
func (w *implWatcher) waitStable(ctx context.Context, path string) error {
	var lastSize int64 = -1

	check := func() error {
		info, err := os.Stat(path)
		if err != nil {
			return backoff.Permanent(err)
		}

		size := info.Size()
		if size < w.cfg.MinFileSize {
			lastSize = size
			return fmt.Errorf("file below minimum size (%d bytes)", size)
		}
		if size != lastSize {
			lastSize = size
			return fmt.Errorf("file still growing (%d bytes)", size)
		}
		return nil
	}

	interval := time.Duration(w.cfg.StableSeconds) * time.Second
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(w.cfg.StabilityChecks)),
		ctx,
	)
	return backoff.Retry(check, policy)
}

func (w *implWatcher) isTranscript(path string) bool {
	return filepath.Base(path) == w.cfg.TranscriptName
}
