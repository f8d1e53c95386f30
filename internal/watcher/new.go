package watcher

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implWatcher struct {
	inputDir string
	cfg      config.WatcherConfig
	handler  EventHandler
	logger   logger.Logger

	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a watcher over the input tree. Existing meeting folders
// are registered immediately; folders created later are picked up from
// their create events.
func New(inputDir string, cfg config.WatcherConfig, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", inputDir, err)
	}

	walkErr := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != inputDir {
			return fsw.Add(path)
		}
		return nil
	})
	if walkErr != nil {
		fsw.Close()
		return nil, fmt.Errorf("register meeting folders: %w", walkErr)
	}

	return &implWatcher{
		inputDir:  inputDir,
		cfg:       cfg,
		handler:   handler,
		logger:    log,
		watcher:   fsw,
		semaphore: make(chan struct{}, cfg.MaxConcurrent),
		pending:   make(map[string]struct{}),
	}, nil
}
