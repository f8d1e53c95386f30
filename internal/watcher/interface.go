package watcher

import "context"

// EventHandler processes one stable transcript file.
type EventHandler func(ctx context.Context, filePath string) error

// Watcher monitors the input tree for finished meeting transcripts.
type Watcher interface {
	Start(ctx context.Context) error
	ScanExisting(ctx context.Context) int
	Stop() error
}
