package cli

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/avivsinai/inboxview/internal/export"
)

const (
	followDebounce = 50 * time.Millisecond
	pollInterval   = 500 * time.Millisecond
)

// followShard calls rerun whenever a message part in shardDir changes, until
// ctx is done or rerun fails. Bursts of events inside followDebounce trigger
// a single rerun.
func followShard(ctx context.Context, shardDir string, poll bool, log *zap.Logger, rerun func() error) error {
	if poll {
		return followWithPolling(ctx, shardDir, log, rerun)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Fall back to polling if fsnotify fails
		log.Debug("fsnotify unavailable, polling", zap.Error(err))
		return followWithPolling(ctx, shardDir, log, rerun)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(shardDir); err != nil {
		log.Debug("watch failed, polling", zap.String("dir", shardDir), zap.Error(err))
		return followWithPolling(ctx, shardDir, log, rerun)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !export.IsMessagePart(filepath.Base(event.Name)) {
				continue
			}
			log.Debug("message part changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = time.After(followDebounce)
		case <-pending:
			pending = nil
			if err := rerun(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return err
		}
	}
}

func followWithPolling(ctx context.Context, shardDir string, log *zap.Logger, rerun func() error) error {
	last, err := export.SnapshotParts(shardDir)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current, err := export.SnapshotParts(shardDir)
			if err != nil {
				return err
			}
			if export.SameParts(last, current) {
				continue
			}
			log.Debug("message parts changed", zap.Int("parts", len(current)))
			last = current
			if err := rerun(); err != nil {
				return err
			}
		}
	}
}
