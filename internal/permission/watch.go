package permission

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
)

// ReloadDelay is the quiet period after the last file event before the
// store reloads
const ReloadDelay = 100 * time.Millisecond

// Watch reloads the store whenever its file changes until ctx is done.
// The directory is watched so that editors replacing the file by rename
// are picked up. onReload, if set, receives the result of every reload.
func (s *Store) Watch(ctx context.Context, onReload func(error)) error {
	if s.path == "" {
		return dlgerror.New("permission store has no file").WithCode(dlgerror.CodeConfigError)
	}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watching {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return dlgerror.Wrap(err, "failed to create watcher").WithCode(dlgerror.CodeInternal)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return dlgerror.Wrap(err, "failed to watch permission file").
			WithCode(dlgerror.CodeConfigError).
			WithDetail("path", s.path)
	}

	s.watching = true
	s.logger.Info("Watching permission file", "path", s.path)
	go s.watchLoop(ctx, watcher, onReload)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onReload func(error)) {
	defer func() {
		watcher.Close()
		s.watchMu.Lock()
		s.watching = false
		s.watchMu.Unlock()
	}()

	target := filepath.Clean(s.path)
	timer := time.NewTimer(ReloadDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Debug("Stopped watching permission file", "path", s.path)
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(ReloadDelay)

		case <-timer.C:
			err := s.Reload()
			if err != nil {
				s.logger.Error("Failed to reload permissions", "path", s.path, "error", err)
			}
			if onReload != nil {
				onReload(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("Watcher error", "error", err)
		}
	}
}
