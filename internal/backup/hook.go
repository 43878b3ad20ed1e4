package backup

import (
	"context"
	"sync"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
)

// Session tracks per-target backup state within one invocation.
// This prevents redundant backups when several writes hit the same document.
//
// A nil *Session is valid and never backs anything up, which is how
// backup.enabled=false is expressed.
type Session struct {
	mgr *Manager

	mu   sync.Mutex
	once map[string]*sync.Once
}

// NewSession returns a Session that snapshots through mgr.
func NewSession(mgr *Manager) *Session {
	return &Session{
		mgr:  mgr,
		once: make(map[string]*sync.Once),
	}
}

// EnsureBackedUp ensures a backup of path exists for target before modification.
// Only one backup is created per target per session, regardless of how many
// times or from how many goroutines it is called.
//
// Returns nil if:
//   - A backup was just created successfully
//   - A backup was already created in this session (no-op)
//   - The file does not exist yet (nothing to back up)
//   - The session is nil
//
// On failure the target is reset so a later call can retry.
func (s *Session) EnsureBackedUp(ctx context.Context, target, path string) error {
	if s == nil || path == "" {
		return nil
	}

	s.mu.Lock()
	once, exists := s.once[target]
	if !exists {
		once = &sync.Once{}
		s.once[target] = once
	}
	s.mu.Unlock()

	logger := logging.FromContext(ctx)

	var backupErr error
	once.Do(func() {
		manifest, err := s.mgr.Backup(target, path)
		switch {
		case errors.Is(err, ErrNothingToBackUp):
			logger.Debug("nothing to back up", "target", target, "path", path)
		case err != nil:
			backupErr = err
			s.mu.Lock()
			delete(s.once, target)
			s.mu.Unlock()
		default:
			logger.Debug("created backup", "target", target, "id", manifest.ID)
			if _, err := s.mgr.Prune(target, s.mgr.RetentionCount()); err != nil {
				logger.Warn("pruning old backups failed", "target", target, "error", err)
			}
		}
	})

	if backupErr != nil {
		return errors.Wrapf(backupErr, "creating backup for %s", target)
	}

	return nil
}
