package registry

import (
	"context"
	"io/fs"

	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/pkg/fileutil"
)

// Store loads and saves the registry document at a fixed path.
type Store struct {
	path    string
	backups *backup.Session
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBackups snapshots the registry file before its first rewrite.
func WithBackups(sess *backup.Session) StoreOption {
	return func(s *Store) {
		s.backups = sess
	}
}

// NewStore returns a Store for the document at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the registry document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. It never fails: a missing document yields an
// empty registry, and an unreadable or malformed one yields an empty registry
// plus a warning.
func (s *Store) Load(ctx context.Context) *Registry {
	logger := logging.FromContext(ctx)

	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("registry not found, starting empty", "path", s.path)
			return New()
		}
		logger.Warn("could not read registry, starting empty",
			"path", s.path,
			"error", errors.Mark(err, errors.ErrSourceUnreadable))
		return New()
	}

	reg, skipped, err := Parse(data)
	if err != nil {
		logger.Warn("registry is malformed, starting empty",
			"path", s.path,
			"error", errors.Mark(err, errors.ErrSourceUnreadable))
		return New()
	}
	for _, name := range skipped {
		logger.Debug("skipping invalid registry entry", logging.KeyServer, name)
	}

	logger.Debug("loaded registry", "path", s.path, "servers", reg.Len())
	return reg
}

// Save writes reg atomically, creating missing parent directories.
// Failures are marked with errors.ErrDestinationWrite.
func (s *Store) Save(ctx context.Context, reg *Registry) error {
	if err := s.backups.EnsureBackedUp(ctx, backup.TargetRegistry, s.path); err != nil {
		return errors.Mark(err, errors.ErrDestinationWrite)
	}
	if err := fileutil.WriteJSON(s.path, reg); err != nil {
		return errors.Wrap(err, "saving registry")
	}
	logging.FromContext(ctx).Debug("saved registry", "path", s.path, "servers", reg.Len())
	return nil
}
