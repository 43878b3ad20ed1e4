package client

import (
	"context"
	"io/fs"

	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/logging"
	"github.com/thoreinstein/mcpsync/pkg/fileutil"
)

// Store reads and writes one client's document.
type Store struct {
	kind    Kind
	path    string
	backups *backup.Session
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBackups snapshots the document before its first rewrite.
func WithBackups(sess *backup.Session) StoreOption {
	return func(s *Store) {
		s.backups = sess
	}
}

// NewStore returns a Store for the kind document at path.
func NewStore(kind Kind, path string, opts ...StoreOption) *Store {
	s := &Store{kind: kind, path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the client this store serves.
func (s *Store) Kind() Kind {
	return s.kind
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. It never fails: a missing document yields an
// empty one, and an unreadable or malformed one yields an empty one plus a
// warning.
func (s *Store) Load(ctx context.Context) *Document {
	logger := logging.FromContext(ctx).With(logging.KeyClient, string(s.kind))

	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("client config not found", "path", s.path)
			return NewDocument(s.kind)
		}
		logger.Warn("could not read client config",
			"path", s.path,
			"error", errors.Mark(err, errors.ErrSourceUnreadable))
		return NewDocument(s.kind)
	}

	doc, err := Parse(s.kind, data)
	if err != nil {
		logger.Warn("client config is malformed, treating as empty",
			"path", s.path,
			"error", errors.Mark(err, errors.ErrSourceUnreadable))
		return NewDocument(s.kind)
	}

	logger.Debug("loaded client config", "path", s.path, "servers", len(doc.servers))
	return doc
}

// Save writes doc atomically, creating missing parent directories.
// Failures are marked with errors.ErrDestinationWrite.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if err := s.backups.EnsureBackedUp(ctx, string(s.kind), s.path); err != nil {
		return errors.Mark(err, errors.ErrDestinationWrite)
	}
	if err := fileutil.WriteJSON(s.path, doc); err != nil {
		return errors.Wrapf(err, "saving %s config", s.kind.DisplayName())
	}
	logging.FromContext(ctx).Debug("saved client config",
		"client", string(s.kind), "path", s.path, "servers", len(doc.servers))
	return nil
}
