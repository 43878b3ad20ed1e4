package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/paths"
	"github.com/thoreinstein/mcpsync/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// idLayout formats backup IDs. Microseconds keep back-to-back backups apart.
const idLayout = "20060102T150405.000000"

// Manager handles backup creation, restoration, and management.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.rootDir = dir
		}
	}
}

// WithRetentionCount sets the number of backups to retain per target.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RetentionCount returns the number of backups kept per target.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// Backup copies the given files for target into a new timestamped directory.
// Missing files are skipped; if none exist, ErrNothingToBackUp is returned.
// Each file is copied with preserved permissions and verified with a SHA256 hash.
func (m *Manager) Backup(target string, files ...string) (*Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}
	if len(files) == 0 {
		return nil, errors.New("at least one path is required")
	}

	backupID, err := m.newID(target)
	if err != nil {
		return nil, err
	}
	backupPath := m.backupPath(target, backupID)

	var backedUp []File
	for _, p := range files {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", p)
		}

		bf, err := backupFile(p, backupPath)
		if err != nil {
			os.RemoveAll(backupPath)
			return nil, errors.Wrapf(err, "backing up file %s", p)
		}
		backedUp = append(backedUp, *bf)
	}

	if len(backedUp) == 0 {
		os.RemoveAll(backupPath)
		return nil, ErrNothingToBackUp
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   m.now().UTC(),
		Target:      target,
		Files:       backedUp,
		ToolVersion: Version,
		ID:          backupID,
	}

	manifestPath := filepath.Join(backupPath, "manifest.json")
	if err := fileutil.AtomicWriteJSON(manifestPath, manifest); err != nil {
		os.RemoveAll(backupPath)
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// newID reserves a fresh backup directory for target.
func (m *Manager) newID(target string) (string, error) {
	base := m.now().UTC().Format(idLayout)
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = base + "-" + strconv.Itoa(i)
		}
		err := os.MkdirAll(m.targetBackupDir(target), 0o755)
		if err != nil {
			return "", errors.Wrap(err, "creating backup directory")
		}
		err = os.Mkdir(m.backupPath(target, id), 0o755)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// backupFile copies a single file to the backup directory.
func backupFile(src, backupPath string) (*File, error) {
	relPath := generateRelPath(src)
	dst := filepath.Join(backupPath, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &File{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256Hash:   hash,
		Mode:         mode,
	}, nil
}

// Restore restores files from a backup to their original locations.
// Every file is verified against its manifest hash before anything is written.
func (m *Manager) Restore(target, backupID string) (*Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}

	manifest, err := m.Get(target, backupID)
	if err != nil {
		return nil, err
	}

	backupPath := m.backupPath(target, backupID)

	for _, bf := range manifest.Files {
		hash, err := hashFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if hash != bf.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}
	}

	for _, bf := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if err := os.MkdirAll(filepath.Dir(bf.OriginalPath), 0o755); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "creating directory for %s", bf.OriginalPath), errors.ErrDestinationWrite)
		}
		if err := fileutil.AtomicWriteFile(bf.OriginalPath, data, bf.Mode.Perm()); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "restoring %s", bf.OriginalPath), errors.ErrDestinationWrite)
		}
	}

	return manifest, nil
}

// List returns all available backups for a target, sorted by date (newest first).
func (m *Manager) List(target string) ([]Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}

	entries, err := os.ReadDir(m.targetBackupDir(target))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(target, entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	// Newest first; IDs break ties between backups taken in the same instant.
	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return manifests, nil
}

// Prune removes old backups beyond the specified retention count.
// Keeps the most recent 'keep' backups for the target and returns how many
// were removed.
func (m *Manager) Prune(target string, keep int) (int, error) {
	if target == "" {
		return 0, errors.New("target is required")
	}
	if keep < 0 {
		return 0, errors.New("keep must be non-negative")
	}

	manifests, err := m.List(target)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(target, manifests[i].ID)); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
		removed++
	}

	return removed, nil
}

// Get returns the manifest for a specific backup.
func (m *Manager) Get(target, backupID string) (*Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}
	if strings.ContainsAny(backupID, `/\`) || backupID == ".." {
		return nil, errors.Newf("invalid backup ID %q", backupID)
	}

	manifestPath := filepath.Join(m.backupPath(target, backupID), "manifest.json")

	data, err := fileutil.ReadFileWithLimit(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = backupID
	return &manifest, nil
}

// backupPath returns the full path to a backup directory.
func (m *Manager) backupPath(target, backupID string) string {
	return filepath.Join(m.targetBackupDir(target), backupID)
}

// targetBackupDir returns the backup directory for a target.
func (m *Manager) targetBackupDir(target string) string {
	return filepath.Join(m.rootDir, target)
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies a file from src to dst, returning the SHA256 hash and mode.
// The copy is owner-only since client documents hold credentials.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	w := io.MultiWriter(dstFile, h)

	if _, err := io.Copy(w, srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// generateRelPath creates a relative path for storage in the backup directory.
// The absolute path is kept recognizable with the root and any drive colon removed.
func generateRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	clean = strings.ReplaceAll(clean, ":", "")
	return strings.TrimLeft(clean, `/\`)
}
