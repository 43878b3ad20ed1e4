package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/mcpsync/internal/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// Default configuration values.
const (
	// DefaultRetentionCount is the default number of backups to retain per target.
	DefaultRetentionCount = 5
)

// Backup targets. Client targets share their names with client kinds.
const (
	TargetRegistry = "registry"
	TargetCode     = "code"
	TargetDesktop  = "desktop"
)

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the specified target.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates backup file integrity verification failed.
	// This occurs when a file's SHA256 hash doesn't match the manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNothingToBackUp indicates none of the requested files exist yet.
	ErrNothingToBackUp = errors.New("no files to back up")
)

// Targets returns every backup target in display order.
func Targets() []string {
	return []string{TargetRegistry, TargetCode, TargetDesktop}
}

// Manifest contains metadata about a backup.
// It is stored as manifest.json in each backup directory.
type Manifest struct {
	// Version is the manifest format version for forward compatibility.
	Version int `json:"version"`

	// CreatedAt is when the backup was created.
	CreatedAt time.Time `json:"created_at"`

	// Target is the document that was backed up (registry, code, desktop).
	Target string `json:"target"`

	// Files contains metadata for each backed up file.
	Files []File `json:"files"`

	// ToolVersion is the version of mcpsync that created this backup.
	ToolVersion string `json:"mcpsync_version"`

	// ID is the backup identifier (timestamp format: 20260123T100712.000000).
	// This field is populated when loading from disk but not stored in JSON.
	ID string `json:"-"`
}

// File contains metadata for a single backed up file.
type File struct {
	// OriginalPath is the absolute path where the file was located.
	OriginalPath string `json:"original_path"`

	// RelPath is the relative path within the backup directory.
	RelPath string `json:"rel_path"`

	// SHA256Hash is the hex-encoded SHA256 hash of the file contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`
}
