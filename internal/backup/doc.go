// Package backup snapshots the registry and client documents before mcpsync
// rewrites them, and restores those snapshots on request.
//
// Each backup is stored in a timestamped directory containing:
//
//   - manifest.json: metadata about the backup including file hashes
//   - copied files: the original documents with their permissions recorded
//
// Backup locations follow this hierarchy:
//
//	$XDG_DATA_HOME/mcpsync/backups/
//	└── {target}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// Targets are [TargetRegistry], [TargetCode] and [TargetDesktop].
//
// # Sessions
//
// Write paths call [Session.EnsureBackedUp] before touching a document. The
// first call per target takes a snapshot and prunes old ones down to the
// retention count; later calls in the same session are no-ops:
//
//	sess := backup.NewSession(backup.NewManager(backup.WithRetentionCount(5)))
//	if err := sess.EnsureBackedUp(ctx, backup.TargetDesktop, path); err != nil {
//	    return err
//	}
//
// # Integrity Verification
//
// [Manager.Restore] verifies every file against the SHA256 checksum in the
// manifest before writing anything back. A mismatch returns [ErrBackupCorrupted].
package backup
