// Package paths provides cross-platform path resolution for the documents
// mcpsync manages.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
//
// # Managed Documents
//
//	| Document        | Default location                                              |
//	|-----------------|---------------------------------------------------------------|
//	| Registry        | ~/.mcp.json                                                   |
//	| Claude Code     | ~/.claude.json                                                |
//	| Claude Desktop  | macOS: ~/Library/Application Support/Claude/...               |
//	|                 | Windows: %APPDATA%\Claude\claude_desktop_config.json          |
//	|                 | other: $XDG_CONFIG_HOME/Claude/claude_desktop_config.json     |
//
// Every location can be overridden through internal/config.
//
// # Application Directories
//
//	paths.AppConfigDir() // <ConfigHome>/mcpsync, searched for config.yaml
//	paths.BackupDir()    // <DataHome>/mcpsync/backups
package paths
