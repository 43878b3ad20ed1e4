package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG config and data homes.
const AppName = "mcpsync"

// Client identifiers for the applications whose MCP configuration is managed.
const (
	ClientCode    = "code"
	ClientDesktop = "desktop"
)

// File names of the managed documents.
const (
	registryFile       = ".mcp.json"
	codeConfigFile     = ".claude.json"
	desktopConfigFile  = "claude_desktop_config.json"
	desktopConfigDir   = "Claude"
	macAppSupportDir   = "Library/Application Support"
	windowsAppDataEnv  = "APPDATA"
	backupsDirName     = "backups"
	configFileBaseName = "config"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string if it cannot be
// determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// AppConfigDir returns the directory searched for config.yaml.
// Returns: <ConfigHome>/mcpsync/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFileName returns the base name (without extension) of the config file.
func ConfigFileName() string {
	return configFileBaseName
}

// BackupDir returns the root directory for client document backups.
// Returns: <DataHome>/mcpsync/backups/
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, backupsDirName)
}

// RegistryPath returns the default location of the server registry.
// Returns: ~/.mcp.json
func RegistryPath() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, registryFile)
}

// CodeConfigPath returns the default location of the Claude Code user config.
// Returns: ~/.claude.json
func CodeConfigPath() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, codeConfigFile)
}

// DesktopConfigPath returns the default location of the Claude Desktop config
// for the running operating system.
//
//   - darwin:  ~/Library/Application Support/Claude/claude_desktop_config.json
//   - windows: %APPDATA%\Claude\claude_desktop_config.json
//   - other:   <ConfigHome>/Claude/claude_desktop_config.json
func DesktopConfigPath() string {
	return desktopConfigPath(runtime.GOOS, Home(), os.Getenv(windowsAppDataEnv), ConfigHome())
}

func desktopConfigPath(goos, home, appData, configHome string) string {
	switch goos {
	case "darwin":
		if home == "" {
			return ""
		}
		return filepath.Join(home, macAppSupportDir, desktopConfigDir, desktopConfigFile)
	case "windows":
		if appData == "" {
			if home == "" {
				return ""
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, desktopConfigDir, desktopConfigFile)
	default:
		if configHome == "" {
			return ""
		}
		return filepath.Join(configHome, desktopConfigDir, desktopConfigFile)
	}
}

// Clients returns the managed client identifiers in processing order.
func Clients() []string {
	return []string{ClientCode, ClientDesktop}
}

// ValidClient returns true if the client identifier is recognized.
func ValidClient(name string) bool {
	return name == ClientCode || name == ClientDesktop
}

// ClientConfigPath returns the default document path for a client identifier,
// or an empty string for unknown clients.
func ClientConfigPath(name string) string {
	switch name {
	case ClientCode:
		return CodeConfigPath()
	case ClientDesktop:
		return DesktopConfigPath()
	default:
		return ""
	}
}
