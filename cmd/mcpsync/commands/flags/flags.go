// Package flags provides shared flag and configuration accessors for CLI
// commands. It exists to avoid import cycles between the root command and
// noun subpackages such as backup.
package flags

import "github.com/thoreinstein/mcpsync/internal/config"

var (
	showSecrets bool
	cfg         *config.Config
	cfgErr      error
)

// ShowSecrets reports whether --show-secrets was given.
func ShowSecrets() bool {
	return showSecrets
}

// SetShowSecrets sets the --show-secrets value.
func SetShowSecrets(show bool) {
	showSecrets = show
}

// Config returns the configuration loaded at startup, or the error that
// prevented loading it. A nil Config with a nil error means no command has
// loaded configuration yet.
func Config() (*config.Config, error) {
	return cfg, cfgErr
}

// SetConfig records the result of loading configuration.
func SetConfig(c *config.Config, err error) {
	cfg, cfgErr = c, err
}
