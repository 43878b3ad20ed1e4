// Package config provides configuration management for the mcpsync CLI.
//
// The configuration only locates the documents mcpsync manages and controls
// backups; server definitions themselves live in the registry.
//
// # Configuration File
//
// config.yaml is searched in the current directory, then in
// $XDG_CONFIG_HOME/mcpsync/. A leading "~/" in any path is expanded.
//
//	version: 1
//	registry_path: ~/.mcp.json
//	clients:
//	  code:
//	    path: ~/.claude.json
//	  desktop:
//	    path: ~/Library/Application Support/Claude/claude_desktop_config.json
//	backup:
//	  enabled: true
//	  retention: 5
//
// Every key can be overridden from the environment with the MCPSYNC_ prefix,
// dots replaced by underscores (MCPSYNC_CLIENTS_DESKTOP_PATH).
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("") // search default locations
package config
