// Package client reads and writes the configuration documents of the MCP
// clients mcpsync manages: Claude Code (~/.claude.json) and Claude Desktop
// (claude_desktop_config.json).
//
// A [Document] manages only the mcpServers map. Everything else in the file
// belongs to the client application and is written back unchanged and in
// its original position. Server maps are never patched: callers rebuild the
// whole map with [Document.SetEntries].
//
// Each [Kind] knows its capabilities and native shape. Code accepts stdio,
// http and sse servers with their type tag. Desktop accepts only stdio, and
// writes it without the tag.
package client
