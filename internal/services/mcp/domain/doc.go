// Package domain translates MCP tool calls into spell operations.
//
// Generation and formula sampling run locally against the core packages.
// Saving, fetching and listing spells are forwarded to the spellbook gRPC
// service, and their responses are flattened into structured tool results
// that MCP clients can render.
package domain
