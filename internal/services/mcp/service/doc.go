// Package service wires the MCP protocol transport to the spell tools.
//
// It knows how to run MCP over stdio and how to reach the spellbook gRPC
// service; the meaning of each tool lives in the domain package.
package service
