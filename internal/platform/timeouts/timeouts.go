// Package timeouts defines the timeout constants shared by the spellbook
// service and its clients.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the spellbook, health check included.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single spellbook call made on behalf of an MCP tool.
const GRPCRequest = 2 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
