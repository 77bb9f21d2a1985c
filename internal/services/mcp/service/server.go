package service

import (
	"fmt"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"github.com/Steffo99/royalspells/internal/core/random"
	"github.com/Steffo99/royalspells/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "royalspells-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP server and the spellbook connection its tools use.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// newServer builds an MCP server whose spellbook tools call through conn.
func newServer(conn *grpc.ClientConn) (*Server, error) {
	if conn == nil {
		return nil, fmt.Errorf("gRPC connection is required")
	}
	server, err := newServerWithClient(spellbookv1.NewSpellbookServiceClient(conn), random.NewSeed)
	if err != nil {
		return nil, err
	}
	server.conn = conn
	return server, nil
}

// newServerWithClient builds an MCP server around an existing spellbook
// client. Seeds are drawn from seeds when a local tool call omits one.
func newServerWithClient(client spellbookv1.SpellbookServiceClient, seeds domain.SeedFunc) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("spellbook client is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerSpellTools(mcpServer, seeds)
	registerSpellbookTools(mcpServer, client)
	registerSpellResources(mcpServer, client)
	return &Server{mcpServer: mcpServer}, nil
}
