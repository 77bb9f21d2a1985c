package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	platformgrpc "github.com/Steffo99/royalspells/internal/platform/grpc"
	"github.com/Steffo99/royalspells/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	// spellbookAddrEnv overrides the spellbook address when none is configured.
	spellbookAddrEnv = "ROYALSPELLS_SPELLBOOK_ADDR"

	healthMonitorInterval = 30 * time.Second
)

// Config configures the MCP service.
type Config struct {
	// GRPCAddr is the spellbook gRPC address.
	GRPCAddr string
}

// Run serves MCP over stdio and blocks until the context is canceled or the
// client disconnects.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg.GRPCAddr, &mcp.StdioTransport{})
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP server on transport, then closes the gRPC
// connection on every exit path.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	monitorDone := make(chan struct{})
	if s.conn != nil {
		go func() {
			defer close(monitorDone)
			s.monitorHealth(healthCtx, healthMonitorInterval)
		}()
	} else {
		close(monitorDone)
	}

	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	// The monitor reads s.conn, so it must stop before Close clears it.
	healthCancel()
	<-monitorDone
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// monitorHealth periodically checks the spellbook connection. Failures are
// logged only; individual tool calls surface their own gRPC errors.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn == nil {
				log.Printf("gRPC connection is nil, health check skipped")
				continue
			}

			healthClient := grpc_health_v1.NewHealthClient(s.conn)
			callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
			response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: spellbookv1.ServiceName})
			cancel()

			if err != nil {
				log.Printf("spellbook health check failed: %v", err)
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				log.Printf("spellbook health check status: %s", response.GetStatus().String())
			}
		}
	}
}

// runWithTransport dials the spellbook, builds a server and serves it over
// transport.
func runWithTransport(ctx context.Context, grpcAddr string, transport mcp.Transport) error {
	addr := grpcAddress(grpcAddr)
	if addr == "" {
		return fmt.Errorf("spellbook address is required")
	}
	conn, err := dialSpellbookGRPC(ctx, addr)
	if err != nil {
		return err
	}
	mcpServer, err := newServer(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	return mcpServer.serveWithTransport(ctx, transport)
}

func dialSpellbookGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logf := func(format string, args ...any) {
		log.Printf("spellbook %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(
		ctx,
		nil,
		addr,
		spellbookv1.ServiceName,
		timeouts.GRPCDial,
		logf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) {
			if dialErr.Stage == platformgrpc.DialStageConnect {
				return nil, fmt.Errorf("connect to spellbook at %s: %w", addr, dialErr.Err)
			}
			return nil, dialErr.Err
		}
		return nil, err
	}
	return conn, nil
}

// grpcAddress resolves the gRPC address from the explicit value or env when empty.
func grpcAddress(explicit string) string {
	if value := strings.TrimSpace(explicit); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv(spellbookAddrEnv))
}
