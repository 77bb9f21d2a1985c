package service

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"github.com/Steffo99/royalspells/internal/core/spell"
	platformgrpc "github.com/Steffo99/royalspells/internal/platform/grpc"
	"github.com/Steffo99/royalspells/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

type fakeSpellbookServer struct {
	spellbookv1.UnimplementedSpellbookServiceServer
}

func (fakeSpellbookServer) ListSpells(context.Context, *spellbookv1.ListSpellsRequest) (*spellbookv1.ListSpellsResponse, error) {
	return &spellbookv1.ListSpellsResponse{
		Spells:        []*spellbookv1.SpellRecord{{Id: "spell-1", Seed: "abc", EffectCount: 1, Fingerprint: "f1"}},
		NextPageToken: "next",
	}, nil
}

func (fakeSpellbookServer) GetSpell(_ context.Context, in *spellbookv1.GetSpellRequest) (*spellbookv1.GetSpellResponse, error) {
	generated, err := spell.Generate("abc", 1)
	if err != nil {
		return nil, err
	}
	snapshot := generated.Snapshot()
	return &spellbookv1.GetSpellResponse{
		Record: &spellbookv1.SpellRecord{Id: in.GetId(), Seed: "abc", EffectCount: 1, Fingerprint: "f1"},
		Spell:  &snapshot,
	}, nil
}

// startSpellbookServer serves the fake spellbook and a SERVING health check.
func startSpellbookServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	spellbookv1.RegisterSpellbookServiceServer(grpcServer, fakeSpellbookServer{})
	healthServer := platformgrpc.RegisterHealth(grpcServer, spellbookv1.ServiceName)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(listener)
	}()

	t.Cleanup(func() {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		_ = listener.Close()
		select {
		case <-serveErr:
		case <-time.After(time.Second):
		}
	})
	return listener.Addr().String()
}

// TestRunWithTransportServesAndStops ensures runWithTransport connects,
// forwards tool calls over gRPC and exits on cancel.
func TestRunWithTransportServesAndStops(t *testing.T) {
	addr := startSpellbookServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- runWithTransport(ctx, addr, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer clientCancel()

	type connectResult struct {
		session *mcp.ClientSession
		err     error
	}
	connectDone := make(chan connectResult, 1)
	go func() {
		session, err := client.Connect(clientCtx, clientTransport, nil)
		connectDone <- connectResult{session: session, err: err}
	}()

	var session *mcp.ClientSession
	select {
	case result := <-connectDone:
		if result.err != nil {
			t.Fatalf("connect client: %v", result.err)
		}
		session = result.session
	case <-time.After(5 * time.Second):
		t.Fatal("connect client timed out")
	}
	defer session.Close()

	result, err := session.CallTool(clientCtx, &mcp.CallToolParams{Name: "list_spells", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("call list_spells: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("list_spells failed: %+v", result)
	}
	listed := decodeStructuredContent[domain.SpellListResult](t, result.StructuredContent)
	if len(listed.Spells) != 1 || listed.Spells[0].ID != "spell-1" || listed.NextPageToken != "next" {
		t.Fatalf("list result = %+v", listed)
	}

	resource, err := session.ReadResource(clientCtx, &mcp.ReadResourceParams{URI: "spell://spell-1"})
	if err != nil {
		t.Fatalf("read spell resource: %v", err)
	}
	if len(resource.Contents) != 1 || !strings.Contains(resource.Contents[0].Text, `"id": "spell-1"`) {
		t.Fatalf("resource contents = %+v", resource.Contents)
	}

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRunWithTransportRequiresAddress(t *testing.T) {
	t.Setenv(spellbookAddrEnv, "")
	serverTransport, _ := mcp.NewInMemoryTransports()
	if err := runWithTransport(context.Background(), " ", serverTransport); err == nil {
		t.Fatal("expected error for missing address")
	}
}

func TestRunWithTransportReportsUnhealthySpellbook(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	serverTransport, _ := mcp.NewInMemoryTransports()
	if err := runWithTransport(ctx, addr, serverTransport); err == nil {
		t.Fatal("expected error when spellbook is unreachable")
	}
}

func TestGRPCAddress(t *testing.T) {
	t.Setenv(spellbookAddrEnv, "env:9000")
	if got := grpcAddress("explicit:1"); got != "explicit:1" {
		t.Errorf("grpcAddress(explicit) = %q", got)
	}
	if got := grpcAddress(""); got != "env:9000" {
		t.Errorf("grpcAddress(empty) = %q, want env:9000", got)
	}
}

// TestMonitorHealthExitsOnCancel ensures monitorHealth returns when context is cancelled.
func TestMonitorHealthExitsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &Server{}

	done := make(chan struct{})
	go func() {
		server.monitorHealth(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitorHealth did not exit after context cancellation")
	}
}
