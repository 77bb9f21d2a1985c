// Package server wires the spellbook runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	platformgrpc "github.com/Steffo99/royalspells/internal/platform/grpc"
	"github.com/Steffo99/royalspells/internal/platform/timeouts"
	spellbookservice "github.com/Steffo99/royalspells/internal/services/spellbook/api/grpc/spellbook"
	spellbooksqlite "github.com/Steffo99/royalspells/internal/services/spellbook/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// DefaultDBPath is used when no database path is configured.
var DefaultDBPath = filepath.Join("data", "spellbook.db")

// Server hosts the spellbook gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *spellbooksqlite.Store
}

// New creates a configured spellbook server listening on the provided port.
func New(port int, dbPath string) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port), dbPath)
}

// NewWithAddr creates a configured spellbook server for the provided address.
func NewWithAddr(addr, dbPath string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	if strings.TrimSpace(dbPath) == "" {
		dbPath = DefaultDBPath
	}
	store, err := openSpellbookStore(dbPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	spellbookv1.RegisterSpellbookServiceServer(grpcServer, spellbookservice.NewService(store))
	healthServer := platformgrpc.RegisterHealth(grpcServer, spellbookv1.ServiceName)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a spellbook server until context cancellation.
func Run(ctx context.Context, port int, dbPath string) error {
	server, err := New(port, dbPath)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation. In-flight calls
// get timeouts.Shutdown to finish before the server is stopped hard.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("spellbook server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.gracefulStop(timeouts.Shutdown)
		return serveResult(<-serveErr)
	case err := <-serveErr:
		return serveResult(err)
	}
}

func (s *Server) gracefulStop(timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		log.Printf("spellbook graceful stop timed out after %v", timeout)
		s.grpcServer.Stop()
	}
}

func serveResult(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// Close releases spellbook server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close spellbook store: %v", err)
		}
	}
}

func openSpellbookStore(path string) (*spellbooksqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := spellbooksqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spellbook sqlite store: %w", err)
	}
	return store, nil
}
