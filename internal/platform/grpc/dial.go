// Package grpc holds the client and server plumbing shared by the spellbook
// service and its callers.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dialer describes the gRPC dial behavior used by helpers.
type Dialer interface {
	DialContext(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)
}

// DialerFunc adapts a dial function to the Dialer interface.
type DialerFunc func(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialContext implements Dialer for DialerFunc.
func (fn DialerFunc) DialContext(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	return fn(ctx, addr, opts...)
}

// newClient creates a lazily connecting client. Readiness is established by
// the health check that follows.
func newClient(_ context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	return gogrpc.NewClient(addr, opts...)
}

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	// DialStageConnect indicates a dial connection failure.
	DialStageConnect DialStage = "connect"
	// DialStageHealth indicates the health check failed.
	DialStageHealth DialStage = "health"
)

// DialError wraps dial and health check failures with a stage indicator.
type DialError struct {
	Stage DialStage
	Addr  string
	Err   error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	if e.Addr != "" {
		return fmt.Sprintf("gRPC %s error (%s): %v", e.Stage, e.Addr, e.Err)
	}
	return fmt.Sprintf("gRPC %s error: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultClientDialOptions returns insecure transport credentials plus the
// OTel client handler, followed by extra. Outbound calls propagate trace
// context once a TracerProvider is registered.
func DefaultClientDialOptions(extra ...gogrpc.DialOption) []gogrpc.DialOption {
	opts := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	return append(opts, extra...)
}

// DialWithHealth dials a gRPC endpoint and waits until service reports
// SERVING. An empty service checks the server as a whole. The connection is
// closed if the health check fails.
func DialWithHealth(ctx context.Context, dialer Dialer, addr, service string, dialTimeout time.Duration, logf func(string, ...any), opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if dialer == nil {
		dialer = DialerFunc(newClient)
	}

	dialCtx := ctx
	if dialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, dialTimeout)
		defer cancel()
	}

	conn, err := dialer.DialContext(dialCtx, addr, opts...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Addr: addr, Err: err}
	}
	if err := WaitForHealth(dialCtx, conn, service, logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Addr: addr, Err: err}
	}
	return conn, nil
}
