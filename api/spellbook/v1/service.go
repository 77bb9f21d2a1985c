// Package spellbookv1 defines the spellbook.v1 gRPC contract: the service
// descriptor, its client and the messages it exchanges. Messages are carried
// by a JSON codec registered under CodecName.
package spellbookv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified spellbook service name, also used as
// its health check name.
const ServiceName = "royalspells.spellbook.v1.SpellbookService"

const (
	SpellbookService_GenerateSpell_FullMethodName = "/" + ServiceName + "/GenerateSpell"
	SpellbookService_GetSpell_FullMethodName      = "/" + ServiceName + "/GetSpell"
	SpellbookService_ListSpells_FullMethodName    = "/" + ServiceName + "/ListSpells"
	SpellbookService_SampleFormula_FullMethodName = "/" + ServiceName + "/SampleFormula"
)

// SpellbookServiceClient is the client API for the spellbook service.
type SpellbookServiceClient interface {
	GenerateSpell(ctx context.Context, in *GenerateSpellRequest, opts ...grpc.CallOption) (*GenerateSpellResponse, error)
	GetSpell(ctx context.Context, in *GetSpellRequest, opts ...grpc.CallOption) (*GetSpellResponse, error)
	ListSpells(ctx context.Context, in *ListSpellsRequest, opts ...grpc.CallOption) (*ListSpellsResponse, error)
	SampleFormula(ctx context.Context, in *SampleFormulaRequest, opts ...grpc.CallOption) (*SampleFormulaResponse, error)
}

type spellbookServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSpellbookServiceClient returns a client that sends every call with the
// JSON codec.
func NewSpellbookServiceClient(cc grpc.ClientConnInterface) SpellbookServiceClient {
	return &spellbookServiceClient{cc: cc}
}

func (c *spellbookServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *spellbookServiceClient) GenerateSpell(ctx context.Context, in *GenerateSpellRequest, opts ...grpc.CallOption) (*GenerateSpellResponse, error) {
	out := new(GenerateSpellResponse)
	if err := c.invoke(ctx, SpellbookService_GenerateSpell_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spellbookServiceClient) GetSpell(ctx context.Context, in *GetSpellRequest, opts ...grpc.CallOption) (*GetSpellResponse, error) {
	out := new(GetSpellResponse)
	if err := c.invoke(ctx, SpellbookService_GetSpell_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spellbookServiceClient) ListSpells(ctx context.Context, in *ListSpellsRequest, opts ...grpc.CallOption) (*ListSpellsResponse, error) {
	out := new(ListSpellsResponse)
	if err := c.invoke(ctx, SpellbookService_ListSpells_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spellbookServiceClient) SampleFormula(ctx context.Context, in *SampleFormulaRequest, opts ...grpc.CallOption) (*SampleFormulaResponse, error) {
	out := new(SampleFormulaResponse)
	if err := c.invoke(ctx, SpellbookService_SampleFormula_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// SpellbookServiceServer is the server API for the spellbook service.
// Implementations must embed UnimplementedSpellbookServiceServer.
type SpellbookServiceServer interface {
	GenerateSpell(context.Context, *GenerateSpellRequest) (*GenerateSpellResponse, error)
	GetSpell(context.Context, *GetSpellRequest) (*GetSpellResponse, error)
	ListSpells(context.Context, *ListSpellsRequest) (*ListSpellsResponse, error)
	SampleFormula(context.Context, *SampleFormulaRequest) (*SampleFormulaResponse, error)
	mustEmbedUnimplementedSpellbookServiceServer()
}

// UnimplementedSpellbookServiceServer answers every method with Unimplemented.
type UnimplementedSpellbookServiceServer struct{}

func (UnimplementedSpellbookServiceServer) GenerateSpell(context.Context, *GenerateSpellRequest) (*GenerateSpellResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateSpell not implemented")
}

func (UnimplementedSpellbookServiceServer) GetSpell(context.Context, *GetSpellRequest) (*GetSpellResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSpell not implemented")
}

func (UnimplementedSpellbookServiceServer) ListSpells(context.Context, *ListSpellsRequest) (*ListSpellsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSpells not implemented")
}

func (UnimplementedSpellbookServiceServer) SampleFormula(context.Context, *SampleFormulaRequest) (*SampleFormulaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SampleFormula not implemented")
}

func (UnimplementedSpellbookServiceServer) mustEmbedUnimplementedSpellbookServiceServer() {}

// RegisterSpellbookServiceServer registers srv on s.
func RegisterSpellbookServiceServer(s grpc.ServiceRegistrar, srv SpellbookServiceServer) {
	s.RegisterService(&SpellbookService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](fullMethod string, call func(SpellbookServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SpellbookServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SpellbookServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SpellbookService_ServiceDesc is the grpc.ServiceDesc for the spellbook service.
var SpellbookService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SpellbookServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateSpell",
			Handler: unaryHandler(SpellbookService_GenerateSpell_FullMethodName,
				SpellbookServiceServer.GenerateSpell),
		},
		{
			MethodName: "GetSpell",
			Handler: unaryHandler(SpellbookService_GetSpell_FullMethodName,
				SpellbookServiceServer.GetSpell),
		},
		{
			MethodName: "ListSpells",
			Handler: unaryHandler(SpellbookService_ListSpells_FullMethodName,
				SpellbookServiceServer.ListSpells),
		},
		{
			MethodName: "SampleFormula",
			Handler: unaryHandler(SpellbookService_SampleFormula_FullMethodName,
				SpellbookServiceServer.SampleFormula),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "royalspells/spellbook/v1/spellbook.go",
}
