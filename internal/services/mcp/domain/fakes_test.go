package domain

import (
	"context"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"google.golang.org/grpc"
)

type fakeSpellbookClient struct {
	generateReq  *spellbookv1.GenerateSpellRequest
	generateResp *spellbookv1.GenerateSpellResponse
	generateErr  error
	getReq       *spellbookv1.GetSpellRequest
	getResp      *spellbookv1.GetSpellResponse
	getErr       error
	listReq      *spellbookv1.ListSpellsRequest
	listResp     *spellbookv1.ListSpellsResponse
	listErr      error
}

func (f *fakeSpellbookClient) GenerateSpell(_ context.Context, in *spellbookv1.GenerateSpellRequest, _ ...grpc.CallOption) (*spellbookv1.GenerateSpellResponse, error) {
	f.generateReq = in
	return f.generateResp, f.generateErr
}

func (f *fakeSpellbookClient) GetSpell(_ context.Context, in *spellbookv1.GetSpellRequest, _ ...grpc.CallOption) (*spellbookv1.GetSpellResponse, error) {
	f.getReq = in
	return f.getResp, f.getErr
}

func (f *fakeSpellbookClient) ListSpells(_ context.Context, in *spellbookv1.ListSpellsRequest, _ ...grpc.CallOption) (*spellbookv1.ListSpellsResponse, error) {
	f.listReq = in
	return f.listResp, f.listErr
}

func (f *fakeSpellbookClient) SampleFormula(context.Context, *spellbookv1.SampleFormulaRequest, ...grpc.CallOption) (*spellbookv1.SampleFormulaResponse, error) {
	return nil, nil
}
