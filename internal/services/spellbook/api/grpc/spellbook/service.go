// Package spellbook implements the spellbook.v1 gRPC service.
package spellbook

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	spellbookv1 "github.com/Steffo99/royalspells/api/spellbook/v1"
	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/random"
	"github.com/Steffo99/royalspells/internal/core/spell"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
	"github.com/Steffo99/royalspells/internal/platform/grpc/pagination"
	"github.com/Steffo99/royalspells/internal/platform/id"
	"github.com/Steffo99/royalspells/internal/platform/otel"
	"github.com/Steffo99/royalspells/internal/services/spellbook/integrity"
	"github.com/Steffo99/royalspells/internal/services/spellbook/storage"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	defaultListSpellsPageSize = 10
	maxListSpellsPageSize     = 50

	// MaxEffectCount bounds a single generate call.
	MaxEffectCount = 100

	defaultSampleRolls = 1
	maxSampleRolls     = 100
)

// Service exposes spellbook.v1 gRPC operations.
type Service struct {
	spellbookv1.UnimplementedSpellbookServiceServer
	store  storage.SpellStore
	clock  func() time.Time
	newID  func() (string, error)
	seeds  func() (int64, error)
	tracer trace.Tracer
}

// NewService creates a spellbook service backed by spell storage. A nil store
// serves generation and sampling only.
func NewService(store storage.SpellStore) *Service {
	return &Service{
		store:  store,
		clock:  time.Now,
		newID:  id.NewID,
		seeds:  random.NewSeed,
		tracer: otel.Tracer("spellbook"),
	}
}

// GenerateSpell generates one spell and optionally saves it.
func (s *Service) GenerateSpell(ctx context.Context, in *spellbookv1.GenerateSpellRequest) (*spellbookv1.GenerateSpellResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "generate spell request is required")
	}
	if s == nil {
		return nil, status.Error(codes.Internal, "spellbook service is not configured")
	}
	if in.GetEffectCount() > MaxEffectCount {
		return nil, status.Errorf(codes.InvalidArgument, "effect count must not exceed %d", MaxEffectCount)
	}
	if in.GetSave() && s.store == nil {
		return nil, status.Error(codes.FailedPrecondition, "spell store is not configured")
	}

	seed, err := s.resolveSeed(in.GetSeed())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "draw seed: %v", err)
	}

	ctx, span := s.tracer.Start(ctx, "spellbook.GenerateSpell", trace.WithAttributes(
		attribute.String("spell.seed", seed),
		attribute.Int("spell.effect_count", int(in.GetEffectCount())),
		attribute.Bool("spell.save", in.GetSave()),
	))
	defer span.End()

	generated, err := spell.Generate(seed, int(in.GetEffectCount()))
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, apperrors.ToGRPCStatus(err)
	}
	fingerprint, err := generated.Fingerprint()
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, status.Errorf(codes.Internal, "fingerprint spell: %v", err)
	}
	span.SetAttributes(
		attribute.String("spell.fingerprint", fingerprint),
		attribute.Int("spell.cost", generated.Cost()),
		attribute.Int64("spell.draws", int64(generated.Draws())),
	)

	snapshot := generated.Snapshot()
	resp := &spellbookv1.GenerateSpellResponse{
		Spell:       &snapshot,
		Fingerprint: fingerprint,
	}
	if !in.GetSave() {
		return resp, nil
	}

	recordID, err := s.newID()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "generate spell id: %v", err)
	}
	record, err := integrity.Seal(recordID, strings.TrimSpace(in.GetName()), generated, s.now())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "seal spell: %v", err)
	}
	if err := s.store.PutSpell(ctx, record); err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, apperrors.ToGRPCStatus(apperrors.WrapWithMetadata(
				apperrors.CodeAlreadyExists, "spell already exists", map[string]string{"id": record.ID}, err,
			))
		}
		return nil, status.Errorf(codes.Internal, "put spell: %v", err)
	}
	span.SetAttributes(attribute.String("spell.id", record.ID))
	resp.Record = spellRecordToProto(record)
	return resp, nil
}

// GetSpell returns one saved spell by ID.
func (s *Service) GetSpell(ctx context.Context, in *spellbookv1.GetSpellRequest) (*spellbookv1.GetSpellResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get spell request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "spell store is not configured")
	}
	spellID := strings.TrimSpace(in.GetId())
	if spellID == "" {
		return nil, status.Error(codes.InvalidArgument, "spell id is required")
	}

	record, err := s.store.GetSpell(ctx, spellID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ToGRPCStatus(apperrors.WrapWithMetadata(
				apperrors.CodeNotFound, "spell not found", map[string]string{"id": spellID}, err,
			))
		}
		return nil, status.Errorf(codes.Internal, "get spell: %v", err)
	}

	var generated spell.Spell
	if in.GetVerify() {
		generated, err = integrity.Verify(record)
	} else {
		generated, err = integrity.Regenerate(record)
	}
	if err != nil {
		return nil, apperrors.ToGRPCStatus(err)
	}
	snapshot := generated.Snapshot()
	return &spellbookv1.GetSpellResponse{
		Record:   spellRecordToProto(record),
		Spell:    &snapshot,
		Verified: in.GetVerify(),
	}, nil
}

// ListSpells returns a page of saved spells.
func (s *Service) ListSpells(ctx context.Context, in *spellbookv1.ListSpellsRequest) (*spellbookv1.ListSpellsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list spells request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "spell store is not configured")
	}

	var target string
	if raw := strings.TrimSpace(in.GetTarget()); raw != "" {
		parsed, err := spell.ParseTarget(raw)
		if err != nil {
			return nil, apperrors.ToGRPCStatus(err)
		}
		target = parsed.String()
	}

	pageSize := pagination.ClampPageSize(in.GetPageSize(), pagination.PageSizeConfig{
		Default: defaultListSpellsPageSize,
		Max:     maxListSpellsPageSize,
	})
	page, err := s.store.ListSpells(ctx, pageSize, in.GetPageToken(), target)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidPageToken) {
			return nil, status.Error(codes.InvalidArgument, "invalid page token")
		}
		return nil, status.Errorf(codes.Internal, "list spells: %v", err)
	}

	resp := &spellbookv1.ListSpellsResponse{
		Spells:        make([]*spellbookv1.SpellRecord, 0, len(page.Spells)),
		NextPageToken: page.NextPageToken,
	}
	for _, record := range page.Spells {
		resp.Spells = append(resp.Spells, spellRecordToProto(record))
	}
	return resp, nil
}

// SampleFormula builds a formula from the request and rolls it.
func (s *Service) SampleFormula(ctx context.Context, in *spellbookv1.SampleFormulaRequest) (*spellbookv1.SampleFormulaResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "sample formula request is required")
	}
	if s == nil {
		return nil, status.Error(codes.Internal, "spellbook service is not configured")
	}

	kind, err := formula.ParseKind(in.GetKind())
	if err != nil {
		return nil, apperrors.ToGRPCStatus(err)
	}
	f, err := formula.New(formula.Params{
		Kind:  kind,
		Value: int(in.Value),
		Min:   in.Min,
		Max:   in.Max,
		Mu:    in.Mu,
		Sigma: in.Sigma,
	})
	if err != nil {
		return nil, apperrors.ToGRPCStatus(err)
	}

	seed, err := s.resolveSeed(in.GetSeed())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "draw seed: %v", err)
	}
	rolls := clampRolls(in.GetRolls())

	_, span := s.tracer.Start(ctx, "spellbook.SampleFormula", trace.WithAttributes(
		attribute.String("formula", f.String()),
		attribute.String("spell.seed", seed),
		attribute.Int("formula.rolls", rolls),
	))
	defer span.End()

	stream := random.NewStream(seed)
	samples := make([]int64, 0, rolls)
	for i := 0; i < rolls; i++ {
		samples = append(samples, int64(f.Sample(stream)))
	}
	snapshot := f.Snapshot()
	return &spellbookv1.SampleFormulaResponse{
		Formula: &snapshot,
		Seed:    seed,
		Samples: samples,
	}, nil
}

func (s *Service) resolveSeed(seed string) (string, error) {
	// Whitespace-only seeds count as missing; any other seed is used verbatim.
	if strings.TrimSpace(seed) != "" {
		return seed, nil
	}
	drawn, err := s.seeds()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(drawn, 10), nil
}

func (s *Service) now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

func clampRolls(value int32) int {
	rolls := int(value)
	if rolls <= 0 {
		return defaultSampleRolls
	}
	return min(rolls, maxSampleRolls)
}

func spellRecordToProto(record storage.SpellRecord) *spellbookv1.SpellRecord {
	return &spellbookv1.SpellRecord{
		Id:            record.ID,
		Name:          record.Name,
		Seed:          record.Seed,
		EffectCount:   int32(record.EffectCount),
		Cost:          int32(record.Cost),
		PrimaryTarget: record.PrimaryTarget,
		Fingerprint:   record.Fingerprint,
		CreatedAt:     timestamppb.New(record.CreatedAt),
	}
}
