package spellbookv1

import (
	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/spell"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// SpellRecord describes a saved spell without its effects.
type SpellRecord struct {
	Id            string                 `json:"id"`
	Name          string                 `json:"name,omitempty"`
	Seed          string                 `json:"seed"`
	EffectCount   int32                  `json:"effect_count"`
	Cost          int32                  `json:"cost"`
	PrimaryTarget string                 `json:"primary_target,omitempty"`
	Fingerprint   string                 `json:"fingerprint"`
	CreatedAt     *timestamppb.Timestamp `json:"created_at,omitempty"`
}

func (x *SpellRecord) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *SpellRecord) GetSeed() string {
	if x != nil {
		return x.Seed
	}
	return ""
}

// GenerateSpellRequest asks for a spell. An empty seed draws a fresh one.
type GenerateSpellRequest struct {
	Seed        string `json:"seed,omitempty"`
	EffectCount int32  `json:"effect_count"`
	Save        bool   `json:"save,omitempty"`
	Name        string `json:"name,omitempty"`
}

func (x *GenerateSpellRequest) GetSeed() string {
	if x != nil {
		return x.Seed
	}
	return ""
}

func (x *GenerateSpellRequest) GetEffectCount() int32 {
	if x != nil {
		return x.EffectCount
	}
	return 0
}

func (x *GenerateSpellRequest) GetSave() bool {
	if x != nil {
		return x.Save
	}
	return false
}

func (x *GenerateSpellRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

// GenerateSpellResponse carries the generated spell and, when saved, its record.
type GenerateSpellResponse struct {
	Spell       *spell.Snapshot `json:"spell"`
	Fingerprint string          `json:"fingerprint"`
	Record      *SpellRecord    `json:"record,omitempty"`
}

func (x *GenerateSpellResponse) GetSpell() *spell.Snapshot {
	if x != nil {
		return x.Spell
	}
	return nil
}

func (x *GenerateSpellResponse) GetRecord() *SpellRecord {
	if x != nil {
		return x.Record
	}
	return nil
}

// GetSpellRequest looks up a saved spell. Verify regenerates it and checks
// the stored fingerprint.
type GetSpellRequest struct {
	Id     string `json:"id"`
	Verify bool   `json:"verify,omitempty"`
}

func (x *GetSpellRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *GetSpellRequest) GetVerify() bool {
	if x != nil {
		return x.Verify
	}
	return false
}

// GetSpellResponse carries a saved spell and its effects.
type GetSpellResponse struct {
	Record   *SpellRecord    `json:"record"`
	Spell    *spell.Snapshot `json:"spell"`
	Verified bool            `json:"verified,omitempty"`
}

func (x *GetSpellResponse) GetRecord() *SpellRecord {
	if x != nil {
		return x.Record
	}
	return nil
}

func (x *GetSpellResponse) GetSpell() *spell.Snapshot {
	if x != nil {
		return x.Spell
	}
	return nil
}

// ListSpellsRequest pages through saved spells, optionally filtered by the
// target of their first effect.
type ListSpellsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	Target    string `json:"target,omitempty"`
}

func (x *ListSpellsRequest) GetPageSize() int32 {
	if x != nil {
		return x.PageSize
	}
	return 0
}

func (x *ListSpellsRequest) GetPageToken() string {
	if x != nil {
		return x.PageToken
	}
	return ""
}

func (x *ListSpellsRequest) GetTarget() string {
	if x != nil {
		return x.Target
	}
	return ""
}

// ListSpellsResponse is one page of saved spells.
type ListSpellsResponse struct {
	Spells        []*SpellRecord `json:"spells"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

func (x *ListSpellsResponse) GetSpells() []*SpellRecord {
	if x != nil {
		return x.Spells
	}
	return nil
}

func (x *ListSpellsResponse) GetNextPageToken() string {
	if x != nil {
		return x.NextPageToken
	}
	return ""
}

// SampleFormulaRequest rolls a formula several times. Only the parameters of
// Kind are read.
type SampleFormulaRequest struct {
	Kind  string  `json:"kind"`
	Value int32   `json:"value,omitempty"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Mu    float64 `json:"mu,omitempty"`
	Sigma float64 `json:"sigma,omitempty"`
	Seed  string  `json:"seed,omitempty"`
	Rolls int32   `json:"rolls,omitempty"`
}

func (x *SampleFormulaRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *SampleFormulaRequest) GetSeed() string {
	if x != nil {
		return x.Seed
	}
	return ""
}

func (x *SampleFormulaRequest) GetRolls() int32 {
	if x != nil {
		return x.Rolls
	}
	return 0
}

// SampleFormulaResponse carries the rolled samples and the seed used.
type SampleFormulaResponse struct {
	Formula *formula.Snapshot `json:"formula"`
	Seed    string            `json:"seed"`
	Samples []int64           `json:"samples"`
}

func (x *SampleFormulaResponse) GetSamples() []int64 {
	if x != nil {
		return x.Samples
	}
	return nil
}
