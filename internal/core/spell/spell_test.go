package spell

import (
	"errors"
	"testing"

	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/random"
	"github.com/Steffo99/royalspells/internal/core/random/randomtest"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
)

type effectTuple struct {
	target  Target
	damage  formula.Params
	healing formula.Params
	hasDmg  bool
	hasHeal bool
}

func tuples(s Spell) []effectTuple {
	out := make([]effectTuple, 0, s.EffectCount())
	for _, e := range s.Effects() {
		dmg, hasDmg := e.Damage()
		heal, hasHeal := e.Healing()
		out = append(out, effectTuple{
			target:  e.Target(),
			damage:  dmg.Params(),
			healing: heal.Params(),
			hasDmg:  hasDmg,
			hasHeal: hasHeal,
		})
	}
	return out
}

func TestGenerateEndToEndReproducible(t *testing.T) {
	first, err := Generate("abc", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate("abc", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a, b := tuples(first), tuples(second)
	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("effect counts = %d, %d, want 5", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("effect %d differs: %+v != %+v", i, a[i], b[i])
		}
	}
	if first.Cost() != second.Cost() {
		t.Fatalf("costs differ: %d != %d", first.Cost(), second.Cost())
	}
}

func TestGenerateDeterministicAcrossSeeds(t *testing.T) {
	seeds := []any{"", "abc", 0, 42, int64(-7), 3.5, true, []byte{1, 2, 3}, map[string]int{"realm": 2}}
	for _, seed := range seeds {
		for _, n := range []int{0, 1, 7, 40} {
			a, err := Generate(seed, n)
			if err != nil {
				t.Fatalf("Generate(%v, %d): %v", seed, n, err)
			}
			b, err := Generate(seed, n)
			if err != nil {
				t.Fatalf("Generate(%v, %d): %v", seed, n, err)
			}
			fa, _ := a.Fingerprint()
			fb, _ := b.Fingerprint()
			if fa != fb {
				t.Fatalf("Generate(%v, %d) not reproducible", seed, n)
			}
			if a.Draws() != b.Draws() {
				t.Fatalf("Generate(%v, %d) draw counts differ", seed, n)
			}
		}
	}
}

func TestGeneratePrefixStable(t *testing.T) {
	short, err := Generate("prefix", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	long, err := Generate("prefix", 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	a, b := tuples(short), tuples(long)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("effect %d changed when more effects were requested", i)
		}
	}
}

func TestGenerateMatchesManualDraws(t *testing.T) {
	s, err := Generate(99, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	stream := random.NewStream(99)
	for i, e := range s.Effects() {
		want := SelectEffect(stream, nil)
		if e.Snapshot().Target != want.Snapshot().Target {
			t.Fatalf("effect %d target mismatch", i)
		}
	}
	if s.Draws() != stream.Position() {
		t.Fatalf("Draws() = %d, want %d", s.Draws(), stream.Position())
	}
}

func TestGenerateRejectsNegativeCount(t *testing.T) {
	_, err := Generate("abc", -1)
	if !errors.Is(err, ErrInvalidEffectCount) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidEffectCount)
	}
	if apperrors.GetCode(err) != apperrors.CodeSpellInvalidEffectCount {
		t.Fatalf("code = %q", apperrors.GetCode(err))
	}
}

func TestGenerateZeroEffects(t *testing.T) {
	s, err := Generate("empty", 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.EffectCount() != 0 || s.Cost() != 0 || s.Draws() != 0 {
		t.Fatalf("unexpected spell: count=%d cost=%d draws=%d", s.EffectCount(), s.Cost(), s.Draws())
	}
	if !s.OwnsStream() || s.Seed() != "empty" {
		t.Fatal("expected spell to own a stream seeded with its seed")
	}
}

func TestGenerateFromBorrowsSource(t *testing.T) {
	stream := random.NewStream("shared")
	first, err := GenerateFrom(stream, 2)
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	second, err := GenerateFrom(stream, 2)
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	if first.OwnsStream() || first.Seed() != nil {
		t.Fatal("borrowed spell must not record a seed or stream")
	}

	owned, err := Generate("shared", 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := tuples(owned)
	got := append(tuples(first), tuples(second)...)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("effect %d differs between borrowed and owned generation", i)
		}
	}
	if first.Draws()+second.Draws() != owned.Draws() {
		t.Fatalf("draws = %d+%d, want %d", first.Draws(), second.Draws(), owned.Draws())
	}

	if _, err := GenerateFrom(nil, 1); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestGenerateFromUntrackedSource(t *testing.T) {
	src := &randomtest.Script{Ints: []int{100, 91}}
	s, err := GenerateFrom(src, 1)
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	if s.Draws() != 0 {
		t.Fatalf("Draws() = %d, want 0 for untracked source", s.Draws())
	}
}

func TestCostHook(t *testing.T) {
	var seen int
	s, err := Generate("cost", 6, WithCost(func(effects []Effect) int {
		seen = len(effects)
		return 1000 + len(effects)
	}))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if seen != 6 || s.Cost() != 1006 {
		t.Fatalf("cost hook saw %d effects, cost %d", seen, s.Cost())
	}

	def, err := Generate("cost", 6, WithCost(nil))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if def.Cost() != DefaultCost(def.Effects()) {
		t.Fatalf("Cost() = %d, want default %d", def.Cost(), DefaultCost(def.Effects()))
	}
}

func TestDefaultCost(t *testing.T) {
	fixed, _ := formula.NewFixed(30)
	uniform, _ := formula.NewUniform(-290, 310)
	negative, _ := formula.NewGaussian(-50, 3)
	fractional, _ := formula.NewUniform(1, 2)

	mk := func(damage, healing *formula.Formula) Effect {
		e, err := NewEffect(TargetRandomEnemy, damage, healing, nil)
		if err != nil {
			t.Fatalf("NewEffect: %v", err)
		}
		return e
	}

	effects := []Effect{
		mk(&fixed, nil),
		mk(nil, &uniform),
		mk(&negative, nil),
		mk(&fractional, nil),
		mk(nil, nil),
	}
	// 30 + 10 + 0 + ceil(1.5)
	if got := DefaultCost(effects); got != 42 {
		t.Fatalf("DefaultCost() = %d, want 42", got)
	}
}

func TestBuffHookDoesNotShiftStreamWhenEmpty(t *testing.T) {
	plain, err := Generate("buffs", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	hooked, err := Generate("buffs", 5, WithBuffs(func(random.Source, Target) []Buff { return nil }))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	a, b := tuples(plain), tuples(hooked)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("effect %d changed by a non-drawing hook", i)
		}
	}
}

func TestEffectsAreCopies(t *testing.T) {
	s, err := Generate("copies", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	effects := s.Effects()
	effects[0] = Effect{}
	if s.Effects()[0].Target() == TargetUnspecified {
		t.Fatal("mutating the returned slice changed the spell")
	}
}

func TestSnapshotShape(t *testing.T) {
	s, err := Generate("snapshot", 8, WithBuffs(func(_ random.Source, target Target) []Buff {
		if target == TargetAllAllies {
			return []Buff{namedBuff("blessed")}
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	snap := s.Snapshot()
	if snap.Seed != "snapshot" || snap.EffectCount != 8 || len(snap.Effects) != 8 || snap.Cost != s.Cost() {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	for i, e := range snap.Effects {
		if e.Buffs == nil {
			t.Fatalf("effect %d buffs is nil, want empty list", i)
		}
		if e.Damage != nil && e.Healing != nil {
			t.Fatalf("effect %d snapshot has damage and healing", i)
		}
		if e.Target == TargetAllAllies.String() && (len(e.Buffs) != 1 || e.Buffs[0] != "blessed") {
			t.Fatalf("effect %d buffs = %v", i, e.Buffs)
		}
	}
}

func TestFingerprintIgnoresSeed(t *testing.T) {
	owned, err := Generate("fp", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	borrowed, err := GenerateFrom(random.NewStream("fp"), 3)
	if err != nil {
		t.Fatalf("GenerateFrom: %v", err)
	}
	a, err := owned.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, err := borrowed.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if a != b {
		t.Fatalf("fingerprints differ: %s != %s", a, b)
	}
}
