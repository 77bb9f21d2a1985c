package spell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Steffo99/royalspells/internal/core/random"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
	"github.com/agnivade/levenshtein"
)

// Target is who or what an effect applies to.
type Target uint8

const (
	TargetUnspecified Target = iota
	TargetRandomEnemy
	TargetAllEnemies
	TargetRandomAlly
	TargetAllAllies
	TargetRandomCreature
	TargetAllCreatures
	TargetUselessThing
)

var targetNames = map[Target]string{
	TargetRandomEnemy:    "RANDOM_ENEMY",
	TargetAllEnemies:     "ALL_ENEMIES",
	TargetRandomAlly:     "RANDOM_ALLY",
	TargetAllAllies:      "ALL_ALLIES",
	TargetRandomCreature: "RANDOM_CREATURE",
	TargetAllCreatures:   "ALL_CREATURES",
	TargetUselessThing:   "USELESS_THING",
}

func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "UNSPECIFIED"
}

// Targets lists every selectable target in declaration order.
func Targets() []Target {
	return []Target{
		TargetRandomEnemy,
		TargetAllEnemies,
		TargetRandomAlly,
		TargetAllAllies,
		TargetRandomCreature,
		TargetAllCreatures,
		TargetUselessThing,
	}
}

var targetTable = random.MustCategorical(
	random.Bracket[Target]{Upper: 50, Value: TargetRandomEnemy},
	random.Bracket[Target]{Upper: 70, Value: TargetAllEnemies},
	random.Bracket[Target]{Upper: 85, Value: TargetRandomAlly},
	random.Bracket[Target]{Upper: 90, Value: TargetAllAllies},
	random.Bracket[Target]{Upper: 95, Value: TargetRandomCreature},
	random.Bracket[Target]{Upper: 98, Value: TargetAllCreatures},
	random.Bracket[Target]{Upper: 100, Value: TargetUselessThing},
)

// SelectTarget picks a target with one percentile draw from src.
func SelectTarget(src random.Source) Target {
	return targetTable.Select(src)
}

// ErrUnknownTarget indicates a target name did not match any target.
var ErrUnknownTarget = errors.New("unknown target")

// maxSuggestionDistance bounds how far a misspelling may be from a target
// name before no suggestion is offered.
const maxSuggestionDistance = 4

// ParseTarget resolves a target from its name. Matching ignores case and
// treats spaces and hyphens as underscores, so "all enemies" and
// "All-Enemies" both resolve to TargetAllEnemies. Unknown names return an
// error naming the closest target when one is near enough.
func ParseTarget(name string) (Target, error) {
	normalized := normalizeTargetName(name)
	for _, target := range Targets() {
		if target.String() == normalized {
			return target, nil
		}
	}

	metadata := map[string]string{"target": name}
	message := fmt.Sprintf("unknown target %q", name)
	if suggestion, ok := closestTarget(normalized); ok {
		metadata["suggestion"] = suggestion.String()
		message = fmt.Sprintf("unknown target %q, did you mean %s?", name, suggestion)
	}
	return TargetUnspecified, apperrors.WrapWithMetadata(apperrors.CodeSpellUnknownTarget, message, metadata, ErrUnknownTarget)
}

func normalizeTargetName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "-", "_")
	return replacer.Replace(strings.ToUpper(strings.TrimSpace(name)))
}

func closestTarget(normalized string) (Target, bool) {
	if normalized == "" {
		return TargetUnspecified, false
	}
	best := TargetUnspecified
	bestDistance := maxSuggestionDistance + 1
	for _, target := range Targets() {
		if d := levenshtein.ComputeDistance(normalized, target.String()); d < bestDistance {
			best, bestDistance = target, d
		}
	}
	return best, best != TargetUnspecified
}
