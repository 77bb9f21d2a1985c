package spellgen

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Steffo99/royalspells/internal/core/formula"
	"github.com/Steffo99/royalspells/internal/core/spell"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type spellOutput struct {
	spell.Snapshot
	Fingerprint string `json:"fingerprint"`
}

func newSpellOutput(s spell.Spell) (spellOutput, error) {
	fingerprint, err := s.Fingerprint()
	if err != nil {
		return spellOutput{}, fmt.Errorf("fingerprint spell: %w", err)
	}
	return spellOutput{Snapshot: s.Snapshot(), Fingerprint: fingerprint}, nil
}

// renderJSON writes one object for a single spell and an array otherwise.
func renderJSON(w io.Writer, spells []spell.Spell) error {
	outputs := make([]spellOutput, 0, len(spells))
	for _, s := range spells {
		output, err := newSpellOutput(s)
		if err != nil {
			return err
		}
		outputs = append(outputs, output)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	var value any = outputs
	if len(outputs) == 1 {
		value = outputs[0]
	}
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode spells: %w", err)
	}
	return nil
}

func renderText(w io.Writer, printer *message.Printer, tag language.Tag, spells []spell.Spell) error {
	title := cases.Title(tag)
	var b strings.Builder
	for i, s := range spells {
		if i > 0 {
			b.WriteString("\n")
		}
		output, err := newSpellOutput(s)
		if err != nil {
			return err
		}
		writeLine(&b, 0, printer.Sprintf("spellgen.spell.header", output.Seed))
		writeLine(&b, 0, printer.Sprintf("spellgen.spell.summary", output.EffectCount, output.Cost))
		writeLine(&b, 0, printer.Sprintf("spellgen.spell.fingerprint", output.Fingerprint))

		for n, effect := range s.Effects() {
			label := title.String(printer.Sprintf("target." + effect.Target().String()))
			writeLine(&b, 1, printer.Sprintf("spellgen.effect.line", n+1, label))

			damage, hasDamage := effect.Damage()
			healing, hasHealing := effect.Healing()
			if hasDamage {
				writeLine(&b, 2, printer.Sprintf("spellgen.effect.damage", describeFormula(printer, damage)))
			}
			if hasHealing {
				writeLine(&b, 2, printer.Sprintf("spellgen.effect.healing", describeFormula(printer, healing)))
			}
			if !hasDamage && !hasHealing {
				writeLine(&b, 2, printer.Sprintf("spellgen.effect.inert"))
			}
			if buffs := effect.Buffs(); len(buffs) > 0 {
				names := make([]string, 0, len(buffs))
				for _, buff := range buffs {
					names = append(names, buff.Name())
				}
				writeLine(&b, 2, printer.Sprintf("spellgen.effect.buffs", strings.Join(names, ", ")))
			}
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write spells: %w", err)
	}
	return nil
}

func describeFormula(printer *message.Printer, f formula.Formula) string {
	p := f.Params()
	switch f.Kind() {
	case formula.KindFixed:
		return printer.Sprintf("spellgen.formula.fixed", p.Value)
	case formula.KindUniform:
		return printer.Sprintf("spellgen.formula.uniform", p.Min, p.Max)
	case formula.KindGaussian:
		return printer.Sprintf("spellgen.formula.gaussian", p.Mu, p.Sigma)
	default:
		return f.String()
	}
}

func writeLine(b *strings.Builder, indent int, line string) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(line)
	b.WriteString("\n")
}
