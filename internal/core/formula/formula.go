// Package formula implements the numeric distributions spell effects roll
// their damage and healing from.
//
// A Formula is a closed variant: Fixed, Uniform or Gaussian. Every sample is
// a non-negative integer obtained as ceil(max(0, raw)), so a negative or zero
// raw draw always yields 0 and any positive fraction rounds up.
package formula

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Steffo99/royalspells/internal/core/random"
	apperrors "github.com/Steffo99/royalspells/internal/platform/errors"
)

// ErrConfiguration indicates a formula was built from parameters that can
// never produce valid samples.
var ErrConfiguration = errors.New("invalid formula configuration")

// MaxMagnitude bounds every uniform bound and gaussian parameter. Values up
// to 2^53 are exact in a float64, and a gaussian draw stays far below the
// int64 range even many deviations out.
const MaxMagnitude = 1 << 53

// Kind identifies a formula variant.
type Kind uint8

const (
	KindUnspecified Kind = iota
	KindFixed
	KindUniform
	KindGaussian
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindUniform:
		return "uniform"
	case KindGaussian:
		return "gaussian"
	default:
		return "unspecified"
	}
}

// ParseKind resolves a kind from its String form, case-insensitively.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fixed":
		return KindFixed, nil
	case "uniform":
		return KindUniform, nil
	case "gaussian":
		return KindGaussian, nil
	default:
		return KindUnspecified, apperrors.WrapWithMetadata(
			apperrors.CodeFormulaUnknownKind,
			fmt.Sprintf("unknown formula kind %q", value),
			map[string]string{"kind": value},
			ErrConfiguration,
		)
	}
}

// Formula is an immutable numeric distribution. The zero value is an
// unspecified formula that always samples 0.
type Formula struct {
	kind  Kind
	value int
	min   float64
	max   float64
	mu    float64
	sigma float64
}

// Params is the flat, transport-friendly description of a formula. Only the
// fields relevant to Kind are read.
type Params struct {
	Kind  Kind
	Value int
	Min   float64
	Max   float64
	Mu    float64
	Sigma float64
}

// New builds a formula from params, validating them for the given kind.
func New(p Params) (Formula, error) {
	switch p.Kind {
	case KindFixed:
		return NewFixed(p.Value)
	case KindUniform:
		return NewUniform(p.Min, p.Max)
	case KindGaussian:
		return NewGaussian(p.Mu, p.Sigma)
	default:
		return Formula{}, configError("formula kind is required", map[string]string{"kind": p.Kind.String()})
	}
}

// NewFixed returns a formula that always samples value.
func NewFixed(value int) (Formula, error) {
	if value < 0 {
		return Formula{}, configError("fixed value must not be negative", map[string]string{
			"value": strconv.Itoa(value),
		})
	}
	return Formula{kind: KindFixed, value: value}, nil
}

// NewUniform returns a formula sampling uniformly from [min, max).
func NewUniform(min, max float64) (Formula, error) {
	meta := map[string]string{"min": formatFloat(min), "max": formatFloat(max)}
	if !isFinite(min) || !isFinite(max) {
		return Formula{}, configError("uniform bounds must be finite", meta)
	}
	if min > max {
		return Formula{}, configError("uniform min must not exceed max", meta)
	}
	if math.Abs(min) > MaxMagnitude || math.Abs(max) > MaxMagnitude {
		return Formula{}, configError("uniform bounds exceed the supported magnitude", meta)
	}
	return Formula{kind: KindUniform, min: min, max: max}, nil
}

// NewGaussian returns a formula sampling from a normal distribution.
func NewGaussian(mu, sigma float64) (Formula, error) {
	meta := map[string]string{"mu": formatFloat(mu), "sigma": formatFloat(sigma)}
	if !isFinite(mu) || !isFinite(sigma) {
		return Formula{}, configError("gaussian parameters must be finite", meta)
	}
	if sigma < 0 {
		return Formula{}, configError("gaussian sigma must not be negative", meta)
	}
	if math.Abs(mu) > MaxMagnitude || sigma > MaxMagnitude {
		return Formula{}, configError("gaussian parameters exceed the supported magnitude", meta)
	}
	return Formula{kind: KindGaussian, mu: mu, sigma: sigma}, nil
}

// Kind returns the formula variant.
func (f Formula) Kind() Kind { return f.kind }

// Params returns the formula's parameters.
func (f Formula) Params() Params {
	return Params{
		Kind:  f.kind,
		Value: f.value,
		Min:   f.min,
		Max:   f.max,
		Mu:    f.mu,
		Sigma: f.sigma,
	}
}

// Sample draws one value from src. Fixed formulas never touch src.
func (f Formula) Sample(src random.Source) int {
	switch f.kind {
	case KindFixed:
		return f.value
	case KindUniform:
		return nonNegativeCeil(src.Uniform(f.min, f.max))
	case KindGaussian:
		return nonNegativeCeil(src.Gaussian(f.mu, f.sigma))
	default:
		return 0
	}
}

// Mean returns the centre of the distribution before clamping.
func (f Formula) Mean() float64 {
	switch f.kind {
	case KindFixed:
		return float64(f.value)
	case KindUniform:
		return (f.min + f.max) / 2
	case KindGaussian:
		return f.mu
	default:
		return 0
	}
}

func (f Formula) String() string {
	switch f.kind {
	case KindFixed:
		return fmt.Sprintf("fixed(%d)", f.value)
	case KindUniform:
		return fmt.Sprintf("uniform(min=%s, max=%s)", formatFloat(f.min), formatFloat(f.max))
	case KindGaussian:
		return fmt.Sprintf("gaussian(mu=%s, sigma=%s)", formatFloat(f.mu), formatFloat(f.sigma))
	default:
		return "unspecified"
	}
}

// nonNegativeCeil clamps before rounding so a negative raw draw can never
// round up into a positive result. Draws beyond the int range saturate.
func nonNegativeCeil(raw float64) int {
	if !(raw > 0) {
		return 0
	}
	if raw >= math.MaxInt {
		return math.MaxInt
	}
	return int(math.Ceil(raw))
}

func configError(message string, metadata map[string]string) error {
	return apperrors.WrapWithMetadata(apperrors.CodeFormulaInvalidConfiguration, message, metadata, ErrConfiguration)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
