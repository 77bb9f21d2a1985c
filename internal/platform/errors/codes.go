// Package errors provides structured errors with machine-readable codes that
// transports map onto their own status models.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Formula errors
	CodeFormulaInvalidConfiguration Code = "FORMULA_INVALID_CONFIGURATION"
	CodeFormulaUnknownKind          Code = "FORMULA_UNKNOWN_KIND"

	// Spell errors
	CodeSpellInvalidEffectCount Code = "SPELL_INVALID_EFFECT_COUNT"
	CodeSpellUnknownTarget      Code = "SPELL_UNKNOWN_TARGET"
	CodeSpellConflictingEffect  Code = "SPELL_CONFLICTING_EFFECT"

	// Storage errors
	CodeNotFound            Code = "NOT_FOUND"
	CodeAlreadyExists       Code = "ALREADY_EXISTS"
	CodeFingerprintMismatch Code = "FINGERPRINT_MISMATCH"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - caller supplied parameters that can never succeed
	case CodeFormulaInvalidConfiguration,
		CodeFormulaUnknownKind,
		CodeSpellInvalidEffectCount,
		CodeSpellUnknownTarget,
		CodeSpellConflictingEffect:
		return codes.InvalidArgument

	case CodeNotFound:
		return codes.NotFound

	case CodeAlreadyExists:
		return codes.AlreadyExists

	// DataLoss - a stored spell no longer regenerates to the same content
	case CodeFingerprintMismatch:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}
