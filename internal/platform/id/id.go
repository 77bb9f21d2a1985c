// Package id generates identifiers for persisted records.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a random UUIDv4 encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// Valid reports whether value has the shape NewID produces.
func Valid(value string) bool {
	if len(value) != 26 || strings.ToLower(value) != value {
		return false
	}
	decoded, err := encoding.DecodeString(strings.ToUpper(value))
	return err == nil && len(decoded) == 16
}
