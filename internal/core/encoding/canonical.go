// Package encoding provides deterministic encodings used to derive seeds and
// content fingerprints from arbitrary values.
package encoding

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// CanonicalJSON renders v as JSON with object keys sorted at every depth, no
// insignificant whitespace and HTML escaping disabled. Two values that differ
// only in map iteration order produce identical bytes.
func CanonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	var raw any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, raw); err != nil {
		return nil, fmt.Errorf("encode canonical: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentHash returns the first 128 bits of the SHA-256 digest of v's
// canonical JSON, hex encoded.
func ContentHash(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("canonical json: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:16]), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeScalar(buf, val)
	}
}

// writeScalar encodes a leaf value without HTML escaping and without the
// trailing newline json.Encoder appends.
func writeScalar(buf *bytes.Buffer, v any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(scratch.Bytes(), []byte{'\n'}))
	return nil
}
