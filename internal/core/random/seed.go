package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"

	"github.com/Steffo99/royalspells/internal/core/encoding"
)

// NewSeed generates a random seed using crypto/rand. It is used when a caller
// asks for a spell without choosing a seed; the returned value is reported
// back so the spell can be regenerated later.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// HashSeed maps any seed value to the integer a Stream is seeded with.
// Numerically equal integers hash alike regardless of their Go type, and so do
// integral floats, so 5, uint8(5) and 5.0 select the same stream.
func HashSeed(seed any) uint64 {
	return seedWord(seedKey(seed), "a")
}

func seedKey(seed any) string {
	switch v := seed.(type) {
	case nil:
		return "nil"
	case string:
		return "string:" + v
	case []byte:
		return "bytes:" + hex.EncodeToString(v)
	case bool:
		return "bool:" + strconv.FormatBool(v)
	case int:
		return intKey(int64(v))
	case int8:
		return intKey(int64(v))
	case int16:
		return intKey(int64(v))
	case int32:
		return intKey(int64(v))
	case int64:
		return intKey(v)
	case uint:
		return uintKey(uint64(v))
	case uint8:
		return uintKey(uint64(v))
	case uint16:
		return uintKey(uint64(v))
	case uint32:
		return uintKey(uint64(v))
	case uint64:
		return uintKey(v)
	case float32:
		return floatKey(float64(v))
	case float64:
		return floatKey(v)
	}
	if data, err := encoding.CanonicalJSON(seed); err == nil {
		return "json:" + string(data)
	}
	return fmt.Sprintf("%T:%#v", seed, seed)
}

func intKey(v int64) string {
	return "int:" + strconv.FormatInt(v, 10)
}

func uintKey(v uint64) string {
	return "int:" + strconv.FormatUint(v, 10)
}

func floatKey(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
		return intKey(int64(v))
	}
	return "float:" + strconv.FormatFloat(v, 'g', -1, 64)
}

func seedWord(key string, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(salt))
	return h.Sum64()
}
