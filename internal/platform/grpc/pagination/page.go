// Package pagination normalizes page sizes and encodes keyset page tokens for
// list RPCs.
package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int32, cfg PageSizeConfig) int {
	pageSize := int(value)
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// ErrInvalidPageToken indicates a page token that was not produced by
// EncodeCursor.
var ErrInvalidPageToken = errors.New("invalid page token")

// Cursor is the keyset position a page token resumes after: the last row's
// creation time in unix milliseconds and its ID.
type Cursor struct {
	CreatedAt int64
	ID        string
}

// EncodeCursor returns an opaque page token for c.
func EncodeCursor(c Cursor) string {
	raw := strconv.FormatInt(c.CreatedAt, 10) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a page token. An empty token yields the zero cursor and
// ok=false.
func DecodeCursor(token string) (cursor Cursor, ok bool, err error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, false, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, false, ErrInvalidPageToken
	}
	created, id, found := strings.Cut(string(raw), "|")
	if !found || id == "" {
		return Cursor{}, false, ErrInvalidPageToken
	}
	createdAt, err := strconv.ParseInt(created, 10, 64)
	if err != nil {
		return Cursor{}, false, ErrInvalidPageToken
	}
	return Cursor{CreatedAt: createdAt, ID: id}, true, nil
}
