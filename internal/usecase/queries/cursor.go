package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"consultation-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

// Cursor continues a keyset page. After is opaque to clients.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// EncodeAfterCursor keeps microsecond precision, which is what PostgreSQL stores.
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	if cursor == "" {
		return time.Time{}, uuid.Nil, errs.Mark(errs.New("cursor cannot be empty"), errs.ErrValidation)
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(errs.Wrap(err, "invalid cursor encoding"), errs.ErrValidation)
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Mark(errs.New("unsupported cursor version"), errs.ErrValidation)
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Mark(errs.New("invalid cursor format: expected '<micros>-<uuid>'"), errs.ErrValidation)
	}
	timestamp, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(errs.Wrap(err, "invalid cursor timestamp"), errs.ErrValidation)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(errs.Wrap(err, "invalid cursor id"), errs.ErrValidation)
	}

	return time.UnixMicro(timestamp).UTC(), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
