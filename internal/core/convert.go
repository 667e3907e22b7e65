package core

// convert.go turns validated form input into pgtype values and back into text.
//
// All ToPg* functions return pgtype values with Valid=false for empty/invalid
// input so the store receives NULL instead of a zero value.

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ToPgUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func ToPgUUID(s string) pgtype.UUID {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// PgUUIDToString converts a pgtype.UUID to its string representation.
// Returns empty string if the UUID is invalid.
func PgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// ToPgNumeric converts a decimal to pgtype.Numeric with two fraction digits.
func ToPgNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(d.StringFixed(2)); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ToPgDate converts a time to a pgtype.Date, dropping the clock part.
func ToPgDate(t time.Time) pgtype.Date {
	if t.IsZero() {
		return pgtype.Date{Valid: false}
	}
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// CentsToDollars renders an integer cent amount as a plain decimal string ("12.50").
// Used to pre-fill edit forms. Returns the input unchanged if it is not an integer.
func CentsToDollars(cents string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(cents), 10, 64)
	if err != nil {
		return cents
	}
	return decimal.New(n, -2).StringFixed(2)
}

// TextValue renders a typed record value as the text the store would return.
func TextValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case decimal.Decimal:
		return val.StringFixed(2)
	case pgtype.UUID:
		return PgUUIDToString(val)
	case uuid.UUID:
		return val.String()
	case pgtype.Numeric:
		if !val.Valid {
			return ""
		}
		dv, err := val.Value()
		if err != nil {
			return ""
		}
		s, _ := dv.(string)
		if d, err := decimal.NewFromString(s); err == nil {
			return d.StringFixed(2)
		}
		return s
	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006-01-02")
	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseID converts a raw identifier to the argument type the store expects.
// ok is false when the identifier cannot exist (malformed UUID or integer).
func parseID(kind IDKind, raw string) (arg any, ok bool) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case IDUUID:
		u := ToPgUUID(raw)
		return u, u.Valid
	default:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, false
		}
		return n, true
	}
}
