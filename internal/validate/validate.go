// Package validate holds the pure per-field validation rules applied before
// any persistence write. Every failure is an apperr.Validation carrying the
// client-facing message; no function here performs I/O.
package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/financialsite/server/internal/apperr"
	"github.com/shopspring/decimal"
)

var (
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Required trims s and fails with msg when nothing remains. The trimmed
// value is what gets persisted.
func Required(s, msg string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", apperr.Validation(msg)
	}
	return trimmed, nil
}

// OneOf fails with msg unless v is one of allowed.
func OneOf(v, msg string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return apperr.Validation(msg)
}

// Money parses s as a decimal amount and returns it normalized to exactly
// two decimal places. The value must be strictly positive.
func Money(s, msg string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.LessThanOrEqual(decimal.Zero) {
		return "", apperr.Validation(msg)
	}
	return d.StringFixed(2), nil
}

// MoneyAny parses s as a decimal of any sign and normalizes it to two
// decimal places. Used for balance fields where negative is meaningful.
func MoneyAny(s, msg string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", apperr.Validation(msg)
	}
	return d.StringFixed(2), nil
}

// MoneyNonNegative is Money but allowing zero, for balance-like fields.
func MoneyNonNegative(s, msg string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return "", apperr.Validation(msg)
	}
	return d.StringFixed(2), nil
}

// HexColor validates an optional #RRGGBB color. Empty is allowed and maps
// to no color.
func HexColor(s string) error {
	if s == "" {
		return nil
	}
	if !hexColorRe.MatchString(s) {
		return apperr.Validation("Color must be a valid hex color (#RRGGBB)")
	}
	return nil
}

// Email validates the email format.
func Email(s string) error {
	if !emailRe.MatchString(s) {
		return apperr.Validation("Invalid email format")
	}
	return nil
}

// Date parses s as a calendar date, accepting 2006-01-02 and RFC3339.
func Date(s, msg string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperr.Validation(msg)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation(msg)
}

// FutureDate parses s and requires it to be strictly after the current
// instant. Used for goal deadlines on create and on every deadline update.
func FutureDate(s, requiredMsg, futureMsg string) (time.Time, error) {
	t, err := Date(s, requiredMsg)
	if err != nil {
		return time.Time{}, err
	}
	if !t.After(time.Now()) {
		return time.Time{}, apperr.Validation(futureMsg)
	}
	return t, nil
}

// AmountGTE reports whether a >= b for two already-normalized 2dp amounts.
// Unparseable input counts as false; callers normalize first.
func AmountGTE(a, b string) bool {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA != nil || errB != nil {
		return false
	}
	return da.GreaterThanOrEqual(db)
}
