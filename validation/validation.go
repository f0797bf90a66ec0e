// Package validation collects form validation violations and provides the
// parsing helpers the handlers use for dates and decimal amounts.
package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Date parses an ISO date (2006-01-02), recording a violation when the
// field is malformed or, if required, missing.
func Date(field, value string, required bool, v Violations) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			v[field] = "required"
		}
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		v[field] = "invalid_date"
		return time.Time{}, false
	}
	return t, true
}

// Decimal parses a decimal form value, falling back to def when empty and
// recording a violation when malformed.
func Decimal(field, value, def string, v Violations) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		value = def
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		v[field] = "invalid_number"
		return decimal.Zero
	}
	return d
}
