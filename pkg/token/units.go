package token

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Token metadata for the settlement currency. All on-ledger amounts are
// integer units at this scale.
const (
	Name     = "PayPal USD"
	Symbol   = "PYUSD"
	Decimals = 6
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseUnits converts a human decimal string into integer token units.
// The string must be a non-negative decimal with at most Decimals
// fractional digits.
func ParseUnits(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}

	units := d.Shift(Decimals)
	if !units.IsInteger() {
		return 0, ErrInvalidAmount
	}
	big := units.BigInt()
	if !big.IsInt64() {
		return 0, ErrInvalidAmount
	}
	return big.Int64(), nil
}

// FormatUnits renders integer token units as a decimal string at the
// token's fixed scale. Display trimming belongs to the format package.
func FormatUnits(units int64) string {
	return decimal.New(units, -Decimals).StringFixed(Decimals)
}

// SanitizeAmountInput strips free-text amount input down to digits and
// a single decimal point. Extra decimal points collapse into the
// fractional part, which is truncated to the token's scale. The result
// is stable under repeated application.
func SanitizeAmountInput(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	parts := strings.Split(cleaned, ".")
	if len(parts) > 2 {
		cleaned = parts[0] + "." + strings.Join(parts[1:], "")
		parts = []string{parts[0], strings.Join(parts[1:], "")}
	}
	if len(parts) == 2 && len(parts[1]) > Decimals {
		cleaned = parts[0] + "." + parts[1][:Decimals]
	}
	return cleaned
}
