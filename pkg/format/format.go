// Package format holds the display formatting used by API responses
// and documents. Everything here is deterministic and locale-fixed
// (en-US); functions that involve the clock take it as a parameter.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"chainvoice/pkg/token"
)

// Currency renders a decimal amount string with thousands grouping and
// between 2 and 6 fractional digits, optionally suffixed with the
// token symbol. Unparseable input renders as "0.00".
func Currency(amount string, withSymbol bool) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		if withSymbol {
			return "0.00 " + token.Symbol
		}
		return "0.00"
	}

	fixed := d.StringFixed(token.Decimals)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	// Trim trailing zeros but keep at least two fractional digits.
	fracPart = strings.TrimRight(fracPart, "0")
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	formatted := groupThousands(intPart) + "." + fracPart
	if neg {
		formatted = "-" + formatted
	}
	if withSymbol {
		return formatted + " " + token.Symbol
	}
	return formatted
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// DisplayDate renders a long-form month/day/year date.
func DisplayDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// RelativeTime renders the offset between t and now using the most
// significant non-zero unit of days, hours or minutes, framed with
// "in" for the future and "ago" for the past. Offsets under a minute
// render as "just now".
func RelativeTime(t, now time.Time) string {
	diff := t.Sub(now)
	future := diff > 0
	if diff < 0 {
		diff = -diff
	}

	var n int64
	var unit string
	switch {
	case diff >= 24*time.Hour:
		n = int64(diff / (24 * time.Hour))
		unit = "day"
	case diff >= time.Hour:
		n = int64(diff / time.Hour)
		unit = "hour"
	case diff >= time.Minute:
		n = int64(diff / time.Minute)
		unit = "minute"
	default:
		return "just now"
	}

	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// TruncateIdentifier shortens an opaque identifier to its first 6 and
// last 4 characters. Empty input stays empty; identifiers too short to
// truncate are returned unchanged.
func TruncateIdentifier(id string) string {
	if id == "" {
		return ""
	}
	if len(id) <= 10 {
		return id
	}
	return id[:6] + "..." + id[len(id)-4:]
}

// TimeRemaining renders the time left until due as the largest
// non-zero unit of days, hours or minutes. At or past due it renders
// "Expired".
func TimeRemaining(due, now time.Time) string {
	diff := int64(due.Sub(now) / time.Second)
	if diff <= 0 {
		return "Expired"
	}

	days := diff / (24 * 60 * 60)
	hours := (diff % (24 * 60 * 60)) / (60 * 60)
	minutes := (diff % (60 * 60)) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d %s remaining", days, plural("day", days))
	case hours > 0:
		return fmt.Sprintf("%d %s remaining", hours, plural("hour", hours))
	default:
		return fmt.Sprintf("%d %s remaining", minutes, plural("minute", minutes))
	}
}

func plural(unit string, n int64) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
