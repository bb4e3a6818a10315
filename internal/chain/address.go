package chain

import "strings"

// IsAddress reports whether s looks like a 20-byte 0x-hex account
// address.
func IsAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, r := range s[2:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeAddress lower-cases an address so ledger keys compare
// consistently regardless of checksum casing.
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}
