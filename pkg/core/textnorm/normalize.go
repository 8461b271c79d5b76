// Package textnorm normalizes free-text product descriptors before keyword
// matching. Marketplace exports mix casing, punctuation and stray whitespace
// ("Arkanda Kotak-Kokak Mul (Paket isi 4)\t"), so every string that enters
// the matcher goes through Normalize first.
package textnorm

import "strings"

// Normalize canonicalizes a product descriptor:
//  1. tabs and newlines become single spaces
//  2. every rune that is not an ASCII letter, digit or whitespace is dropped
//     (parentheses, hyphens and slashes delimit package annotations in the
//     source data; "(isi 3)" must survive as "isi 3")
//  3. whitespace runs collapse to one space, leading/trailing trimmed
//  4. lowercased
//
// Normalize is total and idempotent: it never fails, and
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			// Dropped. Includes unicode punctuation and non-ASCII letters.
		}
	}

	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
