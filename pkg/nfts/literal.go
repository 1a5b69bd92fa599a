package nfts

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Quote renders s as a GraphQL string literal. It reports false when s cannot be
// represented safely (invalid UTF-8), in which case the caller must omit the clause.
func Quote(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String(), true
}

// QuoteList quotes every value and joins them with sep. Values that cannot be
// quoted are dropped; false is returned when nothing is left to list.
func QuoteList(values []string, sep string) (string, bool) {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		if q, ok := Quote(v); ok {
			quoted = append(quoted, q)
		}
	}
	if len(quoted) == 0 {
		return "", false
	}
	return strings.Join(quoted, sep), true
}
