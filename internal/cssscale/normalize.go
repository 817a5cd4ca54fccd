package cssscale

import "strings"

// StripComments removes every /* ... */ comment from css before it reaches the
// lexer.
//
// Comments may nest: each "/*" increases the depth and each "*/" decreases it
// (never below zero), and an unclosed comment swallows the rest of the input.
// Quotes only open a string literal at depth zero, and a backslash inside a
// string copies the following byte verbatim. Commented bytes are replaced by a
// single space per delimiter and per byte, except newlines which are kept so
// that line numbers reported later still point at the original source.
func StripComments(css string) string {
	var out strings.Builder
	out.Grow(len(css))

	depth := 0
	var quote byte

	for i := 0; i < len(css); i++ {
		ch := css[i]
		var next byte
		if i+1 < len(css) {
			next = css[i+1]
		}

		// Inside a string literal (only reachable at depth zero)
		if depth == 0 && quote != 0 {
			out.WriteByte(ch)
			if ch == '\\' && i+1 < len(css) {
				out.WriteByte(next)
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		if depth == 0 && (ch == '"' || ch == '\'') {
			quote = ch
			out.WriteByte(ch)
			continue
		}

		if ch == '/' && next == '*' {
			depth++
			out.WriteByte(' ')
			i++
			continue
		}

		if depth > 0 && ch == '*' && next == '/' {
			depth--
			out.WriteByte(' ')
			i++
			continue
		}

		if depth > 0 {
			if ch == '\n' {
				out.WriteByte('\n')
			} else {
				out.WriteByte(' ')
			}
			continue
		}

		out.WriteByte(ch)
	}

	return out.String()
}
