package cssscale

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// tokenizer turns the flat lexer stream into a tree of component values:
// functions and bracketed blocks collect everything up to their matching
// closing token.
type tokenizer struct {
	lexer  *css.Lexer
	line   int
	column int
	errs   []SyntaxError
}

// Tokenize lexes css into a component value tree. Bad strings, bad urls and
// blocks left open at end of input are reported as syntax errors; the tokens
// are still returned so the caller can keep going.
func Tokenize(text string) ([]Token, []SyntaxError) {
	tz := &tokenizer{
		lexer:  css.NewLexer(parse.NewInputString(text)),
		line:   1,
		column: 1,
	}
	tokens, _ := tz.consumeUntil(0)
	return tokens, tz.errs
}

// next reads one lexer token and advances the line/column cursor past it.
func (tz *tokenizer) next() (css.TokenType, string, int, int) {
	tt, data := tz.lexer.Next()
	text := string(data)
	line, col := tz.line, tz.column

	if n := strings.Count(text, "\n"); n > 0 {
		tz.line += n
		tz.column = len(text) - strings.LastIndexByte(text, '\n')
	} else {
		tz.column += len(text)
	}

	return tt, text, line, col
}

// consumeUntil collects tokens until the closer byte is seen (0 means end of
// input). It reports whether the closer was found.
func (tz *tokenizer) consumeUntil(closer byte) ([]Token, bool) {
	var tokens []Token

	for {
		tt, text, line, col := tz.next()

		switch tt {
		case css.ErrorToken:
			// The lexer only stops at end of input
			return tokens, closer == 0

		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if closer != 0 && text[0] == closer {
				return tokens, true
			}
			// A stray closer is an ordinary token
			tokens = append(tokens, Token{Kind: KindOther, Type: tt, Raw: text, Line: line, Column: col})

		case css.FunctionToken:
			args, closed := tz.consumeUntil(')')
			if !closed {
				tz.errorf(line, col, "function %s not closed before end of input", text)
			}
			tokens = append(tokens, Token{
				Kind:     KindFunction,
				Type:     tt,
				Name:     strings.TrimSuffix(text, "("),
				Children: args,
				Line:     line,
				Column:   col,
			})

		case css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			open := text[0]
			content, closed := tz.consumeUntil(closers[open])
			if !closed {
				tz.errorf(line, col, "block %q not closed before end of input", string(open))
			}
			tokens = append(tokens, Token{
				Kind:     KindBlock,
				Type:     tt,
				Open:     open,
				Children: content,
				Line:     line,
				Column:   col,
			})

		case css.DimensionToken:
			tokens = append(tokens, newDimension(text, line, col))

		case css.StringToken, css.BadStringToken:
			if tt == css.BadStringToken {
				tz.errorf(line, col, "unterminated string")
			}
			tokens = append(tokens, Token{Kind: KindString, Type: tt, Raw: text, Line: line, Column: col})

		case css.URLToken, css.BadURLToken:
			if tt == css.BadURLToken {
				tz.errorf(line, col, "malformed url()")
			}
			tokens = append(tokens, Token{Kind: KindURL, Type: tt, Raw: text, Line: line, Column: col})

		default:
			tokens = append(tokens, Token{Kind: KindOther, Type: tt, Raw: text, Line: line, Column: col})
		}
	}
}

func (tz *tokenizer) errorf(line, col int, format string, args ...any) {
	tz.errs = append(tz.errs, newSyntaxError(line, col, format, args...))
}

// newDimension splits a dimension lexeme into number and unit. Lexemes whose
// number does not parse to a finite float stay opaque.
func newDimension(text string, line, col int) Token {
	number, unit := splitDimension(text)
	value, err := strconv.ParseFloat(number, 64)
	if number == "" || unit == "" || err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return Token{Kind: KindOther, Type: css.DimensionToken, Raw: text, Line: line, Column: col}
	}

	return Token{
		Kind:   KindDimension,
		Type:   css.DimensionToken,
		Value:  value,
		Number: number,
		Unit:   unit,
		Line:   line,
		Column: col,
	}
}

// splitDimension separates "-1.5e2px" into "-1.5e2" and "px".
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	// Exponent only when digits follow, otherwise "1em" would lose its unit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
