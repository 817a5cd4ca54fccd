package cssscale

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// TokenKind tags the variant held by a Token.
type TokenKind uint8

// Token kinds. Everything the scaler does not need to look inside is KindOther.
const (
	KindOther     TokenKind = iota // identifiers, punctuation, whitespace, numbers...
	KindDimension                  // 12px, -0.5em
	KindFunction                   // name( args )
	KindBlock                      // ( ), [ ], { }
	KindString                     // "..." or '...'
	KindURL                        // url(...) lexed as a single token
)

// String returns the kind name used in diagnostics.
func (k TokenKind) String() string {
	switch k {
	case KindDimension:
		return "dimension"
	case KindFunction:
		return "function"
	case KindBlock:
		return "block"
	case KindString:
		return "string"
	case KindURL:
		return "url"
	default:
		return "other"
	}
}

// Token is one component value of a stylesheet. Functions and blocks own
// their nested tokens, so a declaration value is a tree.
type Token struct {
	Kind TokenKind
	Type css.TokenType // lexer type of leaf tokens

	Raw string // leaf text exactly as written (other, string, url)

	// Dimension
	Value  float64
	Number string // numeric part as written, or freshly formatted after scaling
	Unit   string // unit as written ("px", "PX", "em")

	// Function
	Name string

	// Block
	Open byte // '(', '[' or '{'

	Children []Token // function arguments or block content

	Line   int
	Column int
}

// closers maps a block opener to its closing character.
var closers = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// IsWhitespace reports whether t is a whitespace (or leftover comment) token.
func (t Token) IsWhitespace() bool {
	return t.Kind == KindOther && (t.Type == css.WhitespaceToken || t.Type == css.CommentToken)
}

// Is reports whether t is a leaf token of the given lexer type.
func (t Token) Is(tt css.TokenType) bool {
	return t.Kind == KindOther && t.Type == tt
}

// String serializes t back to CSS text.
func (t Token) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Token) writeTo(sb *strings.Builder) {
	switch t.Kind {
	case KindDimension:
		sb.WriteString(t.Number)
		sb.WriteString(t.Unit)
	case KindFunction:
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		for _, c := range t.Children {
			c.writeTo(sb)
		}
		sb.WriteByte(')')
	case KindBlock:
		sb.WriteByte(t.Open)
		for _, c := range t.Children {
			c.writeTo(sb)
		}
		sb.WriteByte(closers[t.Open])
	default:
		sb.WriteString(t.Raw)
	}
}

// Serialize joins a token sequence back into CSS text.
func Serialize(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		t.writeTo(&sb)
	}
	return sb.String()
}

// trimWhitespace drops leading and trailing whitespace tokens.
func trimWhitespace(tokens []Token) []Token {
	start, end := 0, len(tokens)
	for start < end && tokens[start].IsWhitespace() {
		start++
	}
	for end > start && tokens[end-1].IsWhitespace() {
		end--
	}
	return tokens[start:end]
}

// collapseWhitespace returns a copy of tokens with every whitespace token,
// nested ones included, rendered as a single space.
func collapseWhitespace(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		switch {
		case t.IsWhitespace():
			t.Raw = " "
		case t.Kind == KindFunction || t.Kind == KindBlock:
			t.Children = collapseWhitespace(t.Children)
		}
		out[i] = t
	}
	return out
}
