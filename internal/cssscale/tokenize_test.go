package cssscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dimensions collects every dimension token of a tree in source order.
func dimensions(tokens []Token) []Token {
	var out []Token
	for _, t := range tokens {
		switch t.Kind {
		case KindDimension:
			out = append(out, t)
		case KindFunction, KindBlock:
			out = append(out, dimensions(t.Children)...)
		}
	}
	return out
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		".a { margin: 10px 2em; }",
		"margin:  20px\t10px",
		"transform: translate(calc(10px + 5px), -3px)",
		`background: url(icon-10px.png) no-repeat, url("10px.png")`,
		"grid-template-columns: [full-start] 10px [content-start] 1fr",
		"@media (max-width: 600px) { .a { gap: 4px } }",
		"width: 1e3px; height: .5px",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			tokens, errs := Tokenize(in)
			assert.Empty(t, errs)
			assert.Equal(t, in, Serialize(tokens))
		})
	}
}

func TestTokenize_Dimensions(t *testing.T) {
	tokens, errs := Tokenize("margin: 10px 5PX -2.5em")
	require.Empty(t, errs)

	dims := dimensions(tokens)
	require.Len(t, dims, 3)

	assert.Equal(t, 10.0, dims[0].Value)
	assert.Equal(t, "10", dims[0].Number)
	assert.Equal(t, "px", dims[0].Unit)

	assert.Equal(t, 5.0, dims[1].Value)
	assert.Equal(t, "PX", dims[1].Unit)

	assert.Equal(t, -2.5, dims[2].Value)
	assert.Equal(t, "em", dims[2].Unit)
}

func TestTokenize_Nesting(t *testing.T) {
	tokens, errs := Tokenize("translate(calc(10px + 5px))")
	require.Empty(t, errs)
	require.Len(t, tokens, 1)

	fn := tokens[0]
	assert.Equal(t, KindFunction, fn.Kind)
	assert.Equal(t, "translate", fn.Name)
	require.Len(t, fn.Children, 1)

	inner := fn.Children[0]
	assert.Equal(t, KindFunction, inner.Kind)
	assert.Equal(t, "calc", inner.Name)
	assert.Len(t, dimensions(inner.Children), 2)
}

func TestTokenize_StringsAndURLs(t *testing.T) {
	tokens, errs := Tokenize(`"10px" url(icon-10px.png)`)
	require.Empty(t, errs)

	var kinds []TokenKind
	for _, tok := range tokens {
		if !tok.IsWhitespace() {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []TokenKind{KindString, KindURL}, kinds)
	assert.Empty(t, dimensions(tokens))
}

func TestTokenize_Positions(t *testing.T) {
	tokens, errs := Tokenize(".a {\n  margin: 10px;\n}")
	require.Empty(t, errs)

	dims := dimensions(tokens)
	require.Len(t, dims, 1)
	assert.Equal(t, 2, dims[0].Line)
	assert.Equal(t, 11, dims[0].Column)
}

func TestTokenize_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unclosed function", "calc(10px", "function calc( not closed before end of input"},
		{"unclosed block", ".a { margin: 1px", `block "{" not closed before end of input`},
		{"unterminated string", "content: \"abc\n", "unterminated string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Tokenize(tt.input)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestSplitDimension(t *testing.T) {
	tests := []struct {
		in     string
		number string
		unit   string
	}{
		{"10px", "10", "px"},
		{"-1.5e2px", "-1.5e2", "px"},
		{"1em", "1", "em"},
		{"1e3px", "1e3", "px"},
		{".5px", ".5", "px"},
		{"+2px", "+2", "px"},
		{"2e-1px", "2e-1", "px"},
		{"3.px", "3", ".px"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			number, unit := splitDimension(tt.in)
			assert.Equal(t, tt.number, number)
			assert.Equal(t, tt.unit, unit)
		})
	}
}
