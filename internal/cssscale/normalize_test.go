package cssscale

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no comments",
			input: ".a { margin: 10px; }",
			want:  ".a { margin: 10px; }",
		},
		{
			name:  "simple comment",
			input: "a /* x */ b",
			want:  "a" + strings.Repeat(" ", 7) + "b",
		},
		{
			name:  "nested comment",
			input: "a/* 1 /* 2 */ 3 */b",
			want:  "a" + strings.Repeat(" ", 13) + "b",
		},
		{
			name:  "newlines kept",
			input: "a/*\n\n*/b",
			want:  "a \n\n b",
		},
		{
			name:  "unclosed comment swallows the rest",
			input: "a /* rest",
			want:  "a" + strings.Repeat(" ", 7),
		},
		{
			name:  "comment opener inside string",
			input: `.a::after { content: "/* not */"; }`,
			want:  `.a::after { content: "/* not */"; }`,
		},
		{
			name:  "escaped quote inside string",
			input: `.a { content: "a\"/*"; }`,
			want:  `.a { content: "a\"/*"; }`,
		},
		{
			name:  "quote inside comment does not open a string",
			input: "/* it's */ .a{}",
			want:  strings.Repeat(" ", 9) + ".a{}",
		},
		{
			name:  "stray closer at depth zero",
			input: "a */ b",
			want:  "a */ b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripComments(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.Count(tt.input, "\n"), strings.Count(got, "\n"))
		})
	}
}
