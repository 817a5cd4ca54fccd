package cssscale

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// SyntaxError is a recoverable problem found while parsing one stylesheet.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func newSyntaxError(line, col int, format string, args ...any) SyntaxError {
	return SyntaxError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Declaration is one "name: value [!important]" entry.
type Declaration struct {
	Name      string
	Value     []Token // trimmed, without the !important suffix
	Important bool
	Line      int
}

// Rule is either a *StyleRule or an *AtRule.
type Rule interface {
	Pos() int
}

// StyleRule is a qualified rule: selector { declarations }.
type StyleRule struct {
	Selector     string
	Declarations []Declaration
	Line         int
}

// Pos returns the source line the rule starts on.
func (r *StyleRule) Pos() int { return r.Line }

// AtRule is an at-rule with a {} block. Its block holds either nested rules
// (@media, @supports, @keyframes, @layer...) or a flat declaration list
// (@font-face, @page...). Statement at-rules such as @import are dropped by
// the parser since they carry nothing to scale.
type AtRule struct {
	Keyword      string // as written, without "@"
	Prelude      string
	Rules        []Rule
	Declarations []Declaration
	Line         int
}

// Pos returns the source line the rule starts on.
func (r *AtRule) Pos() int { return r.Line }

// Stylesheet is the parsed form of one source file.
type Stylesheet struct {
	Source string
	Rules  []Rule
	Errors []SyntaxError
}

// declarationAtRules hold declaration lists rather than rule lists.
var declarationAtRules = map[string]bool{
	"font-face":           true,
	"page":                true,
	"counter-style":       true,
	"font-palette-values": true,
	"property":            true,
	"viewport":            true,
	"-ms-viewport":        true,
	"top-left":            true,
	"top-center":          true,
	"top-right":           true,
	"bottom-left":         true,
	"bottom-center":       true,
	"bottom-right":        true,
}

// Parser parses comment-free stylesheet text into rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a parser. A nil logger disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse strips comments from text and parses the result. Syntax errors are
// collected on the returned stylesheet; whatever rules could be recognized
// are kept.
func (p *Parser) Parse(text string, source string) *Stylesheet {
	tokens, errs := Tokenize(StripComments(text))

	sheet := &Stylesheet{Source: source}
	sheet.Rules, sheet.Errors = parseRuleList(tokens, true)
	sheet.Errors = append(errs, sheet.Errors...)

	p.log.Debug("Parsed stylesheet",
		zap.String("source", source),
		zap.Int("bytes", len(text)),
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("errors", len(sheet.Errors)))

	return sheet
}

// parseRuleList consumes a list of rules. At the top level CDO/CDC tokens
// are skipped.
func parseRuleList(tokens []Token, topLevel bool) ([]Rule, []SyntaxError) {
	var rules []Rule
	var errs []SyntaxError

	for i := 0; i < len(tokens); {
		t := tokens[i]

		switch {
		case t.IsWhitespace():
			i++

		case topLevel && (t.Is(css.CDOToken) || t.Is(css.CDCToken)):
			i++

		case isStrayCloser(t):
			errs = append(errs, strayCloserError(t))
			i++

		case t.Is(css.AtKeywordToken):
			rule, next, ruleErrs := consumeAtRule(tokens, i)
			errs = append(errs, ruleErrs...)
			if rule != nil {
				rules = append(rules, rule)
			}
			i = next

		default:
			rule, next, err := consumeQualifiedRule(tokens, i)
			if err != nil {
				errs = append(errs, *err)
			} else {
				rules = append(rules, rule)
			}
			i = next
		}
	}

	return rules, errs
}

// consumeAtRule reads an at-rule starting at tokens[start]. Statement
// at-rules (ending in ';' or at end of input) yield a nil rule, and so does
// a prelude holding a stray closer.
func consumeAtRule(tokens []Token, start int) (*AtRule, int, []SyntaxError) {
	head := tokens[start]
	keyword := strings.TrimPrefix(head.Raw, "@")

	for i := start + 1; i < len(tokens); i++ {
		t := tokens[i]
		if t.Is(css.SemicolonToken) {
			return nil, i + 1, nil
		}
		if isStrayCloser(t) {
			return nil, i + 1, []SyntaxError{strayCloserError(t)}
		}
		if t.Kind == KindBlock && t.Open == '{' {
			rule := &AtRule{
				Keyword: keyword,
				Prelude: strings.TrimSpace(Serialize(tokens[start+1 : i])),
				Line:    head.Line,
			}
			return rule, i + 1, fillAtRuleBlock(rule, t.Children)
		}
	}

	return nil, len(tokens), nil
}

// fillAtRuleBlock decides whether the block content is a rule list or a
// declaration list. Unknown at-rules are tried as a rule list first and fall
// back to declarations when no rule comes out of it. Only errors of a block
// kept as a rule list are returned.
func fillAtRuleBlock(rule *AtRule, content []Token) []SyntaxError {
	if declarationAtRules[strings.ToLower(rule.Keyword)] {
		rule.Declarations = parseDeclarationList(content)
		return nil
	}

	rules, errs := parseRuleList(content, false)
	if len(rules) > 0 {
		rule.Rules = rules
		return errs
	}

	rule.Declarations = parseDeclarationList(content)
	return nil
}

// consumeQualifiedRule reads "prelude { block }" starting at tokens[start].
func consumeQualifiedRule(tokens []Token, start int) (*StyleRule, int, *SyntaxError) {
	for i := start; i < len(tokens); i++ {
		t := tokens[i]
		if isStrayCloser(t) {
			err := strayCloserError(t)
			return nil, i + 1, &err
		}
		if t.Kind == KindBlock && t.Open == '{' {
			selector := strings.TrimSpace(Serialize(tokens[start:i]))
			if selector == "" {
				err := newSyntaxError(t.Line, t.Column, "block without a selector")
				return nil, i + 1, &err
			}
			return &StyleRule{
				Selector:     selector,
				Declarations: parseDeclarationList(t.Children),
				Line:         tokens[start].Line,
			}, i + 1, nil
		}
	}

	head := tokens[start]
	err := newSyntaxError(head.Line, head.Column, "rule %q reached end of input without a {} block",
		truncate(strings.TrimSpace(Serialize(tokens[start:])), 40))
	return nil, len(tokens), &err
}

// parseDeclarationList splits content on top-level semicolons and keeps the
// pieces that look like declarations. Anything else is skipped silently.
func parseDeclarationList(content []Token) []Declaration {
	var decls []Declaration

	start := 0
	for i := 0; i <= len(content); i++ {
		if i < len(content) && !content[i].Is(css.SemicolonToken) {
			continue
		}
		if decl, ok := parseDeclaration(content[start:i]); ok {
			decls = append(decls, decl)
		}
		start = i + 1
	}

	return decls
}

// parseDeclaration parses "name : value [!important]".
func parseDeclaration(tokens []Token) (Declaration, bool) {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return Declaration{}, false
	}

	name := tokens[0]
	if !name.Is(css.IdentToken) && !name.Is(css.CustomPropertyNameToken) {
		return Declaration{}, false
	}

	i := 1
	for i < len(tokens) && tokens[i].IsWhitespace() {
		i++
	}
	if i >= len(tokens) || !tokens[i].Is(css.ColonToken) {
		return Declaration{}, false
	}

	value, important := splitImportant(trimWhitespace(tokens[i+1:]))
	for _, t := range value {
		if isStrayCloser(t) {
			return Declaration{}, false
		}
	}

	return Declaration{
		Name:      name.Raw,
		Value:     value,
		Important: important,
		Line:      name.Line,
	}, true
}

// splitImportant removes a trailing "! important" from value.
func splitImportant(value []Token) ([]Token, bool) {
	n := len(value)
	if n < 2 {
		return value, false
	}

	last := value[n-1]
	if !last.Is(css.IdentToken) || !strings.EqualFold(last.Raw, "important") {
		return value, false
	}

	j := n - 2
	for j >= 0 && value[j].IsWhitespace() {
		j--
	}
	if j < 0 || !value[j].Is(css.DelimToken) || value[j].Raw != "!" {
		return value, false
	}

	return trimWhitespace(value[:j]), true
}

// isStrayCloser reports whether t is a ')', ']' or '}' that closes nothing.
// Stray closers never reach the output.
func isStrayCloser(t Token) bool {
	return t.Is(css.RightParenthesisToken) || t.Is(css.RightBracketToken) || t.Is(css.RightBraceToken)
}

func strayCloserError(t Token) SyntaxError {
	return newSyntaxError(t.Line, t.Column, "unexpected %q", t.Raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
