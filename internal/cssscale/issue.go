package cssscale

import (
	"fmt"
	"strings"
)

// LinterName tags every issue reported by this tool.
const LinterName = "pxscale"

// Issue represents a single diagnostic in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "pxscale"
	Text        string   `json:"Text"`        // "rule \".a\" reached end of input without a {} block"
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "assets/css/main.css"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// IssueSyntax is the message format of a stylesheet syntax warning.
const IssueSyntax = "CSS syntax: %s"

// SyntaxIssues converts the syntax errors of one stylesheet into warnings.
// source is the original file text, used to attach the offending line.
func SyntaxIssues(filename, source string, errs []SyntaxError) []Issue {
	if len(errs) == 0 {
		return nil
	}

	lines := strings.Split(source, "\n")
	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		issue := Issue{
			FromLinter: LinterName,
			Text:       fmt.Sprintf(IssueSyntax, e.Message),
			Severity:   SeverityWarning,
			Pos: IssuePos{
				Filename: filename,
				Line:     e.Line,
				Column:   e.Column,
			},
		}
		if e.Line >= 1 && e.Line <= len(lines) {
			issue.SourceLines = []string{strings.TrimRight(lines[e.Line-1], "\r")}
		}
		issues = append(issues, issue)
	}

	return issues
}

// LimitIssues keeps at most limit issues (0 = unlimited) and returns how many
// were dropped.
func LimitIssues(issues []Issue, limit int) ([]Issue, int) {
	if limit <= 0 || len(issues) <= limit {
		return issues, 0
	}
	return issues[:limit], len(issues) - limit
}
