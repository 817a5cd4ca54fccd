package cssscale

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReporterOptions controls how diagnostics are printed.
type ReporterOptions struct {
	ForceColors     bool // Enable color output regardless of the terminal
	PrintLines      bool // Show source lines with issues
	PrintLinterName bool // Show (pxscale) suffix
}

// Reporter handles formatting and outputting syntax warnings
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, opts ReporterOptions) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts.ForceColors),
		printLines:      opts.PrintLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	// Sort issues by file, then line, then column
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Filename != sorted[j].Pos.Filename {
			return sorted[i].Pos.Filename < sorted[j].Pos.Filename
		}
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line < sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column < sorted[j].Pos.Column
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	// Print source lines with caret indicator
	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// CRITICAL: Handles tabs vs spaces correctly for perfect alignment
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Extract the prefix up to the column (0-based index = column - 1)
	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	// Build padding that matches tabs/spaces in the prefix
	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(issues []Issue, truncated int) {
	if len(issues) == 0 && truncated == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	if truncated > 0 {
		fmt.Fprintf(r.w, "%s (%s truncated)\n",
			pluralizeCount(len(issues), "warning", "warnings"),
			pluralizeCount(truncated, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s\n", pluralizeCount(len(issues), "warning", "warnings"))
	}

	// Group by file
	fileCounts := make(map[string]int)
	for _, issue := range issues {
		fileCounts[issue.Pos.Filename]++
	}
	files := make([]string, 0, len(fileCounts))
	for f := range fileCounts {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, f := range files {
		fmt.Fprintf(r.w, "* %s: %d\n", f, fileCounts[f])
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: syntax warnings never fail the run; the rules around them are still processed", r.useColors))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
