package cssscale

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// VerboseReporter prints the human-readable run report.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintReport writes every section of the report in display order.
func (r *VerboseReporter) PrintReport(run *RunReport, outPath string) {
	r.PrintConfiguration(run, outPath)
	r.PrintStatistics(run)
	r.PrintTouchedFiles(run)
	r.PrintCategories(run)
	r.PrintExamples(run)
}

// PrintConfiguration echoes the settings the run used.
func (r *VerboseReporter) PrintConfiguration(run *RunReport, outPath string) {
	r.header(StyleCyan, "Configuration")

	hairlines := "skipped"
	if run.ScaleHairlines {
		hairlines = "scaled"
	}
	nested := "dropped below min-width"
	if run.KeepNestedMedia {
		nested = "kept"
	}

	fmt.Fprintf(r.w, "Output:          %s\n", outPath)
	fmt.Fprintf(r.w, "Scale:           %s\n", FormatNumber(run.Scale))
	fmt.Fprintf(r.w, "Min width:       %dpx\n", run.MinWidth)
	fmt.Fprintf(r.w, "DPR threshold:   %s\n", FormatNumber(run.DPRThreshold))
	fmt.Fprintf(r.w, "Pointer fine:    %t\n", run.PointerFine)
	fmt.Fprintf(r.w, "Hairlines:       %s (<= %spx)\n", hairlines, FormatNumber(run.HairlineThreshold))
	fmt.Fprintf(r.w, "Nested @media:   %s\n", nested)
	fmt.Fprintf(r.w, "Order source:    %s\n", run.OrderSource)
}

// PrintStatistics outputs the run totals
func (r *VerboseReporter) PrintStatistics(run *RunReport) {
	r.header(StyleCyan, "Statistics")

	fmt.Fprintf(r.w, "Files scanned:         %d\n", run.FilesScanned)
	fmt.Fprintf(r.w, "Files with changes:    %d\n", run.FilesWithChanges)
	fmt.Fprintf(r.w, "Declarations changed:  %d\n", run.TotalDeclsChanged)
	fmt.Fprintf(r.w, "px values replaced:    %d\n", run.TotalPxReplaced)
	fmt.Fprintf(r.w, "Rules emitted:         %d\n", run.RulesEmitted)
	fmt.Fprintf(r.w, "Nested @media skipped: %d\n", run.NestedMediaSkipped)
}

// PrintTouchedFiles lists the files that contributed rules.
func (r *VerboseReporter) PrintTouchedFiles(run *RunReport) {
	touched := run.TouchedFiles()
	if len(touched) == 0 {
		return
	}

	r.header(StyleCyan, "Touched files")
	for _, f := range touched {
		fmt.Fprintf(r.w, "• %s: %s, %s\n", f.Path,
			pluralizeCount(f.DeclsChanged, "declaration", "declarations"),
			pluralizeCount(f.PxReplaced, "px value", "px values"))
	}
}

// PrintCategories shows changed declarations grouped by property category.
func (r *VerboseReporter) PrintCategories(run *RunReport) {
	cats := SortedCategories(run.Categories)
	if len(cats) == 0 {
		return
	}

	r.header(StyleCyan, "By category")
	for _, c := range cats {
		fmt.Fprintf(r.w, "%-12s %d\n", string(c.Category)+":", c.Count)
	}
}

// PrintExamples shows the captured before/after samples.
func (r *VerboseReporter) PrintExamples(run *RunReport) {
	if len(run.Examples) == 0 {
		return
	}

	r.header(StyleGreen, "Examples")
	arrow := RenderStyle(StyleGray, "→", r.useColors)
	for i, ex := range run.Examples {
		fmt.Fprintf(r.w, "%2d. %s  %s { %s: %s %s %s }\n",
			i+1, ex.File, ex.Selector, ex.Property, ex.Before, arrow, ex.After)
	}
}

// PrintWarnings shows warnings not tied to a source position.
func (r *VerboseReporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	r.header(StyleYellow, "Warnings")
	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func (r *VerboseReporter) header(style lipgloss.Style, title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(style, title, r.useColors))
	fmt.Fprintln(r.w, strings.Repeat("-", len(title)+2))
}
