package pxscale

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/pxscale/internal/cssscale"
)

// WriteMarkdown writes a shareable Markdown report
func WriteMarkdown(w io.Writer, result *GenerateResult) error {
	run := result.Report
	var sb strings.Builder

	sb.WriteString("# Retina Override Report\n\n")

	sb.WriteString("## Configuration\n\n")
	sb.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| **Output** | `%s` |\n", result.OutPath)
	fmt.Fprintf(&sb, "| **Scale** | %s |\n", cssscale.FormatNumber(run.Scale))
	fmt.Fprintf(&sb, "| **Min width** | %dpx |\n", run.MinWidth)
	fmt.Fprintf(&sb, "| **DPR threshold** | %s |\n", cssscale.FormatNumber(run.DPRThreshold))
	fmt.Fprintf(&sb, "| **Pointer fine** | %t |\n", run.PointerFine)
	fmt.Fprintf(&sb, "| **Scale hairlines** | %t (<= %spx) |\n", run.ScaleHairlines, cssscale.FormatNumber(run.HairlineThreshold))
	fmt.Fprintf(&sb, "| **Keep nested @media** | %t |\n", run.KeepNestedMedia)
	fmt.Fprintf(&sb, "| **Order source** | %s |\n\n", run.OrderSource)

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&sb, "| **Files scanned** | %d |\n", run.FilesScanned)
	fmt.Fprintf(&sb, "| **Files with changes** | %d |\n", run.FilesWithChanges)
	fmt.Fprintf(&sb, "| **Rules emitted** | %d |\n", run.RulesEmitted)
	fmt.Fprintf(&sb, "| **Declarations changed** | %d |\n", run.TotalDeclsChanged)
	fmt.Fprintf(&sb, "| **px values replaced** | %d |\n", run.TotalPxReplaced)
	fmt.Fprintf(&sb, "| **Nested @media skipped** | %d |\n", run.NestedMediaSkipped)
	fmt.Fprintf(&sb, "| **Syntax warnings** | %d |\n\n", len(run.Issues))

	if touched := run.TouchedFiles(); len(touched) > 0 {
		sb.WriteString("## Touched Files\n\n")
		sb.WriteString("| File | Declarations | px values | Rules |\n|---|---|---|---|\n")
		for _, f := range touched {
			fmt.Fprintf(&sb, "| `%s` | %d | %d | %d |\n", f.Path, f.DeclsChanged, f.PxReplaced, f.RulesEmitted)
		}
		sb.WriteString("\n")
	}

	if cats := cssscale.SortedCategories(run.Categories); len(cats) > 0 {
		sb.WriteString("## By Category\n\n")
		sb.WriteString("| Category | Declarations |\n|---|---|\n")
		for _, c := range cats {
			fmt.Fprintf(&sb, "| %s | %d |\n", c.Category, c.Count)
		}
		sb.WriteString("\n")
	}

	if len(run.Examples) > 0 {
		sb.WriteString("## Examples\n\n")
		sb.WriteString("| File | Selector | Property | Before | After |\n|---|---|---|---|---|\n")
		for _, ex := range run.Examples {
			fmt.Fprintf(&sb, "| `%s` | `%s` | `%s` | `%s` | `%s` |\n",
				ex.File, escapeCell(ex.Selector), ex.Property, ex.Before, ex.After)
		}
		sb.WriteString("\n")
	}

	if len(run.Issues) > 0 || len(result.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, issue := range run.Issues {
			fmt.Fprintf(&sb, "- `%s:%d:%d` %s\n", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column, issue.Text)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(&sb, "- %s\n", warning)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n*Generated by pxscale*\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeCell keeps selector lists from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
