package pxscale

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/pxscale/internal/cssscale"
)

// OutputOptions controls report rendering.
type OutputOptions struct {
	ForceColors bool // Force colors in the text report
	MaxIssues   int  // Maximum syntax warnings to print (0 = unlimited)
	PrintLines  bool // Show source lines under syntax warnings
}

// ParseOutputFormat validates a report format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	case "markdown", "md":
		return OutputMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or markdown)", name)
	}
}

// WriteOutput writes the generation report in the specified format
func WriteOutput(w io.Writer, result *GenerateResult, format OutputFormat, opts OutputOptions) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)

	case OutputMarkdown:
		return WriteMarkdown(w, result)

	default:
		useColors := cssscale.ShouldUseColors(opts.ForceColors)

		verbose := cssscale.NewVerboseReporter(w, useColors)
		verbose.PrintReport(result.Report, result.OutPath)
		verbose.PrintWarnings(result.Warnings)

		if len(result.Report.Issues) > 0 {
			issues, truncated := cssscale.LimitIssues(result.Report.Issues, opts.MaxIssues)
			fmt.Fprintln(w, "")
			reporter := cssscale.NewReporter(w, cssscale.ReporterOptions{
				ForceColors:     opts.ForceColors,
				PrintLines:      opts.PrintLines,
				PrintLinterName: true,
			})
			reporter.PrintIssues(issues)
			reporter.PrintSummary(issues, truncated)
		}
		return nil
	}
}
