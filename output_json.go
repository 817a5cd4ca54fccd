package pxscale

import (
	"encoding/json"
	"io"

	"github.com/yacobolo/pxscale/internal/cssscale"
)

// JSONOutput represents the structured JSON export schema. It carries no
// timestamp, so identical runs export identical documents.
type JSONOutput struct {
	Version    string                            `json:"version"`
	Config     JSONConfig                        `json:"config"`
	Summary    JSONSummary                       `json:"summary"`
	Files      []JSONFile                        `json:"files"`
	Output     JSONWrite                         `json:"output"`
	Issues     []JSONIssue                       `json:"issues"`
	Examples   []cssscale.Example                `json:"examples"`
	Categories map[cssscale.PropertyCategory]int `json:"categories"`
	Warnings   []string                          `json:"warnings"`
}

// JSONConfig echoes the run configuration
type JSONConfig struct {
	Scale             float64 `json:"scale"`
	MinWidth          int     `json:"min_width"`
	DPRThreshold      float64 `json:"dpr_threshold"`
	PointerFine       bool    `json:"pointer_fine"`
	ScaleHairlines    bool    `json:"scale_hairlines"`
	HairlineThreshold float64 `json:"hairline_threshold"`
	KeepNestedMedia   bool    `json:"keep_nested_media"`
	OrderSource       string  `json:"order_source"`
}

// JSONSummary contains the run-wide counters
type JSONSummary struct {
	FilesScanned       int `json:"files_scanned"`
	FilesWithChanges   int `json:"files_with_changes"`
	RulesEmitted       int `json:"rules_emitted"`
	DeclsChanged       int `json:"decls_changed"`
	PxReplaced         int `json:"px_replaced"`
	NestedMediaSkipped int `json:"nested_media_skipped"`
	SyntaxWarnings     int `json:"syntax_warnings"`
}

// JSONFile is one processed stylesheet, in cascade order
type JSONFile = cssscale.FileReport

// JSONWrite describes what happened to the output and the manifest
type JSONWrite struct {
	Path            string `json:"path"`
	Wrote           bool   `json:"wrote"`
	Backup          string `json:"backup,omitempty"`
	ManifestPatched bool   `json:"manifest_patched"`
	ManifestBackup  string `json:"manifest_backup,omitempty"`
}

// JSONIssue represents a single syntax warning
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the generation result as JSON
func WriteJSON(w io.Writer, result *GenerateResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts GenerateResult to JSONOutput
func buildJSONOutput(result *GenerateResult) JSONOutput {
	run := result.Report

	issues := make([]JSONIssue, len(run.Issues))
	for i, issue := range run.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	files := run.PerFile
	if files == nil {
		files = []cssscale.FileReport{}
	}
	examples := run.Examples
	if examples == nil {
		examples = []cssscale.Example{}
	}
	categories := run.Categories
	if categories == nil {
		categories = map[cssscale.PropertyCategory]int{}
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return JSONOutput{
		Version: "1.0",
		Config: JSONConfig{
			Scale:             run.Scale,
			MinWidth:          run.MinWidth,
			DPRThreshold:      run.DPRThreshold,
			PointerFine:       run.PointerFine,
			ScaleHairlines:    run.ScaleHairlines,
			HairlineThreshold: run.HairlineThreshold,
			KeepNestedMedia:   run.KeepNestedMedia,
			OrderSource:       run.OrderSource,
		},
		Summary: JSONSummary{
			FilesScanned:       run.FilesScanned,
			FilesWithChanges:   run.FilesWithChanges,
			RulesEmitted:       run.RulesEmitted,
			DeclsChanged:       run.TotalDeclsChanged,
			PxReplaced:         run.TotalPxReplaced,
			NestedMediaSkipped: run.NestedMediaSkipped,
			SyntaxWarnings:     len(run.Issues),
		},
		Files: files,
		Output: JSONWrite{
			Path:            result.OutPath,
			Wrote:           result.Wrote,
			Backup:          result.BackupPath,
			ManifestPatched: result.ManifestPatched,
			ManifestBackup:  result.ManifestBackup,
		},
		Issues:     issues,
		Examples:   examples,
		Categories: categories,
		Warnings:   warnings,
	}
}
