package pxscale

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yacobolo/pxscale/internal/cssscale"
)

var (
	// ErrStylesheetDirMissing is returned before any processing when the
	// stylesheet directory does not exist.
	ErrStylesheetDirMissing = errors.New("stylesheet directory does not exist")

	// ErrOutputStale is returned by Check when the generated content differs
	// from the file on disk.
	ErrOutputStale = errors.New("generated stylesheet is out of date")
)

// Config holds generator configuration. Relative paths are resolved against Root.
type Config struct {
	Root     string   // "."
	CSSDir   string   // "assets/css"
	Out      string   // "assets/css/retina-80.css"
	Includes []string // ["**/*.css"], relative to CSSDir

	Scale             float64 // Factor applied to every px value (default: 0.8)
	MinWidth          int     // Activation min-width in px (default: 961)
	DPRThreshold      float64 // Device pixel ratio threshold (default: 2)
	PointerFine       bool    // Add (hover: hover) and (pointer: fine) (default: true)
	ScaleHairlines    bool    // Also scale values <= HairlineThreshold
	HairlineThreshold float64 // default: 1.0
	KeepNestedMedia   bool    // Disable the mobile-only nested @media filter

	Manifest          string // "index.html"
	OrderFromManifest bool   // Order stylesheets by the manifest's <link> tags
	OnlyLinked        bool   // Process only manifest-linked stylesheets
	RespectGitignore  bool   // Skip discovered stylesheets matched by Root/.gitignore

	DryRun        bool // Never write, wins over Apply
	Apply         bool // Write the output when it changed
	Backup        bool // Keep <file>.bak of overwritten files
	PatchManifest bool // Insert the <link> into the manifest (requires Apply)
	Href          string
	LinkMedia     bool // Put the activation query on the <link> media attribute
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Root:              ".",
		CSSDir:            "assets/css",
		Out:               "assets/css/retina-80.css",
		Includes:          []string{"**/*.css"},
		Scale:             0.8,
		MinWidth:          961,
		DPRThreshold:      2.0,
		PointerFine:       true,
		HairlineThreshold: cssscale.DefaultHairlineThreshold,
		Manifest:          "index.html",
		Href:              "assets/css/retina-80.css",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Scale <= 0:
		return fmt.Errorf("scale must be > 0, got %g", c.Scale)
	case c.MinWidth < 0:
		return fmt.Errorf("min-width must be >= 0, got %d", c.MinWidth)
	case c.DPRThreshold <= 0:
		return fmt.Errorf("dpr must be > 0, got %g", c.DPRThreshold)
	case c.HairlineThreshold < 0:
		return fmt.Errorf("hairline-threshold must be >= 0, got %g", c.HairlineThreshold)
	}
	return nil
}

// resolve joins a configured path onto Root unless it is absolute.
func (c Config) resolve(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	root := c.Root
	if root == "" {
		root = "."
	}
	return filepath.Join(root, path)
}

// rel returns path relative to Root with forward slashes, falling back to
// path itself.
func (c Config) rel(path string) string {
	root := c.Root
	if root == "" {
		root = "."
	}
	absRoot, err1 := filepath.Abs(root)
	absPath, err2 := filepath.Abs(path)
	if err1 != nil || err2 != nil {
		return filepath.ToSlash(path)
	}
	r, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

// GenerateResult contains the generated document and the run statistics
type GenerateResult struct {
	Content string              // The full generated stylesheet
	Report  *cssscale.RunReport // Configuration echo and counters
	Files   []string            // Processed stylesheets, root-relative, in cascade order
	OutPath string              // Root-relative output path

	Wrote      bool   // The output file was (re)written
	BackupPath string // Backup of the previous output, if any

	ManifestPatched bool
	ManifestBackup  string

	Warnings []string // Non-positional warnings (unreadable files, missing manifest)
}

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputText is the lipgloss-styled terminal report (default)
	OutputText OutputFormat = "text"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
