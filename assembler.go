package pxscale

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yacobolo/pxscale/internal/cssscale"
)

// Section is the emitted body of one source stylesheet.
type Section struct {
	Source string // Root-relative path with forward slashes
	Body   string
}

// BuildMediaQuery returns the activation query: three equivalent density
// branches, each repeating the width gate, joined for readability.
func BuildMediaQuery(minWidth int, pointerFine bool, dpr float64) string {
	base := fmt.Sprintf("(min-width: %dpx)", minWidth)
	if pointerFine {
		base += " and (hover: hover) and (pointer: fine)"
	}

	branches := []string{
		fmt.Sprintf("%s and (min-resolution: %gdppx)", base, dpr),
		fmt.Sprintf("%s and (-webkit-min-device-pixel-ratio: %g)", base, dpr),
		fmt.Sprintf("%s and (min-resolution: %gdpi)", base, dpr*96),
	}
	return strings.Join(branches, ",\n       ")
}

// AssembleDocument builds the generated stylesheet. The header depends only
// on the configuration, so unchanged inputs give byte-identical output.
func AssembleDocument(config Config, sections []Section) string {
	name := filepath.Base(config.Out)
	scale := cssscale.FormatNumber(config.Scale)

	scope := fmt.Sprintf("min-width >= %dpx and DPR >= %g", config.MinWidth, config.DPRThreshold)
	if config.PointerFine {
		scope += " with a fine hover-capable pointer"
	}

	hairlines := fmt.Sprintf("Hairlines (<= %spx) are preserved.", cssscale.FormatNumber(config.HairlineThreshold))
	if config.ScaleHairlines {
		hairlines = "Hairlines are scaled too."
	}

	lines := []string{
		"/*!",
		fmt.Sprintf(" * %s - AUTO-GENERATED (safe override)", name),
		fmt.Sprintf(" * Purpose: scale px-based values to %s ONLY on desktop retina.", scale),
		fmt.Sprintf(" * Scope: %s.", scope),
		" * Notes:",
		" *  - Originals are NOT modified. Delete this file to rollback.",
		" *  - " + hairlines,
		" *  - This file is regenerated; do not edit manually.",
		" */",
		"",
		":root {",
		"  --retinaScale: 1;",
		"}",
		"",
		"/*",
		"  AUTO-VERIFICATION MAP (braces):",
		"    - MEDIA START: desktop retina -> opens the @media block below",
		"    - MEDIA END: desktop retina   -> closes with the '}' immediately above the MEDIA END comment",
		"*/",
		"",
		"/* MEDIA START: desktop retina */",
		fmt.Sprintf("@media %s {", BuildMediaQuery(config.MinWidth, config.PointerFine, config.DPRThreshold)),
		"  :root {",
		fmt.Sprintf("    --retinaScale: %s;", scale),
		"  }",
		"",
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	for _, s := range sections {
		sb.WriteString(sectionComment(s.Source))
		sb.WriteString(s.Body)
	}
	sb.WriteString("}\n/* MEDIA END: desktop retina */\n")
	return sb.String()
}

func sectionComment(source string) string {
	return "  /* ── source: " + source + " ───────────────────────────── */\n"
}
