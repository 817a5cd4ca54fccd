package cssscale

import (
	"regexp"
	"strconv"
	"strings"
)

var maxWidthPattern = regexp.MustCompile(`(?i)max-width\s*:\s*([0-9]*\.?[0-9]+)\s*px`)

// MaxWidths extracts every "max-width: Npx" value from a media prelude.
func MaxWidths(prelude string) []float64 {
	var widths []float64
	for _, m := range maxWidthPattern.FindAllStringSubmatch(prelude, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		widths = append(widths, v)
	}
	return widths
}

// IsMobileOnly reports whether a nested @media prelude can never match inside
// the outer "(min-width: minWidth px)" gate: it has at least one max-width
// constraint and every one of them is below minWidth.
func IsMobileOnly(prelude string, minWidth int) bool {
	widths := MaxWidths(prelude)
	if len(widths) == 0 {
		return false
	}

	limit := float64(minWidth)
	for _, w := range widths {
		if w >= limit {
			return false
		}
	}
	return true
}

// isMediaKeyword reports whether an at-rule keyword is "media" in any case.
func isMediaKeyword(keyword string) bool {
	return strings.EqualFold(keyword, "media")
}
