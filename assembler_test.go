package pxscale

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMediaQuery(t *testing.T) {
	tests := []struct {
		name        string
		minWidth    int
		pointerFine bool
		dpr         float64
		want        string
	}{
		{
			name:        "defaults",
			minWidth:    961,
			pointerFine: true,
			dpr:         2,
			want: "(min-width: 961px) and (hover: hover) and (pointer: fine) and (min-resolution: 2dppx),\n" +
				"       (min-width: 961px) and (hover: hover) and (pointer: fine) and (-webkit-min-device-pixel-ratio: 2),\n" +
				"       (min-width: 961px) and (hover: hover) and (pointer: fine) and (min-resolution: 192dpi)",
		},
		{
			name:     "fractional ratio without pointer",
			minWidth: 1200,
			dpr:      1.5,
			want: "(min-width: 1200px) and (min-resolution: 1.5dppx),\n" +
				"       (min-width: 1200px) and (-webkit-min-device-pixel-ratio: 1.5),\n" +
				"       (min-width: 1200px) and (min-resolution: 144dpi)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildMediaQuery(tt.minWidth, tt.pointerFine, tt.dpr))
		})
	}
}

func TestAssembleDocument(t *testing.T) {
	config := DefaultConfig()
	sections := []Section{
		{Source: "assets/css/b.css", Body: "  .b {\n    margin: 8px;\n  }\n"},
		{Source: "assets/css/a.css", Body: "  .a {\n    padding: 16px;\n  }\n"},
	}

	doc := AssembleDocument(config, sections)

	assert.True(t, strings.HasPrefix(doc, "/*!\n * retina-80.css - AUTO-GENERATED (safe override)\n"))
	assert.Contains(t, doc, " * Purpose: scale px-based values to 0.8 ONLY on desktop retina.\n")
	assert.Contains(t, doc, " * Scope: min-width >= 961px and DPR >= 2 with a fine hover-capable pointer.\n")
	assert.Contains(t, doc, "Hairlines (<= 1px) are preserved.")
	assert.Contains(t, doc, ":root {\n  --retinaScale: 1;\n}\n")
	assert.Contains(t, doc, "/* MEDIA START: desktop retina */\n@media (min-width: 961px)")
	assert.Contains(t, doc, "  :root {\n    --retinaScale: 0.8;\n  }\n")
	assert.True(t, strings.HasSuffix(doc, "  }\n}\n/* MEDIA END: desktop retina */\n"))

	b := strings.Index(doc, "source: assets/css/b.css")
	a := strings.Index(doc, "source: assets/css/a.css")
	assert.Greater(t, b, 0)
	assert.Greater(t, a, b)

	assert.Equal(t, doc, AssembleDocument(config, sections))
}

func TestAssembleDocument_Empty(t *testing.T) {
	config := DefaultConfig()
	config.ScaleHairlines = true
	config.PointerFine = false

	doc := AssembleDocument(config, nil)
	assert.Contains(t, doc, "Hairlines are scaled too.")
	assert.Contains(t, doc, " * Scope: min-width >= 961px and DPR >= 2.\n")
	assert.NotContains(t, doc, "source:")
	assert.True(t, strings.HasSuffix(doc, "    --retinaScale: 0.8;\n  }\n}\n/* MEDIA END: desktop retina */\n"))
}
