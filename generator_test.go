package pxscale

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject(t *testing.T) Config {
	t.Helper()
	config := testConfig(t)
	writeFiles(t, config.Root, map[string]string{
		"assets/css/base.css": `/* base */
.card { margin: 20px; color: red; border: 1px solid #ccc; }
@media (max-width: 600px) { .card { padding: 10px } }
@media (max-width: 1200px) { .card { padding: 30px } }
`,
		"assets/css/theme.css": ".t { color: blue }\n",
		"index.html": `<html><head>
  <link rel="stylesheet" href="assets/css/theme.css">
  <link rel="stylesheet" href="assets/css/base.css">
</head><body></body></html>`,
	})
	return config
}

func TestGenerate_Apply(t *testing.T) {
	config := sampleProject(t)
	config.Apply = true

	result, err := Generate(config, nil)
	require.NoError(t, err)

	assert.True(t, result.Wrote)
	assert.Equal(t, "assets/css/retina-80.css", result.OutPath)
	assert.Equal(t, []string{"assets/css/base.css", "assets/css/theme.css"}, result.Files)
	assert.Equal(t, result.Content, readFile(t, filepath.Join(config.Root, "assets/css/retina-80.css")))

	assert.Contains(t, result.Content, "  /* ── source: assets/css/base.css")
	assert.NotContains(t, result.Content, "source: assets/css/theme.css")
	assert.Contains(t, result.Content, "  .card {\n    margin: 16px;\n  }\n")
	assert.Contains(t, result.Content, "  @media (max-width: 1200px) {\n    .card {\n      padding: 24px;\n    }\n  }\n")
	assert.NotContains(t, result.Content, "padding: 8px")
	assert.NotContains(t, result.Content, "border")

	run := result.Report
	assert.Equal(t, OrderFilesystem, run.OrderSource)
	assert.Equal(t, 2, run.FilesScanned)
	assert.Equal(t, 1, run.FilesWithChanges)
	assert.Equal(t, 2, run.TotalDeclsChanged)
	assert.Equal(t, 2, run.TotalPxReplaced)
	assert.Equal(t, 1, run.NestedMediaSkipped)
	assert.Empty(t, run.Issues)
}

func TestGenerate_Idempotent(t *testing.T) {
	config := sampleProject(t)
	config.Apply = true
	config.Backup = true

	gen, err := NewGenerator(nil, 0)
	require.NoError(t, err)

	first, err := gen.Generate(config)
	require.NoError(t, err)
	require.True(t, first.Wrote)

	second, err := gen.Generate(config)
	require.NoError(t, err)
	assert.False(t, second.Wrote)
	assert.Empty(t, second.BackupPath)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Files, second.Files)
}

func TestGenerate_BackupOnChange(t *testing.T) {
	config := sampleProject(t)
	config.Apply = true
	config.Backup = true

	first, err := Generate(config, nil)
	require.NoError(t, err)

	writeFiles(t, config.Root, map[string]string{"assets/css/theme.css": ".t { gap: 10px }\n"})

	second, err := Generate(config, nil)
	require.NoError(t, err)
	assert.True(t, second.Wrote)
	assert.Equal(t, "assets/css/retina-80.css.bak", second.BackupPath)
	assert.Equal(t, first.Content, readFile(t, filepath.Join(config.Root, second.BackupPath)))
	assert.Contains(t, second.Content, "gap: 8px;")
}

func TestGenerate_NoWrite(t *testing.T) {
	tests := []struct {
		name   string
		apply  bool
		dryRun bool
	}{
		{name: "preview by default"},
		{name: "dry run wins over apply", apply: true, dryRun: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := sampleProject(t)
			config.Apply = tt.apply
			config.DryRun = tt.dryRun

			result, err := Generate(config, nil)
			require.NoError(t, err)
			assert.False(t, result.Wrote)
			assert.NotEmpty(t, result.Content)
			assert.NoFileExists(t, filepath.Join(config.Root, "assets/css/retina-80.css"))
		})
	}
}

func TestGenerate_ManifestOrder(t *testing.T) {
	config := sampleProject(t)
	writeFiles(t, config.Root, map[string]string{"assets/css/theme.css": ".t { gap: 10px }\n"})
	config.OrderFromManifest = true

	result, err := Generate(config, nil)
	require.NoError(t, err)

	assert.Equal(t, OrderManifest, result.Report.OrderSource)
	assert.Equal(t, []string{"assets/css/theme.css", "assets/css/base.css"}, result.Files)

	theme := strings.Index(result.Content, "source: assets/css/theme.css")
	base := strings.Index(result.Content, "source: assets/css/base.css")
	assert.Greater(t, theme, 0)
	assert.Greater(t, base, theme)
}

func TestGenerate_PatchManifest(t *testing.T) {
	config := sampleProject(t)
	config.Apply = true
	config.PatchManifest = true
	manifest := filepath.Join(config.Root, "index.html")

	first, err := Generate(config, nil)
	require.NoError(t, err)
	assert.True(t, first.ManifestPatched)
	assert.Contains(t, readFile(t, manifest), `href="assets/css/retina-80.css"`)

	second, err := Generate(config, nil)
	require.NoError(t, err)
	assert.False(t, second.ManifestPatched)
	assert.Equal(t, 1, strings.Count(readFile(t, manifest), "retina-80.css"))
}

func TestGenerate_PatchManifestPreview(t *testing.T) {
	config := sampleProject(t)
	config.PatchManifest = true
	manifest := filepath.Join(config.Root, "index.html")
	before := readFile(t, manifest)

	result, err := Generate(config, nil)
	require.NoError(t, err)
	assert.False(t, result.ManifestPatched)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "--apply")
	assert.Equal(t, before, readFile(t, manifest))
}

func TestGenerate_MissingManifestIsWarning(t *testing.T) {
	config := sampleProject(t)
	config.Apply = true
	config.PatchManifest = true
	config.Manifest = "missing.html"

	result, err := Generate(config, nil)
	require.NoError(t, err)
	assert.True(t, result.Wrote)
	assert.Equal(t, []string{"manifest not found: missing.html"}, result.Warnings)
}

func TestGenerate_SyntaxWarnings(t *testing.T) {
	config := testConfig(t)
	writeFiles(t, config.Root, map[string]string{
		"assets/css/broken.css": ".x { content: \"oops\n}\n.y { margin: 10px }\n",
	})

	result, err := Generate(config, nil)
	require.NoError(t, err)

	require.NotEmpty(t, result.Report.Issues)
	issue := result.Report.Issues[0]
	assert.Equal(t, "assets/css/broken.css", issue.Pos.Filename)
	assert.Equal(t, 1, issue.Pos.Line)
	assert.Contains(t, issue.Text, "unterminated string")
	assert.Equal(t, len(result.Report.Issues), result.Report.PerFile[0].SyntaxErrors)
	assert.Contains(t, result.Content, "margin: 8px;")
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("missing stylesheet directory", func(t *testing.T) {
		config := testConfig(t)
		_, err := Generate(config, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStylesheetDirMissing))
	})

	t.Run("invalid scale", func(t *testing.T) {
		config := sampleProject(t)
		config.Scale = 0
		_, err := Generate(config, nil)
		assert.ErrorContains(t, err, "scale must be > 0")
	})
}

func TestCheck(t *testing.T) {
	config := sampleProject(t)

	_, err := Check(config, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputStale))

	config.Apply = true
	_, err = Generate(config, nil)
	require.NoError(t, err)

	result, err := Check(config, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)

	writeFiles(t, config.Root, map[string]string{"assets/css/theme.css": ".t { gap: 10px }\n"})
	_, err = Check(config, nil)
	assert.True(t, errors.Is(err, ErrOutputStale))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero scale", mutate: func(c *Config) { c.Scale = 0 }, wantErr: "scale"},
		{name: "negative min width", mutate: func(c *Config) { c.MinWidth = -1 }, wantErr: "min-width"},
		{name: "zero dpr", mutate: func(c *Config) { c.DPRThreshold = 0 }, wantErr: "dpr"},
		{name: "negative hairline", mutate: func(c *Config) { c.HairlineThreshold = -0.5 }, wantErr: "hairline-threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGenerate_StrayBraceStaysInsideActivationBlock(t *testing.T) {
	config := testConfig(t)
	writeFiles(t, config.Root, map[string]string{
		"assets/css/main.css": ".a { margin: 20px } }\n.b { margin: 20px }\n",
	})

	result, err := Generate(config, nil)
	require.NoError(t, err)

	require.Len(t, result.Report.Issues, 1)
	issue := result.Report.Issues[0]
	assert.Equal(t, "assets/css/main.css", issue.Pos.Filename)
	assert.Equal(t, 1, issue.Pos.Line)
	assert.Equal(t, 21, issue.Pos.Column)
	assert.Contains(t, issue.Text, `unexpected "}"`)

	start := strings.Index(result.Content, "/* MEDIA START: desktop retina */")
	end := strings.Index(result.Content, "/* MEDIA END: desktop retina */")
	require.Greater(t, start, 0)
	require.Greater(t, end, start)

	body := result.Content[start:end]
	assert.Equal(t, strings.Count(body, "{"), strings.Count(body, "}"))
	assert.True(t, strings.HasSuffix(result.Content,
		"  .b {\n    margin: 16px;\n  }\n}\n/* MEDIA END: desktop retina */\n"))
}
