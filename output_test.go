package pxscale

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected OutputFormat
		wantErr  bool
	}{
		{name: "default", input: "", expected: OutputText},
		{name: "text", input: "text", expected: OutputText},
		{name: "json", input: "JSON", expected: OutputJSON},
		{name: "markdown", input: "markdown", expected: OutputMarkdown},
		{name: "markdown shorthand (md)", input: " md ", expected: OutputMarkdown},
		{name: "unknown", input: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func generateSample(t *testing.T) *GenerateResult {
	t.Helper()
	config := sampleProject(t)
	writeFiles(t, config.Root, map[string]string{
		"assets/css/broken.css": ".x { content: \"oops\n}\n.y { font-size: 15px }\n",
	})
	result, err := Generate(config, nil)
	require.NoError(t, err)
	return result
}

func TestWriteJSON(t *testing.T) {
	result := generateSample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, result, OutputJSON, OutputOptions{}))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.NotContains(t, raw, "timestamp")

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.Equal(t, 0.8, output.Config.Scale)
	assert.Equal(t, 961, output.Config.MinWidth)
	assert.Equal(t, OrderFilesystem, output.Config.OrderSource)

	assert.Equal(t, 3, output.Summary.FilesScanned)
	assert.Equal(t, 2, output.Summary.FilesWithChanges)
	assert.Equal(t, 3, output.Summary.DeclsChanged)
	assert.Equal(t, 1, output.Summary.NestedMediaSkipped)
	assert.Equal(t, 1, output.Summary.SyntaxWarnings)

	require.Len(t, output.Files, 3)
	assert.Equal(t, "assets/css/base.css", output.Files[0].Path)
	assert.Equal(t, "assets/css/retina-80.css", output.Output.Path)
	assert.False(t, output.Output.Wrote)

	require.Len(t, output.Issues, 1)
	assert.Equal(t, "assets/css/broken.css", output.Issues[0].File)
	assert.Equal(t, "warning", output.Issues[0].Severity)
	assert.Equal(t, "pxscale", output.Issues[0].Linter)

	assert.NotEmpty(t, output.Examples)
	assert.Equal(t, 2, output.Categories["Layout"])
	assert.Equal(t, 1, output.Categories["Typography"])
	assert.NotNil(t, output.Warnings)

	// Identical runs export identical documents
	var again bytes.Buffer
	require.NoError(t, WriteJSON(&again, result))
	assert.Equal(t, buf.String(), again.String())
}

func TestWriteJSON_EmptyRun(t *testing.T) {
	config := testConfig(t)
	writeFiles(t, config.Root, map[string]string{"assets/css/a.css": ".a { color: red }"})
	result, err := Generate(config, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))
	assert.Contains(t, buf.String(), `"examples": []`)
	assert.Contains(t, buf.String(), `"issues": []`)
	assert.Contains(t, buf.String(), `"warnings": []`)
	assert.Contains(t, buf.String(), `"categories": {}`)
}

func TestWriteMarkdown(t *testing.T) {
	result := generateSample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, result, OutputMarkdown, OutputOptions{}))
	out := buf.String()

	assert.Contains(t, out, "# Retina Override Report")
	assert.Contains(t, out, "## Configuration")
	assert.Contains(t, out, "| **Scale** | 0.8 |")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| **Declarations changed** | 3 |")
	assert.Contains(t, out, "## Touched Files")
	assert.Contains(t, out, "| `assets/css/base.css` | 2 | 2 | 2 |")
	assert.Contains(t, out, "## By Category")
	assert.Contains(t, out, "## Examples")
	assert.Contains(t, out, "## Warnings")
	assert.Contains(t, out, "`assets/css/broken.css:1:15` CSS syntax: unterminated string")
	assert.Contains(t, out, "*Generated by pxscale*")
}

func TestWriteText(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	result := generateSample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, result, OutputText, OutputOptions{MaxIssues: 10}))
	out := buf.String()

	assert.Contains(t, out, "Min width:       961px")
	assert.Contains(t, out, "Declarations changed:  3")
	assert.Contains(t, out, "assets/css/broken.css:1:15: CSS syntax: unterminated string (pxscale)")
	assert.Contains(t, out, "1 warning")
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a \| b`, escapeCell("a | b"))
	assert.Equal(t, ".a, .b", escapeCell(".a, .b"))
}
