package pxscale

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHref = "assets/css/retina-80.css"

func TestExtractStylesheetLinks(t *testing.T) {
	html := `<head>
  <link rel="stylesheet" href="a.css">
  <link href='b.css?v=1' rel='stylesheet'>
  <link rel="icon" href="favicon.ico">
  <LINK REL="stylesheet" HREF="c.css#theme" />
  <link rel="stylesheet">
  <link rel="preload" href="d.css" as="style">
</head>`

	assert.Equal(t, []string{"a.css", "b.css", "c.css"}, ExtractStylesheetLinks(html))
	assert.Empty(t, ExtractStylesheetLinks("<p>no links</p>"))
}

func TestLinkTag(t *testing.T) {
	assert.Equal(t,
		LinkComment+"\n    <link rel=\"stylesheet\" href=\"assets/css/retina-80.css\" />",
		LinkTag(testHref, ""))
	assert.Equal(t,
		LinkComment+"\n    <link rel=\"stylesheet\" href=\"x.css\" media=\"(min-width: 961px)\" />",
		LinkTag("x.css", "(min-width: 961px)"))
}

func TestPatchManifest(t *testing.T) {
	tag := LinkTag(testHref, "")
	inserted := "\n    " + tag + "\n"

	tests := []struct {
		name    string
		html    string
		want    string
		changed bool
	}{
		{
			name:    "before head close",
			html:    "<html><head>\n  <title>x</title>\n</head><body></body></html>",
			want:    "<html><head>\n  <title>x</title>\n" + inserted + "</head><body></body></html>",
			changed: true,
		},
		{
			name:    "last uppercase head close",
			html:    "<!-- </head> -->\n<HEAD></HEAD>",
			want:    "<!-- </head> -->\n<HEAD>" + inserted + "</HEAD>",
			changed: true,
		},
		{
			name:    "appended without head",
			html:    "<body></body>",
			want:    "<body></body>" + inserted,
			changed: true,
		},
		{
			name: "already linked",
			html: `<head><link rel="stylesheet" href="assets/css/retina-80.css"></head>`,
			want: `<head><link rel="stylesheet" href="assets/css/retina-80.css"></head>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "index.html")
			require.NoError(t, os.WriteFile(path, []byte(tt.html), 0o644))

			patch, err := PatchManifest(path, tag, false, false)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, patch.Changed)
			assert.Empty(t, patch.BackupPath)
			assert.Equal(t, tt.want, readFile(t, path))
		})
	}
}

func TestPatchManifest_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<head></head>"), 0o644))
	tag := LinkTag(testHref, "")

	first, err := PatchManifest(path, tag, false, false)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := PatchManifest(path, tag, false, false)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, 1, strings.Count(readFile(t, path), testHref))
}

func TestPatchManifest_Backup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<head></head>"), 0o644))

	patch, err := PatchManifest(path, LinkTag(testHref, ""), false, true)
	require.NoError(t, err)
	assert.True(t, patch.Changed)
	assert.Equal(t, path+BackupSuffix, patch.BackupPath)
	assert.Equal(t, "<head></head>", readFile(t, patch.BackupPath))
	assert.Contains(t, readFile(t, path), testHref)
}

func TestPatchManifest_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<head></head>"), 0o644))

	patch, err := PatchManifest(path, LinkTag(testHref, ""), true, true)
	require.NoError(t, err)
	assert.True(t, patch.Changed)
	assert.Empty(t, patch.BackupPath)
	assert.Equal(t, "<head></head>", readFile(t, path))
	assert.NoFileExists(t, path+BackupSuffix)
}

func TestPatchManifest_Missing(t *testing.T) {
	_, err := PatchManifest(filepath.Join(t.TempDir(), "index.html"), LinkTag(testHref, ""), false, false)
	assert.Error(t, err)
}
