package pxscale

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// LinkComment precedes the inserted <link> tag.
const LinkComment = "<!-- Desktop Retina (auto-generated) -->"

var (
	// A tolerant match, not a markup parser: either quote style, any
	// attribute order. Malformed documents may under- or over-match.
	stylesheetLinkPattern = regexp.MustCompile(`(?i)<link\b[^>]*\brel\s*=\s*(?:"stylesheet"|'stylesheet')[^>]*>`)
	hrefPattern           = regexp.MustCompile(`(?i)\bhref\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// ExtractStylesheetLinks returns the href of every <link rel="stylesheet">
// in document order, without query string or fragment.
func ExtractStylesheetLinks(html string) []string {
	var hrefs []string
	for _, tag := range stylesheetLinkPattern.FindAllString(html, -1) {
		href, ok := hrefOf(tag)
		if !ok {
			continue
		}
		if i := strings.IndexByte(href, '#'); i >= 0 {
			href = href[:i]
		}
		if i := strings.IndexByte(href, '?'); i >= 0 {
			href = href[:i]
		}
		hrefs = append(hrefs, href)
	}
	return hrefs
}

func hrefOf(tag string) (string, bool) {
	m := hrefPattern.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(m[2]), true
}

// LinkTag renders the comment and <link> inserted into the manifest. A
// non-empty media becomes the tag's media attribute.
func LinkTag(href, media string) string {
	if media == "" {
		return fmt.Sprintf("%s\n    <link rel=\"stylesheet\" href=\"%s\" />", LinkComment, href)
	}
	return fmt.Sprintf("%s\n    <link rel=\"stylesheet\" href=\"%s\" media=\"%s\" />", LinkComment, href, media)
}

// ManifestPatch describes the outcome of PatchManifest.
type ManifestPatch struct {
	Changed    bool   // The manifest needed (or, in dry-run, would need) the link
	BackupPath string // Backup of the previous manifest, if written
}

// PatchManifest inserts linkTag before the last </head> of the manifest at
// path, or appends it when there is none. Nothing changes when the tag's
// href already occurs in the document. In dry-run mode the file is left
// untouched.
func PatchManifest(path, linkTag string, dryRun, backup bool) (ManifestPatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManifestPatch{}, fmt.Errorf("read manifest: %w", err)
	}
	html := string(data)

	if href, ok := hrefOf(linkTag); ok && href != "" && strings.Contains(html, href) {
		return ManifestPatch{}, nil
	}

	patched := insertBeforeHeadClose(html, "\n    "+strings.TrimSpace(linkTag)+"\n")
	if dryRun {
		return ManifestPatch{Changed: true}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return ManifestPatch{}, fmt.Errorf("stat manifest: %w", err)
	}

	result := ManifestPatch{Changed: true}
	if backup {
		result.BackupPath = path + BackupSuffix
		if err := os.WriteFile(result.BackupPath, data, info.Mode().Perm()); err != nil {
			return ManifestPatch{}, fmt.Errorf("backup manifest: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return result, fmt.Errorf("write manifest: %w", err)
	}
	return result, nil
}

// insertBeforeHeadClose inserts text before the last case-insensitive
// </head>, or appends it.
func insertBeforeHeadClose(html, text string) string {
	const closeTag = "</head>"
	for i := len(html) - len(closeTag); i >= 0; i-- {
		if strings.EqualFold(html[i:i+len(closeTag)], closeTag) {
			return html[:i] + text + html[i:]
		}
	}
	return html + text
}
