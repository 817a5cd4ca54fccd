package pxscale

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Order sources reported in RunReport.OrderSource.
const (
	OrderManifest   = "manifest"
	OrderFilesystem = "filesystem"
)

// CascadeOrder is the ordered, duplicate-free list of stylesheets to process.
type CascadeOrder struct {
	Files  []string // Paths joined onto Root
	Linked int      // Leading files taken from the manifest
	Source string   // OrderManifest or OrderFilesystem
	Stats  ScanStats
}

// ScanStats tracks stylesheet discovery statistics
type ScanStats struct {
	FilesDiscovered int // Files found by the include patterns
	FilesSkipped    int // Files skipped (output file, gitignore)
}

// ResolveCascadeOrder determines the stylesheets to process and their order.
//
// With OrderFromManifest and a readable manifest, the stylesheets linked by
// the manifest come first in document order. Unless OnlyLinked is set, every
// remaining stylesheet found under CSSDir follows in lexical path order. The
// output file itself is never included.
func ResolveCascadeOrder(config Config) (*CascadeOrder, error) {
	cssDir := config.resolve(config.CSSDir)
	outPath := absPath(config.resolve(config.Out))

	order := &CascadeOrder{Source: OrderFilesystem}
	seen := make(map[string]bool)

	if config.OrderFromManifest && config.Manifest != "" {
		data, err := os.ReadFile(config.resolve(config.Manifest))
		if err == nil {
			order.Source = OrderManifest
			for _, href := range ExtractStylesheetLinks(string(data)) {
				path, ok := linkedStylesheet(config, cssDir, href)
				if !ok {
					continue
				}
				abs := absPath(path)
				if abs == outPath || seen[abs] {
					continue
				}
				seen[abs] = true
				order.Files = append(order.Files, path)
			}
			order.Linked = len(order.Files)

			if config.OnlyLinked {
				return order, nil
			}
		}
	}

	rest, stats, err := discoverStylesheets(config, cssDir, outPath)
	if err != nil {
		return nil, err
	}
	order.Stats = stats

	for _, path := range rest {
		abs := absPath(path)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		order.Files = append(order.Files, path)
	}

	return order, nil
}

// linkedStylesheet maps a manifest href onto an existing .css file inside
// cssDir.
func linkedStylesheet(config Config, cssDir, href string) (string, bool) {
	norm := strings.TrimLeft(href, "./")
	if norm == "" || strings.Contains(norm, "://") {
		return "", false
	}

	path := filepath.Join(config.resolve("."), filepath.FromSlash(norm))
	if !strings.EqualFold(filepath.Ext(path), ".css") {
		return "", false
	}
	if !isInside(cssDir, path) {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// discoverStylesheets expands the include patterns below cssDir and returns
// regular files sorted by their path relative to cssDir.
func discoverStylesheets(config Config, cssDir, outPath string) ([]string, ScanStats, error) {
	var stats ScanStats

	includes := config.Includes
	if len(includes) == 0 {
		includes = []string{"**/*.css"}
	}

	var gi *ignore.GitIgnore
	if config.RespectGitignore {
		gi = loadGitIgnore(config.resolve(".gitignore"))
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range includes {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(filepath.Join(cssDir, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if absPath(match) == outPath {
				stats.FilesSkipped++
				continue
			}
			if gi != nil && gi.MatchesPath(config.rel(match)) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return relSlash(cssDir, files[i]) < relSlash(cssDir, files[j])
	})

	return files, stats, nil
}

// loadGitIgnore compiles the given .gitignore file.
// Gracefully degrades if the file doesn't exist
func loadGitIgnore(path string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func relSlash(base, path string) string {
	r, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

// isInside reports whether path lies strictly below dir.
func isInside(dir, path string) bool {
	r, err := filepath.Rel(absPath(dir), absPath(path))
	if err != nil {
		return false
	}
	return r != "." && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator))
}
