package pxscale

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/pxscale/internal/cssscale"
)

// DefaultCacheSize is the number of parsed stylesheets a Generator keeps.
const DefaultCacheSize = 256

// sectionIndent is the indent of top-level rules inside the activation block.
const sectionIndent = 2

// Generator runs the generation pipeline. Parsed stylesheets are cached by
// path and content hash, so repeated runs only re-parse files that changed.
type Generator struct {
	log    *zap.Logger
	parser *cssscale.Parser
	cache  *lru.Cache[string, *cssscale.Stylesheet]
}

// NewGenerator creates a generator. A nil logger disables logging; a
// non-positive cacheSize selects DefaultCacheSize.
func NewGenerator(log *zap.Logger, cacheSize int) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, *cssscale.Stylesheet](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}

	return &Generator{
		log:    log.Named("generator"),
		parser: cssscale.NewParser(log),
		cache:  cache,
	}, nil
}

// Generate is the main entry point
func Generate(config Config, log *zap.Logger) (*GenerateResult, error) {
	g, err := NewGenerator(log, 0)
	if err != nil {
		return nil, err
	}
	return g.Generate(config)
}

// Check generates in memory and returns ErrOutputStale when the output file
// is missing or differs from the generated content.
func Check(config Config, log *zap.Logger) (*GenerateResult, error) {
	g, err := NewGenerator(log, 0)
	if err != nil {
		return nil, err
	}
	return g.Check(config)
}

// Generate builds the document and, with Apply and without DryRun, writes
// it and optionally patches the manifest.
func (g *Generator) Generate(config Config) (*GenerateResult, error) {
	result, err := g.build(config)
	if err != nil {
		return nil, err
	}

	if config.DryRun || !config.Apply {
		g.log.Debug("Skipping write",
			zap.Bool("dry_run", config.DryRun),
			zap.Bool("apply", config.Apply))
		if config.PatchManifest {
			g.previewManifestPatch(config, result)
		}
		return result, nil
	}

	var errs error

	outPath := config.resolve(config.Out)
	written, err := WriteIfChanged(outPath, result.Content, config.Backup)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		result.Wrote = written.Wrote
		if written.BackupPath != "" {
			result.BackupPath = config.rel(written.BackupPath)
		}
		g.log.Debug("Write decision",
			zap.String("path", result.OutPath),
			zap.Bool("wrote", written.Wrote),
			zap.String("backup", result.BackupPath))
	}

	if config.PatchManifest {
		errs = multierr.Append(errs, g.patchManifest(config, result))
	}

	return result, errs
}

// Check generates in memory and compares with the file on disk.
func (g *Generator) Check(config Config) (*GenerateResult, error) {
	result, err := g.build(config)
	if err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(config.resolve(config.Out))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return result, fmt.Errorf("read output: %w", err)
	}
	if err != nil || string(existing) != result.Content {
		return result, fmt.Errorf("%w: %s", ErrOutputStale, result.OutPath)
	}
	return result, nil
}

// build resolves the cascade order, scales every stylesheet and assembles
// the document in memory.
func (g *Generator) build(config Config) (*GenerateResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cssDir := config.resolve(config.CSSDir)
	if info, err := os.Stat(cssDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrStylesheetDirMissing, cssDir)
	}

	order, err := ResolveCascadeOrder(config)
	if err != nil {
		return nil, fmt.Errorf("resolve cascade order: %w", err)
	}
	g.log.Debug("Resolved cascade order",
		zap.String("source", order.Source),
		zap.Int("files", len(order.Files)),
		zap.Int("linked", order.Linked),
		zap.Int("skipped", order.Stats.FilesSkipped))

	run := &cssscale.RunReport{
		Scale:             config.Scale,
		MinWidth:          config.MinWidth,
		DPRThreshold:      config.DPRThreshold,
		PointerFine:       config.PointerFine,
		ScaleHairlines:    config.ScaleHairlines,
		HairlineThreshold: config.HairlineThreshold,
		KeepNestedMedia:   config.KeepNestedMedia,
		OrderSource:       order.Source,
	}

	scaler := cssscale.Scaler{
		Factor:            config.Scale,
		ScaleHairlines:    config.ScaleHairlines,
		HairlineThreshold: config.HairlineThreshold,
	}
	emitter := cssscale.NewEmitter(scaler, config.MinWidth, config.KeepNestedMedia, g.log)

	result := &GenerateResult{
		Report:  run,
		OutPath: config.rel(config.resolve(config.Out)),
	}

	var sections []Section
	for _, path := range order.Files {
		rel := config.rel(path)

		data, err := os.ReadFile(path)
		if err != nil {
			g.log.Warn("Failed to read stylesheet", zap.String("file", rel), zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read %s: %v", rel, err))
			continue
		}
		text := string(data)

		sheet := g.parse(rel, text)
		if len(sheet.Errors) > 0 {
			g.log.Warn("CSS parse errors", zap.String("file", rel), zap.Int("count", len(sheet.Errors)))
			run.Issues = append(run.Issues, cssscale.SyntaxIssues(rel, text, sheet.Errors)...)
		}

		rep := cssscale.FileReport{Path: rel, SyntaxErrors: len(sheet.Errors)}
		body := emitter.EmitStylesheet(sheet, sectionIndent, rel, &rep, run)
		run.AddFile(rep)
		result.Files = append(result.Files, rel)

		if rep.DeclsChanged > 0 {
			sections = append(sections, Section{Source: rel, Body: body})
		}
	}

	result.Content = AssembleDocument(config, sections)
	return result, nil
}

// parse returns the cached stylesheet for this exact content, or parses it.
func (g *Generator) parse(source, text string) *cssscale.Stylesheet {
	sum := sha256.Sum256([]byte(text))
	key := source + "@" + hex.EncodeToString(sum[:])

	if sheet, ok := g.cache.Get(key); ok {
		g.log.Debug("Parse cache hit", zap.String("file", source))
		return sheet
	}

	sheet := g.parser.Parse(text, source)
	g.cache.Add(key, sheet)
	return sheet
}

func (g *Generator) manifestLinkTag(config Config) string {
	media := ""
	if config.LinkMedia {
		media = BuildMediaQuery(config.MinWidth, config.PointerFine, config.DPRThreshold)
	}
	return LinkTag(config.Href, media)
}

func (g *Generator) patchManifest(config Config, result *GenerateResult) error {
	manifest := config.resolve(config.Manifest)
	if _, err := os.Stat(manifest); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("manifest not found: %s", config.rel(manifest)))
		return nil
	}

	patch, err := PatchManifest(manifest, g.manifestLinkTag(config), false, config.Backup)
	if err != nil {
		return err
	}

	result.ManifestPatched = patch.Changed
	if patch.BackupPath != "" {
		result.ManifestBackup = config.rel(patch.BackupPath)
	}
	g.log.Debug("Manifest patch", zap.String("path", config.rel(manifest)), zap.Bool("changed", patch.Changed))
	return nil
}

// previewManifestPatch reports whether the manifest would be patched.
func (g *Generator) previewManifestPatch(config Config, result *GenerateResult) {
	manifest := config.resolve(config.Manifest)
	patch, err := PatchManifest(manifest, g.manifestLinkTag(config), true, false)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("manifest not patched: %v", err))
		return
	}
	if patch.Changed {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s does not link %s yet (pass --apply to patch it)", config.rel(manifest), config.Href))
	}
}
