package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/pxscale"
)

var k = koanf.New(".")

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = ".pxscale.yaml"

// configSections are the nested sections of the config file. Environment
// variables address them as PXSCALE_<SECTION>_<KEY>.
var configSections = []string{"generate", "report", "watch"}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	return loadFlags(cmd.Flags())
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (PXSCALE_* prefix)
	if err := k.Load(env.Provider("PXSCALE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// loadFlags merges the explicitly set flags under their flag names.
func loadFlags(fs *pflag.FlagSet) error {
	provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// envKey maps an environment variable onto a config key:
//
//	PXSCALE_GENERATE_MIN_WIDTH -> generate.min-width
//	PXSCALE_REPORT_OUTPUT_FORMAT -> report.output-format
//	PXSCALE_LOG_LEVEL -> log-level
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "PXSCALE_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig() pxscale.Config {
	d := pxscale.DefaultConfig()

	config := pxscale.Config{
		Root:              getStringWithFallback("root", "root", d.Root),
		CSSDir:            getStringWithFallback("css-dir", "generate.css-dir", d.CSSDir),
		Out:               getStringWithFallback("out", "generate.out", d.Out),
		Scale:             getFloat64WithFallback("scale", "generate.scale", d.Scale),
		MinWidth:          getIntWithFallback("min-width", "generate.min-width", d.MinWidth),
		DPRThreshold:      getFloat64WithFallback("dpr", "generate.dpr", d.DPRThreshold),
		PointerFine:       getBoolWithFallback("pointer-fine", "generate.pointer-fine", d.PointerFine),
		ScaleHairlines:    getBoolWithFallback("scale-hairlines", "generate.scale-hairlines", d.ScaleHairlines),
		HairlineThreshold: getFloat64WithFallback("hairline-threshold", "generate.hairline-threshold", d.HairlineThreshold),
		KeepNestedMedia:   getBoolWithFallback("keep-nested-media", "generate.keep-nested-media", d.KeepNestedMedia),
		Manifest:          getStringWithFallback("manifest", "generate.manifest", d.Manifest),
		OrderFromManifest: getBoolWithFallback("order-from-manifest", "generate.order-from-manifest", d.OrderFromManifest),
		OnlyLinked:        getBoolWithFallback("only-linked", "generate.only-linked", d.OnlyLinked),
		RespectGitignore:  getBoolWithFallback("respect-gitignore", "generate.respect-gitignore", d.RespectGitignore),
		DryRun:            getBoolWithFallback("dry-run", "generate.dry-run", d.DryRun),
		Apply:             getBoolWithFallback("apply", "generate.apply", d.Apply),
		Backup:            getBoolWithFallback("backup", "generate.backup", d.Backup),
		PatchManifest:     getBoolWithFallback("patch-manifest", "generate.patch-manifest", d.PatchManifest),
		Href:              getStringWithFallback("href", "generate.href", d.Href),
		LinkMedia:         getBoolWithFallback("link-media", "generate.link-media", d.LinkMedia),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("generate.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = d.Includes
	}

	return config
}

// buildOutputFormat validates the requested report format.
func buildOutputFormat() (pxscale.OutputFormat, error) {
	return pxscale.ParseOutputFormat(getStringWithFallback("output-format", "report.output-format", string(pxscale.OutputText)))
}

// buildOutputOptions constructs report rendering options from koanf state.
func buildOutputOptions() pxscale.OutputOptions {
	return pxscale.OutputOptions{
		ForceColors: getBoolWithFallback("color", "color", false),
		MaxIssues:   getIntWithFallback("max-issues", "report.max-issues", 0),
		PrintLines:  getBoolWithFallback("verbose", "verbose", false) || k.Bool("report.print-lines"),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
