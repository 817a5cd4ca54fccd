package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/pxscale"
	"github.com/yacobolo/pxscale/internal/cssscale"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the desktop retina override stylesheet",
	Long: `Scan the stylesheet directory in cascade order, scale every px value and
report what would change. Pass --apply to write the override (only when its
content changed) and --patch-manifest to link it from the manifest.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd.Flags())
}

func runGenerate(_ *cobra.Command, _ []string) error {
	config := buildGenerateConfig()
	format, err := buildOutputFormat()
	if err != nil {
		return err
	}

	log, err := buildLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, genErr := pxscale.Generate(config, log)
	if result == nil {
		return fmt.Errorf("generation failed: %w", genErr)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		if err := pxscale.WriteOutput(os.Stdout, result, format, buildOutputOptions()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if format == pxscale.OutputText {
			printOutcome(os.Stdout, config, result)
		}
	}

	if genErr != nil {
		return fmt.Errorf("generation failed: %w", genErr)
	}
	return nil
}

// printOutcome reports what happened to the output file and the manifest.
func printOutcome(w io.Writer, config pxscale.Config, result *pxscale.GenerateResult) {
	useColors := cssscale.ShouldUseColors(getBoolWithFallback("color", "color", false))
	ok := cssscale.RenderStyle(cssscale.StyleGreen, "OK:", useColors)

	fmt.Fprintln(w, "")
	switch {
	case config.DryRun:
		fmt.Fprintln(w, "(dry-run) Nothing written.")
		return
	case !config.Apply:
		fmt.Fprintln(w, "Nothing written (pass --apply to write).")
		return
	case result.Wrote:
		fmt.Fprintf(w, "%s wrote %s\n", ok, result.OutPath)
		if result.BackupPath != "" {
			fmt.Fprintf(w, "Backup: %s\n", result.BackupPath)
		}
	default:
		fmt.Fprintf(w, "%s no changes, %s unchanged.\n", ok, result.OutPath)
	}

	if !config.PatchManifest {
		return
	}
	if result.ManifestPatched {
		fmt.Fprintf(w, "%s patched %s\n", ok, config.Manifest)
		if result.ManifestBackup != "" {
			fmt.Fprintf(w, "Backup manifest: %s\n", result.ManifestBackup)
		}
	} else {
		fmt.Fprintf(w, "%s %s already links the override; no changes.\n", ok, config.Manifest)
	}
}
