package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "pxscale",
	Short: "Desktop retina override generator for px-based stylesheets",
	Long: `Scale every px value of a project's stylesheets by a constant factor,
but only on desktop high-density screens.
The originals stay untouched: pxscale writes one override stylesheet that
re-declares only the changed rules inside a single activation @media block.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and show source lines under warnings")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".pxscale.yaml", "Config file path")
	rootCmd.PersistentFlags().String("log-level", "none", "Log level: none|normal|debug")

	addGenerateFlags(rootCmd.Flags())

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addGenerateFlags registers the generation flags shared by the root command,
// generate, check and watch.
func addGenerateFlags(f *pflag.FlagSet) {
	f.String("root", ".", "Project root; other paths are relative to it")
	f.String("css-dir", "assets/css", "Stylesheet directory to scan")
	f.String("out", "assets/css/retina-80.css", "Generated override stylesheet")
	f.StringSlice("include", nil, "Glob patterns below css-dir (default \"**/*.css\")")

	f.Float64("scale", 0.8, "Scale factor applied to px values")
	f.Int("min-width", 961, "Desktop breakpoint in px")
	f.Float64("dpr", 2.0, "Device pixel ratio threshold")
	f.Bool("pointer-fine", true, "Require (hover: hover) and (pointer: fine)")
	f.Bool("scale-hairlines", false, "Also scale hairlines <= hairline-threshold")
	f.Float64("hairline-threshold", 1.0, "Hairline threshold in px")
	f.Bool("keep-nested-media", false, "Keep nested mobile-only @media blocks")

	f.String("manifest", "index.html", "HTML document used for ordering and patching")
	f.Bool("order-from-manifest", false, "Order stylesheets by the manifest's <link> tags")
	f.Bool("only-linked", false, "Process only stylesheets linked by the manifest")
	f.Bool("respect-gitignore", false, "Skip stylesheets matched by .gitignore")

	f.Bool("dry-run", false, "Never write files")
	f.Bool("apply", false, "Write the override when it changed")
	f.Bool("backup", false, "Keep a .bak copy of overwritten files")
	f.Bool("patch-manifest", false, "Insert the override <link> into the manifest")
	f.String("href", "assets/css/retina-80.css", "href of the inserted <link>")
	f.Bool("link-media", false, "Put the activation query on the <link> media attribute")

	f.String("output-format", "text", "Report format: text|json|markdown")
	f.Int("max-issues", 0, "Max syntax warnings to show (0=unlimited)")
}
