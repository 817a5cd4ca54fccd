package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/pxscale"
	"github.com/yacobolo/pxscale/internal/cssscale"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the override whenever a stylesheet changes",
	Long: `Generate and write the override once, then watch the stylesheet directory
and the manifest. Bursts of changes are debounced into one regeneration;
unchanged stylesheets are served from a parse cache.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addGenerateFlags(watchCmd.Flags())
	watchCmd.Flags().Duration("debounce", pxscale.DefaultDebounce, "Delay before regenerating after a change")
	watchCmd.Flags().Int("cache-size", pxscale.DefaultCacheSize, "Number of parsed stylesheets to cache")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	config := buildGenerateConfig()
	config.Apply = true
	config.DryRun = false

	log, err := buildLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gen, err := pxscale.NewGenerator(log, getIntWithFallback("cache-size", "watch.cache-size", pxscale.DefaultCacheSize))
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	useColors := cssscale.ShouldUseColors(getBoolWithFallback("color", "color", false))

	options := pxscale.WatchOptions{
		Debounce: getDurationWithFallback("debounce", "watch.debounce", pxscale.DefaultDebounce),
		OnResult: func(result *pxscale.GenerateResult, err error) {
			if quiet {
				return
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", cssscale.RenderStyle(cssscale.StyleRed, "error:", useColors), err)
				if result == nil {
					return
				}
			}
			printWatchResult(result, useColors)
		},
	}

	w, err := pxscale.NewWatcher(config, gen, options, log)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		fmt.Printf("Watching %s (Ctrl+C to stop)\n", config.CSSDir)
	}
	return w.Run(ctx)
}

func printWatchResult(result *pxscale.GenerateResult, useColors bool) {
	run := result.Report
	state := "unchanged"
	if result.Wrote {
		state = "wrote"
	}

	fmt.Printf("%s %s %s: %d files, %d declarations, %d px values",
		cssscale.RenderStyle(cssscale.StyleGreen, "✓", useColors),
		state, result.OutPath, run.FilesWithChanges, run.TotalDeclsChanged, run.TotalPxReplaced)
	if n := len(run.Issues); n > 0 {
		fmt.Printf(" (%s)", cssscale.RenderStyle(cssscale.StyleYellow, fmt.Sprintf("%d syntax warnings", n), useColors))
	}
	fmt.Println()

	for _, warning := range result.Warnings {
		fmt.Printf("  Warning: %s\n", warning)
	}
}
