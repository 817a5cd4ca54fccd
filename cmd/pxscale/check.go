package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/pxscale"
	"github.com/yacobolo/pxscale/internal/cssscale"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail when the generated override is out of date",
	Long: `Generate the override in memory and compare it with the file on disk.
Exits with status 3 when the file is missing or stale, so CI can require
"pxscale generate --apply" to be run before merging.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	addGenerateFlags(checkCmd.Flags())
}

func runCheck(_ *cobra.Command, _ []string) error {
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

	result, checkErr := pxscale.Check(config, log)
	if result == nil {
		return fmt.Errorf("check failed: %w", checkErr)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		if err := pxscale.WriteOutput(os.Stdout, result, format, buildOutputOptions()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		if format == pxscale.OutputText {
			useColors := cssscale.ShouldUseColors(getBoolWithFallback("color", "color", false))
			fmt.Println("")
			switch {
			case errors.Is(checkErr, pxscale.ErrOutputStale):
				fmt.Printf("%s %s is out of date (run \"pxscale generate --apply\")\n",
					cssscale.RenderStyle(cssscale.StyleRed, "STALE:", useColors), result.OutPath)
			case checkErr == nil:
				fmt.Printf("%s %s is up to date\n",
					cssscale.RenderStyle(cssscale.StyleGreen, "OK:", useColors), result.OutPath)
			}
		}
	}

	return checkErr
}
