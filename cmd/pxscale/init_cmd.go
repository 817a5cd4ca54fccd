package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .pxscale.yaml config file",
	Long:  `Create a .pxscale.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created " + defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# pxscale configuration
# Docs: https://github.com/yacobolo/pxscale

# Shared settings
root: .
verbose: false
log-level: none          # none | normal | debug

# Generation settings
generate:
  css-dir: assets/css
  out: assets/css/retina-80.css
  include:
    - "**/*.css"
  scale: 0.8
  min-width: 961
  dpr: 2.0
  pointer-fine: true
  scale-hairlines: false
  hairline-threshold: 1.0
  keep-nested-media: false
  manifest: index.html
  order-from-manifest: false
  only-linked: false
  respect-gitignore: false
  apply: false
  backup: false
  patch-manifest: false
  href: assets/css/retina-80.css
  link-media: false

# Report settings
report:
  output-format: text    # text | json | markdown
  max-issues: 0          # 0 = unlimited
  print-lines: false

# Watch mode
watch:
  debounce: 200ms
  cache-size: 256
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
