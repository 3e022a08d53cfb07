package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/theme"
	"github.com/salihkiraz/lumen-theme/viewpath"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "themectl",
		Short: "Inspect, validate, and serve a themes directory",
		Long: `themectl manages the themes directory used by lumen-theme.

It scans theme manifests, activates a theme against the configured
state store, exports the inventory, installs theme bundles, and runs
the HTTP admin service.

Configuration is read from flags, LUMEN_* environment variables, and
an optional config.{yaml,yml,json,toml} in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().AddFlagSet(config.Flags())

	rootCmd.AddCommand(
		listCmd(),
		validateCmd(),
		activateCmd(),
		exportCmd(),
		installCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// scanThemes loads the config and scans the themes path. No state store
// is attached, so nothing is persisted by the scan.
func scanThemes() ([]*theme.Info, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}

	reg := theme.New(viewpath.New(cfg.Themes.ViewPaths...))
	if err := reg.Scan(cfg.Themes.ThemesPath); err != nil {
		return nil, err
	}
	return reg.All(), nil
}
