package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/app"
	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/health"
	"github.com/salihkiraz/lumen-theme/theme"
	"github.com/salihkiraz/lumen-theme/viewpath"
)

func activateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <directory>",
		Short: "Activate a theme and persist the selection",
		Long: `Activate scans the themes path, activates the theme registered under
the given directory key, and persists the selection to the configured
state store so the admin service picks it up on its next start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivate(args[0])
		},
	}
}

func runActivate(dir string) error {
	cfg, err := config.Load(nil)
	if err != nil {
		return err
	}

	store, closeStore, err := app.BuildStore(cfg, make(map[string]health.Check), zap.NewNop())
	if err != nil {
		return err
	}
	defer closeStore()

	reg := theme.NewWithStore(viewpath.New(cfg.Themes.ViewPaths...), store)
	if err := reg.Scan(cfg.Themes.ThemesPath); err != nil {
		return err
	}

	key := strings.ToLower(dir)
	if err := reg.SetActive(key); err != nil {
		return fmt.Errorf("activate %s: %w", key, err)
	}

	info, err := reg.Active()
	if err != nil {
		return err
	}
	fmt.Printf("activated %s (%s)\n", info.Directory, info.Name)
	return nil
}
