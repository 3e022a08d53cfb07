package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/theme"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every theme manifest under the themes path",
		Long: `Validate reads every theme folder under the themes path and reports
manifests that are unreadable, unparseable, or missing a required
attribute. Where a scan stops at the first bad manifest, validate
keeps going and reports them all. The exit status is non-zero when
any problem is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate()
		},
	}
}

func runValidate() error {
	cfg, err := config.Load(nil)
	if err != nil {
		return err
	}

	problems, err := theme.Lint(cfg.Themes.ThemesPath)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		fmt.Println("all manifests valid")
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "%s: %v\n", p.Dir, p.Err)
	}
	return fmt.Errorf("%d theme folder(s) failed validation", len(problems))
}
