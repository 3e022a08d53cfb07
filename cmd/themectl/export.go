package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/export"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the theme inventory to a CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "themes.csv", "Output file, .csv or .xlsx")

	return cmd
}

func runExport(out string) error {
	themes, err := scanThemes()
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := export.WriteCSV(f, themes); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case ".xlsx":
		if err := export.WriteXLSX(out, themes); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q, use .csv or .xlsx", filepath.Ext(out))
	}

	fmt.Printf("wrote %d theme(s) to %s\n", len(themes), out)
	return nil
}
