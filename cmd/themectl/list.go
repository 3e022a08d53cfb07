package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/export"
	"github.com/salihkiraz/lumen-theme/theme"
)

func listCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the themes under the configured themes path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, csv, or json")

	return cmd
}

func runList(output string) error {
	themes, err := scanThemes()
	if err != nil {
		return err
	}

	switch output {
	case "table":
		return printTable(os.Stdout, themes)
	case "csv":
		return export.WriteCSV(os.Stdout, themes)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(themes)
	default:
		return fmt.Errorf("unknown output format %q, use table, csv, or json", output)
	}
}

func printTable(w io.Writer, themes []*theme.Info) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DIRECTORY\tNAME\tVERSION\tAUTHOR\tPARENT")
	for _, t := range themes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Directory, t.Name, t.Version, t.Author, t.Parent)
	}
	return tw.Flush()
}
