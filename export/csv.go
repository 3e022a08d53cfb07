// export/csv.go

// Package export renders a theme inventory for ops reporting. The CLI
// writes the registry's themes as CSV for piping into other tools and
// as an Excel workbook for everyone else.
package export

import (
	"encoding/csv"
	"io"

	"github.com/salihkiraz/lumen-theme/theme"
)

// Header is the inventory column set shared by the CSV and Excel writers.
var Header = []string{"directory", "name", "version", "author", "parent", "description", "views path"}

// Rows renders one row per theme in registry order, without the header.
func Rows(themes []*theme.Info) [][]string {
	rows := make([][]string, 0, len(themes))
	for _, info := range themes {
		rows = append(rows, []string{
			info.Directory,
			info.Name,
			info.Version,
			info.Author,
			info.Parent,
			info.Description,
			info.Path,
		})
	}
	return rows
}

// WriteCSV writes the header and one row per theme.
func WriteCSV(w io.Writer, themes []*theme.Info) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range Rows(themes) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
