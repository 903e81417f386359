// Package export renders entry history for external consumption.
package export

import (
	"fmt"
	"io"
	"strings"

	"heiyubudget/internal/core"
)

const csvHeader = "date,time,type,category,amount,notes"

// sanitizeField keeps the CSV single-token-per-column by replacing embedded
// commas with spaces. Fields are deliberately not quoted; downstream
// spreadsheet imports in the wild choke on mixed quoting more often than on
// lost commas.
func sanitizeField(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// WriteCSV writes the entries as comma-separated rows with a header line.
// Rows appear in the order given.
func WriteCSV(w io.Writer, entries []core.Entry) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		row := strings.Join([]string{
			e.CreatedAt.Format("2006-01-02"),
			e.CreatedAt.Format("15:04:05"),
			string(e.Type),
			sanitizeField(e.Category),
			sanitizeField(e.Amount),
			sanitizeField(e.Text),
		}, ",")
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}
