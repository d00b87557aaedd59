package cmdimport

import (
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"opportunity-report/connectors/config"
	ccsv "opportunity-report/connectors/csv"
	"opportunity-report/connectors/xlsx"
	"opportunity-report/domain/opportunity"
)

// Run converts a spreadsheet export into the CSV input read by calculate.
//
// Usage:
//
//	opportunity-report import -xlsx export.xlsx [-sheet name] [-out export.csv]
func Run(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	src := fs.String("xlsx", "", "workbook to convert (defaults to input.path when it is an .xlsx)")
	sheet := fs.String("sheet", cfg.Input.Sheet, "worksheet name (default first sheet)")
	out := fs.String("out", "", "CSV file to write (default input.path with a .csv extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *src == "" && strings.EqualFold(filepath.Ext(cfg.Input.Path), ".xlsx") {
		*src = cfg.Input.Path
	}
	if *src == "" {
		slog.Error("import.validation.error", "reason", "missing -xlsx")
		return fmt.Errorf("import: -xlsx is required")
	}
	if *out == "" {
		*out = DefaultOut(cfg.Input.Path)
	}
	return Import(*src, *sheet, *out)
}

// DefaultOut returns input with its extension replaced by .csv.
func DefaultOut(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
}

// Import reads a worksheet and writes it unchanged, apart from date cells,
// as CSV.
func Import(src, sheet, out string) error {
	slog.Info("import.start", "xlsx", src, "sheet", sheet)
	t, err := xlsx.LoadTable(src, sheet, opportunity.RequiredColumns...)
	if err != nil {
		slog.Error("import.load.error", "error", err)
		return err
	}
	if err := ccsv.WriteTable(out, t); err != nil {
		slog.Error("import.write.error", "path", out, "error", err)
		return fmt.Errorf("write %s: %w", out, err)
	}
	slog.Info("import.done", "rows", t.Len(), "out", out)
	return nil
}
