package input

import (
	"log/slog"
	"path/filepath"
	"strings"

	ccsv "opportunity-report/connectors/csv"
	"opportunity-report/connectors/xlsx"
	"opportunity-report/domain/opportunity"
)

// Load reads the opportunity export at path, choosing the reader from the
// extension. sheet only applies to workbooks.
func Load(path, sheet string) (*opportunity.Table, error) {
	var (
		t   *opportunity.Table
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		t, err = xlsx.LoadTable(path, sheet, opportunity.RequiredColumns...)
	} else {
		t, err = ccsv.LoadTable(path, opportunity.RequiredColumns...)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("input.loaded", "path", path, "rows", t.Len(), "columns", len(t.Columns))
	return t, nil
}
