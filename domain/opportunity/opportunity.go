package opportunity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Source columns of the opportunity export.
const (
	ColBusinessArea     = "Business Area"
	ColExecutionUnit    = "Execution_Unit__c"
	ColResponsibleUnit  = "Responsible_Business_Unit__c"
	ColCloseDate        = "CloseDate"
	ColPMStage          = "PM Stage"
	ColStageName        = "StageName"
	ColPlanningCategory = "Planning Category (Grouped)"
	ColAmount           = "Amount"
)

// Derived columns added while enriching.
const (
	ColBusinessAreaCalc = "Business Area (Calc)"
	ColFiscalPeriod     = "Fiscal Period_PPT"
	ColForecastCalc     = "Forecast (Calc)"
)

// NotAvailable is the sentinel the export uses for missing values.
const NotAvailable = "NA"

// IsMissing reports whether a cell holds no value: blank, NA or NaN.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NotAvailable || strings.EqualFold(s, "nan")
}

// RequiredColumns lists the source columns the report reads.
var RequiredColumns = []string{
	ColBusinessArea,
	ColExecutionUnit,
	ColResponsibleUnit,
	ColCloseDate,
	ColPMStage,
	ColStageName,
	ColPlanningCategory,
	ColAmount,
}

// Row is one opportunity record keyed by column name.
type Row map[string]string

// Amount parses the Amount column. Blank and NA amounts count as zero.
func (r Row) Amount() (decimal.Decimal, error) {
	return ParseAmount(r[ColAmount])
}

// Forecast parses the derived Forecast (Calc) column.
func (r Row) Forecast() (decimal.Decimal, error) {
	return ParseAmount(r[ColForecastCalc])
}

// ParseAmount reads a monetary cell.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Table is an ordered set of rows sharing the same ordered columns.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given header.
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// Append adds a row given its values in column order. Missing trailing
// values are left empty.
func (t *Table) Append(values []string) error {
	if len(values) > len(t.Columns) {
		return fmt.Errorf("row has %d fields, header has %d", len(values), len(t.Columns))
	}
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = ""
		}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is part of the header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Missing returns the columns of want that are absent from the header.
func (t *Table) Missing(want ...string) []string {
	var missing []string
	for _, c := range want {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// SetColumn computes a column for every row in place, appending it to the
// header when it does not exist yet.
func (t *Table) SetColumn(name string, fn func(Row) string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
	for _, r := range t.Rows {
		r[name] = fn(r)
	}
}

// Where returns a new table sharing the header and the retained rows.
func (t *Table) Where(keep func(Row) bool) *Table {
	out := NewTable(t.Columns)
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Records returns the rows as string slices in header order.
func (t *Table) Records() [][]string {
	res := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = r[c]
		}
		res = append(res, rec)
	}
	return res
}
