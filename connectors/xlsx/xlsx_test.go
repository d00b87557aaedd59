package xlsx

import (
	"errors"
	"path/filepath"
	"testing"

	"opportunity-report/domain/chart"
	"opportunity-report/domain/opportunity"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "in.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Business Area", "CloseDate", "Amount"},
		{"GS", 45366, 100.5},
		{"TI", "NA", 7},
		{nil, nil, nil},
		{"DI", "11/05/2024"},
	})
	tbl, err := LoadTable(path, "", opportunity.ColAmount)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Len())
	}
	if got := tbl.Rows[0][opportunity.ColCloseDate]; got != "03/15/2024" {
		t.Errorf("serial date = %q, want 03/15/2024", got)
	}
	if got := tbl.Rows[0][opportunity.ColAmount]; got != "100.5" {
		t.Errorf("amount = %q", got)
	}
	if got := tbl.Rows[1][opportunity.ColCloseDate]; got != "NA" {
		t.Errorf("sentinel = %q", got)
	}
	if got := tbl.Rows[2][opportunity.ColAmount]; got != "" {
		t.Errorf("short row amount = %q, want blank", got)
	}
}

func TestLoadTableErrors(t *testing.T) {
	var le *opportunity.LoadError
	if _, err := LoadTable(filepath.Join(t.TempDir(), "absent.xlsx"), ""); !errors.As(err, &le) {
		t.Errorf("missing file: %v", err)
	}
	path := writeWorkbook(t, [][]interface{}{{"Business Area"}})
	if _, err := LoadTable(path, "", opportunity.ColAmount); !errors.As(err, &le) || le.Line != 1 {
		t.Errorf("missing column: %v", err)
	}
	if _, err := LoadTable(path, "Nope"); !errors.As(err, &le) {
		t.Errorf("unknown sheet: %v", err)
	}
}

func TestWriteReport(t *testing.T) {
	records := []opportunity.AggregateRecord{
		{BusinessArea: "TI CP", FiscalPeriod: "FY2024 Q2", PlanningCategory: "Order Forecast", Amount: decimal.NewFromInt(100), Forecast: decimal.NewFromInt(50)},
	}
	c := chart.Build(records)
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	if err := WriteReport(path, c, records); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(ChartSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "TI CP" || rows[1][1] != "100" || rows[1][2] != "50" || rows[1][3] != "150" {
		t.Errorf("chart sheet = %v", rows)
	}
	agg, err := f.GetRows(AggregateSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(agg) != 2 || agg[1][1] != "FY2024 Q2" {
		t.Errorf("aggregate sheet = %v", agg)
	}
}

func TestWriteReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteReport(path, chart.Build(nil), nil); err != nil {
		t.Fatal(err)
	}
}
