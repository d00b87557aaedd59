package xlsx

import (
	"fmt"
	"os"
	"path/filepath"

	"opportunity-report/domain/chart"
	"opportunity-report/domain/opportunity"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the report workbook.
const (
	ChartSheet     = "Chart"
	AggregateSheet = "Aggregates"
)

// WriteReport saves a workbook holding the per-area totals with a native
// stacked column chart, plus the aggregate records it was built from.
func WriteReport(path string, c chart.Chart, records []opportunity.AggregateRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ChartSheet); err != nil {
		return err
	}
	header := []interface{}{chart.XLabel, "Budget", "Actual (increment)", "Actual"}
	if err := f.SetSheetRow(ChartSheet, "A1", &header); err != nil {
		return err
	}
	for i, b := range c.Bars {
		row := []interface{}{
			b.Area,
			b.Budget.InexactFloat64(),
			b.Upper.Height.InexactFloat64(),
			b.Actual.InexactFloat64(),
		}
		if err := f.SetSheetRow(ChartSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(ChartSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(ChartSheet, "B", "D", 16); err != nil {
		return err
	}
	if len(c.Bars) > 0 {
		if err := f.AddChart(ChartSheet, "F2", stackedChart(c)); err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	if _, err := f.NewSheet(AggregateSheet); err != nil {
		return err
	}
	aggHeader := []interface{}{
		opportunity.ColBusinessAreaCalc, opportunity.ColFiscalPeriod, opportunity.ColPlanningCategory,
		opportunity.ColAmount, opportunity.ColForecastCalc,
	}
	if err := f.SetSheetRow(AggregateSheet, "A1", &aggHeader); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{r.BusinessArea, r.FiscalPeriod, r.PlanningCategory, r.Amount.InexactFloat64(), r.Forecast.InexactFloat64()}
		if err := f.SetSheetRow(AggregateSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func stackedChart(c chart.Chart) *excelize.Chart {
	last := len(c.Bars) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", ChartSheet, last)
	return &excelize.Chart{
		Type: excelize.ColStacked,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", ChartSheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", ChartSheet, last),
				Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F77B4"}},
			},
			{
				Name:       fmt.Sprintf("%s!$C$1", ChartSheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", ChartSheet, last),
				Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF7F0E"}},
			},
		},
		Title:     []excelize.RichTextRun{{Text: c.Title}},
		Legend:    excelize.ChartLegend{Position: "left"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true, NumFmt: excelize.ChartNumFmt{CustomNumFmt: "0.00"}},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: c.XLabel}}},
		YAxis:     excelize.ChartAxis{MajorGridLines: true, Title: []excelize.RichTextRun{{Text: c.YLabel}}},
		Dimension: excelize.ChartDimension{Width: chart.Width, Height: chart.Height},
	}
}
