package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"opportunity-report/domain/opportunity"
)

// File names written into the data directory.
const (
	EnrichedFile  = "opportunity_enriched.csv"
	OpenFile      = "opportunity_open.csv"
	AggregateFile = "opportunity_aggregate.csv"
)

// AggregateHeader is the header of the aggregate CSV.
var AggregateHeader = []string{
	opportunity.ColBusinessAreaCalc,
	opportunity.ColFiscalPeriod,
	opportunity.ColPlanningCategory,
	opportunity.ColAmount,
	opportunity.ColForecastCalc,
}

// WriteTable writes t with its header, creating parent directories.
func WriteTable(path string, t *opportunity.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(t.Records()); err != nil {
		return err
	}
	return f.Close()
}

// WriteAggregates writes aggregate records, one line per group.
func WriteAggregates(path string, records []opportunity.AggregateRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write(AggregateHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.BusinessArea,
			r.FiscalPeriod,
			r.PlanningCategory,
			r.Amount.String(),
			r.Forecast.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadAggregates loads a file written by WriteAggregates, keeping its order.
func ReadAggregates(path string) ([]opportunity.AggregateRecord, error) {
	t, err := LoadTable(path, AggregateHeader...)
	if err != nil {
		return nil, err
	}
	res := make([]opportunity.AggregateRecord, 0, t.Len())
	for i, row := range t.Rows {
		amount, err := row.Amount()
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		forecast, err := row.Forecast()
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		res = append(res, opportunity.AggregateRecord{
			BusinessArea:     row[opportunity.ColBusinessAreaCalc],
			FiscalPeriod:     row[opportunity.ColFiscalPeriod],
			PlanningCategory: row[opportunity.ColPlanningCategory],
			Amount:           amount,
			Forecast:         forecast,
		})
	}
	return res, nil
}

// ReadRows loads any CSV file as a slice of objects keyed by headers.
// Values are kept as strings to avoid lossy type coercion.
func ReadRows(r io.Reader) ([]map[string]string, error) {
	t, err := ReadTable(r)
	if err != nil {
		var le *opportunity.LoadError
		if errors.As(err, &le) {
			return nil, le.Err
		}
		return nil, err
	}
	res := make([]map[string]string, 0, t.Len())
	for _, row := range t.Rows {
		res = append(res, map[string]string(row))
	}
	return res, nil
}
