package calculate

import (
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"

	"opportunity-report/connectors/config"
	ccsv "opportunity-report/connectors/csv"
	"opportunity-report/connectors/input"
	"opportunity-report/domain/opportunity"
)

// Run executes the calculate command.
//
// Usage:
//
//	opportunity-report calculate [-in export.csv] [-sheet name] [-data ./data]
//
// Outputs (in the data directory):
//
//	opportunity_enriched.csv   all rows with Business Area (Calc) and Fiscal Period_PPT
//	opportunity_open.csv       open rows with Forecast (Calc)
//	opportunity_aggregate.csv  sums per (area, fiscal period, planning category)
func Run(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	in := fs.String("in", cfg.Input.Path, "opportunity export (.csv or .xlsx)")
	sheet := fs.String("sheet", cfg.Input.Sheet, "worksheet name for .xlsx input (default first sheet)")
	dataDir := fs.String("data", cfg.Output.DataDir, "output directory for CSV files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("calculate: unexpected arguments %v", fs.Args())
	}
	_, err := Calculate(*in, *sheet, *dataDir)
	return err
}

// Calculate loads the export, runs the pipeline and writes the intermediate
// and aggregate CSVs. It returns the aggregate records.
func Calculate(in, sheet, dataDir string) ([]opportunity.AggregateRecord, error) {
	slog.Info("calculate.start", "input", in, "data", dataDir)
	table, err := input.Load(in, sheet)
	if err != nil {
		slog.Error("calculate.load.error", "input", in, "error", err)
		return nil, err
	}

	open, records, err := opportunity.Run(table)
	if err != nil {
		slog.Error("calculate.pipeline.error", "error", err)
		return nil, fmt.Errorf("calculate %s: %w", in, err)
	}
	slog.Info("calculate.filtered", "rows", table.Len(), "open", open.Len())

	outputs := []struct {
		name  string
		write func(string) error
	}{
		{ccsv.EnrichedFile, func(p string) error { return ccsv.WriteTable(p, table) }},
		{ccsv.OpenFile, func(p string) error { return ccsv.WriteTable(p, open) }},
		{ccsv.AggregateFile, func(p string) error { return ccsv.WriteAggregates(p, records) }},
	}
	for _, o := range outputs {
		path := filepath.Join(dataDir, o.name)
		if err := o.write(path); err != nil {
			slog.Error("calculate.write.error", "path", path, "error", err)
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
	}

	slog.Info("calculate.done", "groups", len(records))
	return records, nil
}
