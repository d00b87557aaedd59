package chart

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"opportunity-report/connectors/config"
	ccsv "opportunity-report/connectors/csv"
	"opportunity-report/connectors/svg"
	"opportunity-report/connectors/terminal"
	"opportunity-report/connectors/xlsx"
	dchart "opportunity-report/domain/chart"
	"opportunity-report/domain/opportunity"
)

// Files written into the data directory.
const (
	SVGFile  = "chart.svg"
	XLSXFile = "report.xlsx"
)

// ErrUnknownFormat is returned for a chart format with no renderer.
var ErrUnknownFormat = errors.New("unknown chart format")

// Run executes the chart command: it reads the aggregate CSV written by
// calculate and renders the budget/actual chart.
//
// Usage:
//
//	opportunity-report chart [-data ./data] [-format svg,xlsx,text] [-title text]
func Run(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	dataDir := fs.String("data", cfg.Output.DataDir, "directory holding opportunity_aggregate.csv")
	formats := fs.String("format", strings.Join(cfg.Output.Formats, ","), "comma-separated outputs: svg, xlsx, text")
	title := fs.String("title", cfg.Output.ChartTitle, "chart title (default built-in)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := ccsv.ReadAggregates(filepath.Join(*dataDir, ccsv.AggregateFile))
	if err != nil {
		slog.Error("chart.load.error", "error", err)
		return err
	}
	return Render(records, Options{DataDir: *dataDir, Formats: SplitFormats(*formats), Title: *title, Stdout: os.Stdout})
}

// Options selects where and how the chart is rendered.
type Options struct {
	DataDir string
	Formats []string
	Title   string
	Stdout  io.Writer
}

// SplitFormats parses a comma-separated format list.
func SplitFormats(s string) []string {
	return config.NormalizeFormats(strings.Split(s, ","))
}

// Build returns the chart model for records with an optional title override.
func Build(records []opportunity.AggregateRecord, title string) dchart.Chart {
	c := dchart.Build(records)
	if title != "" {
		c.Title = title
	}
	return c
}

// Render writes every requested format.
func Render(records []opportunity.AggregateRecord, opts Options) error {
	c := Build(records, opts.Title)
	for _, format := range opts.Formats {
		var err error
		switch format {
		case "svg":
			err = writeFile(filepath.Join(opts.DataDir, SVGFile), func(w io.Writer) error { return svg.Render(w, c) })
		case "xlsx":
			path := filepath.Join(opts.DataDir, XLSXFile)
			err = xlsx.WriteReport(path, c, records)
			if err == nil {
				slog.Info("chart.render.done", "format", format, "path", path)
			}
		case "text":
			err = terminal.Render(opts.Stdout, c)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownFormat, format)
		}
		if err != nil {
			slog.Error("chart.render.error", "format", format, "error", err)
			return err
		}
	}
	slog.Info("chart.done", "areas", len(c.Bars))
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("chart.render.done", "path", path)
	return nil
}
