package report

import (
	"flag"
	"os"
	"strings"

	"opportunity-report/command/calculate"
	cmdchart "opportunity-report/command/chart"
	"opportunity-report/connectors/config"
)

// Run loads the export, aggregates the open opportunities and renders the
// chart in one pass.
//
// Usage:
//
//	opportunity-report report [-in export.csv] [-sheet name] [-data ./data] [-format svg,xlsx,text] [-title text]
func Run(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	in := fs.String("in", cfg.Input.Path, "opportunity export (.csv or .xlsx)")
	sheet := fs.String("sheet", cfg.Input.Sheet, "worksheet name for .xlsx input")
	dataDir := fs.String("data", cfg.Output.DataDir, "output directory")
	formats := fs.String("format", strings.Join(cfg.Output.Formats, ","), "comma-separated outputs: svg, xlsx, text")
	title := fs.String("title", cfg.Output.ChartTitle, "chart title (default built-in)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	records, err := calculate.Calculate(*in, *sheet, *dataDir)
	if err != nil {
		return err
	}
	return cmdchart.Render(records, cmdchart.Options{
		DataDir: *dataDir,
		Formats: cmdchart.SplitFormats(*formats),
		Title:   *title,
		Stdout:  os.Stdout,
	})
}
