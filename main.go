package main

import (
	"fmt"
	"log/slog"
	"os"

	cmdcalculate "opportunity-report/command/calculate"
	cmdchart "opportunity-report/command/chart"
	cmdimport "opportunity-report/command/import"
	cmdreport "opportunity-report/command/report"
	cmdweb "opportunity-report/command/web"
	"opportunity-report/connectors/config"
)

// Budget vs actual report over open sales opportunities.
// Usage:
//   opportunity-report report [-in SEWorkForJupyter.csv] [-data ./data] [-format svg,xlsx,text]
// Notes:
// - calculate enriches the export (Business Area (Calc), Fiscal Period_PPT), keeps open stages,
//   computes Forecast (Calc) and sums Amount/Forecast per area, fiscal period and planning category.
// - chart renders one stacked Budget/Actual bar per business area from the aggregate CSV.
// - web serves the same chart and the CSVs as JSON.

const usage = `usage: opportunity-report import -xlsx <file> [-sheet <name>] [-out <csv>] | calculate [-in <file>] [-data <dir>] | chart [-data <dir>] [-format svg,xlsx,text] | report [-title <text>] | web [-addr :8080] [-data <dir>]
ENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml); REPORT_INPUT, REPORT_DATA_DIR, REPORT_ADDR, LOG_LEVEL override it`

type command func(cfg *config.Config, args []string) error

var commands = map[string]command{
	"import":    cmdimport.Run,
	"calculate": cmdcalculate.Run,
	"chart":     cmdchart.Run,
	"report":    cmdreport.Run,
	"web":       cmdweb.Run,
}

func main() {
	args := os.Args
	// Initialize slog logger (text to stderr); the level is settled once the config is resolved
	level := new(slog.LevelVar)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	run, ok := commands[args[1]]
	if !ok {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if l, err := config.ParseLevel(cfg.LogLevel); err == nil {
		level.Set(l)
	}

	rest := append([]string{}, args[2:]...)
	if err := run(cfg, rest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
