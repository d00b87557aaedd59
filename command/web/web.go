package web

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"

	cmdchart "opportunity-report/command/chart"
	"opportunity-report/connectors/config"
	ccsv "opportunity-report/connectors/csv"
	"opportunity-report/connectors/svg"
	dchart "opportunity-report/domain/chart"

	"github.com/labstack/echo/v4"
)

// Run starts a small Echo web server displaying the chart and exposing the
// calculated CSVs as JSON.
//
// Usage:
//
//	opportunity-report web [-addr :8080] [-data ./data]
//
// Endpoints:
//
//	GET /                 -> HTML page with the chart and the per-area totals
//	GET /chart.svg        -> chart rendered from <data>/opportunity_aggregate.csv
//	GET /api/chart        -> chart model (bars, segments, annotations)
//	GET /api/aggregates   -> <data>/opportunity_aggregate.csv
//	GET /api/open         -> <data>/opportunity_open.csv
//	GET /api/enriched     -> <data>/opportunity_enriched.csv
func Run(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Web.Addr, "http listen address (host:port)")
	dataDir := fs.String("data", cfg.Output.DataDir, "directory containing CSV files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return NewServer(*dataDir, cfg.Output.ChartTitle).Start(*addr)
}

// NewServer builds the Echo instance serving files from dataDir.
func NewServer(dataDir, title string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Helper to register a GET endpoint serving a specific CSV file
	serveCSV := func(route string, filename string) {
		e.GET(route, func(c echo.Context) error {
			path := filepath.Join(dataDir, filename)
			rows, err := readCSV(path)
			if err != nil {
				return fileError(c, path, err)
			}
			return c.JSON(http.StatusOK, rows)
		})
	}

	serveCSV("/api/aggregates", ccsv.AggregateFile)
	serveCSV("/api/open", ccsv.OpenFile)
	serveCSV("/api/enriched", ccsv.EnrichedFile)

	loadChart := func() (dchart.Chart, string, error) {
		path := filepath.Join(dataDir, ccsv.AggregateFile)
		records, err := ccsv.ReadAggregates(path)
		if err != nil {
			return dchart.Chart{}, path, err
		}
		return cmdchart.Build(records, title), path, nil
	}

	e.GET("/api/chart", func(c echo.Context) error {
		ch, path, err := loadChart()
		if err != nil {
			return fileError(c, path, err)
		}
		return c.JSON(http.StatusOK, ch)
	})

	e.GET("/chart.svg", func(c echo.Context) error {
		ch, path, err := loadChart()
		if err != nil {
			return fileError(c, path, err)
		}
		var buf bytes.Buffer
		if err := svg.Render(&buf, ch); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
	})

	e.GET("/", func(c echo.Context) error {
		ch, path, err := loadChart()
		if err != nil {
			return fileError(c, path, err)
		}
		var buf bytes.Buffer
		if err := svg.Render(&buf, ch); err != nil {
			return err
		}
		return c.HTML(http.StatusOK, page(ch, buf.String()))
	})

	return e
}

func fileError(c echo.Context, path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":   "file not found",
			"path":    path,
			"message": "CSV file is missing, run calculate first",
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{
		"error":   err.Error(),
		"path":    path,
		"message": "failed to read CSV",
	})
}

// readCSV loads a CSV file and returns a slice of objects keyed by headers.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ccsv.ReadRows(f)
}

func page(ch dchart.Chart, chartSVG string) string {
	var rows bytes.Buffer
	for _, b := range ch.Bars {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(b.Area), b.Budget.StringFixed(2), b.Actual.StringFixed(2))
	}
	return fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>%[1]s</title>
<style>body{font-family:sans-serif;margin:2em}table{border-collapse:collapse}td,th{padding:4px 12px;border-bottom:1px solid #ddd;text-align:right}td:first-child,th:first-child{text-align:left}</style>
</head>
<body>
%[2]s
<table>
<tr><th>%[3]s</th><th>Budget</th><th>Actual</th></tr>
%[4]s</table>
</body>
</html>
`, html.EscapeString(ch.Title), chartSVG, html.EscapeString(ch.XLabel), rows.String())
}
