package svg

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"opportunity-report/domain/chart"
	"opportunity-report/domain/opportunity"

	"github.com/shopspring/decimal"
)

func sample() chart.Chart {
	return chart.Build([]opportunity.AggregateRecord{
		{BusinessArea: "TI CP", FiscalPeriod: "FY2024 Q2", PlanningCategory: "Order Forecast", Amount: decimal.NewFromInt(100), Forecast: decimal.NewFromInt(50)},
		{BusinessArea: "GS (SV)", FiscalPeriod: "FY2024 Q2", PlanningCategory: "Budget", Amount: decimal.RequireFromString("12.345"), Forecast: decimal.Zero},
	})
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<svg",
		"100.00", "150.00", "12.35",
		"TI CP - Budget", "TI CP - Actual", "GS (SV) - Budget",
		chart.DefaultTitle, chart.XLabel,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, chart.Build(nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "</svg>") {
		t.Errorf("incomplete document")
	}
}

func TestPlotLayout(t *testing.T) {
	p, err := Plot(sample())
	if err != nil {
		t.Fatal(err)
	}
	if !p.Legend.Top || !p.Legend.Left {
		t.Errorf("legend not in the upper left corner")
	}
	if want := 70 * math.Pi / 180; math.Abs(p.X.Tick.Label.Rotation-want) > 1e-9 {
		t.Errorf("tick rotation = %v, want %v", p.X.Tick.Label.Rotation, want)
	}
	if p.Y.Min > 0 || p.Y.Max < 150 {
		t.Errorf("y range = [%v, %v], want to cover [0, 150]", p.Y.Min, p.Y.Max)
	}
}

func TestPlotNegativeRange(t *testing.T) {
	c := chart.Build([]opportunity.AggregateRecord{
		{BusinessArea: "DI", FiscalPeriod: "FYNA QNA", PlanningCategory: "Budget", Amount: decimal.NewFromInt(-20), Forecast: decimal.NewFromInt(-5)},
	})
	p, err := Plot(c)
	if err != nil {
		t.Fatal(err)
	}
	if p.Y.Min > -25 || p.Y.Max < 0 {
		t.Errorf("y range = [%v, %v], want to cover [-25, 0]", p.Y.Min, p.Y.Max)
	}
}

func TestParseHex(t *testing.T) {
	got, err := parseHex("#1f77b4")
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: alpha(chart.Opacity)}); got != want {
		t.Errorf("parseHex = %v, want %v", got, want)
	}
	for _, bad := range []string{"", "#12", "#zzzzzz"} {
		if _, err := parseHex(bad); err == nil {
			t.Errorf("parseHex(%q) accepted", bad)
		}
	}
}
