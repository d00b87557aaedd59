package chart

import (
	"opportunity-report/domain/opportunity"

	lo "github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Default styling of the budget/actual report.
const (
	DefaultTitle  = "Budget and Actual by Business Area (Open Opportunities)"
	XLabel        = "Business Area"
	YLabel        = "Amount"
	Width         = 1000
	Height        = 600
	Opacity       = 0.7
	GridOpacity   = 0.5
	LabelRotation = 70
)

// palette is the category-10 cycle; every drawn segment takes the next color.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Segment is one stacked piece of a bar.
type Segment struct {
	Label  string          `json:"label"`
	Bottom decimal.Decimal `json:"bottom"`
	Height decimal.Decimal `json:"height"`
	Color  string          `json:"color"`
}

// Top returns the cumulative value at the upper edge of the segment.
func (s Segment) Top() decimal.Decimal { return s.Bottom.Add(s.Height) }

// Bar is the stacked budget/actual column of one business area.
type Bar struct {
	Area   string          `json:"area"`
	X      int             `json:"x"`
	Budget decimal.Decimal `json:"budget"`
	Actual decimal.Decimal `json:"actual"`
	Lower  Segment         `json:"lower"`
	Upper  Segment         `json:"upper"`
}

// Annotation is a value label drawn above a segment boundary.
type Annotation struct {
	X     int             `json:"x"`
	Value decimal.Decimal `json:"value"`
	Text  string          `json:"text"`
}

// Annotations returns the budget and actual labels of the bar.
func (b Bar) Annotations() []Annotation {
	return []Annotation{
		{X: b.X, Value: b.Budget, Text: b.Budget.StringFixed(2)},
		{X: b.X, Value: b.Actual, Text: b.Actual.StringFixed(2)},
	}
}

// Chart is a renderer-agnostic description of the report.
type Chart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// Build computes one bar per business area, in the order areas first appear
// in records.
func Build(records []opportunity.AggregateRecord) Chart {
	areas := lo.Uniq(lo.Map(records, func(r opportunity.AggregateRecord, _ int) string { return r.BusinessArea }))
	c := Chart{Title: DefaultTitle, XLabel: XLabel, YLabel: YLabel, Bars: make([]Bar, 0, len(areas))}
	for i, area := range areas {
		rows := lo.Filter(records, func(r opportunity.AggregateRecord, _ int) bool { return r.BusinessArea == area })
		budget := lo.Reduce(rows, func(acc decimal.Decimal, r opportunity.AggregateRecord, _ int) decimal.Decimal {
			return acc.Add(r.Amount)
		}, decimal.Zero)
		actual := lo.Reduce(rows, func(acc decimal.Decimal, r opportunity.AggregateRecord, _ int) decimal.Decimal {
			return acc.Add(r.Amount.Add(r.Forecast))
		}, decimal.Zero)
		c.Bars = append(c.Bars, Bar{
			Area:   area,
			X:      i,
			Budget: budget,
			Actual: actual,
			Lower:  Segment{Label: area + " - Budget", Bottom: decimal.Zero, Height: budget, Color: palette[(2*i)%len(palette)]},
			Upper:  Segment{Label: area + " - Actual", Bottom: budget, Height: actual.Sub(budget), Color: palette[(2*i+1)%len(palette)]},
		})
	}
	return c
}

// Segments returns every segment in drawing order.
func (c Chart) Segments() []Segment {
	return lo.FlatMap(c.Bars, func(b Bar, _ int) []Segment { return []Segment{b.Lower, b.Upper} })
}

// Range returns the smallest and largest values the chart must show,
// always including zero.
func (c Chart) Range() (lowest, highest decimal.Decimal) {
	lowest, highest = decimal.Zero, decimal.Zero
	for _, s := range c.Segments() {
		lowest = decimal.Min(lowest, s.Bottom, s.Top())
		highest = decimal.Max(highest, s.Bottom, s.Top())
	}
	return lowest, highest
}
