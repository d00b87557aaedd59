package chart

import (
	"testing"

	"opportunity-report/domain/opportunity"

	"github.com/shopspring/decimal"
)

func rec(area, period, category string, amount, forecast int64) opportunity.AggregateRecord {
	return opportunity.AggregateRecord{
		BusinessArea:     area,
		FiscalPeriod:     period,
		PlanningCategory: category,
		Amount:           decimal.NewFromInt(amount),
		Forecast:         decimal.NewFromInt(forecast),
	}
}

func TestBuildStacksBudgetAndActual(t *testing.T) {
	c := Build([]opportunity.AggregateRecord{
		rec("TI CP", "FY2024 Q2", "Budget", 60, 0),
		rec("TI CP", "FY2024 Q3", "Order Forecast", 40, 50),
	})
	if len(c.Bars) != 1 {
		t.Fatalf("bars = %d, want 1", len(c.Bars))
	}
	b := c.Bars[0]
	if !b.Lower.Height.Equal(decimal.NewFromInt(100)) {
		t.Errorf("budget height = %s, want 100", b.Lower.Height)
	}
	if !b.Upper.Bottom.Equal(decimal.NewFromInt(100)) || !b.Upper.Height.Equal(decimal.NewFromInt(50)) {
		t.Errorf("actual segment = %+v, want bottom 100 height 50", b.Upper)
	}
	if !b.Upper.Top().Equal(decimal.NewFromInt(150)) {
		t.Errorf("total height = %s, want 150", b.Upper.Top())
	}
	if b.Lower.Label != "TI CP - Budget" || b.Upper.Label != "TI CP - Actual" {
		t.Errorf("labels = %q, %q", b.Lower.Label, b.Upper.Label)
	}
	ann := b.Annotations()
	if ann[0].Text != "100.00" || ann[1].Text != "150.00" {
		t.Errorf("annotations = %+v", ann)
	}
}

func TestBuildAreaOrderAndColors(t *testing.T) {
	c := Build([]opportunity.AggregateRecord{
		rec("GS (SV)", "FY2025 Q1", "Budget", 1, 0),
		rec("AA", "FY2025 Q1", "Budget", 2, 0),
		rec("GS (SV)", "FY2025 Q2", "Budget", 3, 0),
	})
	if len(c.Bars) != 2 {
		t.Fatalf("bars = %d, want 2", len(c.Bars))
	}
	if c.Bars[0].Area != "GS (SV)" || c.Bars[1].Area != "AA" {
		t.Errorf("area order = %q, %q", c.Bars[0].Area, c.Bars[1].Area)
	}
	if c.Bars[1].X != 1 {
		t.Errorf("x = %d, want 1", c.Bars[1].X)
	}
	if !c.Bars[0].Budget.Equal(decimal.NewFromInt(4)) {
		t.Errorf("budget = %s, want 4", c.Bars[0].Budget)
	}
	segs := c.Segments()
	if len(segs) != 4 || segs[0].Color != palette[0] || segs[3].Color != palette[3] {
		t.Errorf("segments = %+v", segs)
	}
}

func TestBuildEmpty(t *testing.T) {
	c := Build(nil)
	if len(c.Bars) != 0 {
		t.Fatalf("bars = %d", len(c.Bars))
	}
	lo, hi := c.Range()
	if !lo.IsZero() || !hi.IsZero() {
		t.Errorf("range = %s..%s", lo, hi)
	}
}

func TestRangeWithNegativeAmounts(t *testing.T) {
	c := Build([]opportunity.AggregateRecord{rec("X", "FY2024 Q2", "Budget", -20, 5), rec("Y", "FY2024 Q2", "Budget", 30, 10)})
	lo, hi := c.Range()
	if !lo.Equal(decimal.NewFromInt(-20)) || !hi.Equal(decimal.NewFromInt(40)) {
		t.Errorf("range = %s..%s, want -20..40", lo, hi)
	}
}
