package opportunity

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AggregateRecord holds the sums of one (area, period, category) group.
type AggregateRecord struct {
	BusinessArea     string
	FiscalPeriod     string
	PlanningCategory string
	Amount           decimal.Decimal
	Forecast         decimal.Decimal
}

type groupKey struct {
	area, period, category string
}

// Aggregate groups enriched open rows by Business Area (Calc), Fiscal
// Period_PPT and Planning Category (Grouped), summing Amount and Forecast
// (Calc). Rows without a business area or planning category belong to no
// group and are left out. Groups are returned sorted by key.
func Aggregate(t *Table) ([]AggregateRecord, error) {
	if missing := t.Missing(ColBusinessAreaCalc, ColFiscalPeriod, ColForecastCalc); len(missing) > 0 {
		return nil, fmt.Errorf("aggregate: table not enriched, missing %v", missing)
	}
	groups := map[groupKey]*AggregateRecord{}
	for i, r := range t.Rows {
		if IsMissing(r[ColBusinessAreaCalc]) || IsMissing(r[ColPlanningCategory]) {
			continue
		}
		amount, err := r.Amount()
		if err != nil {
			return nil, fmt.Errorf("aggregate: row %d: %w", i+1, err)
		}
		forecast, err := r.Forecast()
		if err != nil {
			return nil, fmt.Errorf("aggregate: row %d: forecast: %w", i+1, err)
		}
		k := groupKey{r[ColBusinessAreaCalc], r[ColFiscalPeriod], r[ColPlanningCategory]}
		g, ok := groups[k]
		if !ok {
			g = &AggregateRecord{BusinessArea: k.area, FiscalPeriod: k.period, PlanningCategory: k.category}
			groups[k] = g
		}
		g.Amount = g.Amount.Add(amount)
		g.Forecast = g.Forecast.Add(forecast)
	}

	out := make([]AggregateRecord, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.BusinessArea != b.BusinessArea {
			return a.BusinessArea < b.BusinessArea
		}
		if a.FiscalPeriod != b.FiscalPeriod {
			return a.FiscalPeriod < b.FiscalPeriod
		}
		return a.PlanningCategory < b.PlanningCategory
	})
	return out, nil
}

// Run executes the whole pipeline on a loaded table. The table is enriched
// in place; the returned table holds the open rows with their forecast.
func Run(t *Table) (*Table, []AggregateRecord, error) {
	if missing := t.Missing(RequiredColumns...); len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing columns %v", missing)
	}
	Enrich(t)
	open := FilterOpen(t)
	ApplyForecast(open)
	records, err := Aggregate(open)
	if err != nil {
		return nil, nil, err
	}
	return open, records, nil
}
