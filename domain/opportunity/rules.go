package opportunity

import (
	lo "github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type set map[string]struct{}

func newSet(values ...string) set {
	return lo.SliceToMap(values, func(s string) (string, struct{}) { return s, struct{}{} })
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// Decision tables. Values are matched exactly.
var (
	// OpenStages are the PM Stage codes of opportunities still in play.
	OpenStages = newSet(">PM020", "Negotiation", "PM000", "PM010")
	// ForecastStageNames are the StageName values that count towards the forecast.
	ForecastStageNames = newSet("Bid Preparation", "Contract Negotiation", "Lead Management", "Opportunity Development", "Project Handover")

	gsExecutionUnits    = newSet("SE GS C", "SE GS D")
	gsServiceUnits      = newSet("SE GP G SV", "SE GP I SV")
	tiExecutionUnitArea = map[string]string{
		"SE TI STG": "TI STG",
		"SE TI EAD": "TI EAD",
		"SE TI SES": "TI SES",
		"SE TI CP":  "TI CP",
	}
)

// PlanningOrderForecast is the planning category whose amounts are forecast.
const PlanningOrderForecast = "Order Forecast"

// BusinessAreaCalc maps the raw area codes of a row to its reporting area.
// Rows that match no rule keep their Business Area.
func BusinessAreaCalc(r Row) string {
	area := r[ColBusinessArea]
	unit := r[ColExecutionUnit]
	switch area {
	case "GS":
		if gsExecutionUnits.has(unit) {
			if gsServiceUnits.has(r[ColResponsibleUnit]) {
				return "GS (SV)"
			}
			return "GS (NU)"
		}
	case "TI":
		if calc, ok := tiExecutionUnitArea[unit]; ok {
			return calc
		}
	}
	return area
}

// IsOpen reports whether the row's PM Stage is an open stage.
func IsOpen(r Row) bool {
	return OpenStages.has(r[ColPMStage])
}

// ForecastCalc returns the amount a row contributes to the forecast.
//
// The PM Stage alternative repeats the open filter, so after FilterOpen every
// Order Forecast row qualifies whatever its StageName.
func ForecastCalc(r Row) decimal.Decimal {
	if r[ColPlanningCategory] != PlanningOrderForecast {
		return decimal.Zero
	}
	if !ForecastStageNames.has(r[ColStageName]) && !OpenStages.has(r[ColPMStage]) {
		return decimal.Zero
	}
	amount, err := r.Amount()
	if err != nil {
		// Aggregate rejects the row on its Amount.
		return decimal.Zero
	}
	return amount
}

// Enrich adds Business Area (Calc) and Fiscal Period_PPT to every row.
func Enrich(t *Table) {
	t.SetColumn(ColBusinessAreaCalc, BusinessAreaCalc)
	t.SetColumn(ColFiscalPeriod, func(r Row) string { return FiscalPeriod(r[ColCloseDate]) })
}

// FilterOpen keeps the rows in an open stage.
func FilterOpen(t *Table) *Table {
	return t.Where(IsOpen)
}

// ApplyForecast adds Forecast (Calc) to every row.
func ApplyForecast(t *Table) {
	t.SetColumn(ColForecastCalc, func(r Row) string { return ForecastCalc(r).String() })
}
