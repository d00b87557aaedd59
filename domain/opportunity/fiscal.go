package opportunity

import (
	"fmt"
	"time"
)

// closeDateLayout accepts MM/DD/YYYY as well as unpadded month and day.
const closeDateLayout = "1/2/2006"

// UnknownPeriod is the label of rows without a usable close date.
const UnknownPeriod = "FYNA QNA"

// FiscalPeriod returns the "FY<year> Q<quarter>" label of a close date.
// The fiscal year starts in October.
func FiscalPeriod(closeDate string) string {
	if closeDate == "" || closeDate == NotAvailable {
		return UnknownPeriod
	}
	t, err := time.Parse(closeDateLayout, closeDate)
	if err != nil {
		return UnknownPeriod
	}
	year, quarter := FiscalQuarter(monthEnd(t))
	return fmt.Sprintf("FY%d Q%d", year, quarter)
}

// monthEnd returns the last day of t's month.
func monthEnd(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}

// FiscalQuarter returns the fiscal year and quarter containing t.
func FiscalQuarter(t time.Time) (year, quarter int) {
	switch t.Month() {
	case time.October, time.November, time.December:
		return t.Year() + 1, 1
	case time.January, time.February, time.March:
		return t.Year(), 2
	case time.April, time.May, time.June:
		return t.Year(), 3
	default:
		return t.Year(), 4
	}
}
