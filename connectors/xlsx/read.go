package xlsx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"opportunity-report/domain/opportunity"

	"github.com/xuri/excelize/v2"
)

// closeDateFormat is the text form the CSV input expects for CloseDate.
const closeDateFormat = "01/02/2006"

// LoadTable reads a worksheet of an xlsx workbook into a Table. The first
// sheet is used when sheet is empty. Cells are read raw so numbers keep full
// precision; CloseDate serials are turned back into MM/DD/YYYY text.
func LoadTable(path, sheet string, required ...string) (*opportunity.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &opportunity.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &opportunity.LoadError{Path: path, Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &opportunity.LoadError{Path: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, &opportunity.LoadError{Path: path, Err: fmt.Errorf("sheet %q is empty, header row expected", sheet)}
	}

	head := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		head[i] = strings.TrimSpace(h)
	}
	t := opportunity.NewTable(head)
	if missing := t.Missing(required...); len(missing) > 0 {
		return nil, &opportunity.LoadError{Path: path, Line: 1, Err: fmt.Errorf("missing column %s", strings.Join(missing, ", "))}
	}
	dateCol := -1
	for i, h := range head {
		if h == opportunity.ColCloseDate {
			dateCol = i
		}
	}
	for i, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		if dateCol >= 0 && dateCol < len(rec) {
			rec[dateCol] = closeDateText(rec[dateCol])
		}
		if err := t.Append(rec); err != nil {
			return nil, &opportunity.LoadError{Path: path, Line: i + 2, Err: err}
		}
	}
	return t, nil
}

// closeDateText converts an Excel date serial to MM/DD/YYYY and leaves any
// other value untouched.
func closeDateText(v string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || serial <= 0 {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format(closeDateFormat)
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
