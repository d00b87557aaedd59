package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"opportunity-report/domain/opportunity"
)

const utf8BOM = "\ufeff"

// LoadTable reads a comma-separated file with a header row. Every failure
// is reported as *opportunity.LoadError.
func LoadTable(path string, required ...string) (*opportunity.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &opportunity.LoadError{Path: path, Err: err}
	}
	defer f.Close()
	t, err := ReadTable(f, required...)
	if err != nil {
		var le *opportunity.LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &opportunity.LoadError{Path: path, Err: err}
	}
	return t, nil
}

// ReadTable parses CSV content from r. Rows must have as many fields as the
// header.
func ReadTable(r io.Reader, required ...string) (*opportunity.Table, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &opportunity.LoadError{Err: errors.New("empty file, header row expected")}
	}
	if err != nil {
		return nil, parseError(err)
	}
	for i, h := range head {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		head[i] = strings.TrimSpace(h)
	}
	t := opportunity.NewTable(head)
	if missing := t.Missing(required...); len(missing) > 0 {
		return nil, &opportunity.LoadError{Line: 1, Err: fmt.Errorf("missing column %s", strings.Join(missing, ", "))}
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		if err := t.Append(rec); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, &opportunity.LoadError{Line: line, Err: err}
		}
	}
	return t, nil
}

func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &opportunity.LoadError{Line: pe.Line, Err: pe.Err}
	}
	return &opportunity.LoadError{Err: err}
}
