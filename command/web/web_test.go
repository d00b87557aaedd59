package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	ccsv "opportunity-report/connectors/csv"
	"opportunity-report/domain/opportunity"

	"github.com/shopspring/decimal"
)

func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	records := []opportunity.AggregateRecord{
		{BusinessArea: "TI CP", FiscalPeriod: "FY2024 Q2", PlanningCategory: "Order Forecast", Amount: decimal.NewFromInt(100), Forecast: decimal.NewFromInt(50)},
	}
	if err := ccsv.WriteAggregates(filepath.Join(dir, ccsv.AggregateFile), records); err != nil {
		t.Fatal(err)
	}
	return dir
}

func get(t *testing.T, dir, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewServer(dir, "")
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAggregatesEndpoint(t *testing.T) {
	rec := get(t, seed(t), "/api/aggregates")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var rows []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][opportunity.ColBusinessAreaCalc] != "TI CP" || rows[0][opportunity.ColAmount] != "100" {
		t.Errorf("rows = %v", rows)
	}
}

func TestChartEndpoint(t *testing.T) {
	rec := get(t, seed(t), "/api/chart")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Title string `json:"title"`
		Bars  []struct {
			Area   string `json:"area"`
			Budget string `json:"budget"`
			Actual string `json:"actual"`
		} `json:"bars"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Bars) != 1 || body.Bars[0].Budget != "100" || body.Bars[0].Actual != "150" {
		t.Errorf("body = %+v", body)
	}
}

func TestSVGAndPage(t *testing.T) {
	dir := seed(t)
	rec := get(t, dir, "/chart.svg")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "image/svg+xml") {
		t.Fatalf("svg status = %d type = %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "150.00") {
		t.Errorf("svg missing annotation")
	}
	rec = get(t, dir, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<td>TI CP</td><td>100.00</td><td>150.00</td>") {
		t.Errorf("page status = %d body = %s", rec.Code, rec.Body)
	}
}

func TestMissingFile(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{"/api/aggregates", "/api/open", "/api/chart", "/chart.svg", "/"} {
		if rec := get(t, dir, path); rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}
}
