package models

import (
	"encoding/json"
	"testing"
)

func TestYearDataGetSet(t *testing.T) {
	var y YearData
	for _, f := range RequiredFields {
		if y.Get(f) != nil {
			t.Errorf("field %s should start missing", f)
		}
	}

	y.Set(FieldRevenue, 100)
	if p := y.Get(FieldRevenue); p == nil || *p != 100 {
		t.Fatalf("Get(revenue): got %v", p)
	}

	// Zero is a present value, not missing.
	y.Set(FieldSecurities, 0)
	if p := y.Get(FieldSecurities); p == nil || *p != 0 {
		t.Fatalf("zero value should be present, got %v", p)
	}

	if y.Get("nonexistent_field") != nil {
		t.Error("unknown field should return nil")
	}
}

func TestYearDataValue(t *testing.T) {
	var y YearData
	if y.Value(FieldRevenue) != 0 {
		t.Error("missing field should read as 0")
	}
	y.Set(FieldRevenue, 42.5)
	if y.Value(FieldRevenue) != 42.5 {
		t.Errorf("got %f, want 42.5", y.Value(FieldRevenue))
	}
}

func TestYearFromMap(t *testing.T) {
	y := YearFromMap(map[string]float64{
		FieldRevenue:     250,
		FieldTotalAssets: 900,
		"bogus":          1,
	})
	if y.Value(FieldRevenue) != 250 || y.Value(FieldTotalAssets) != 900 {
		t.Errorf("map conversion lost values: %+v", y)
	}
	if y.Get(FieldCOGS) != nil {
		t.Error("unset field should remain missing")
	}
}

func TestParseStatement(t *testing.T) {
	raw := []byte(`{
		"company_name": "Acme Corp",
		"year_1_data": {"revenue": 100, "total_assets": 500},
		"year_2_data": {"revenue": 120, "securities": 0}
	}`)
	s, err := ParseStatement(raw)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if s.CompanyName != "Acme Corp" {
		t.Errorf("company: got %q", s.CompanyName)
	}
	if s.Year1.Value(FieldRevenue) != 100 || s.Year2.Value(FieldRevenue) != 120 {
		t.Error("year values not decoded")
	}
	// null and absent both decode to nil pointers
	if s.Year1.Get(FieldCOGS) != nil {
		t.Error("absent field should be nil")
	}
	if p := s.Year2.Get(FieldSecurities); p == nil || *p != 0 {
		t.Error("explicit zero should decode as present")
	}
}

func TestParseStatementNull(t *testing.T) {
	raw := []byte(`{"company_name": "X", "year_1_data": {"revenue": null}, "year_2_data": {}}`)
	s, err := ParseStatement(raw)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if s.Year1.Get(FieldRevenue) != nil {
		t.Error("explicit null should decode as missing")
	}
}

func TestRatioEntriesOrder(t *testing.T) {
	r := BeneishRatios{DSRI: 1, GMI: 2, AQI: 3, SGI: 4, DEPI: 5, SGAI: 6, LVGI: 7, TATA: 8}
	entries := r.Entries()
	if len(entries) != 8 {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, e := range entries {
		if e.Name != RatioNames[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.Name, RatioNames[i])
		}
		if e.Value != float64(i+1) {
			t.Errorf("entry %s: got %f", e.Name, e.Value)
		}
	}
	m := r.Map()
	if m["TATA"] != 8 || m["DSRI"] != 1 {
		t.Errorf("Map mismatch: %v", m)
	}
}

func TestAnalysisResultComplete(t *testing.T) {
	a := &AnalysisResult{RiskLevel: RiskUnknown}
	if a.Complete() {
		t.Error("result without ratios should be incomplete")
	}
	score := -2.5
	a.Ratios = &BeneishRatios{}
	a.MScore = &score
	if !a.Complete() {
		t.Error("result with ratios and score should be complete")
	}
}

func TestAnalysisResultJSONRoundTrip(t *testing.T) {
	score := -1.9
	a := AnalysisResult{
		CompanyName:    "Acme",
		Ratios:         &BeneishRatios{SGI: 1.2},
		MScore:         &score,
		RiskLevel:      RiskLow,
		Interpretation: "ok",
		MissingFields:  []string{},
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AnalysisResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.RiskLevel != RiskLow || back.MScore == nil || *back.MScore != -1.9 {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
