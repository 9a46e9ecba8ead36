package models

// RiskLevel classifies the earnings-manipulation verdict.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW_RISK"
	RiskHigh    RiskLevel = "HIGH_RISK"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// BeneishRatios holds the eight ratios of the Beneish model. An instance is
// always fully populated: the engine either computes all eight or none.
type BeneishRatios struct {
	DSRI float64 `json:"dsri"` // Days Sales in Receivables Index
	GMI  float64 `json:"gmi"`  // Gross Margin Index
	AQI  float64 `json:"aqi"`  // Asset Quality Index
	SGI  float64 `json:"sgi"`  // Sales Growth Index
	DEPI float64 `json:"depi"` // Depreciation Index
	SGAI float64 `json:"sgai"` // SG&A Expenses Index
	LVGI float64 `json:"lvgi"` // Leverage Index
	TATA float64 `json:"tata"` // Total Accruals to Total Assets
}

// RatioEntry is one named ratio in the fixed export order.
type RatioEntry struct {
	Name  string
	Value float64
}

// RatioNames lists the eight ratio abbreviations in their fixed order,
// used verbatim by report and export renderers.
var RatioNames = []string{"DSRI", "GMI", "AQI", "SGI", "DEPI", "SGAI", "LVGI", "TATA"}

// Entries returns the ratios as ordered name/value pairs.
func (r BeneishRatios) Entries() []RatioEntry {
	return []RatioEntry{
		{"DSRI", r.DSRI},
		{"GMI", r.GMI},
		{"AQI", r.AQI},
		{"SGI", r.SGI},
		{"DEPI", r.DEPI},
		{"SGAI", r.SGAI},
		{"LVGI", r.LVGI},
		{"TATA", r.TATA},
	}
}

// Map returns the ratios keyed by abbreviation.
func (r BeneishRatios) Map() map[string]float64 {
	m := make(map[string]float64, 8)
	for _, e := range r.Entries() {
		m[e.Name] = e.Value
	}
	return m
}

// AnalysisResult is the outcome of one analysis run. Ratios and MScore are
// both set or both nil: either is present only when validation reported no
// missing fields. The result is immutable once constructed.
type AnalysisResult struct {
	CompanyName    string         `json:"company_name"`
	Year1          YearData       `json:"year_1_data"`
	Year2          YearData       `json:"year_2_data"`
	Ratios         *BeneishRatios `json:"ratios,omitempty"`
	MScore         *float64       `json:"m_score,omitempty"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Interpretation string         `json:"interpretation"`
	MissingFields  []string       `json:"missing_fields"`
}

// Complete reports whether the analysis produced a score.
func (a *AnalysisResult) Complete() bool {
	return a.Ratios != nil && a.MScore != nil
}

// AnalysisStage tracks pipeline progress for CLI and API reporting.
type AnalysisStage string

const (
	StageIdle        AnalysisStage = "idle"
	StageExtracting  AnalysisStage = "extracting"
	StageAnalyzing   AnalysisStage = "analyzing"
	StageCalculating AnalysisStage = "calculating"
	StageComplete    AnalysisStage = "complete"
	StageError       AnalysisStage = "error"
)
