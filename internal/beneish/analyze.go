package beneish

import "github.com/fraudlens/fraudlens/pkg/models"

// Analyze runs the full pipeline over two reporting periods: validation,
// then ratio and score computation. When any required field is missing the
// result short-circuits to an UNKNOWN verdict with nil ratios and score and
// the missing-field list populated; ratios are never partially computed.
func Analyze(companyName string, year1, year2 models.YearData) *models.AnalysisResult {
	result := &models.AnalysisResult{
		CompanyName:    companyName,
		Year1:          year1,
		Year2:          year2,
		RiskLevel:      models.RiskUnknown,
		Interpretation: InterpretationIncomplete,
		MissingFields:  Validate(year1, year2),
	}

	if len(result.MissingFields) > 0 {
		return result
	}

	ratios := ComputeRatios(year1, year2)
	score := MScore(ratios)
	result.Ratios = &ratios
	result.MScore = &score
	result.RiskLevel, result.Interpretation = Interpret(score)
	return result
}

// AnalyzeStatement is a convenience wrapper over extracted statement data.
func AnalyzeStatement(s *models.StatementData) *models.AnalysisResult {
	return Analyze(s.CompanyName, s.Year1, s.Year2)
}
