package beneish

import "github.com/fraudlens/fraudlens/pkg/models"

// safeDivide returns num/den, or def when the denominator is zero.
// Every division in the ratio pipeline goes through this guard, so the
// engine never raises on degenerate inputs.
func safeDivide(num, den, def float64) float64 {
	if den == 0 {
		return def
	}
	return num / den
}

// ComputeRatios computes the eight Beneish ratios from two consecutive
// reporting periods. Callers are expected to run Validate first; missing
// fields read as zero here and every denominator is still guarded, so the
// worst case is a degenerate ratio, never a panic.
//
// The per-ratio zero-division defaults are deliberately uneven (1.0 for
// index-style ratios where zero means "no change", 0 for level-style
// terms). They match the published behavior of the model implementation
// this engine reproduces and must not be unified.
func ComputeRatios(year1, year2 models.YearData) models.BeneishRatios {
	// Days Sales in Receivables Index. A zero-revenue year contributes a
	// zero day-ratio rather than the 1.0 guard default.
	dsr1 := 0.0
	if year1.Value(models.FieldRevenue) != 0 {
		dsr1 = year1.Value(models.FieldReceivables) / year1.Value(models.FieldRevenue)
	}
	dsr2 := 0.0
	if year2.Value(models.FieldRevenue) != 0 {
		dsr2 = year2.Value(models.FieldReceivables) / year2.Value(models.FieldRevenue)
	}
	dsri := safeDivide(dsr2, dsr1, 1.0)

	// Gross Margin Index: prior margin over current margin.
	grossMargin1 := safeDivide(year1.Value(models.FieldRevenue)-year1.Value(models.FieldCOGS),
		year1.Value(models.FieldRevenue), 1.0)
	grossMargin2 := safeDivide(year2.Value(models.FieldRevenue)-year2.Value(models.FieldCOGS),
		year2.Value(models.FieldRevenue), 1.0)
	gmi := safeDivide(grossMargin1, grossMargin2, 1.0)

	// Asset Quality Index: share of "soft" assets, current over prior.
	qualityAssets1 := year1.Value(models.FieldCurrentAssets) +
		year1.Value(models.FieldPPE) + year1.Value(models.FieldSecurities)
	qualityAssets2 := year2.Value(models.FieldCurrentAssets) +
		year2.Value(models.FieldPPE) + year2.Value(models.FieldSecurities)
	aqi1 := 1 - safeDivide(qualityAssets1, year1.Value(models.FieldTotalAssets), 0)
	aqi2 := 1 - safeDivide(qualityAssets2, year2.Value(models.FieldTotalAssets), 0)
	aqi := safeDivide(aqi2, aqi1, 1.0)

	// Sales Growth Index.
	sgi := safeDivide(year2.Value(models.FieldRevenue), year1.Value(models.FieldRevenue), 1.0)

	// Depreciation Index: prior depreciation rate over current.
	deprRate1 := safeDivide(year1.Value(models.FieldDepreciation),
		year1.Value(models.FieldDepreciation)+year1.Value(models.FieldPPE), 1.0)
	deprRate2 := safeDivide(year2.Value(models.FieldDepreciation),
		year2.Value(models.FieldDepreciation)+year2.Value(models.FieldPPE), 1.0)
	depi := safeDivide(deprRate1, deprRate2, 1.0)

	// SG&A Expenses Index: current expense rate over prior.
	sgaRate1 := safeDivide(year1.Value(models.FieldSGA), year1.Value(models.FieldRevenue), 1.0)
	sgaRate2 := safeDivide(year2.Value(models.FieldSGA), year2.Value(models.FieldRevenue), 1.0)
	sgai := safeDivide(sgaRate2, sgaRate1, 1.0)

	// Leverage Index: current leverage over prior.
	leverage1 := safeDivide(year1.Value(models.FieldCurrentLiab)+year1.Value(models.FieldLongTermDebt),
		year1.Value(models.FieldTotalAssets), 1.0)
	leverage2 := safeDivide(year2.Value(models.FieldCurrentLiab)+year2.Value(models.FieldLongTermDebt),
		year2.Value(models.FieldTotalAssets), 1.0)
	lvgi := safeDivide(leverage2, leverage1, 1.0)

	// Total Accruals to Total Assets: current period only, not a
	// year-over-year index.
	tata := safeDivide(year2.Value(models.FieldNetIncome)-year2.Value(models.FieldCashFlowOps),
		year2.Value(models.FieldTotalAssets), 0)

	return models.BeneishRatios{
		DSRI: dsri,
		GMI:  gmi,
		AQI:  aqi,
		SGI:  sgi,
		DEPI: depi,
		SGAI: sgai,
		LVGI: lvgi,
		TATA: tata,
	}
}
