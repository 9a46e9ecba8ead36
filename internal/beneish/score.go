package beneish

import "github.com/fraudlens/fraudlens/pkg/models"

// Threshold is the M-Score decision boundary: scores at or above it
// classify as HIGH_RISK.
const Threshold = -1.78

// Interpretation strings for the two verdicts and the incomplete case.
const (
	InterpretationLow        = "Company is not likely to have manipulated their earnings"
	InterpretationHigh       = "Company is likely to have manipulated their earnings"
	InterpretationIncomplete = "Incomplete analysis due to missing data"
)

// MScore computes the Beneish linear discriminant from the eight ratios.
func MScore(r models.BeneishRatios) float64 {
	return -4.840 +
		0.920*r.DSRI +
		0.528*r.GMI +
		0.404*r.AQI +
		0.892*r.SGI +
		0.115*r.DEPI -
		0.172*r.SGAI +
		4.679*r.TATA -
		0.327*r.LVGI
}

// Interpret classifies an M-Score into a risk verdict with its
// human-readable interpretation. The boundary value itself is HIGH_RISK.
func Interpret(mScore float64) (models.RiskLevel, string) {
	if mScore < Threshold {
		return models.RiskLow, InterpretationLow
	}
	return models.RiskHigh, InterpretationHigh
}
