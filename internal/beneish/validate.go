// Package beneish implements the Beneish M-Score model: input validation,
// the eight-ratio computation, the linear discriminant score, and its
// two-level risk interpretation.
package beneish

import (
	"fmt"

	"github.com/fraudlens/fraudlens/pkg/models"
)

// Validate checks that both years contain all 13 required fields with
// non-null values and returns a descriptor ("Year 1: revenue") for every
// gap. Output order is deterministic: all Year 1 gaps in field enumeration
// order, then all Year 2 gaps. An empty result means both years are
// complete. Zero values are present values, not gaps.
func Validate(year1, year2 models.YearData) []string {
	missing := []string{}
	for _, field := range models.RequiredFields {
		if year1.Get(field) == nil {
			missing = append(missing, fmt.Sprintf("Year 1: %s", field))
		}
	}
	for _, field := range models.RequiredFields {
		if year2.Get(field) == nil {
			missing = append(missing, fmt.Sprintf("Year 2: %s", field))
		}
	}
	return missing
}
