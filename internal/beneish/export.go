package beneish

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fraudlens/fraudlens/pkg/models"
	"github.com/fraudlens/fraudlens/pkg/utils"
)

// FormatTSV renders both years' line items as a tab-separated table for
// clipboard export: a "Metric\tYear 1\tYear 2" header, then one row per
// field sorted by field name. Missing values render as 0.
func FormatTSV(year1, year2 models.YearData) string {
	fields := make([]string, len(models.RequiredFields))
	copy(fields, models.RequiredFields)
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("Metric\tYear 1\tYear 2")
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf("\n%s\t%s\t%s",
			field,
			utils.FormatGrouped(year1.Value(field)),
			utils.FormatGrouped(year2.Value(field))))
	}
	return sb.String()
}
