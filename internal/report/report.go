// Package report renders M-Score analysis results as HTML, plain text,
// PDF, and Excel workbooks.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/fraudlens/fraudlens/pkg/models"
	"github.com/fraudlens/fraudlens/pkg/utils"
)

// ReportFormat specifies the output format.
type ReportFormat string

const (
	FormatHTML ReportFormat = "html"
	FormatPDF  ReportFormat = "pdf"
	FormatText ReportFormat = "text"
	FormatXLSX ReportFormat = "xlsx"
)

// ReportConfig controls report generation behaviour.
type ReportConfig struct {
	Format ReportFormat // output format (default: HTML)
	Title  string       // custom report title (optional)
	Author string       // author name (optional)
}

// DefaultReportConfig returns sensible defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Format: FormatHTML,
		Author: "FraudLens",
	}
}

// ════════════════════════════════════════════════════════════════════
// Report Data — Flattened for template rendering
// ════════════════════════════════════════════════════════════════════

// ReportData is the template model passed to HTML templates.
type ReportData struct {
	Title       string
	CompanyName string
	Author      string
	GeneratedAt string

	Complete       bool
	MScore         string
	RiskLevel      string
	RiskLabel      string
	RiskClass      string // CSS class: high-risk, low-risk, unknown
	Interpretation string
	Threshold      string

	Ratios     []RatioRow
	Financials []FinancialRow

	MissingFields []string
}

// RatioRow is one Beneish ratio for table rendering.
type RatioRow struct {
	Name        string
	Value       string
	Description string
}

// FinancialRow is one statement line item across both years.
type FinancialRow struct {
	Label string
	Year1 string
	Year2 string
}

// ratioDescriptions maps ratio names to one-line explanations shown in
// reports and exports.
var ratioDescriptions = map[string]string{
	"DSRI": "Days Sales in Receivables Index — receivables growing faster than revenue",
	"GMI":  "Gross Margin Index — deteriorating margins pressure earnings quality",
	"AQI":  "Asset Quality Index — rising share of soft assets on the balance sheet",
	"SGI":  "Sales Growth Index — high growth raises incentive to manipulate",
	"DEPI": "Depreciation Index — slowing depreciation rate inflates income",
	"SGAI": "SG&A Expenses Index — rising overhead relative to sales",
	"LVGI": "Leverage Index — increasing leverage tightens covenant pressure",
	"TATA": "Total Accruals to Total Assets — accrual-heavy earnings",
}

// fieldLabels maps statement field names to display labels.
var fieldLabels = map[string]string{
	models.FieldRevenue:       "Revenue",
	models.FieldCOGS:          "Cost of Goods Sold",
	models.FieldSGA:           "SG&A Expenses",
	models.FieldDepreciation:  "Depreciation",
	models.FieldNetIncome:     "Net Income",
	models.FieldReceivables:   "Accounts Receivables",
	models.FieldCurrentAssets: "Current Assets",
	models.FieldPPE:           "PP&E",
	models.FieldSecurities:    "Securities",
	models.FieldTotalAssets:   "Total Assets",
	models.FieldCurrentLiab:   "Current Liabilities",
	models.FieldLongTermDebt:  "Long-term Debt",
	models.FieldCashFlowOps:   "Cash Flow from Operations",
}

// ════════════════════════════════════════════════════════════════════
// Generate Report
// ════════════════════════════════════════════════════════════════════

// GenerateHTML renders an HTML fraud-risk report from an analysis result.
func GenerateHTML(result *models.AnalysisResult, cfg ReportConfig) (string, error) {
	if result == nil {
		return "", fmt.Errorf("analysis result is nil")
	}

	data := buildReportData(result, cfg)

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// GenerateText renders a plain-text report (terminal / CLI friendly).
func GenerateText(result *models.AnalysisResult, cfg ReportConfig) (string, error) {
	if result == nil {
		return "", fmt.Errorf("analysis result is nil")
	}

	data := buildReportData(result, cfg)
	return renderTextReport(data), nil
}

// ════════════════════════════════════════════════════════════════════
// Internal — Build template data
// ════════════════════════════════════════════════════════════════════

func buildReportData(r *models.AnalysisResult, cfg ReportConfig) ReportData {
	data := ReportData{
		Title:          cfg.Title,
		CompanyName:    r.CompanyName,
		Author:         cfg.Author,
		GeneratedAt:    ReportTimestamp(),
		Complete:       r.Complete(),
		RiskLevel:      string(r.RiskLevel),
		RiskLabel:      riskLabel(r.RiskLevel),
		RiskClass:      riskClass(r.RiskLevel),
		Interpretation: r.Interpretation,
		Threshold:      "-1.78",
		MissingFields:  r.MissingFields,
	}

	if data.Title == "" {
		if r.CompanyName != "" {
			data.Title = fmt.Sprintf("%s — Beneish M-Score Report", r.CompanyName)
		} else {
			data.Title = "Beneish M-Score Report"
		}
	}
	if data.Author == "" {
		data.Author = "FraudLens"
	}

	if r.MScore != nil {
		data.MScore = utils.FormatScore(*r.MScore)
	} else {
		data.MScore = "N/A"
	}

	if r.Ratios != nil {
		for _, entry := range r.Ratios.Entries() {
			data.Ratios = append(data.Ratios, RatioRow{
				Name:        entry.Name,
				Value:       utils.FormatRatio(entry.Value),
				Description: ratioDescriptions[entry.Name],
			})
		}
	}

	data.Financials = buildFinancialRows(r.Year1, r.Year2)

	return data
}

func buildFinancialRows(y1, y2 models.YearData) []FinancialRow {
	rows := make([]FinancialRow, 0, len(models.RequiredFields))
	for _, field := range models.RequiredFields {
		rows = append(rows, FinancialRow{
			Label: fieldLabels[field],
			Year1: utils.FormatGrouped(y1.Value(field)),
			Year2: utils.FormatGrouped(y2.Value(field)),
		})
	}
	return rows
}

func riskLabel(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return "High Risk"
	case models.RiskLow:
		return "Low Risk"
	default:
		return "Unknown"
	}
}

func riskClass(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return "high-risk"
	case models.RiskLow:
		return "low-risk"
	default:
		return "unknown"
	}
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

func renderTextReport(d ReportData) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  Generated: %s | Author: %s\n", d.GeneratedAt, d.Author))
	sb.WriteString(line + "\n\n")

	if d.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("  Company: %s\n", d.CompanyName))
		sb.WriteString(thinLine + "\n")
	}

	sb.WriteString("\n  ★ VERDICT\n")
	sb.WriteString(fmt.Sprintf("  M-Score: %s (threshold: %s)\n", d.MScore, d.Threshold))
	sb.WriteString(fmt.Sprintf("  Risk Level: %s\n", d.RiskLabel))
	sb.WriteString(fmt.Sprintf("  %s\n", d.Interpretation))
	sb.WriteString(thinLine + "\n")

	if len(d.MissingFields) > 0 {
		sb.WriteString("\n  ■ MISSING DATA\n")
		for _, f := range d.MissingFields {
			sb.WriteString(fmt.Sprintf("    - %s\n", f))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(d.Ratios) > 0 {
		sb.WriteString("\n  ■ BENEISH RATIOS\n")
		for _, r := range d.Ratios {
			sb.WriteString(fmt.Sprintf("    %-6s %8s  %s\n", r.Name, r.Value, r.Description))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(d.Financials) > 0 {
		sb.WriteString("\n  ■ EXTRACTED FINANCIAL DATA\n")
		sb.WriteString(fmt.Sprintf("    %-28s %15s %15s\n", "Metric", "Year 1", "Year 2"))
		for _, f := range d.Financials {
			sb.WriteString(fmt.Sprintf("    %-28s %15s %15s\n", f.Label, f.Year1, f.Year2))
		}
		sb.WriteString(thinLine + "\n")
	}

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  Disclaimer: The Beneish M-Score is a statistical screen, not\n")
	sb.WriteString("  proof of fraud. Use alongside other diligence.\n")
	sb.WriteString(line + "\n")

	return sb.String()
}

// ReportTimestamp returns the current time formatted for report headers.
func ReportTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
