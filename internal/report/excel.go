package report

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"

	"github.com/fraudlens/fraudlens/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Excel Export — OOXML workbook written via archive/zip + etree
// ════════════════════════════════════════════════════════════════════

// xlsxCell is one cell: either an inline string or a number.
type xlsxCell struct {
	str   string
	num   float64
	isNum bool
}

func cellStr(s string) xlsxCell  { return xlsxCell{str: s} }
func cellNum(v float64) xlsxCell { return xlsxCell{num: v, isNum: true} }

// xlsxSheet is one worksheet: a name and its rows.
type xlsxSheet struct {
	Name string
	Rows [][]xlsxCell
}

// GenerateXLSX writes an Excel workbook with three sheets — Summary,
// Ratios Analysis, and Financial Data — for an analysis result.
func GenerateXLSX(result *models.AnalysisResult, outputPath string) error {
	if result == nil {
		return fmt.Errorf("analysis result is nil")
	}
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}

	sheets := []xlsxSheet{
		summarySheet(result),
		ratiosSheet(result),
		financialsSheet(result),
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	defer f.Close()

	return writeWorkbook(zip.NewWriter(f), sheets)
}

func summarySheet(r *models.AnalysisResult) xlsxSheet {
	company := r.CompanyName
	if company == "" {
		company = "Unknown Company"
	}

	scoreRow := []xlsxCell{cellStr("M-Score"), cellStr("N/A")}
	if r.MScore != nil {
		scoreRow[1] = cellNum(*r.MScore)
	}

	return xlsxSheet{
		Name: "Summary",
		Rows: [][]xlsxCell{
			{cellStr("Company Name"), cellStr(company)},
			scoreRow,
			{cellStr("Risk Level"), cellStr(riskLabel(r.RiskLevel))},
			{cellStr("Analysis Date"), cellStr(ReportTimestamp())},
		},
	}
}

func ratiosSheet(r *models.AnalysisResult) xlsxSheet {
	rows := [][]xlsxCell{
		{cellStr("Ratio"), cellStr("Value"), cellStr("Description")},
	}
	if r.Ratios != nil {
		for _, e := range r.Ratios.Entries() {
			rows = append(rows, []xlsxCell{
				cellStr(e.Name),
				cellNum(e.Value),
				cellStr(ratioDescriptions[e.Name]),
			})
		}
	}
	return xlsxSheet{Name: "Ratios Analysis", Rows: rows}
}

func financialsSheet(r *models.AnalysisResult) xlsxSheet {
	rows := [][]xlsxCell{
		{cellStr("Metric"), cellStr("Year 1"), cellStr("Year 2")},
	}
	for _, field := range models.RequiredFields {
		rows = append(rows, []xlsxCell{
			cellStr(fieldLabels[field]),
			cellNum(r.Year1.Value(field)),
			cellNum(r.Year2.Value(field)),
		})
	}
	return xlsxSheet{Name: "Financial Data", Rows: rows}
}

// ════════════════════════════════════════════════════════════════════
// OOXML plumbing
// ════════════════════════════════════════════════════════════════════

func writeWorkbook(zw *zip.Writer, sheets []xlsxSheet) error {
	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypesXML(len(sheets))},
		{"_rels/.rels", rootRelsXML()},
		{"xl/workbook.xml", workbookXML(sheets)},
		{"xl/_rels/workbook.xml.rels", workbookRelsXML(len(sheets))},
	}
	for i, sheet := range sheets {
		parts = append(parts, struct {
			name string
			doc  *etree.Document
		}{fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1), worksheetXML(sheet)})
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := part.doc.WriteTo(w); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing workbook: %w", err)
	}
	return nil
}

func contentTypesXML(sheetCount int) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")

	rels := types.CreateElement("Default")
	rels.CreateAttr("Extension", "rels")
	rels.CreateAttr("ContentType", "application/vnd.openxmlformats-package.relationships+xml")

	xml := types.CreateElement("Default")
	xml.CreateAttr("Extension", "xml")
	xml.CreateAttr("ContentType", "application/xml")

	wb := types.CreateElement("Override")
	wb.CreateAttr("PartName", "/xl/workbook.xml")
	wb.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml")

	for i := 1; i <= sheetCount; i++ {
		ws := types.CreateElement("Override")
		ws.CreateAttr("PartName", fmt.Sprintf("/xl/worksheets/sheet%d.xml", i))
		ws.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml")
	}
	return doc
}

func rootRelsXML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")

	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument")
	rel.CreateAttr("Target", "xl/workbook.xml")
	return doc
}

func workbookXML(sheets []xlsxSheet) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	wb := doc.CreateElement("workbook")
	wb.CreateAttr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	wb.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	sheetsEl := wb.CreateElement("sheets")
	for i, s := range sheets {
		sheet := sheetsEl.CreateElement("sheet")
		sheet.CreateAttr("name", s.Name)
		sheet.CreateAttr("sheetId", strconv.Itoa(i+1))
		sheet.CreateAttr("r:id", fmt.Sprintf("rId%d", i+1))
	}
	return doc
}

func workbookRelsXML(sheetCount int) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")

	for i := 1; i <= sheetCount; i++ {
		rel := rels.CreateElement("Relationship")
		rel.CreateAttr("Id", fmt.Sprintf("rId%d", i))
		rel.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet")
		rel.CreateAttr("Target", fmt.Sprintf("worksheets/sheet%d.xml", i))
	}
	return doc
}

func worksheetXML(sheet xlsxSheet) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	ws := doc.CreateElement("worksheet")
	ws.CreateAttr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	sheetData := ws.CreateElement("sheetData")
	for rowIdx, cells := range sheet.Rows {
		row := sheetData.CreateElement("row")
		row.CreateAttr("r", strconv.Itoa(rowIdx+1))
		for colIdx, cell := range cells {
			c := row.CreateElement("c")
			c.CreateAttr("r", cellRef(colIdx, rowIdx))
			if cell.isNum {
				c.CreateElement("v").SetText(strconv.FormatFloat(cell.num, 'f', -1, 64))
			} else {
				c.CreateAttr("t", "inlineStr")
				c.CreateElement("is").CreateElement("t").SetText(cell.str)
			}
		}
	}
	return doc
}

// cellRef converts zero-based column and row indices to an A1-style
// reference, e.g. (0, 0) → "A1", (27, 2) → "AB3".
func cellRef(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return fmt.Sprintf("%s%d", name, row+1)
}
