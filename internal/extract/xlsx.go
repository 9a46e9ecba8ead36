package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// xlsxText renders an XLSX workbook as text: one "Sheet: <name>" header
// per worksheet followed by tab-separated rows, the format the LLM
// extraction prompt was tuned on.
func xlsxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("extract: open xlsx: %w", err)
	}
	defer zr.Close()

	shared, err := readSharedStrings(&zr.Reader)
	if err != nil {
		return "", err
	}

	names, err := readSheetNames(&zr.Reader)
	if err != nil {
		return "", err
	}

	// Worksheet parts are xl/worksheets/sheet1.xml, sheet2.xml, ...
	// in workbook order.
	var sheetFiles []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			sheetFiles = append(sheetFiles, f)
		}
	}
	sort.Slice(sheetFiles, func(i, j int) bool {
		return sheetIndex(sheetFiles[i].Name) < sheetIndex(sheetFiles[j].Name)
	})

	var sb strings.Builder
	for i, f := range sheetFiles {
		name := fmt.Sprintf("Sheet%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		sb.WriteString("Sheet: " + name + "\n")
		if err := writeSheetRows(&sb, f, shared); err != nil {
			return "", err
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func sheetIndex(name string) int {
	n := strings.TrimSuffix(strings.TrimPrefix(name, "xl/worksheets/sheet"), ".xml")
	i, err := strconv.Atoi(n)
	if err != nil {
		return 0
	}
	return i
}

// readSharedStrings parses xl/sharedStrings.xml. Workbooks with only
// inline or numeric values may not have one.
func readSharedStrings(zr *zip.Reader) ([]string, error) {
	f := findZipFile(zr, "xl/sharedStrings.xml")
	if f == nil {
		return nil, nil
	}
	doc, err := parseZipXML(f)
	if err != nil {
		return nil, fmt.Errorf("extract: parse shared strings: %w", err)
	}

	var out []string
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	for _, si := range root.SelectElements("si") {
		// A string item is either a single <t> or rich-text <r><t> runs.
		var sb strings.Builder
		if t := si.SelectElement("t"); t != nil {
			sb.WriteString(t.Text())
		}
		for _, r := range si.SelectElements("r") {
			if t := r.SelectElement("t"); t != nil {
				sb.WriteString(t.Text())
			}
		}
		out = append(out, sb.String())
	}
	return out, nil
}

// readSheetNames parses xl/workbook.xml for worksheet display names.
func readSheetNames(zr *zip.Reader) ([]string, error) {
	f := findZipFile(zr, "xl/workbook.xml")
	if f == nil {
		return nil, nil
	}
	doc, err := parseZipXML(f)
	if err != nil {
		return nil, fmt.Errorf("extract: parse workbook: %w", err)
	}

	var names []string
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	if sheets := root.SelectElement("sheets"); sheets != nil {
		for _, sheet := range sheets.SelectElements("sheet") {
			names = append(names, sheet.SelectAttrValue("name", ""))
		}
	}
	return names, nil
}

// writeSheetRows streams one worksheet's cells as tab-separated lines.
func writeSheetRows(sb *strings.Builder, f *zip.File, shared []string) error {
	doc, err := parseZipXML(f)
	if err != nil {
		return fmt.Errorf("extract: parse worksheet %s: %w", f.Name, err)
	}
	root := doc.Root()
	if root == nil {
		return nil
	}
	sheetData := root.SelectElement("sheetData")
	if sheetData == nil {
		return nil
	}

	for _, row := range sheetData.SelectElements("row") {
		var cells []string
		for _, c := range row.SelectElements("c") {
			cells = append(cells, cellValue(c, shared))
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteByte('\n')
	}
	return nil
}

// cellValue resolves a <c> element to its display text.
func cellValue(c *etree.Element, shared []string) string {
	typ := c.SelectAttrValue("t", "")
	switch typ {
	case "s": // shared string
		v := c.SelectElement("v")
		if v == nil {
			return ""
		}
		idx, err := strconv.Atoi(strings.TrimSpace(v.Text()))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		if is := c.SelectElement("is"); is != nil {
			if t := is.SelectElement("t"); t != nil {
				return t.Text()
			}
		}
		return ""
	default: // numeric, boolean, formula result
		if v := c.SelectElement("v"); v != nil {
			return strings.TrimSpace(v.Text())
		}
		return ""
	}
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func parseZipXML(f *zip.File) (*etree.Document, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return doc, nil
}
