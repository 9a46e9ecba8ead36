package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fraudlens/fraudlens/internal/llm"
)

// ── Reader dispatch & limits ──

func TestSupported(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"report.pdf", true},
		{"statements.xlsx", true},
		{"data.csv", true},
		{"filing.html", true},
		{"filing.htm", true},
		{"notes.txt", true},
		{"report.PDF", true},
		{"archive.zip", false},
		{"image.png", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := Supported(c.path); got != c.want {
			t.Errorf("Supported(%q): got %v, want %v", c.path, got, c.want)
		}
	}
}

func TestReaderUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.docx")
	os.WriteFile(path, []byte("x"), 0644)

	_, err := NewReader().Text(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("expected unsupported type error, got: %v", err)
	}
}

func TestReaderSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	os.WriteFile(path, []byte(strings.Repeat("a", 100)), 0644)

	r := &Reader{MaxFileSize: 50}
	_, err := r.Text(path)
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Fatalf("expected size limit error, got: %v", err)
	}

	// Under the limit passes
	r.MaxFileSize = 1000
	text, err := r.Text(path)
	if err != nil || len(text) != 100 {
		t.Fatalf("under limit: text=%d err=%v", len(text), err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader().Text("/nonexistent/file.txt")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// ── CSV ──

func TestCSVText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	os.WriteFile(path, []byte("Metric,2022,2023\nRevenue,100,120\nCOGS,60,60\n"), 0644)

	text, err := NewReader().Text(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Metric\t2022\t2023\nRevenue\t100\t120\nCOGS\t60\t60\n"
	if text != want {
		t.Errorf("csv text:\ngot:  %q\nwant: %q", text, want)
	}
}

func TestCSVTextRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ragged.csv")
	os.WriteFile(path, []byte("a,b,c\nd,e\n"), 0644)

	text, err := NewReader().Text(path)
	if err != nil {
		t.Fatalf("ragged rows should not fail: %v", err)
	}
	if !strings.Contains(text, "d\te") {
		t.Errorf("unexpected text: %q", text)
	}
}

// ── HTML ──

func TestHTMLText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filing.html")
	html := `<html><head><style>body{color:red}</style></head>
<body><h1>Acme Corp</h1><script>alert(1)</script>
<table><tr><td>Revenue</td><td>120</td></tr></table></body></html>`
	os.WriteFile(path, []byte(html), 0644)

	text, err := NewReader().Text(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Acme Corp") || !strings.Contains(text, "Revenue") {
		t.Errorf("missing content: %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Errorf("script/style not stripped: %q", text)
	}
}

// ── XLSX ──

func writeTestXLSX(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "statements.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook><sheets><sheet name="Financials" sheetId="1"/></sheets></workbook>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst count="2" uniqueCount="2"><si><t>Revenue</t></si><si><r><t>Total </t></r><r><t>Assets</t></r></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1"><v>100</v></c><c r="C1"><v>120</v></c></row>
<row r="2"><c r="A2" t="s"><v>1</v></c><c r="B2"><v>1000</v></c><c r="C2"><v>1100</v></c></row>
</sheetData></worksheet>`,
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXLSXText(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir())

	text, err := NewReader().Text(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Sheet: Financials") {
		t.Errorf("missing sheet header: %q", text)
	}
	if !strings.Contains(text, "Revenue\t100\t120") {
		t.Errorf("missing shared-string row: %q", text)
	}
	// Rich-text runs are concatenated
	if !strings.Contains(text, "Total Assets\t1000\t1100") {
		t.Errorf("missing rich-text row: %q", text)
	}
}

func TestXLSXTextNotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xlsx")
	os.WriteFile(path, []byte("not a zip"), 0644)

	_, err := NewReader().Text(path)
	if err == nil {
		t.Fatal("expected error for corrupt xlsx")
	}
}

// ── JSON response parsing ──

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here is the data:\n{\"a\":1}\nHope that helps!", `{"a":1}`},
		{"no json here", ""},
		{"}{", ""},
	}
	for _, c := range cases {
		if got := extractJSONObject(c.in); got != c.want {
			t.Errorf("extractJSONObject(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseStatementResponse(t *testing.T) {
	content := "```json\n" + `{
  "company_name": "Acme Corp",
  "year_1_data": {"revenue": 100, "total_assets": 1000},
  "year_2_data": {"revenue": 120, "total_assets": 1100}
}` + "\n```"

	s, err := parseStatementResponse(content)
	if err != nil {
		t.Fatal(err)
	}
	if s.CompanyName != "Acme Corp" {
		t.Errorf("company: %q", s.CompanyName)
	}
	if s.Year1.Revenue == nil || *s.Year1.Revenue != 100 {
		t.Errorf("year 1 revenue: %+v", s.Year1.Revenue)
	}
	if s.Year2.TotalAssets == nil || *s.Year2.TotalAssets != 1100 {
		t.Errorf("year 2 total assets: %+v", s.Year2.TotalAssets)
	}
	// Fields the model omitted stay nil
	if s.Year1.Securities != nil {
		t.Error("omitted field should be nil")
	}
}

func TestParseStatementResponseDefaultsCompanyName(t *testing.T) {
	s, err := parseStatementResponse(`{"year_1_data": {}, "year_2_data": {}}`)
	if err != nil {
		t.Fatal(err)
	}
	if s.CompanyName != "Unknown Company" {
		t.Errorf("company: %q", s.CompanyName)
	}
}

func TestParseStatementResponseInvalid(t *testing.T) {
	if _, err := parseStatementResponse("the report looks fine"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	if _, err := parseStatementResponse(`{"company_name": [1,2]}`); err == nil {
		t.Fatal("expected error for mistyped JSON")
	}
}

// ── Extractor ──

type stubProvider struct {
	content string
	err     error
	lastMsg []llm.Message
}

func (s *stubProvider) Name() string                   { return "stub" }
func (s *stubProvider) Models() []string               { return nil }
func (s *stubProvider) Ping(ctx context.Context) error { return nil }
func (s *stubProvider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	s.lastMsg = messages
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content, Provider: "stub"}, nil
}

func TestExtractorStatement(t *testing.T) {
	stub := &stubProvider{content: `{
		"company_name": "Acme Corp",
		"year_1_data": {"revenue": 100},
		"year_2_data": {"revenue": 120}
	}`}
	e := NewExtractor(stub, nil)

	s, err := e.Statement(context.Background(), "Revenue was 100 in 2022 and 120 in 2023.")
	if err != nil {
		t.Fatal(err)
	}
	if s.CompanyName != "Acme Corp" {
		t.Errorf("company: %q", s.CompanyName)
	}

	// System prompt carries the field list; user message carries the document
	if len(stub.lastMsg) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(stub.lastMsg))
	}
	if stub.lastMsg[0].Role != llm.RoleSystem || !strings.Contains(stub.lastMsg[0].Content, "cost_of_goods_sold") {
		t.Error("system prompt missing field list")
	}
	if !strings.Contains(stub.lastMsg[1].Content, "Revenue was 100") {
		t.Error("document text not forwarded")
	}
}

func TestExtractorStatementEmptyText(t *testing.T) {
	e := NewExtractor(&stubProvider{}, nil)
	if _, err := e.Statement(context.Background(), "   \n"); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestExtractorStatementTruncates(t *testing.T) {
	stub := &stubProvider{content: `{"company_name": "X", "year_1_data": {}, "year_2_data": {}}`}
	e := NewExtractor(stub, nil, WithMaxTextChars(50))

	_, err := e.Statement(context.Background(), strings.Repeat("z", 500))
	if err != nil {
		t.Fatal(err)
	}
	doc := strings.TrimPrefix(stub.lastMsg[1].Content, extractionUserPrompt)
	if len(doc) != 50 {
		t.Errorf("expected 50 chars after truncation, got %d", len(doc))
	}
}

func TestExtractorStatementProviderError(t *testing.T) {
	e := NewExtractor(&stubProvider{err: fmt.Errorf("%w", llm.ErrProviderDown)}, nil)
	_, err := e.Statement(context.Background(), "some text")
	if err == nil || !strings.Contains(err.Error(), "llm request") {
		t.Fatalf("expected wrapped provider error, got: %v", err)
	}
}
