package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fraudlens/fraudlens/internal/config"
	"github.com/fraudlens/fraudlens/internal/extract"
	"github.com/fraudlens/fraudlens/internal/llm"
	"github.com/fraudlens/fraudlens/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

// stubLLM returns a canned response for every chat call.
type stubLLM struct {
	content string
	err     error
}

func (s *stubLLM) Name() string                   { return "stub" }
func (s *stubLLM) Models() []string               { return []string{"stub-model"} }
func (s *stubLLM) Ping(ctx context.Context) error { return nil }
func (s *stubLLM) Chat(ctx context.Context, msgs []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content, Provider: "stub"}, nil
}

func testServer(t *testing.T, provider llm.LLMProvider) *Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})

	srv := &Server{
		cfg:    &config.Config{},
		log:    log,
		reader: extract.NewReader(),
	}
	if provider != nil {
		srv.extractor = extract.NewExtractor(provider, log)
	}
	srv.router = srv.buildRouter()
	return srv
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func completeStatementJSON() string {
	return `{
		"company_name": "Acme Corp",
		"year_1_data": {
			"revenue": 100, "cost_of_goods_sold": 60,
			"selling_general_admin_expense": 10, "depreciation": 5,
			"net_income_continuing_operations": 12, "accounts_receivables": 15,
			"current_assets": 50, "property_plant_equipment": 30,
			"securities": 5, "total_assets": 100, "current_liabilities": 20,
			"total_long_term_debt": 10, "cash_flow_operations": 14
		},
		"year_2_data": {
			"revenue": 120, "cost_of_goods_sold": 78,
			"selling_general_admin_expense": 10, "depreciation": 6,
			"net_income_continuing_operations": 15, "accounts_receivables": 20,
			"current_assets": 55, "property_plant_equipment": 33,
			"securities": 6, "total_assets": 110, "current_liabilities": 22,
			"total_long_term_debt": 11, "cash_flow_operations": 11.2
		}
	}`
}

// ════════════════════════════════════════════════════════════════════
// Health
// ════════════════════════════════════════════════════════════════════

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Errorf("expected success")
	}
	data := resp.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Errorf("status = %v, want ok", data["status"])
	}
	if data["extraction_enabled"] != false {
		t.Errorf("extraction_enabled = %v, want false without provider", data["extraction_enabled"])
	}
}

// ════════════════════════════════════════════════════════════════════
// Score
// ════════════════════════════════════════════════════════════════════

func TestHandleScoreComplete(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/score",
		strings.NewReader(completeStatementJSON()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                   `json:"success"`
		Data    *models.AnalysisResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	if resp.Data.CompanyName != "Acme Corp" {
		t.Errorf("company = %q", resp.Data.CompanyName)
	}
	if resp.Data.RiskLevel != models.RiskLow {
		t.Errorf("risk = %s, want LOW_RISK", resp.Data.RiskLevel)
	}
	if resp.Data.MScore == nil {
		t.Fatalf("expected m_score in response")
	}
	if *resp.Data.MScore > -2.13 || *resp.Data.MScore < -2.14 {
		t.Errorf("m_score = %v, want ≈ -2.136", *resp.Data.MScore)
	}
}

func TestHandleScoreIncomplete(t *testing.T) {
	srv := testServer(t, nil)

	body := `{"company_name": "Acme Corp", "year_1_data": {"revenue": 100}, "year_2_data": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data *models.AnalysisResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.RiskLevel != models.RiskUnknown {
		t.Errorf("risk = %s, want UNKNOWN", resp.Data.RiskLevel)
	}
	if resp.Data.MScore != nil {
		t.Errorf("expected nil m_score for incomplete data")
	}
	if len(resp.Data.MissingFields) == 0 {
		t.Errorf("expected missing fields to be reported")
	}
}

func TestHandleScoreInvalidBody(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Errorf("expected failure envelope")
	}
}

// ════════════════════════════════════════════════════════════════════
// Analyze (multipart upload)
// ════════════════════════════════════════════════════════════════════

func multipartUpload(t *testing.T, filename, content, company string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if company != "" {
		if err := mw.WriteField("company", company); err != nil {
			t.Fatalf("writing company field: %v", err)
		}
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleAnalyze(t *testing.T) {
	srv := testServer(t, &stubLLM{content: completeStatementJSON()})

	body, contentType := multipartUpload(t, "statement.csv", "Metric,Y1,Y2\nRevenue,100,120\n", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool            `json:"success"`
		Data    AnalyzeResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	if resp.Data.Statement == nil || resp.Data.Statement.CompanyName != "Acme Corp" {
		t.Errorf("statement = %+v", resp.Data.Statement)
	}
	if resp.Data.Result == nil || resp.Data.Result.RiskLevel != models.RiskLow {
		t.Errorf("result = %+v", resp.Data.Result)
	}
}

func TestHandleAnalyzeCompanyOverride(t *testing.T) {
	srv := testServer(t, &stubLLM{content: completeStatementJSON()})

	body, contentType := multipartUpload(t, "statement.csv", "Revenue,100,120\n", "Globex Inc")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data AnalyzeResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Result.CompanyName != "Globex Inc" {
		t.Errorf("company = %q, want Globex Inc", resp.Data.Result.CompanyName)
	}
}

func TestHandleAnalyzeNoProvider(t *testing.T) {
	srv := testServer(t, nil)

	body, contentType := multipartUpload(t, "statement.csv", "Revenue,100,120\n", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandleAnalyzeUnsupportedType(t *testing.T) {
	srv := testServer(t, &stubLLM{content: completeStatementJSON()})

	body, contentType := multipartUpload(t, "statement.docx", "doc content", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeMissingFile(t *testing.T) {
	srv := testServer(t, &stubLLM{content: completeStatementJSON()})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("company", "Acme") //nolint:errcheck
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeExtractionError(t *testing.T) {
	srv := testServer(t, &stubLLM{err: llm.ErrRateLimit})

	body, contentType := multipartUpload(t, "statement.csv", "Revenue,100,120\n", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}
}

// ════════════════════════════════════════════════════════════════════
// Config keys
// ════════════════════════════════════════════════════════════════════

func TestHandleConfigKeys(t *testing.T) {
	t.Setenv("FRAUDLENS_LLM_OPENAI_KEY", "")
	t.Setenv("FRAUDLENS_LLM_GEMINI_KEY", "")
	t.Setenv("FRAUDLENS_LLM_ANTHROPIC_KEY", "")

	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config/keys", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data []config.KeyStatus `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("len(keys) = %d, want 3", len(resp.Data))
	}
	for _, k := range resp.Data {
		if k.IsSet {
			t.Errorf("key %s should not be set", k.Name)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// Envelope
// ════════════════════════════════════════════════════════════════════

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success || resp.Error != "bad input" {
		t.Errorf("envelope = %+v", resp)
	}
}
