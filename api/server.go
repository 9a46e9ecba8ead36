// Package api provides the HTTP REST API server for FraudLens.
//
// It exposes endpoints for scoring pre-extracted financial statements,
// analyzing uploaded documents end to end, and inspecting API key status.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/fraudlens/fraudlens/internal/beneish"
	"github.com/fraudlens/fraudlens/internal/config"
	"github.com/fraudlens/fraudlens/internal/extract"
	"github.com/fraudlens/fraudlens/internal/llm"
	"github.com/fraudlens/fraudlens/pkg/models"
)

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	cfg       *config.Config
	log       *logrus.Logger
	reader    *extract.Reader
	extractor *extract.Extractor // nil when no LLM provider is configured
}

// NewServer creates a configured API server with all routes and middleware.
// The server starts even without LLM credentials; the document analysis
// endpoint then responds 503 while scoring stays available.
func NewServer(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	if log == nil {
		log = logrus.New()
	}

	reader := extract.NewReader()
	if cfg.Extract.MaxFileSizeMB > 0 {
		reader.MaxFileSize = int64(cfg.Extract.MaxFileSizeMB) * 1024 * 1024
	}

	srv := &Server{
		cfg:    cfg,
		log:    log,
		reader: reader,
	}

	provider, err := llm.NewRouterFromConfig(cfg)
	switch {
	case err == nil:
		opts := &llm.ChatOptions{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}
		srv.extractor = extract.NewExtractor(provider, log,
			extract.WithChatOptions(opts),
			extract.WithMaxTextChars(cfg.Extract.MaxTextChars))
	case errors.Is(err, llm.ErrNoProviders):
		log.Warn("no LLM providers configured; document analysis disabled")
	default:
		return nil, fmt.Errorf("LLM setup failed: %w", err)
	}

	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.API.Host, s.cfg.API.Port)
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/score", s.handleScore)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/config/keys", s.handleConfigKeys)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalyzeResponse is the body returned by POST /api/v1/analyze.
type AnalyzeResponse struct {
	Statement *models.StatementData  `json:"statement"`
	Result    *models.AnalysisResult `json:"result"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":             "ok",
			"extraction_enabled": s.extractor != nil,
			"time":               time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleScore scores an already-extracted statement: two year mappings in,
// full analysis result out. No LLM involved.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var stmt models.StatementData
	if err := json.NewDecoder(r.Body).Decode(&stmt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := beneish.AnalyzeStatement(&stmt)

	s.log.WithFields(logrus.Fields{
		"company": result.CompanyName,
		"risk":    result.RiskLevel,
	}).Info("statement scored")

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

// handleAnalyze accepts a multipart document upload, extracts statement data
// via the LLM, and scores it. The optional "company" form field overrides the
// extracted company name.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	if !extract.Supported(header.Filename) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported file type: %s", filepath.Ext(header.Filename)))
		return
	}
	if header.Size > s.reader.MaxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d MB limit", s.reader.MaxFileSize/(1024*1024)))
		return
	}

	tmpPath, err := saveUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.RemoveAll(filepath.Dir(tmpPath))

	text, err := s.reader.Text(tmpPath)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("reading document: %v", err))
		return
	}

	timeout := time.Duration(s.cfg.Extract.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	stmt, err := s.extractor.Statement(ctx, text)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("extraction failed: %v", err))
		return
	}

	if company := r.FormValue("company"); company != "" {
		stmt.CompanyName = company
	}

	result := beneish.AnalyzeStatement(stmt)

	s.log.WithFields(logrus.Fields{
		"file":    header.Filename,
		"company": result.CompanyName,
		"risk":    result.RiskLevel,
	}).Info("document analyzed")

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: AnalyzeResponse{
			Statement: stmt,
			Result:    result,
		},
	})
}

// handleConfigKeys returns the status of all LLM API keys, masked.
func (s *Server) handleConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

// ============================================================
// Helpers
// ============================================================

// saveUpload copies an uploaded file into a temp directory, preserving the
// extension so the extraction reader can dispatch on it.
func saveUpload(src io.Reader, filename string) (string, error) {
	dir, err := os.MkdirTemp("", "fraudlens-upload-")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return path, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
