package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fraudlens/fraudlens/internal/beneish"
	"github.com/fraudlens/fraudlens/internal/extract"
	"github.com/fraudlens/fraudlens/internal/llm"
	"github.com/fraudlens/fraudlens/internal/report"
	"github.com/fraudlens/fraudlens/pkg/models"
)

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Extract and score financial statements from documents",
	Long: `Extract two years of financial statement data from one or more documents
(PDF, XLSX, CSV, HTML, TXT) via the configured LLM provider, compute the
Beneish M-Score, and print a fraud-risk report. Multiple files are
processed concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("pdf", false, "export a PDF report per document")
	analyzeCmd.Flags().Bool("xlsx", false, "export an Excel workbook per document")
	analyzeCmd.Flags().Bool("html", false, "export an HTML report per document")
	analyzeCmd.Flags().Bool("text", false, "print the extracted data as tab-separated values")
	analyzeCmd.Flags().String("out", "", "output directory for exports (default: from config)")
	analyzeCmd.Flags().String("company", "", "override the extracted company name")
}

// fileAnalysis pairs an input document with its analysis outcome.
type fileAnalysis struct {
	path   string
	stmt   *models.StatementData
	result *models.AnalysisResult
	err    error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	provider, err := llm.NewRouterFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("LLM setup failed: %w", err)
	}

	reader := extract.NewReader()
	if cfg.Extract.MaxFileSizeMB > 0 {
		reader.MaxFileSize = int64(cfg.Extract.MaxFileSizeMB) * 1024 * 1024
	}

	extractor := extract.NewExtractor(provider, log,
		extract.WithChatOptions(&llm.ChatOptions{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}),
		extract.WithMaxTextChars(cfg.Extract.MaxTextChars))

	company, _ := cmd.Flags().GetString("company")

	timeout := time.Duration(cfg.Extract.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	analyses := make([]fileAnalysis, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	if limit := cfg.Extract.Concurrency; limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			analyses[i] = analyzeFile(ctx, reader, extractor, path, company, timeout)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // per-file errors are kept in analyses

	var failed int
	for _, a := range analyses {
		if a.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", a.path, a.err)
			continue
		}
		if err := printAndExport(cmd, a); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

// analyzeFile runs the read → extract → score pipeline for one document.
func analyzeFile(ctx context.Context, reader *extract.Reader, extractor *extract.Extractor, path, company string, timeout time.Duration) fileAnalysis {
	a := fileAnalysis{path: path}

	text, err := reader.Text(path)
	if err != nil {
		a.err = err
		return a
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stmt, err := extractor.Statement(ctx, text)
	if err != nil {
		a.err = fmt.Errorf("extraction failed: %w", err)
		return a
	}
	if company != "" {
		stmt.CompanyName = company
	}

	a.stmt = stmt
	a.result = beneish.AnalyzeStatement(stmt)
	return a
}

// printAndExport renders the terminal report and writes any requested exports.
func printAndExport(cmd *cobra.Command, a fileAnalysis) error {
	reportCfg := report.DefaultReportConfig()

	text, err := report.GenerateText(a.result, reportCfg)
	if err != nil {
		return err
	}
	fmt.Println(text)

	if dump, _ := cmd.Flags().GetBool("text"); dump {
		fmt.Println(beneish.FormatTSV(a.result.Year1, a.result.Year2))
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.Report.OutputDir
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	base := strings.TrimSuffix(filepath.Base(a.path), filepath.Ext(a.path))

	if wantHTML, _ := cmd.Flags().GetBool("html"); wantHTML {
		html, err := report.GenerateHTML(a.result, reportCfg)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, base+".html")
		if err := os.WriteFile(path, []byte(html), 0644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		fmt.Printf("📄 HTML report: %s\n", path)
	}

	if wantPDF, _ := cmd.Flags().GetBool("pdf"); wantPDF {
		html, err := report.GenerateHTML(a.result, reportCfg)
		if err != nil {
			return err
		}
		pdfCfg := report.DefaultPDFConfig()
		pdfCfg.Engine = report.ParsePDFEngine(cfg.Report.PDFEngine)
		pdfCfg.OutputPath = filepath.Join(outDir, base+".pdf")
		if err := report.GeneratePDF(html, pdfCfg); err != nil {
			return fmt.Errorf("PDF export: %w", err)
		}
		fmt.Printf("📄 PDF report: %s\n", pdfCfg.OutputPath)
	}

	if wantXLSX, _ := cmd.Flags().GetBool("xlsx"); wantXLSX {
		path := filepath.Join(outDir, base+".xlsx")
		if err := report.GenerateXLSX(a.result, path); err != nil {
			return fmt.Errorf("Excel export: %w", err)
		}
		fmt.Printf("📊 Excel workbook: %s\n", path)
	}

	return nil
}

// --- Score Command ---

var scoreCmd = &cobra.Command{
	Use:   "score <statement.json>",
	Short: "Score an already-extracted JSON statement (no LLM)",
	Long: `Score a financial statement that has already been extracted to JSON.
The file must contain company_name, year_1_data, and year_2_data with the
snake_case field names used by the extraction contract. Use "-" to read
from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}

		stmt, err := models.ParseStatement(data)
		if err != nil {
			return fmt.Errorf("parsing statement: %w", err)
		}
		if company, _ := cmd.Flags().GetString("company"); company != "" {
			stmt.CompanyName = company
		}

		result := beneish.AnalyzeStatement(stmt)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		text, err := report.GenerateText(result, report.DefaultReportConfig())
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	scoreCmd.Flags().Bool("json", false, "emit the analysis result as JSON")
	scoreCmd.Flags().String("company", "", "override the company name")
}
