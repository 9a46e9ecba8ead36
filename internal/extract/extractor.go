package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fraudlens/fraudlens/internal/llm"
	"github.com/fraudlens/fraudlens/pkg/models"
)

// DefaultMaxTextChars caps how much document text is sent to the LLM.
const DefaultMaxTextChars = 120000

// Extractor extracts structured financial statement data from document
// text using an LLM provider (usually a Router).
type Extractor struct {
	provider llm.LLMProvider
	log      *logrus.Logger
	opts     *llm.ChatOptions
	maxChars int
}

// ExtractorOption configures the Extractor.
type ExtractorOption func(*Extractor)

// WithChatOptions sets the LLM request options.
func WithChatOptions(opts *llm.ChatOptions) ExtractorOption {
	return func(e *Extractor) { e.opts = opts }
}

// WithMaxTextChars limits the document text sent per request. Values of
// zero or less keep the default.
func WithMaxTextChars(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.maxChars = n
		}
	}
}

// NewExtractor creates an Extractor backed by the given provider.
func NewExtractor(provider llm.LLMProvider, logger *logrus.Logger, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		provider: provider,
		log:      logger,
		maxChars: DefaultMaxTextChars,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logrus.New()
	}
	return e
}

// Statement asks the LLM to extract the thirteen Beneish inputs for two
// consecutive years from the document text.
func (e *Extractor) Statement(ctx context.Context, text string) (*models.StatementData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("extract: document text is empty")
	}
	if len(text) > e.maxChars {
		e.log.WithFields(logrus.Fields{
			"chars": len(text),
			"limit": e.maxChars,
		}).Warn("document text truncated for LLM")
		text = text[:e.maxChars]
	}

	messages := []llm.Message{
		llm.SystemMessage(extractionSystemPrompt),
		llm.UserMessage(extractionUserPrompt + text),
	}

	resp, err := e.provider.Chat(ctx, messages, e.opts)
	if err != nil {
		return nil, fmt.Errorf("extract: llm request: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"provider": resp.Provider,
		"model":    resp.Model,
		"tokens":   resp.Usage.TotalTokens,
		"latency":  resp.Latency,
	}).Debug("extraction response received")

	statement, err := parseStatementResponse(resp.Content)
	if err != nil {
		return nil, err
	}
	return statement, nil
}

// parseStatementResponse pulls the JSON object out of a model response,
// tolerating markdown code fences and surrounding prose.
func parseStatementResponse(content string) (*models.StatementData, error) {
	jsonText := extractJSONObject(content)
	if jsonText == "" {
		return nil, fmt.Errorf("extract: no JSON object in LLM response")
	}

	var statement models.StatementData
	if err := json.Unmarshal([]byte(jsonText), &statement); err != nil {
		return nil, fmt.Errorf("extract: parse LLM response: %w", err)
	}
	if statement.CompanyName == "" {
		statement.CompanyName = "Unknown Company"
	}
	return &statement, nil
}

// extractJSONObject returns the outermost {...} span of s, or "".
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
