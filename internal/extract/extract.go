// Package extract turns financial statement documents (PDF, Excel, CSV,
// HTML, plain text) into text and then into structured statement data
// via an LLM.
package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxFileSize caps document size at 50 MB.
const DefaultMaxFileSize = 50 * 1024 * 1024

// Reader extracts raw text from supported document formats.
type Reader struct {
	// MaxFileSize is the largest file the reader will accept, in bytes.
	// Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// NewReader returns a Reader with default limits.
func NewReader() *Reader {
	return &Reader{MaxFileSize: DefaultMaxFileSize}
}

// SupportedExtensions lists the file extensions Text understands.
var SupportedExtensions = []string{".pdf", ".xlsx", ".csv", ".html", ".htm", ".txt"}

// Supported reports whether the file's extension is a supported document type.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Text extracts the text content of the document at path, dispatching on
// the file extension.
func (r *Reader) Text(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	limit := r.MaxFileSize
	if limit == 0 {
		limit = DefaultMaxFileSize
	}
	if info.Size() > limit {
		return "", fmt.Errorf("extract: file %s is %d bytes, limit is %d", filepath.Base(path), info.Size(), limit)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".xlsx":
		return xlsxText(path)
	case ".csv":
		return csvText(path)
	case ".html", ".htm":
		return htmlText(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("extract: unsupported file type %q", filepath.Ext(path))
	}
}

// csvText renders a CSV file as tab-separated rows.
func csvText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are fine for text dumps

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("extract: parse csv: %w", err)
	}

	var sb strings.Builder
	for _, record := range records {
		sb.WriteString(strings.Join(record, "\t"))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// htmlText extracts the visible text of an HTML document, dropping
// script and style content.
func htmlText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("extract: parse html: %w", err)
	}
	doc.Find("script, style").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	// Collapse runs of blank lines left behind by removed markup.
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
