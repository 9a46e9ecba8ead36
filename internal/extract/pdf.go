package extract

import (
	"bytes"
	"fmt"
	"os/exec"
)

// pdfToTextBinaries lists the external tools that can dump PDF text,
// in preference order.
var pdfToTextBinaries = []string{"pdftotext"}

// DetectPDFTool returns the path of an available PDF-to-text binary,
// or an empty string if none is installed.
func DetectPDFTool() string {
	for _, name := range pdfToTextBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// IsPDFSupported returns true if a PDF text extraction tool is available.
func IsPDFSupported() bool {
	return DetectPDFTool() != ""
}

// pdfText extracts text from a PDF file using pdftotext.
// The -layout flag preserves table structure, which matters for
// financial statements.
func pdfText(path string) (string, error) {
	tool := DetectPDFTool()
	if tool == "" {
		return "", fmt.Errorf("extract: no PDF tool found in PATH (install poppler-utils for pdftotext)")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(tool, "-layout", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("extract: pdftotext failed: %w\nOutput: %s", err, stderr.String())
	}
	return stdout.String(), nil
}
