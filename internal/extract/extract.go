// Package extract pulls plain text out of uploaded resume documents.
// Line breaks are preserved so section segmentation downstream can see
// the document's structure.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
	"github.com/nguyenthenguyen/docx"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

// Extractor converts document bytes into raw text by file extension.
// Supported extensions: .pdf, .docx, .txt.
type Extractor struct{}

var _ analysis.TextExtractor = (*Extractor)(nil)

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the document text. An empty string with a nil error
// means the document had no usable text; the caller decides whether
// that is fatal.
func (e *Extractor) Extract(data []byte, extension string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(extension, ".")) {
	case "pdf":
		return extractPDF(data)
	case "docx":
		return extractDocx(data)
	case "txt":
		return normalizeText(string(data)), nil
	default:
		return "", analysis.ErrUnsupportedFormat().WithDetail("extension", extension)
	}
}

// PageCount reports the number of pages for PDF documents; other
// formats count as a single page
func (e *Extractor) PageCount(data []byte, extension string) int {
	if strings.ToLower(strings.TrimPrefix(extension, ".")) != "pdf" {
		return 1
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 1
	}
	defer doc.Close()
	if n := doc.NumPage(); n > 0 {
		return n
	}
	return 1
}

func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return normalizeText(sb.String()), nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// paragraph and line break tags become line breaks before the
	// remaining markup is stripped
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "&amp;", "&")
	content = strings.ReplaceAll(content, "&lt;", "<")
	content = strings.ReplaceAll(content, "&gt;", ">")

	return normalizeText(content), nil
}

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// normalizeText collapses horizontal whitespace and long blank-line
// runs while keeping line structure intact
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
