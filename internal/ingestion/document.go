package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported document content types
const (
	ContentTypeText = "text/plain"
	ContentTypePDF  = "application/pdf"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxDocumentBytes caps uploads; larger documents are rejected before parsing
const MaxDocumentBytes = 10 << 20

var (
	// ErrUnsupportedFormat is returned for document formats the matcher cannot read
	ErrUnsupportedFormat = fmt.Errorf("unsupported document format")
	// ErrDocumentTooLarge is returned when an upload exceeds MaxDocumentBytes
	ErrDocumentTooLarge = fmt.Errorf("document exceeds %d bytes", MaxDocumentBytes)
	// ErrEmptyDocument is returned when no text survives extraction and cleaning
	ErrEmptyDocument = fmt.Errorf("document contains no text")
)

var (
	docxParagraphPattern = regexp.MustCompile(`</w:p>`)
	docxTagPattern       = regexp.MustCompile(`<[^>]+>`)
)

// DetectContentType resolves a document's content type from its filename
// extension, falling back to sniffing the bytes.
func DetectContentType(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".docx":
		return ContentTypeDocx
	case ".txt", ".md", ".text":
		return ContentTypeText
	}

	detected := http.DetectContentType(data)
	if strings.HasPrefix(detected, "text/") {
		return ContentTypeText
	}
	return detected
}

// ExtractText converts document bytes to plain text
func ExtractText(contentType string, data []byte) (string, error) {
	if len(data) > MaxDocumentBytes {
		return "", ErrDocumentTooLarge
	}

	switch {
	case strings.HasPrefix(contentType, "text/"):
		return string(data), nil
	case strings.HasPrefix(contentType, ContentTypePDF):
		return extractPDFText(data)
	case strings.HasPrefix(contentType, ContentTypeDocx):
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
}

// IngestBytes extracts, cleans and fingerprints an uploaded document
func IngestBytes(filename, contentType string, data []byte) (string, *Metadata, error) {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = DetectContentType(filename, data)
	}

	text, err := ExtractText(contentType, data)
	if err != nil {
		return "", nil, err
	}

	cleanedText := CleanText(text)
	if cleanedText == "" {
		return "", nil, ErrEmptyDocument
	}

	metadata := NewMetadata(cleanedText, "")
	metadata.Filename = filepath.Base(filename)
	metadata.ContentType = contentType
	return cleanedText, metadata, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("no extractable text in PDF")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX: %w", err)
	}
	defer doc.Close()

	return stripDocxMarkup(doc.Editable().GetContent()), nil
}

// stripDocxMarkup converts WordprocessingML to plain text. Paragraph closes
// become newlines, remaining tags are dropped, entities are decoded.
func stripDocxMarkup(content string) string {
	content = docxParagraphPattern.ReplaceAllString(content, "\n")
	content = docxTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
