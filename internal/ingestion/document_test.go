package ingestion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"pdf extension", "resume.pdf", nil, ContentTypePDF},
		{"pdf extension uppercase", "RESUME.PDF", nil, ContentTypePDF},
		{"docx extension", "resume.docx", nil, ContentTypeDocx},
		{"txt extension", "resume.txt", nil, ContentTypeText},
		{"md extension", "job.md", nil, ContentTypeText},
		{"no extension, text bytes", "resume", []byte("plain resume text"), ContentTypeText},
		{"no extension, pdf bytes", "resume", []byte("%PDF-1.4 rest"), "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContentType(tt.filename, tt.data))
		})
	}
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("text/plain; charset=utf-8", []byte("Senior Go engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer", text)
}

func TestExtractText_TooLarge(t *testing.T) {
	data := bytes.Repeat([]byte("a"), MaxDocumentBytes+1)
	_, err := ExtractText(ContentTypeText, data)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	_, err := ExtractText("image/png", []byte{0x89, 0x50})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText(ContentTypePDF, []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestExtractText_CorruptDocx(t *testing.T) {
	_, err := ExtractText(ContentTypeDocx, []byte("not a zip archive"))
	assert.Error(t, err)
}

func TestStripDocxMarkup(t *testing.T) {
	input := `<w:body><w:p><w:r><w:t>Senior engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Python &amp; Go</w:t></w:r></w:p></w:body>`

	got := stripDocxMarkup(input)

	assert.Contains(t, got, "Senior engineer")
	assert.Contains(t, got, "Python & Go")
	assert.NotContains(t, got, "<w:")
	// Paragraph boundary becomes a line break
	lines := strings.Split(strings.TrimSpace(got), "\n")
	assert.Len(t, lines, 2)
}

func TestIngestBytes_TextDocument(t *testing.T) {
	raw := []byte("Senior  engineer\r\n\r\n\r\n\r\nwith Go experience")

	cleanedText, metadata, err := IngestBytes("resume.txt", "", raw)
	require.NoError(t, err)

	assert.Equal(t, "Senior engineer\n\nwith Go experience", cleanedText)
	assert.Equal(t, "resume.txt", metadata.Filename)
	assert.Equal(t, ContentTypeText, metadata.ContentType)
	assert.Equal(t, 5, metadata.WordCount)
	assert.Len(t, metadata.Hash, 64)
}

func TestIngestBytes_StripsDirectoryFromFilename(t *testing.T) {
	_, metadata, err := IngestBytes("../../etc/resume.txt", ContentTypeText, []byte("text"))
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", metadata.Filename)
}

func TestIngestBytes_EmptyDocument(t *testing.T) {
	_, _, err := IngestBytes("blank.txt", ContentTypeText, []byte("   \n  \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestIngestBytes_OctetStreamIsSniffed(t *testing.T) {
	cleanedText, metadata, err := IngestBytes("resume", "application/octet-stream", []byte("Go and Python developer"))
	require.NoError(t, err)

	assert.Equal(t, "Go and Python developer", cleanedText)
	assert.Equal(t, ContentTypeText, metadata.ContentType)
}
