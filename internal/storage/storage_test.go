package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/db"
)

func TestObjectKey_LayoutByKindAndDate(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	doc := &db.Document{
		ID:          id,
		Kind:        db.DocumentKindResume,
		ContentType: "application/pdf",
		CreatedAt:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	key := objectKey("documents", doc)
	assert.Equal(t, "documents/resume/2025/03/14/11111111-2222-3333-4444-555555555555.pdf", key)
}

func TestObjectKey_UsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	doc := &db.Document{
		ID:          uuid.New(),
		Kind:        db.DocumentKindJob,
		ContentType: "text/plain",
		CreatedAt:   time.Date(2025, 1, 1, 2, 0, 0, 0, loc), // 2024-12-31 in UTC
	}

	key := objectKey("documents", doc)
	assert.Contains(t, key, "documents/job/2024/12/31/")
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"application/pdf", ".pdf"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
		{"text/plain", ".txt"},
		{"text/plain; charset=utf-8", ".txt"},
		{"application/octet-stream", ".bin"},
		{"", ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, extensionFor(tt.contentType))
		})
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil)
	assert.Error(t, err)
}
