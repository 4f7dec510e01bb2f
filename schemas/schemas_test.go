package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"vocabulary.schema.json",
	"feedback.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]

			assert.True(t, hasType && hasSchema && hasProps,
				"schema should declare type, $schema and properties")
		})
	}
}

func TestVocabularySchema_AcceptsValidDocument(t *testing.T) {
	doc := `{
		"terms": ["python", "go", "kubernetes"],
		"variations": {
			"kubernetes": ["k8s"]
		}
	}`

	err := schemas.ValidateJSON("vocabulary.schema.json", writeTempJSON(t, doc))
	assert.NoError(t, err)
}

func TestVocabularySchema_RejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing terms", `{"variations": {}}`},
		{"empty terms", `{"terms": []}`},
		{"empty term string", `{"terms": [""]}`},
		{"unknown property", `{"terms": ["go"], "aliases": {}}`},
		{"non-array variation", `{"terms": ["go"], "variations": {"go": "golang"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schemas.ValidateJSON("vocabulary.schema.json", writeTempJSON(t, tc.doc))
			require.Error(t, err)
			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestFeedbackSchema_AcceptsValidDocument(t *testing.T) {
	doc := `{
		"buckets": [
			{"name": "infra", "skills": ["terraform", "ansible"], "limit": 2, "template": "Learn %s"}
		],
		"other_template": "Gain experience with %s",
		"other_limit": 3,
		"matched_template": "Strong match in: %s",
		"matched_limit": 5,
		"empty_message": "No gaps detected.",
		"separator": " | "
	}`

	err := schemas.ValidateJSON("feedback.schema.json", writeTempJSON(t, doc))
	assert.NoError(t, err)
}

func TestFeedbackSchema_RejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing empty_message", `{
			"buckets": [],
			"other_template": "x %s", "other_limit": 1,
			"matched_template": "y %s", "matched_limit": 1
		}`},
		{"template without placeholder", `{
			"buckets": [{"name": "b", "skills": ["go"], "limit": 1, "template": "no placeholder"}],
			"other_template": "x %s", "other_limit": 1,
			"matched_template": "y %s", "matched_limit": 1,
			"empty_message": "ok"
		}`},
		{"zero limit", `{
			"buckets": [{"name": "b", "skills": ["go"], "limit": 0, "template": "x %s"}],
			"other_template": "x %s", "other_limit": 1,
			"matched_template": "y %s", "matched_limit": 1,
			"empty_message": "ok"
		}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schemas.ValidateJSON("feedback.schema.json", writeTempJSON(t, tc.doc))
			require.Error(t, err)
			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
