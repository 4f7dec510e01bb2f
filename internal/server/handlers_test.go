package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
)

// multipartResume builds a multipart body with a resume file and form fields.
func multipartResume(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// TestMatchFileEndpoint tests uploading a resume file for matching
func TestMatchFileEndpoint(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt",
		"Engineer with Python and Docker experience building REST API services.",
		map[string]string{
			"jd_text":   "Looking for a Python engineer",
			"jd_skills": "Python, Docker, Kubernetes",
		})

	req := httptest.NewRequest(http.MethodPost, "/match/file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handleMatchFile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp FileMatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Filename != "resume.txt" {
		t.Errorf("expected filename resume.txt, got %q", resp.Filename)
	}
	if resp.MatchResult == nil {
		t.Fatal("expected a match result")
	}
	// python and docker matched, kubernetes missing
	if len(resp.MatchResult.MatchedSkills) != 2 {
		t.Errorf("MatchedSkills = %v, want 2 entries", resp.MatchResult.MatchedSkills)
	}
	if len(resp.MatchResult.MissingSkills) != 1 {
		t.Errorf("MissingSkills = %v, want 1 entry", resp.MatchResult.MissingSkills)
	}
}

// TestMatchFileEndpoint_MissingFile tests the upload endpoint without a file
func TestMatchFileEndpoint_MissingFile(t *testing.T) {
	s := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("jd_text", "some job"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/match/file", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	s.handleMatchFile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestMatchFileEndpoint_UnsupportedFormat tests an upload with an unknown extension
func TestMatchFileEndpoint_UnsupportedFormat(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartResume(t, "resume.xlsx", "binary-ish content",
		map[string]string{"jd_text": "job"})

	req := httptest.NewRequest(http.MethodPost, "/match/file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handleMatchFile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

// TestParseResumeEndpoint_JSON tests parsing resume text sent as JSON
func TestParseResumeEndpoint_JSON(t *testing.T) {
	s := newTestServer(t)

	text := "Jane Smith\njane.smith@example.com\n+1 555 123 4567\n8 years of experience with Python, AWS and PostgreSQL"
	payload, _ := json.Marshal(ParseTextRequest{Text: text})

	req := httptest.NewRequest(http.MethodPost, "/parse/resume", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleParseResume(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if profile.Contact.Name != "Jane Smith" {
		t.Errorf("Name = %q, want Jane Smith", profile.Contact.Name)
	}
	if profile.Contact.Email != "jane.smith@example.com" {
		t.Errorf("Email = %q", profile.Contact.Email)
	}
	if profile.ExperienceYears != 8 {
		t.Errorf("ExperienceYears = %v, want 8", profile.ExperienceYears)
	}
	if len(profile.Skills) == 0 {
		t.Error("expected extracted skills")
	}
}

// TestParseResumeEndpoint_File tests parsing an uploaded resume file
func TestParseResumeEndpoint_File(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt",
		"John Doe\njohn@example.com\nPython developer", nil)

	req := httptest.NewRequest(http.MethodPost, "/parse/resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	s.handleParseResume(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if profile.Contact.Email != "john@example.com" {
		t.Errorf("Email = %q", profile.Contact.Email)
	}
}

// TestParseResumeEndpoint_MissingText tests the JSON path without text
func TestParseResumeEndpoint_MissingText(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/parse/resume", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleParseResume(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestParseJobEndpoint tests parsing a job description
func TestParseJobEndpoint(t *testing.T) {
	s := newTestServer(t)

	text := "Senior Backend Engineer\nLocation: Berlin\nRequirements: 5+ years of experience, Python, Kubernetes required. Nice to have: Terraform"
	payload, _ := json.Marshal(ParseTextRequest{Text: text})

	req := httptest.NewRequest(http.MethodPost, "/parse/job", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleParseJob(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var posting types.JobPosting
	if err := json.Unmarshal(w.Body.Bytes(), &posting); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if posting.WordCount == 0 {
		t.Error("expected a word count")
	}
	if len(posting.RequiredSkills) == 0 {
		t.Error("expected required skills")
	}
}

// TestParseJobEndpoint_MissingText tests /parse/job without text
func TestParseJobEndpoint_MissingText(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/parse/job", strings.NewReader(`{"text": ""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleParseJob(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestParseJobURLEndpoint_InvalidURL tests /parse/job/url with a bad URL
func TestParseJobURLEndpoint_InvalidURL(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{}`, `{"url": "not a url"}`} {
		req := httptest.NewRequest(http.MethodPost, "/parse/job/url", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		s.handleParseJobURL(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status 400, got %d", body, w.Code)
		}
	}
}

// TestParseJobURLEndpoint_FetchesStub tests /parse/job/url against a local stub server
func TestParseJobURLEndpoint_FetchesStub(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><main>
			<h1>Platform Engineer</h1>
			<p>We are hiring a platform engineer with strong Kubernetes and Terraform skills.
			The role requires 4+ years of experience operating production infrastructure,
			working with Docker, AWS and CI/CD pipelines across several product teams.</p>
		</main></body></html>`)) //nolint:errcheck
	}))
	defer stub.Close()

	s := newTestServer(t)

	payload, _ := json.Marshal(ParseJobURLRequest{URL: stub.URL})
	req := httptest.NewRequest(http.MethodPost, "/parse/job/url", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleParseJobURL(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ParseJobURLResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.SourceURL != stub.URL {
		t.Errorf("SourceURL = %q, want %q", resp.SourceURL, stub.URL)
	}
	if resp.Posting.WordCount == 0 {
		t.Error("expected parsed posting content")
	}
}

// TestExtractSkillsEndpoint tests /extract-skills
func TestExtractSkillsEndpoint(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(ParseTextRequest{Text: "Built services in Go with PostgreSQL and Docker"})
	req := httptest.NewRequest(http.MethodPost, "/extract-skills", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.handleExtractSkills(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ExtractSkillsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != len(resp.Skills) {
		t.Errorf("count %d does not match %d skills", resp.Count, len(resp.Skills))
	}
	found := map[string]bool{}
	for _, skill := range resp.Skills {
		found[skill] = true
	}
	for _, want := range []string{"go", "postgresql", "docker"} {
		if !found[want] {
			t.Errorf("expected %q in extracted skills %v", want, resp.Skills)
		}
	}
}

// TestSplitSkills tests comma-separated skill parsing
func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "python", []string{"python"}},
		{"spaces and empties", " python , , aws ,docker", []string{"python", "aws", "docker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSkills(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitSkills(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitSkills(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestParseFormFloat tests weight parsing from form values
func TestParseFormFloat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"absent", "", 0},
		{"valid", "0.6", 0.6},
		{"not a number", "abc", 0},
		{"above one", "1.5", 0},
		{"negative", "-0.3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/match/file", nil)
			form := req.URL.Query()
			if tt.value != "" {
				form.Set("hard_weight", tt.value)
			}
			req.URL.RawQuery = form.Encode()

			if got := parseFormFloat(req, "hard_weight"); got != tt.want {
				t.Errorf("parseFormFloat(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
