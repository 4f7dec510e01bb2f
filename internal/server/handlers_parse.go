package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/audit"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ParseTextRequest represents a JSON request carrying raw text to parse.
type ParseTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ParseJobURLRequest represents the request body for /parse/job/url
type ParseJobURLRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser *bool  `json:"use_browser,omitempty"`
}

// ParseJobURLResponse pairs the fetched URL with its parsed posting.
type ParseJobURLResponse struct {
	SourceURL string           `json:"source_url"`
	Posting   types.JobPosting `json:"posting"`
}

// ExtractSkillsResponse represents the response for /extract-skills
type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

// handleParseResume parses a resume into its lightweight profile. It accepts
// either a multipart upload (field "file") or a JSON body with raw text.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var text string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(ingestion.MaxDocumentBytes); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxDocumentBytes+1))
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
			return
		}
		text, _, err = ingestion.IngestBytes(header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			s.errorResponse(w, httpStatusFor(err), "Failed to extract resume text: "+err.Error())
			return
		}
	} else {
		var req ParseTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "text is required")
			return
		}
		text = req.Text
	}

	profile := parsing.ParseResume(text, s.extractor)
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleParseJob parses a job description into its structured posting
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	posting := parsing.ParseJob(req.Text, s.extractor)
	s.jsonResponse(w, http.StatusOK, posting)
}

// handleParseJobURL fetches a job posting from a URL and parses it
func (s *Server) handleParseJobURL(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ParseJobURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "a valid url is required")
		return
	}

	useBrowser := s.useBrowser
	if req.UseBrowser != nil {
		useBrowser = *req.UseBrowser
	}

	text, meta, err := ingestion.IngestFromURL(r.Context(), req.URL, useBrowser, s.logger)
	if err != nil {
		status := httpStatusFor(err)
		s.recorder.Record(db.AuditEvent{
			EventType:  audit.EventTypeIngestion,
			Action:     "url_fetch_failed",
			Endpoint:   r.URL.Path,
			StatusCode: status,
			DurationMS: time.Since(start).Milliseconds(),
			Detail:     map[string]any{"url": req.URL, "error": err.Error()},
		})
		s.errorResponse(w, status, "Failed to fetch job posting: "+err.Error())
		return
	}

	s.recorder.Record(db.AuditEvent{
		EventType:  audit.EventTypeIngestion,
		Action:     "url_fetched",
		Endpoint:   r.URL.Path,
		StatusCode: http.StatusOK,
		DurationMS: time.Since(start).Milliseconds(),
		Detail:     map[string]any{"url": req.URL, "platform": meta.Platform, "words": meta.WordCount},
	})

	s.jsonResponse(w, http.StatusOK, ParseJobURLResponse{
		SourceURL: req.URL,
		Posting:   parsing.ParseJob(text, s.extractor),
	})
}

// handleExtractSkills returns the vocabulary skills found in a text
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	skills := s.extractor.Extract(req.Text)
	s.jsonResponse(w, http.StatusOK, ExtractSkillsResponse{Skills: skills, Count: len(skills)})
}
