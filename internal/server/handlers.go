package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/audit"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/types"
)

// algorithmVersion identifies the scoring algorithm in results and stored records.
const algorithmVersion = matching.AlgorithmVersion

// batchConcurrency bounds how many jobs in a batch are scored at once.
const batchConcurrency = 4

// MatchRequest represents the request body for /match
type MatchRequest struct {
	ResumeText string   `json:"resume_text"`
	JobText    string   `json:"jd_text"`
	JobSkills  []string `json:"jd_skills"`
	HardWeight float64  `json:"hard_weight" validate:"gte=0,lte=1"`
	SoftWeight float64  `json:"soft_weight" validate:"gte=0,lte=1"`
}

// MatchResponse is the match result plus the ID it was stored under
// when persistence is enabled.
type MatchResponse struct {
	*types.MatchResult
	MatchID *uuid.UUID `json:"match_id,omitempty"`
}

// FileMatchResponse pairs the uploaded filename with its match result.
type FileMatchResponse struct {
	Filename    string             `json:"filename"`
	MatchResult *types.MatchResult `json:"match_result"`
	MatchID     *uuid.UUID         `json:"match_id,omitempty"`
}

// BatchMatchRequest scores one resume against several jobs in a single call.
type BatchMatchRequest struct {
	ResumeText string          `json:"resume_text"`
	Jobs       []BatchJobEntry `json:"jobs" validate:"required,min=1,max=50"`
	HardWeight float64         `json:"hard_weight" validate:"gte=0,lte=1"`
	SoftWeight float64         `json:"soft_weight" validate:"gte=0,lte=1"`
}

// BatchJobEntry is one job inside a batch request.
type BatchJobEntry struct {
	JobText   string   `json:"jd_text"`
	JobSkills []string `json:"jd_skills"`
}

// BatchMatchEntry is the outcome for one job of a batch, in request order.
type BatchMatchEntry struct {
	Index   int                `json:"index"`
	Result  *types.MatchResult `json:"result,omitempty"`
	MatchID *uuid.UUID         `json:"match_id,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// BatchMatchResponse represents the response for /match/batch
type BatchMatchResponse struct {
	Results []BatchMatchEntry `json:"results"`
	Count   int               `json:"count"`
}

// handleMatch scores a resume against one job description
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.matcher.Match(r.Context(), matching.Request{
		ResumeText:     req.ResumeText,
		JobText:        req.JobText,
		RequiredSkills: req.JobSkills,
		HardWeight:     req.HardWeight,
		SoftWeight:     req.SoftWeight,
	})
	if err != nil {
		s.matchFailed(w, r, err, start)
		return
	}

	matchID := s.persistMatch(r.Context(), result, persistInput{
		resumeText: req.ResumeText,
		jobText:    req.JobText,
		context:    db.MatchContextAPI,
		elapsed:    time.Since(start),
	})

	s.auditMatch(r, result, matchID, start)
	s.jsonResponse(w, http.StatusOK, MatchResponse{MatchResult: result, MatchID: matchID})
}

// handleMatchFile scores an uploaded resume file against a job description.
// The form fields mirror /match: jd_text, jd_skills (comma-separated),
// hard_weight and soft_weight.
func (s *Server) handleMatchFile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

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

	resumeText, meta, err := ingestion.IngestBytes(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.errorResponse(w, httpStatusFor(err), "Failed to extract resume text: "+err.Error())
		return
	}

	result, err := s.matcher.Match(r.Context(), matching.Request{
		ResumeText:     resumeText,
		JobText:        r.FormValue("jd_text"),
		RequiredSkills: splitSkills(r.FormValue("jd_skills")),
		HardWeight:     parseFormFloat(r, "hard_weight"),
		SoftWeight:     parseFormFloat(r, "soft_weight"),
	})
	if err != nil {
		s.matchFailed(w, r, err, start)
		return
	}

	s.archiveUpload(header.Filename, meta.ContentType, resumeText, data)

	matchID := s.persistMatch(r.Context(), result, persistInput{
		resumeText:  resumeText,
		jobText:     r.FormValue("jd_text"),
		filename:    header.Filename,
		contentType: meta.ContentType,
		context:     db.MatchContextFile,
		elapsed:     time.Since(start),
	})

	s.auditMatch(r, result, matchID, start)
	s.jsonResponse(w, http.StatusOK, FileMatchResponse{
		Filename:    header.Filename,
		MatchResult: result,
		MatchID:     matchID,
	})
}

// handleMatchBatch scores one resume against several jobs concurrently.
// A failure on one job reports that entry and never aborts the others.
func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BatchMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	entries := make([]BatchMatchEntry, len(req.Jobs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)

	for i, job := range req.Jobs {
		g.Go(func() error {
			result, err := s.matcher.Match(ctx, matching.Request{
				ResumeText:     req.ResumeText,
				JobText:        job.JobText,
				RequiredSkills: job.JobSkills,
				HardWeight:     req.HardWeight,
				SoftWeight:     req.SoftWeight,
			})
			if err != nil {
				entries[i] = BatchMatchEntry{Index: i, Error: err.Error()}
				return nil
			}
			matchID := s.persistMatch(ctx, result, persistInput{
				resumeText: req.ResumeText,
				jobText:    job.JobText,
				context:    db.MatchContextBatch,
				elapsed:    time.Since(start),
			})
			entries[i] = BatchMatchEntry{Index: i, Result: result, MatchID: matchID}
			return nil
		})
	}
	_ = g.Wait()

	s.recorder.Record(db.AuditEvent{
		EventType:  audit.EventTypeMatch,
		Action:     "batch_scored",
		Endpoint:   r.URL.Path,
		StatusCode: http.StatusOK,
		DurationMS: time.Since(start).Milliseconds(),
		Detail:     map[string]any{"jobs": len(req.Jobs)},
	})
	s.jsonResponse(w, http.StatusOK, BatchMatchResponse{Results: entries, Count: len(entries)})
}

// persistInput carries what persistMatch needs to store one scored pair.
type persistInput struct {
	resumeText  string
	jobText     string
	filename    string
	contentType string
	sourceURL   string
	context     string
	elapsed     time.Duration
}

// persistMatch stores the documents and the match record when a database is
// connected. Storage failures are logged and never fail the request.
func (s *Server) persistMatch(ctx context.Context, result *types.MatchResult, in persistInput) *uuid.UUID {
	if s.db == nil {
		return nil
	}

	resumeDocID := s.saveDocument(ctx, db.DocumentCreateInput{
		Kind:        db.DocumentKindResume,
		Filename:    in.filename,
		ContentType: in.contentType,
		RawText:     in.resumeText,
		WordCount:   len(strings.Fields(in.resumeText)),
		ContentHash: embedding.ContentHash(in.resumeText),
	})
	jobDocID := s.saveDocument(ctx, db.DocumentCreateInput{
		Kind:        db.DocumentKindJob,
		SourceURL:   in.sourceURL,
		RawText:     in.jobText,
		WordCount:   len(strings.Fields(in.jobText)),
		ContentHash: embedding.ContentHash(in.jobText),
	})

	id, err := s.db.SaveMatch(ctx, db.MatchCreateInput{
		ResumeDocumentID:      resumeDocID,
		JobDocumentID:         jobDocID,
		Score:                 result.Score,
		HardScore:             result.HardScore,
		SoftScore:             result.SoftScore,
		Verdict:               result.Verdict,
		HardWeight:            result.Weights.Hard,
		SoftWeight:            result.Weights.Soft,
		MatchedSkills:         result.MatchedSkills,
		MissingSkills:         result.MissingSkills,
		ExtractedResumeSkills: result.ExtractedResumeSkills,
		CommonKeywords:        result.CommonKeywords,
		Feedback:              result.Feedback,
		AlgorithmVersion:      algorithmVersion,
		ProcessingTimeMS:      in.elapsed.Milliseconds(),
		MatchContext:          in.context,
	})
	if err != nil {
		s.logger.Warn("failed to persist match result", zap.Error(err))
		return nil
	}
	return &id
}

// saveDocument stores one document, reusing an existing row that holds the
// same content. Returns nil for empty text or on failure.
func (s *Server) saveDocument(ctx context.Context, input db.DocumentCreateInput) *uuid.UUID {
	if input.RawText == "" {
		return nil
	}
	if existing, err := s.db.FindDocumentByHash(ctx, input.Kind, input.ContentHash); err == nil && existing != nil {
		return &existing.ID
	}
	id, err := s.db.SaveDocument(ctx, input)
	if err != nil {
		s.logger.Warn("failed to store document",
			zap.String("kind", input.Kind),
			zap.Error(err))
		return nil
	}
	return &id
}

// archiveUpload copies the raw upload to object storage in the background.
func (s *Server) archiveUpload(filename, contentType, text string, raw []byte) {
	if s.archive == nil {
		return
	}
	doc := &db.Document{
		ID:          uuid.New(),
		Kind:        db.DocumentKindResume,
		Filename:    filename,
		ContentType: contentType,
		ContentHash: embedding.ContentHash(text),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.archive.StoreDocument(ctx, doc, raw); err != nil {
			s.logger.Warn("failed to archive upload",
				zap.String("filename", filename),
				zap.Error(err))
		}
	}()
}

// auditMatch records one scored match on the audit side-channel.
func (s *Server) auditMatch(r *http.Request, result *types.MatchResult, matchID *uuid.UUID, start time.Time) {
	s.recorder.Record(db.AuditEvent{
		EventType:    audit.EventTypeMatch,
		Action:       "match_scored",
		ResourceType: "match_result",
		ResourceID:   matchID,
		Endpoint:     r.URL.Path,
		StatusCode:   http.StatusOK,
		DurationMS:   time.Since(start).Milliseconds(),
		Detail:       map[string]any{"verdict": result.Verdict, "score": result.Score},
	})
}

// matchFailed records the failure and writes the error response.
func (s *Server) matchFailed(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	status := httpStatusFor(err)
	s.recorder.Record(db.AuditEvent{
		EventType:  audit.EventTypeMatch,
		Action:     "match_failed",
		Endpoint:   r.URL.Path,
		StatusCode: status,
		DurationMS: time.Since(start).Milliseconds(),
		Detail:     map[string]any{"error": err.Error()},
	})
	s.errorResponse(w, status, "Matching failed: "+err.Error())
}

// splitSkills parses a comma-separated skill list, dropping empty entries.
func splitSkills(value string) []string {
	if value == "" {
		return nil
	}
	var skills []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// parseFormFloat reads a float form value, returning 0 when absent or invalid
// so the matcher falls back to its default weights.
func parseFormFloat(r *http.Request, key string) float64 {
	value := r.FormValue(key)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || f > 1 {
		return 0
	}
	return f
}
