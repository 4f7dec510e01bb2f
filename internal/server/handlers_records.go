package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/audit"
	"github.com/jonathan/resume-matcher/internal/db"
)

// ListMatchesResponse represents the response for listing stored matches
type ListMatchesResponse struct {
	Matches []db.MatchRecord `json:"matches"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// handleListMatches lists stored match results with optional filters and pagination
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	filters := db.MatchFilters{
		Verdict:  r.URL.Query().Get("verdict"),
		Context:  r.URL.Query().Get("context"),
		MinScore: parseQueryFloat(r, "min_score"),
		Limit:    limit,
		Offset:   offset,
	}

	matches, total, err := s.db.ListMatches(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if matches == nil {
		matches = []db.MatchRecord{}
	}

	s.jsonResponse(w, http.StatusOK, ListMatchesResponse{
		Matches: matches,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// handleGetMatch retrieves a stored match result by its ID
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	record, err := s.db.GetMatch(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteMatch removes a stored match result
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	record, err := s.db.GetMatch(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	if err := s.db.DeleteMatch(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.recorder.Record(db.AuditEvent{
		EventType:    audit.EventTypeMatch,
		Action:       "match_deleted",
		ResourceType: "match_result",
		ResourceID:   &id,
		Endpoint:     r.URL.Path,
		StatusCode:   http.StatusOK,
	})
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": id.String()})
}

// handleListDocuments lists stored documents, optionally filtered by kind
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != db.DocumentKindResume && kind != db.DocumentKindJob {
		s.errorResponse(w, http.StatusBadRequest, "kind must be resume or job")
		return
	}
	limit := parseQueryInt(r, "limit", 50, 100)

	documents, err := s.db.ListDocuments(r.Context(), kind, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if documents == nil {
		documents = []db.Document{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"documents": documents,
		"count":     len(documents),
	})
}

// handleGetDocument retrieves a stored document by its ID
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	doc, err := s.db.GetDocument(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if doc == nil {
		s.errorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

// handleGetStatistics aggregates the stored match results
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	stats, err := s.db.GetStatistics(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}

// handleListAuditEvents lists recorded audit events with optional filters
func (s *Server) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	filters := db.AuditEventFilters{
		EventType: r.URL.Query().Get("event_type"),
		Action:    r.URL.Query().Get("action"),
		Limit:     parseQueryInt(r, "limit", 100, 500),
	}

	events, err := s.db.ListAuditEvents(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if events == nil {
		events = []db.AuditEvent{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// handleHealth reports service health. It always answers 200 so load
// balancers keep routing to a degraded but working matcher; the database
// state is part of the payload instead.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"service":   "healthy",
		"version":   algorithmVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  s.dbStatus,
		"embedding": string(s.embeddings.Provider()),
	}
	if s.embeddings.Degraded() {
		health["embedding_fallback"] = "lexical"
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			health["database"] = dbStatusUnavailable
		} else if stats, err := s.db.GetStatistics(ctx); err == nil {
			health["match_count"] = stats.TotalMatches
		}
	}

	s.jsonResponse(w, http.StatusOK, health)
}

// requireDB writes a 503 when no database is connected.
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db != nil {
		return true
	}
	message := "Persistence is not configured"
	if s.dbStatus == dbStatusUnavailable {
		message = "Database is unavailable"
	}
	s.errorResponse(w, http.StatusServiceUnavailable, message)
	return false
}

// parseQueryInt reads an integer query parameter, clamping to maxValue when
// maxValue is positive.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseQueryFloat reads a float query parameter, returning 0 when absent or invalid.
func parseQueryFloat(r *http.Request, key string) float64 {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return 0
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil || val < 0 {
		return 0
	}
	return val
}
