package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/mitsuke/internal/models"
)

// searchResponse is the JSON payload for a search request.
type searchResponse struct {
	Query   string                `json:"query"`
	Total   int                   `json:"total"`
	Results []models.SearchResult `json:"results"`
}

// filtersFromRequest maps query parameters onto a filter set. Repeated "tag"
// parameters are AND-combined.
func filtersFromRequest(r *http.Request) models.Filters {
	q := r.URL.Query()
	return models.Filters{
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Tags:     q["tag"],
		Author:   q.Get("author"),
		Range:    models.DateRange(q.Get("range")),
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filters := filtersFromRequest(r)
	s.logger.Debug("search request", zap.String("query", query))

	// HTTP callers issue discrete requests; the debounce window is for
	// interactive in-process callers, so the synchronous path is used here.
	results := s.engine.SearchNow(query, filters)
	s.respondJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Total:   len(results),
		Results: results,
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	suggestions := s.engine.Suggest(query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

type clickRequest struct {
	ItemID string `json:"item_id"`
	Query  string `json:"query"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" {
		s.respondError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	s.logger.Debug("click recorded", zap.String("item_id", req.ItemID), zap.String("query", req.Query))
	s.engine.RecordClick(req.ItemID, req.Query)
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Analytics())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"items":  s.engine.ItemCount(),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
