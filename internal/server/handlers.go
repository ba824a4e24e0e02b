package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/socratesone/knowledge-navigator/internal/content"
	"github.com/socratesone/knowledge-navigator/internal/search"
)

// errorResponse is the JSON body for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Library().Manifest)
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	topic := s.Library().Topic(slug)
	if topic == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error: "no topic with slug " + strconv.Quote(slug),
			Kind:  string(content.ErrorNotFound),
		})
		return
	}

	etag := `"` + topic.ContentHash + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	respondJSON(w, http.StatusOK, topic)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := search.Search(query, s.searchTopics())

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if len(results) > limit {
			results = results[:limit]
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

// preferences is the payload for the reader preferences API.
type preferences struct {
	Expanded  []string `json:"expanded"`
	Bookmarks []string `json:"bookmarks"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "preferences store not configured")
		return
	}
	reader := chi.URLParam(r, "reader")

	expanded, err := s.store.ExpandedCategories(r.Context(), reader)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	bookmarks, err := s.store.Bookmarks(r.Context(), reader)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if expanded == nil {
		expanded = []string{}
	}
	if bookmarks == nil {
		bookmarks = []string{}
	}
	respondJSON(w, http.StatusOK, preferences{Expanded: expanded, Bookmarks: bookmarks})
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "preferences store not configured")
		return
	}
	reader := chi.URLParam(r, "reader")

	var prefs preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Only ids that name a category in the current manifest are kept.
	tree := s.Tree()
	valid := prefs.Expanded[:0]
	for _, id := range prefs.Expanded {
		if node := tree.Node(id); node != nil && node.IsCategory() {
			valid = append(valid, id)
		}
	}

	if err := s.store.SaveExpandedCategories(r.Context(), reader, valid); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"saved": len(valid)})
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "preferences store not configured")
		return
	}
	reader := chi.URLParam(r, "reader")
	topicID := chi.URLParam(r, "topic")

	if s.Library().TopicByID(topicID) == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error: "no topic with id " + strconv.Quote(topicID),
			Kind:  string(content.ErrorNotFound),
		})
		return
	}

	if err := s.store.AddBookmark(r.Context(), reader, topicID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "preferences store not configured")
		return
	}
	reader := chi.URLParam(r, "reader")
	topicID := chi.URLParam(r, "topic")

	if err := s.store.RemoveBookmark(r.Context(), reader, topicID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
