package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"jobradar/pkg/cache"
	"jobradar/pkg/models"
	"jobradar/pkg/pipeline"
)

// Crawler is the orchestrator contract the API depends on.
type Crawler interface {
	Crawl(ctx context.Context, req models.CrawlRequest) (*models.CrawlResult, error)
}

type Server struct {
	crawler Crawler
	store   cache.Store
	mux     *http.ServeMux
	started time.Time
}

func NewServer(crawler Crawler, store cache.Store) *Server {
	s := &Server{
		crawler: crawler,
		store:   store,
		mux:     http.NewServeMux(),
		started: time.Now(),
	}

	s.mux.HandleFunc("POST /crawl/questions", s.handleCrawl(models.KindQuestions))
	s.mux.HandleFunc("POST /crawl/jobs", s.handleCrawl(models.KindJobs))
	s.mux.HandleFunc("DELETE /cache", s.handleCacheClear)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

type crawlResponse struct {
	Success   bool                        `json:"success"`
	RequestID string                      `json:"request_id"`
	Platform  string                      `json:"platform,omitempty"`
	Questions []models.InterviewQuestion  `json:"questions,omitempty"`
	Data      []models.JobPosition        `json:"data,omitempty"`
	Errors    map[string]models.SiteError `json:"errors,omitempty"`
	Cached    bool                        `json:"cached,omitempty"`
	Timestamp time.Time                   `json:"timestamp"`
	Error     string                      `json:"error,omitempty"`
}

func (s *Server) handleCrawl(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()

		var req models.CrawlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, requestID, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		req.Kind = kind

		if req.Category == "" {
			writeError(w, requestID, http.StatusBadRequest, "category is required")
			return
		}
		if !pipeline.KnownCategory(req.Category) {
			writeError(w, requestID, http.StatusBadRequest, fmt.Sprintf("unknown category %q", req.Category))
			return
		}
		if req.MaxResults < 0 {
			writeError(w, requestID, http.StatusBadRequest, "max_results must be >= 0")
			return
		}

		result, err := s.crawler.Crawl(r.Context(), req)
		if err != nil {
			status := statusForError(err)
			log.Printf("Crawl %s failed: %v", requestID, err)
			writeError(w, requestID, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, crawlResponse{
			Success:   result.Success,
			RequestID: requestID,
			Platform:  result.Category,
			Questions: result.Questions,
			Data:      result.Jobs,
			Errors:    result.Errors,
			Cached:    result.Cached,
			Timestamp: result.Timestamp,
		})
	}
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.DeletePattern(r.Context(), "jobradar:crawl")
	if err != nil {
		writeError(w, uuid.NewString(), http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"cache": "ok"}
	status := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		checks["cache"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status":    http.StatusText(status),
		"uptime":    time.Since(s.started).String(),
		"checks":    checks,
		"timestamp": time.Now(),
	})
}

// statusForError maps the crawl error taxonomy to HTTP status codes for
// top-level failures (per-site errors ride inside a 200 envelope).
func statusForError(err error) int {
	var ce *models.CrawlError
	if !errors.As(err, &ce) {
		return http.StatusInternalServerError
	}
	switch ce.Kind {
	case models.ErrTimeout:
		return http.StatusGatewayTimeout
	case models.ErrNetwork, models.ErrParse:
		return http.StatusBadGateway
	case models.ErrRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, requestID string, status int, msg string) {
	writeJSON(w, status, crawlResponse{
		Success:   false,
		RequestID: requestID,
		Error:     msg,
		Timestamp: time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
