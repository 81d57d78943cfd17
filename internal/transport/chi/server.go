package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ghwns6404/ondongne/internal/domain"
	analysisuc "github.com/ghwns6404/ondongne/internal/usecase/analysis"
	healthuc "github.com/ghwns6404/ondongne/internal/usecase/health"
	moderationuc "github.com/ghwns6404/ondongne/internal/usecase/moderation"
	recommenduc "github.com/ghwns6404/ondongne/internal/usecase/recommend"
	searchuc "github.com/ghwns6404/ondongne/internal/usecase/search"
)

// ErrorCode is the machine-readable error class returned to clients.
type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "invalid-argument"
	CodeUnauthenticated ErrorCode = "unauthenticated"
	CodeProhibitedItem  ErrorCode = "prohibited-item"
	CodeProviderError   ErrorCode = "provider-error"
	CodeInternal        ErrorCode = "internal"
)

// ErrorResponse is the error body shape for every endpoint.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, query string) (searchuc.Result, error)
}

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(ctx context.Context, userID string, limit int) (recommenduc.Result, error)
}

// Moderator checks text for abusive content.
type Moderator interface {
	Check(ctx context.Context, text string) (moderationuc.CheckResult, error)
}

// Analyzer derives a listing draft from a product photo.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, imageBase64 string) (analysisuc.Suggestion, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server wires the pipeline services to HTTP routes.
type Server struct {
	search        Searcher
	recommend     Recommender
	moderation    Moderator
	analysis      Analyzer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	recommend Recommender,
	moderation Moderator,
	analysis Analyzer,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		recommend:  recommend,
		moderation: moderation,
		analysis:   analysis,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidArgument),
		sentinelHandler(domain.ErrInvalidUser, http.StatusBadRequest, CodeInvalidArgument),
		sentinelHandler(domain.ErrInvalidText, http.StatusBadRequest, CodeInvalidArgument),
		sentinelHandler(domain.ErrInvalidImage, http.StatusBadRequest, CodeInvalidArgument),
		sentinelHandler(domain.ErrProhibitedItem, http.StatusUnprocessableEntity, CodeProhibitedItem),
		sentinelHandler(domain.ErrCompletionProvider, http.StatusBadGateway, CodeProviderError),
		sentinelHandler(domain.ErrMalformedCompletion, http.StatusBadGateway, CodeProviderError),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/search", s.handleSearch)
	r.Post("/recommendations", s.handleRecommend)
	r.Post("/moderation/check", s.handleModerationCheck)
	r.Post("/listings/analyze", s.handleAnalyzeListing)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid request body")
		return
	}

	result, err := s.search.Search(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Limit  int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid request body")
		return
	}

	result, err := s.recommend.Recommend(r.Context(), req.UserID, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleModerationCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid request body")
		return
	}

	result, err := s.moderation.Check(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64 string `json:"imageBase64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid request body")
		return
	}

	suggestion, err := s.analysis.AnalyzeImage(r.Context(), req.ImageBase64)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidUser,
		domain.ErrInvalidText,
		domain.ErrInvalidImage,
		domain.ErrProhibitedItem,
		domain.ErrCompletionProvider,
		domain.ErrMalformedCompletion,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// handleDomainError logs each error exactly once: Warn for mapped sentinels,
// Error for the internal fallthrough.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
