package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/logger"
	cataloguc "github.com/boardka/boardka/internal/usecase/catalog"
	healthuc "github.com/boardka/boardka/internal/usecase/health"
	preferenceuc "github.com/boardka/boardka/internal/usecase/preference"
	recommenduc "github.com/boardka/boardka/internal/usecase/recommend"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the boardka HTTP API.
type Server struct {
	recommend     *recommenduc.Service
	catalog       *cataloguc.Service
	preferences   *preferenceuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	validate      *validator.Validate
	preferredTopN int
	minTagCount   int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	catalog *cataloguc.Service,
	preferences *preferenceuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend:     recommend,
		catalog:       catalog,
		preferences:   preferences,
		health:        health,
		logger:        logger,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		preferredTopN: recommenduc.DefaultPreferredTopN,
		minTagCount:   cataloguc.DefaultMinTagCount,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrGameNotFound, http.StatusNotFound, codeGameNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrNoTags, http.StatusUnprocessableEntity, codeNoTags),
		sentinelHandler(domain.ErrCatalogNotLoaded, http.StatusServiceUnavailable, codeCatalogNotLoaded),
		sentinelHandler(domain.ErrCatalogLoad, http.StatusInternalServerError, codeCatalogLoadFailed),
		sentinelHandler(domain.ErrPreferenceStore, http.StatusServiceUnavailable, codePreferenceStore),
	}
	return s
}

// WithPreferenceSettings sets how many top tags GET /preferences reports and
// the default tag visibility threshold for GET /tags.
func (s *Server) WithPreferenceSettings(topN, minTagCount int) *Server {
	if topN > 0 {
		s.preferredTopN = topN
	}
	if minTagCount > 0 {
		s.minTagCount = minTagCount
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendations", s.Recommend)
		r.Get("/games", s.ListGames)
		r.Get("/games/{id}", s.GetGame)
		r.Get("/tags", s.ListTags)
		r.Post("/catalog/reload", s.ReloadCatalog)
		r.Get("/preferences", s.GetPreferences)
		r.Post("/preferences/likes", s.LikeGame)
		r.Delete("/preferences", s.ResetPreferences)
	})
}

// Recommend handles POST /api/v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if !s.decode(w, r, &req) {
		return
	}

	rec, err := s.recommend.Recommend(r.Context(), req.toUsecase())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendationToResponse(&rec))
}

// ListGames handles GET /api/v1/games.
func (s *Server) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	games, next, err := s.catalog.List(r.URL.Query().Get("cursor"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]gameResponse, len(games))
	for i := range games {
		items[i] = gameToResponse(&games[i])
	}
	resp := gameListResponse{Items: items, HasMore: next != ""}
	if next != "" {
		resp.NextCursor = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGame handles GET /api/v1/games/{id}.
func (s *Server) GetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameToResponse(&g))
}

// ListTags handles GET /api/v1/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	minCount, ok := queryInt(w, r, "min_count")
	if !ok {
		return
	}
	if minCount <= 0 {
		minCount = s.minTagCount
	}

	counts, err := s.catalog.TagCounts(minCount)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tagCountsToResponse(counts, minCount))
}

// ReloadCatalog handles POST /api/v1/catalog/reload.
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Source:   c.Source(),
		Games:    c.Len(),
		LoadedAt: c.LoadedAt().UTC(),
	})
}

// GetPreferences handles GET /api/v1/preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	weights, err := s.preferences.Weights(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	top := weights.Top(s.preferredTopN)
	if top == nil {
		top = []string{}
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Weights: weights.Clone(), Top: top})
}

// LikeGame handles POST /api/v1/preferences/likes.
func (s *Server) LikeGame(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if !s.decode(w, r, &req) {
		return
	}

	g, err := s.preferences.Like(r.Context(), req.GameID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	top, err := s.preferences.Top(r.Context(), s.preferredTopN)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if top == nil {
		top = []string{}
	}
	writeJSON(w, http.StatusOK, likeResponse{Game: gameToResponse(&g), PreferredTags: top})
}

// ResetPreferences handles DELETE /api/v1/preferences.
func (s *Server) ResetPreferences(w http.ResponseWriter, r *http.Request) {
	if err := s.preferences.Reset(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
		Games:  report.Games,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into dst and validates it. On failure it writes
// the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fe.Field() + ": failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
	}
	return msg
}

// queryInt parses an optional integer query parameter. Missing -> 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation errors carry
// their detail; everything else is reduced to the sentinel text.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrGameNotFound,
		domain.ErrNotFound,
		domain.ErrNoTags,
		domain.ErrCatalogNotLoaded,
		domain.ErrCatalogLoad,
		domain.ErrPreferenceStore,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// requestLogger prefers the per-request logger placed in the context by the
// request middleware.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l := logger.FromContext(r.Context()); l.Core().Enabled(zap.ErrorLevel) {
		return l
	}
	return s.logger
}
