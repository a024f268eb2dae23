// Package chi is the HTTP transport for the genie API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/chat"
	"github.com/bokji-cloud/genie/internal/domain"
	"github.com/bokji-cloud/genie/internal/health"
)

// Error codes returned in error response bodies.
const (
	codeBadRequest    = "bad_request"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

const defaultSearchLimit = 10

// Server implements the HTTP API handlers.
type Server struct {
	chat     ChatService
	sessions SessionStore
	schema   SchemaProvider
	keyword  KeywordSearcher
	health   HealthService
	logger   *zap.Logger

	searchLimit int
}

// NewServer creates an HTTP API server. searchLimit caps /v1/search result
// sizes; <= 0 uses the default.
func NewServer(
	chatSvc ChatService,
	sessions SessionStore,
	schema SchemaProvider,
	kw KeywordSearcher,
	healthSvc HealthService,
	searchLimit int,
	logger *zap.Logger,
) *Server {
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	return &Server{
		chat:        chatSvc,
		sessions:    sessions,
		schema:      schema,
		keyword:     kw,
		health:      healthSvc,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", s.Chat)
		r.Delete("/sessions/{id}", s.DeleteSession)
		r.Get("/schema", s.GetSchema)
		r.Get("/search", s.Search)
	})
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID    string `json:"session_id"`
	Answer       string `json:"answer"`
	DialogueMode string `json:"dialogue_mode"`
}

// Chat handles POST /v1/chat: one conversation turn.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "message is required")
		return
	}

	ctx := r.Context()
	sess, err := s.loadOrCreateSession(ctx, req.SessionID)
	if err != nil {
		s.logger.Error("load session", zap.String("session_id", req.SessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	sess.Turns = append(sess.Turns, domain.Turn{Role: domain.RoleUser, Content: req.Message})

	answer, err := s.chat.Respond(ctx, sess)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, codeBadRequest, domain.ErrEmptyMessage.Error())
			return
		}
		// Pipeline failures become the fixed apology; the turn still
		// completes from the caller's point of view.
		s.logger.Error("chat turn failed", zap.String("session_id", sess.ID), zap.Error(err))
		answer = chat.InternalApology()
	}

	sess.Turns = append(sess.Turns, domain.Turn{Role: domain.RoleAssistant, Content: answer.Text})
	if err := s.sessions.Put(ctx, sess); err != nil {
		// The answer is already synthesized; losing history is the lesser
		// failure, so reply anyway.
		s.logger.Error("persist session", zap.String("session_id", sess.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:    sess.ID,
		Answer:       answer.Text,
		DialogueMode: string(answer.Mode),
	})
}

// loadOrCreateSession fetches the stored session, or starts a fresh one
// seeded with the assistant greeting. A provided but unknown ID (expired
// TTL, restarted store) is reused for the fresh session so the client keeps
// its handle.
func (s *Server) loadOrCreateSession(ctx context.Context, id string) (domain.Session, error) {
	if id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, err
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Session{
		ID:    id,
		Turns: []domain.Turn{{Role: domain.RoleAssistant, Content: chat.Greeting}},
	}, nil
}

// DeleteSession handles DELETE /v1/sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "session id is required")
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete session", zap.String("session_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type schemaResponse struct {
	Context    string   `json:"context"`
	EntryNames []string `json:"entry_names"`
}

// GetSchema handles GET /v1/schema.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	schema := s.schema.Schema()
	writeJSON(w, http.StatusOK, schemaResponse{
		Context:    schema.ContextString,
		EntryNames: schema.EntryNames,
	})
}

type searchResultItem struct {
	domain.Record
	Score float64 `json:"score"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

// Search handles GET /v1/search: full-text search over the catalog,
// optionally restricted by minor category.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "q is required")
		return
	}
	category := r.URL.Query().Get("category")

	limit := s.searchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	results, err := s.keyword.Search(q, category, limit)
	if err != nil {
		s.logger.Error("keyword search", zap.String("query", q), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	items := make([]searchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultItem{Record: res.Record, Score: res.Score}
	}
	writeJSON(w, http.StatusOK, searchResponse{Items: items, Total: len(items)})
}

type healthResponse struct {
	Status  string            `json:"status"`
	Records int               `json:"records"`
	Checks  map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != health.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Records: report.Records,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
