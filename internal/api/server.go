package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/CartoboT/internal/errs"
	"github.com/Kerhoff/CartoboT/internal/service"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	EnsureConnected(ctx context.Context) error
}

// Server provides the HTTP API next to the bot: a health endpoint, Prometheus
// metrics, and a small JSON surface over the shopping list.
type Server struct {
	svc    *service.Service
	health HealthChecker
	logger *logrus.Logger
	mux    *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, health HealthChecker, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, health: health, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	// API – Shopping list
	s.mux.HandleFunc("GET /api/list", s.handleGetList)
	s.mux.HandleFunc("DELETE /api/list", s.handleDeleteList)
	s.mux.HandleFunc("POST /api/list/items", s.handleAddItem)
	s.mux.HandleFunc("DELETE /api/list/items", s.handleClearAll)
	s.mux.HandleFunc("PUT /api/list/items/{name}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /api/list/items/{name}", s.handleRemoveItem)
	s.mux.HandleFunc("PUT /api/list/items/{name}/check", s.handleCheckItem)
	s.mux.HandleFunc("PUT /api/list/items/{name}/uncheck", s.handleUncheckItem)
	s.mux.HandleFunc("DELETE /api/list/checked", s.handleClearChecked)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError translates validation and not-found errors into 400/404
// responses. Anything else is a 500 and gets logged.
func (s *Server) respondDomainError(w http.ResponseWriter, err error, action string) {
	switch {
	case errs.IsValidation(err):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errs.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.WithError(err).Errorf("failed to %s", action)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s", action))
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// pathName extracts the {name} path value.
func pathName(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.PathValue("name"))
	if raw == "" {
		return "", fmt.Errorf("missing item name in path")
	}
	return raw, nil
}

// requireUser reads the user query parameter, the external identifier every
// list is keyed by.  It writes an error response and returns "" when the
// parameter is absent.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		s.respondError(w, http.StatusBadRequest, "user query parameter is required")
		return "", false
	}
	return user, true
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.health.EnsureConnected(r.Context()); err != nil {
		s.logger.WithError(err).Warn("health check failed")
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------------------------------------------------------------------------
// Shopping list
// ---------------------------------------------------------------------------

type addItemRequest struct {
	Name string `json:"name"`
	// A pointer so an explicit zero is distinguishable from an absent field.
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Category string   `json:"category"`
	Notes    string   `json:"notes"`
}

type updateItemRequest struct {
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Category *string  `json:"category"`
	Notes    *string  `json:"notes"`
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	list, err := s.svc.GetShoppingList(r.Context(), user)
	if err != nil {
		s.respondDomainError(w, err, "get shopping list")
		return
	}

	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	quantity := 1.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if _, err := s.svc.EnsureUser(r.Context(), user); err != nil {
		s.respondDomainError(w, err, "ensure user")
		return
	}

	_, item, err := s.svc.AddItem(r.Context(), user, req.Name, quantity, req.Unit, req.Category, req.Notes)
	if err != nil {
		s.respondDomainError(w, err, "add item")
		return
	}

	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	name, err := pathName(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item name")
		return
	}

	var req updateItemRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	upd := service.ItemUpdate{
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
		Notes:    req.Notes,
	}

	_, item, err := s.svc.UpdateItem(r.Context(), user, name, upd)
	if err != nil {
		s.respondDomainError(w, err, "update item")
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	name, err := pathName(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item name")
		return
	}

	_, count, err := s.svc.RemoveItem(r.Context(), user, name)
	if err != nil {
		s.respondDomainError(w, err, "remove item")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int{"removed": count})
}

func (s *Server) handleCheckItem(w http.ResponseWriter, r *http.Request) {
	s.handleSetChecked(w, r, true)
}

func (s *Server) handleUncheckItem(w http.ResponseWriter, r *http.Request) {
	s.handleSetChecked(w, r, false)
}

func (s *Server) handleSetChecked(w http.ResponseWriter, r *http.Request, checked bool) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	name, err := pathName(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item name")
		return
	}

	op := s.svc.UncheckItem
	action := "uncheck item"
	if checked {
		op = s.svc.CheckItem
		action = "check item"
	}

	_, item, err := op(r.Context(), user, name)
	if err != nil {
		s.respondDomainError(w, err, action)
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleClearChecked(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	_, count, err := s.svc.ClearCheckedItems(r.Context(), user)
	if err != nil {
		s.respondDomainError(w, err, "clear checked items")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int{"removed": count})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	_, count, err := s.svc.ClearAllItems(r.Context(), user)
	if err != nil {
		s.respondDomainError(w, err, "clear all items")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int{"removed": count})
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	deleted, err := s.svc.DeleteList(r.Context(), user)
	if err != nil {
		s.respondDomainError(w, err, "delete list")
		return
	}

	if !deleted {
		s.respondError(w, http.StatusNotFound, "shopping list not found")
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
