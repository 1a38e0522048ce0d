package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/pages"
	"taskBoard/internal/session"
)

const serviceName = "task-board"

// Sessions - открытые страницы браузера.
type Sessions interface {
	Open(ctx context.Context, req session.OpenRequest) (*session.Session, error)
	Get(id uuid.UUID) (*session.Session, error)
	Close(id uuid.UUID) error
}

// HealthChecker - доступность бэкенда.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var _ Sessions = (*session.Manager)(nil)

type Handler struct {
	sessions Sessions
	health   HealthChecker
}

func NewHandler(sessions Sessions, health HealthChecker) *Handler {
	return &Handler{sessions: sessions, health: health}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err != nil {
			logger.Warn("HTTP: Бэкенд недоступен", zap.Error(err))
			responseWithPayload(w, http.StatusServiceUnavailable,
				toPayload("status", "unavailable"),
				toPayload("service", serviceName),
				toPayload("error", err.Error()),
			)
			return
		}
	}
	responseWithPayload(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", serviceName),
	)
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var req dto.OpenSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handlePageError(w, r, "open_session", err)
		return
	}
	s, err := h.sessions.Open(r.Context(), session.OpenRequest{
		Kind:     session.Kind(req.Kind),
		HTML:     req.HTML,
		Currency: req.Currency,
		Cookies:  r.Cookies(),
	})
	if err != nil {
		handlePageError(w, r, "open_session", err)
		return
	}

	logger.Info("HTTP_OUT: Сессия открыта",
		zap.String("session", s.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.OpenSessionResponse{Session: s.ID, Kind: string(s.Kind)})
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, err := sessionParam(r)
	if err == nil {
		err = h.sessions.Close(id)
	}
	if err != nil {
		handlePageError(w, r, "close_session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Banners - баннеры страницы, ещё не истёкшие.
func (h *Handler) Banners(w http.ResponseWriter, r *http.Request) {
	id, err := sessionParam(r)
	var s *session.Session
	if err == nil {
		s, err = h.sessions.Get(id)
	}
	if err != nil {
		handlePageError(w, r, "banners", err)
		return
	}
	responseWithResult(w, s, &pages.Result{Fragments: map[string]string{}})
}

// wrongPage - сессия открыта для другой страницы.
type wrongPage struct {
	kind session.Kind
}

func (e *wrongPage) Error() string {
	return fmt.Sprintf("сессия открыта для страницы %s", e.kind)
}

// pageOf находит сессию из пути и её контроллер нужного типа.
func pageOf[T any](h *Handler, r *http.Request) (*session.Session, T, error) {
	var zero T
	id, err := sessionParam(r)
	if err != nil {
		return nil, zero, err
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		return nil, zero, err
	}
	p, ok := s.Page.(T)
	if !ok {
		return nil, zero, &wrongPage{kind: s.Kind}
	}
	return s, p, nil
}

// action - действие на странице с контроллером типа T.
type action[T any] func(ctx context.Context, p T, w http.ResponseWriter, r *http.Request) (*pages.Result, error)

// serve оборачивает действие: поиск сессии, логирование, ответ фрагментами или ошибкой.
func serve[T any](h *Handler, op string, act action[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger.HttpRequestInfo(r, "HTTP_IN:", zap.String("operation", op))

		s, p, err := pageOf[T](h, r)
		if err != nil {
			handlePageError(w, r, op, err)
			return
		}
		res, err := act(r.Context(), p, w, r)
		if err != nil {
			handlePageError(w, r, op, err)
			return
		}
		responseWithResult(w, s, res)

		logger.Info("HTTP_OUT: Действие выполнено",
			zap.String("operation", op),
			zap.String("session", s.ID.String()),
			zap.Bool("failed", res.Failed),
			zap.Duration("ms", time.Since(start)))
	}
}
