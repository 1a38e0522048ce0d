package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"taskBoard/internal/board"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/pages"
	"taskBoard/internal/pagination"
	"taskBoard/internal/session"
)

// requestError - запрос браузера не удалось разобрать.
type requestError struct {
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &requestError{message: message}
}

func errorCode(err error) string {
	var verr *pages.ValidationError
	switch {
	case errors.As(err, &verr):
		return "VALIDATION_ERROR"
	case errors.Is(err, board.ErrUnknownCard):
		return "UNKNOWN_CARD"
	case errors.Is(err, pagination.ErrOutOfRange):
		return "PAGE_OUT_OF_RANGE"
	case errors.Is(err, session.ErrNotFound):
		return "SESSION_NOT_FOUND"
	case errors.Is(err, session.ErrUnknownKind):
		return "UNKNOWN_PAGE"
	case errors.Is(err, session.ErrNoToken):
		return "NO_TOKEN"
	case errors.Is(err, pages.ErrNoReport):
		return "NO_REPORT"
	}
	var (
		rerr  *requestError
		wrong *wrongPage
	)
	switch {
	case errors.As(err, &rerr):
		return "BAD_REQUEST"
	case errors.As(err, &wrong):
		return "WRONG_PAGE"
	}
	return "INTERNAL"
}

func mapErrorCodeToHTTP(code string) int {
	switch code {
	case "VALIDATION_ERROR":
		return http.StatusUnprocessableEntity
	case "UNKNOWN_CARD", "SESSION_NOT_FOUND":
		return http.StatusNotFound
	case "PAGE_OUT_OF_RANGE", "UNKNOWN_PAGE", "NO_TOKEN", "BAD_REQUEST":
		return http.StatusBadRequest
	case "WRONG_PAGE", "NO_REPORT":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handlePageError отвечает на ошибку действия. Отказы бэкенда сюда не попадают:
// они уже стали баннером в ответе.
func handlePageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := errorCode(err)
	status := mapErrorCodeToHTTP(code)

	body := dto.ErrorResponse{Error: code, Message: err.Error()}
	var verr *pages.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Invalid()
	}

	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("error_code", code),
		zap.Int("http_status", status),
		zap.String("client_ip", r.RemoteAddr),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("HTTP: Ошибка выполнения действия", err, fields...)
		body.Message = "внутренняя ошибка"
	} else {
		logger.Warn("HTTP: Действие отклонено", append(fields, zap.Error(err))...)
	}
	responseWithJSON(w, status, body)
}
