package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"taskBoard/internal/backend"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/pages"
	"taskBoard/internal/session"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func responseWithJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("HTTP: ошибка записи ответа", zap.Error(err))
	}
}

func responseWithPayload(w http.ResponseWriter, code int, payload ...Payload) {
	storage := make(map[string]any, len(payload))
	for _, pl := range payload {
		storage[pl.Key] = pl.Payload
	}
	responseWithJSON(w, code, storage)
}

func responseWithError(w http.ResponseWriter, code int, errCode, message string) {
	responseWithJSON(w, code, dto.ErrorResponse{Error: errCode, Message: message})
}

// responseWithResult отдаёт изменённые фрагменты страницы или файл выгрузки.
func responseWithResult(w http.ResponseWriter, s *session.Session, res *pages.Result) {
	if res.Download != nil {
		responseWithFile(w, res.Download)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.PageResponse{
		Fragments: res.Fragments,
		Banners:   s.Banners(s.Now()),
		Reload:    res.Reload,
		Failed:    res.Failed,
		Data:      res.Data,
	})
}

func responseWithFile(w http.ResponseWriter, f *backend.Invoice) {
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(f.Content); err != nil {
		logger.Warn("HTTP: ошибка записи файла", zap.String("filename", f.Filename), zap.Error(err))
	}
}
