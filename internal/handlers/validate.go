package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxJSONBody      = 4 << 20
	maxMultipartBody = 10 << 20
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == target
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if !checkContentType(r, "application/json") {
		return badRequest("Content-Type должен быть application/json")
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		return badRequest("неверное тело запроса: " + err.Error())
	}
	return nil
}

// readForm - поля формы страницы: urlencoded или multipart, как их отправляет браузер.
func readForm(r *http.Request) (url.Values, error) {
	if checkContentType(r, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
			return nil, badRequest("неверная форма: " + err.Error())
		}
		return r.PostForm, nil
	}
	if !checkContentType(r, "application/x-www-form-urlencoded") {
		return nil, badRequest("ожидается форма")
	}
	if err := r.ParseForm(); err != nil {
		return nil, badRequest("неверная форма: " + err.Error())
	}
	return r.PostForm, nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("неверное значение " + name + ": " + raw)
	}
	return id, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("неверное значение " + name + ": " + raw)
	}
	return n, nil
}

func sessionParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "session"))
	if err != nil {
		return uuid.Nil, badRequest("не удалось получить id сессии: " + err.Error())
	}
	if id == uuid.Nil {
		return uuid.Nil, badRequest("id сессии не может быть пустым")
	}
	return id, nil
}
