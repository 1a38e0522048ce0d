package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure - единственный тип ошибки диспетчера.
// StatusCode 0 означает сетевую ошибку или ошибку разбора ответа.
type Failure struct {
	StatusCode int
	Body       string
	Location   string
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode == 0 && f.Body != "" {
		return fmt.Sprintf("некорректный ответ бэкенда: %v", f.Err)
	}
	if f.StatusCode == 0 {
		return fmt.Sprintf("бэкенд недоступен: %v", f.Err)
	}
	if f.Body == "" {
		return fmt.Sprintf("бэкенд вернул %d", f.StatusCode)
	}
	return fmt.Sprintf("бэкенд вернул %d: %s", f.StatusCode, f.Body)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Redirected - бэкенд отправил на другую страницу (обычно вход после истечения сессии).
func (f *Failure) Redirected() bool {
	return f.StatusCode >= http.StatusMultipleChoices && f.StatusCode < http.StatusBadRequest
}

func (f *Failure) RateLimited() bool {
	return f.StatusCode == http.StatusTooManyRequests
}

func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// StatusOf возвращает HTTP-статус отказа или 0.
func StatusOf(err error) int {
	if f, ok := AsFailure(err); ok {
		return f.StatusCode
	}
	return 0
}
