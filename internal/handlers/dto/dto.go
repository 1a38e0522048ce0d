package dto

import (
	"github.com/google/uuid"

	"taskBoard/internal/notice"
)

type OpenSessionRequest struct {
	Kind     string `json:"kind"`
	HTML     string `json:"html"`
	Currency string `json:"currency,omitempty"`
}

type OpenSessionResponse struct {
	Session uuid.UUID `json:"session"`
	Kind    string    `json:"kind"`
}

// PageResponse - ответ на действие на странице.
type PageResponse struct {
	Fragments map[string]string `json:"fragments"`
	Banners   []notice.Banner   `json:"banners"`
	Reload    bool              `json:"reload"`
	Failed    bool              `json:"failed"`
	Data      any               `json:"data,omitempty"`
}

type DropRequest struct {
	TaskID int64  `json:"taskId"`
	Status string `json:"status"`
	Index  int    `json:"index"`
}

// SelectionRequest - отмеченные на доске карточки.
type SelectionRequest struct {
	TaskIDs []int64 `json:"taskIds"`
}

type ClientInvoiceRequest struct {
	ClientID   int64   `json:"clientId"`
	ClientName string  `json:"clientName"`
	TaskIDs    []int64 `json:"taskIds"`
}

type ColorRequest struct {
	Color string `json:"color"`
}

type TaskSearchRequest struct {
	Search   string `json:"search"`
	ClientID string `json:"clientId"`
	Status   string `json:"status"`
	Size     int    `json:"size"`
}

type SearchRequest struct {
	Search string `json:"search"`
	Size   int    `json:"size"`
}

// FieldRequest - проверка одного поля при вводе.
type FieldRequest struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type FieldResponse struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
}

type PasswordRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirmPassword"`
}

type UsernameRequest struct {
	Username string `json:"username"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type CurrencyRequest struct {
	Currency string `json:"currency"`
}

// UpgradeRequest - продление премиума пользователю из карточки администратора.
type UpgradeRequest struct {
	Months int `json:"months"`
}

type ReportRequest struct {
	Range string `json:"range"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}
