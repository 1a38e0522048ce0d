// Package render строит строки таблиц и карточки доски из копий, пришедших с бэкенда.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"taskBoard/internal/i18n"
	"taskBoard/internal/models/client"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Swatches - цвета, которые можно выбрать на карточке.
var Swatches = []string{"#FFFFFF", "#FFCCCC", "#CCFFCC", "#CCCCFF", "#FFFFCC"}

type Renderer struct {
	msgs   *i18n.Messages
	symbol string
	tmpl   *template.Template
	now    func() time.Time
}

func New(msgs *i18n.Messages, currency string) (*Renderer, error) {
	r := &Renderer{
		msgs:   msgs,
		symbol: i18n.CurrencySymbol(currency),
		now:    time.Now,
	}
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"t": msgs.Text,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("разбор шаблонов: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// WithClock - копия с другим источником времени (для отметок подписки).
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// WithCurrency - копия с символом другой валюты.
func (r *Renderer) WithCurrency(code string) *Renderer {
	cp := *r
	cp.symbol = i18n.CurrencySymbol(code)
	return &cp
}

func (r *Renderer) Messages() *i18n.Messages {
	return r.msgs
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("шаблон %s: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) money(v float64) string {
	return FormatCurrency(r.symbol, v)
}

func (r *Renderer) statusText(s task.Status) string {
	return r.msgs.Text("status." + s.MessageKey())
}

func (r *Renderer) na(s string) string {
	if s == "" {
		return r.msgs.Text("dashboard.table.na")
	}
	return s
}

type swatch struct {
	Color string
	Style template.CSS
}

type cardData struct {
	ID          int64
	Order       int
	Style       template.CSS
	Billable    bool
	Title       string
	Description template.HTML
	ClientID    string
	ClientName  string
	Deadline    string
	Hours       string
	Rate        string
	Total       string
	Advance     string
	Remaining   string
	Status      string
	Swatches    []swatch
}

func (r *Renderer) cardData(t task.Task) cardData {
	d := cardData{
		ID:          t.ID,
		Order:       t.OrderIndex,
		Style:       backgroundStyle(t.Color),
		Billable:    t.Billable,
		Title:       t.Title,
		Description: Excerpt(t.Description, cardExcerptLen, r.msgs.Text("dashboard.table.noDescription")),
		ClientName:  r.na(t.ClientName()),
		Deadline:    r.na(FormatDate(t.Deadline)),
		Hours:       FormatHours(t.HoursWorked),
		Rate:        r.money(t.HourlyRate),
		Total:       r.money(t.Total),
		Advance:     r.money(t.AdvancePayment),
		Remaining:   r.money(t.RemainingDue),
		Status:      r.statusText(t.Status),
	}
	if t.Client != nil {
		d.ClientID = strconv.FormatInt(t.Client.ID, 10)
	}
	for _, c := range Swatches {
		d.Swatches = append(d.Swatches, swatch{Color: c, Style: backgroundStyle(c)})
	}
	return d
}

// TaskCard - карточка доски.
func (r *Renderer) TaskCard(t task.Task) (string, error) {
	return r.execute("task_card", r.cardData(t))
}

type taskRowData struct {
	ID          int64
	Title       string
	Description template.HTML
	Deadline    string
	Status      string
	StatusClass string
	Hidden      bool
	HiddenText  string
	ClientName  string
	Cols        Columns
}

func (r *Renderer) TaskRow(t task.Task, cols Columns) (string, error) {
	hiddenKey := "dashboard.table.no"
	if t.Hidden {
		hiddenKey = "dashboard.table.yes"
	}
	return r.execute("task_row", taskRowData{
		ID:          t.ID,
		Title:       t.Title,
		Description: Excerpt(t.Description, rowExcerptLen, r.msgs.Text("dashboard.table.noDescription")),
		Deadline:    r.na(FormatDate(t.Deadline)),
		Status:      r.statusText(t.Status),
		StatusClass: t.Status.CSSClass(),
		Hidden:      t.Hidden,
		HiddenText:  r.msgs.Text(hiddenKey),
		ClientName:  r.na(t.ClientName()),
		Cols:        cols,
	})
}

type clientRowData struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

func (r *Renderer) ClientRow(c client.Client) (string, error) {
	return r.execute("client_row", clientRowData{
		ID:      c.ID,
		Name:    c.Name,
		Email:   Placeholder(c.Email),
		Phone:   Placeholder(c.Phone),
		Address: Placeholder(c.Address),
		TaxID:   Placeholder(c.TaxID),
	})
}

type userRowData struct {
	Username     string
	Role         string
	RoleClass    string
	Status       string
	StatusClass  string
	Subscription string
	Premium      bool
	LastLogin    string
}

func (r *Renderer) UserRow(u user.User) (string, error) {
	d := userRowData{
		Username:     u.Username,
		Role:         u.Role,
		RoleClass:    "bg-secondary",
		Status:       u.Status,
		StatusClass:  "bg-success",
		Subscription: r.msgs.Text("admin.subscription.free"),
		LastLogin:    r.msgs.Text("admin.lastLogin.never"),
	}
	if u.Role == "ADMIN" {
		d.RoleClass = "bg-primary"
	}
	if u.Status == "BLOCKED" {
		d.StatusClass = "bg-danger"
	}
	if u.IsPremium && u.ExpiresAt != "" {
		if exp, err := task.ParseTimestamp(u.ExpiresAt); err == nil && exp.After(r.now()) {
			d.Premium = true
			d.Subscription = r.msgs.Textf("admin.subscription.premium", exp.Format("2006-01-02"))
		}
	}
	if u.LastLogin != "" {
		if ll, err := task.ParseTimestamp(u.LastLogin); err == nil {
			d.LastLogin = ll.Format("01/02/2006, 03:04 PM")
		}
	}
	return r.execute("user_row", d)
}
