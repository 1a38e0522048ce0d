// Package pages - контроллеры страниц: жесты браузера превращаются в вызовы бэкенда
// и правки копии страницы, изменённые куски которой уходят обратно в браузер.
package pages

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskBoard/internal/backend"
	"taskBoard/internal/dom"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/client"
	"taskBoard/internal/models/page"
	"taskBoard/internal/models/report"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	"taskBoard/internal/notice"
	"taskBoard/internal/render"
	"taskBoard/internal/validate"
)

type TaskAPI interface {
	SearchTasks(ctx context.Context, q backend.TaskQuery) (*page.Page[task.Task], error)
	GetTask(ctx context.Context, id int64) (*task.Task, error)
	CreateTask(ctx context.Context, form url.Values) (*task.Task, error)
	UpdateTask(ctx context.Context, id int64, form url.Values) (*task.Task, error)
	MoveTask(ctx context.Context, id int64, status task.Status, ids []int64) (*task.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	HideTask(ctx context.Context, id int64) error
	UnhideTask(ctx context.Context, id int64) error
	ChangeColor(ctx context.Context, id int64, color string) (bool, error)
}

type ClientAPI interface {
	SearchClients(ctx context.Context, q backend.SearchQuery) (*page.Page[client.Client], error)
	GetClient(ctx context.Context, id int64) (*client.Client, error)
	CreateClient(ctx context.Context, form url.Values) (*client.Client, error)
	UpdateClient(ctx context.Context, id int64, form url.Values) (*client.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type InvoiceAPI interface {
	SendInvoice(ctx context.Context, clientID int64, taskIDs []int64) error
	DownloadInvoice(ctx context.Context, clientName string, taskIDs []int64) (*backend.Invoice, error)
}

type ProfileAPI interface {
	UpdateProfile(ctx context.Context, form url.Values) (*user.Profile, error)
	UpdateAdminProfile(ctx context.Context, username string, form url.Values) (*user.Profile, error)
	ChangeLanguage(ctx context.Context, lang string) error
	ChangeCurrency(ctx context.Context, code string) error
	SearchUsers(ctx context.Context, q backend.SearchQuery) (*page.Page[user.User], error)
	UpgradeUser(ctx context.Context, username string, months int) (*user.Profile, error)
	DowngradeUser(ctx context.Context, username string) (*user.Profile, error)
	ResetUserPassword(ctx context.Context, username string) (*user.Profile, error)
	ToggleUserBlock(ctx context.Context, username string) (*user.Profile, error)
}

type ReportAPI interface {
	ReportSeries(ctx context.Context, name, rng string) (*report.Series, error)
}

// Backend - всё, что страницы просят у бэкенда. Реализуется *backend.Client.
type Backend interface {
	TaskAPI
	ClientAPI
	InvoiceAPI
	ProfileAPI
	ReportAPI
}

var _ Backend = (*backend.Client)(nil)

// Env - окружение одной открытой страницы, собирается при открытии сессии.
type Env struct {
	API      Backend
	Describe *backend.Describer
	Render   *render.Renderer
	Banners  *notice.Board
	Doc      *dom.Document
	Seq      *backend.Sequencer
	Now      func() time.Time

	// mu охраняет Doc
	mu sync.Mutex
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) text(key string) string {
	return e.Describe.Messages().Text(key)
}

// Result - ответ на жест: изменённые куски страницы по селектору и данные операции.
type Result struct {
	Fragments map[string]string
	// Reload - браузеру нужно перезагрузить страницу (смена языка, истёкшая авторизация).
	Reload bool
	// Failed - бэкенд отказал, текст уже на доске баннеров.
	Failed   bool
	Data     any
	Download *backend.Invoice
}

func newResult() *Result {
	return &Result{Fragments: make(map[string]string)}
}

// add кладёт внешний HTML узла sel; отсутствующий на странице узел пропускается.
func (r *Result) add(doc *dom.Document, sels ...dom.Selector) error {
	for _, sel := range sels {
		if sel.String() == "" {
			continue
		}
		n := doc.Query(sel)
		if n == nil {
			continue
		}
		markup, err := dom.Render(n)
		if err != nil {
			return fmt.Errorf("фрагмент %s: %w", sel, err)
		}
		r.Fragments[sel.String()] = markup
	}
	return nil
}

// fail показывает текст отказа бэкенда. Редирект означает истёкшую авторизацию.
func (e *Env) fail(op backend.Op, err error) *Result {
	res := newResult()
	res.Failed = true
	if f, ok := backend.AsFailure(err); ok && f.Redirected() {
		logger.Warn("Service: бэкенд перенаправил запрос, нужна перезагрузка",
			zap.String("op", string(op)),
			zap.String("location", f.Location),
		)
		res.Reload = true
		return res
	}
	logger.Warn("Service: операция отклонена",
		zap.String("op", string(op)),
		zap.Int("status", backend.StatusOf(err)),
		zap.Error(err),
	)
	e.Banners.Error(e.Describe.Describe(op, err), e.now())
	return res
}

func (e *Env) succeed(key string) {
	e.Banners.Success(e.text(key), e.now())
}

// ValidationError - поля формы не прошли проверку; запрос к бэкенду не отправлялся.
type ValidationError struct {
	Fields map[string]bool
}

func (v *ValidationError) Error() string {
	return "некорректные поля: " + strings.Join(v.Invalid(), ", ")
}

// Invalid - id непрошедших полей по алфавиту.
func (v *ValidationError) Invalid() []string {
	var out []string
	for id, ok := range v.Fields {
		if !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// editField - id поля формы правки: email -> editEmail.
func editField(name string) string {
	if name == "" {
		return name
	}
	return "edit" + strings.ToUpper(name[:1]) + name[1:]
}

// check прогоняет форму и отмечает поля на копии страницы; elementID переводит
// имя поля в id элемента (nil - совпадают).
func (e *Env) check(form validate.Form, values url.Values, elementID func(string) string) error {
	flat := make(map[string]string, len(form))
	for id := range form {
		flat[id] = strings.TrimSpace(values.Get(id))
	}
	fields, ok := form.Check(flat)

	e.mu.Lock()
	for id, valid := range fields {
		if elementID != nil {
			id = elementID(id)
		}
		if n := e.Doc.ByID(id); n != nil {
			validate.Mark(n, valid)
		}
	}
	e.mu.Unlock()

	if !ok {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CheckField - проверка одного поля при вводе.
func CheckField(form validate.Form, id, value string) bool {
	return form.Field(id, strings.TrimSpace(value))
}
