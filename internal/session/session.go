// Package session хранит открытые страницы браузера: копию документа и контроллер страницы.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskBoard/internal/backend"
	"taskBoard/internal/dom"
	"taskBoard/internal/i18n"
	"taskBoard/internal/logger"
	"taskBoard/internal/notice"
	"taskBoard/internal/pages"
	"taskBoard/internal/render"
)

// Kind - вид страницы, для которой открыта сессия.
type Kind string

const (
	KindDashboard    Kind = "dashboard"
	KindTasks        Kind = "tasks"
	KindClients      Kind = "clients"
	KindProfile      Kind = "profile"
	KindAdmin        Kind = "admin"
	KindAdminProfile Kind = "admin_profile"
	KindRegister     Kind = "register"
	KindReporting    Kind = "reporting"
	KindCalendar     Kind = "calendar"
)

var (
	ErrUnknownKind = errors.New("неизвестный вид страницы")
	ErrNoToken     = errors.New("на странице нет анти-CSRF токена")
)

func (k Kind) Valid() bool {
	switch k {
	case KindDashboard, KindTasks, KindClients, KindProfile, KindAdmin,
		KindAdminProfile, KindRegister, KindReporting, KindCalendar:
		return true
	}
	return false
}

// needsToken: страницы без запросов к бэкенду открываются и без токена.
func (k Kind) needsToken() bool {
	return k != KindRegister
}

// Session - одна открытая страница.
type Session struct {
	ID   uuid.UUID
	Kind Kind
	Env  *pages.Env
	// Page - контроллер страницы (*pages.Dashboard, *pages.Tasks, ...)
	Page any

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Idle - сессию не трогали дольше timeout.
func (s *Session) Idle(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastSeen()) >= timeout
}

// Now - часы сессии.
func (s *Session) Now() time.Time {
	if s.Env.Now != nil {
		return s.Env.Now()
	}
	return time.Now()
}

// Banners - активные баннеры страницы.
func (s *Session) Banners(now time.Time) []notice.Banner {
	return s.Env.Banners.Active(now)
}

// OpenRequest - страница, которую браузер только что получил.
type OpenRequest struct {
	Kind     Kind
	HTML     string
	Currency string
	// Cookies браузера пересылаются в запросы к бэкенду от имени сессии
	Cookies []*http.Cookie
}

// Options - общие зависимости всех сессий.
type Options struct {
	BackendURL     string
	Timeout        time.Duration
	Transport      http.RoundTripper
	Messages       *i18n.Messages
	Currency       string
	BannerLifetime time.Duration
	Now            func() time.Time
}

// Manager открывает сессии и хранит их в Store.
type Manager struct {
	opts     Options
	store    *Store
	renderer *render.Renderer
}

func NewManager(opts Options, store *Store) (*Manager, error) {
	if opts.Messages == nil {
		opts.Messages = i18n.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r, err := render.New(opts.Messages, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("инициализация отрисовки: %w", err)
	}
	return &Manager{opts: opts, store: store, renderer: r.WithClock(opts.Now)}, nil
}

func (m *Manager) Store() *Store {
	return m.store
}

// Open разбирает страницу, читает токен и создаёт контроллер страницы.
func (m *Manager) Open(ctx context.Context, req OpenRequest) (*Session, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	doc, err := dom.ParseString(req.HTML)
	if err != nil {
		return nil, fmt.Errorf("разбор страницы: %w", err)
	}
	token, err := backend.TokenFromPage(doc)
	if err != nil && req.Kind.needsToken() {
		return nil, fmt.Errorf("%w: %v", ErrNoToken, err)
	}
	api, err := backend.New(backend.Config{
		BaseURL:   m.opts.BackendURL,
		Timeout:   m.opts.Timeout,
		Token:     token,
		Cookies:   req.Cookies,
		Transport: m.opts.Transport,
	})
	if err != nil {
		return nil, err
	}

	renderer := m.renderer
	if code := strings.TrimSpace(req.Currency); code != "" {
		renderer = renderer.WithCurrency(code)
	}
	env := &pages.Env{
		API:      api,
		Describe: backend.NewDescriber(m.opts.Messages),
		Render:   renderer,
		Banners:  notice.NewBoard(m.opts.BannerLifetime),
		Doc:      doc,
		Seq:      backend.NewSequencer(),
		Now:      m.opts.Now,
	}
	page, err := newPage(req.Kind, env)
	if err != nil {
		return nil, fmt.Errorf("страница %s: %w", req.Kind, err)
	}

	s := &Session{ID: uuid.New(), Kind: req.Kind, Env: env, Page: page}
	s.Touch(m.opts.Now())
	m.store.Create(s)

	logger.Info("Service: сессия открыта",
		zap.String("session", s.ID.String()),
		zap.String("kind", string(s.Kind)),
	)
	return s, nil
}

func newPage(kind Kind, env *pages.Env) (any, error) {
	switch kind {
	case KindDashboard:
		return pages.NewDashboard(env)
	case KindTasks:
		return pages.NewTasks(env), nil
	case KindClients:
		return pages.NewClients(env), nil
	case KindProfile:
		return pages.NewProfile(env), nil
	case KindAdmin:
		return pages.NewAdmin(env), nil
	case KindAdminProfile:
		return pages.NewAdminProfile(env)
	case KindRegister:
		return pages.NewRegister(env), nil
	case KindReporting:
		return pages.NewReporting(env), nil
	case KindCalendar:
		return pages.NewCalendar(env), nil
	}
	return nil, ErrUnknownKind
}

// Get возвращает сессию и отмечает обращение к ней.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	s, err := m.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.Touch(m.opts.Now())
	return s, nil
}

func (m *Manager) Close(id uuid.UUID) error {
	return m.store.Delete(id)
}
