package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"taskBoard/internal/backend"
	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/i18n"
	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/session"
	"taskBoard/internal/worker"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	sessions  *session.Manager
	probe     *backendProbe
	worker    *worker.SweepWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// backendProbe проверяет, что бэкенд отвечает. Любой ответ ниже 500 считается живым.
type backendProbe struct {
	client *backend.Client
	path   string
}

func (p *backendProbe) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx, p.path)
}

// waitReady повторяет проверку с экспоненциальной задержкой, пока бэкенд не ответит.
func (p *backendProbe) waitReady(ctx context.Context, maxElapsed time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := p.HealthCheck(ctx)
		if err != nil {
			logger.Warn("Service: Бэкенд пока недоступен",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	msgs := i18n.Default()
	if path := a.config.UI.MessagesFile; path != "" {
		loaded, err := i18n.Load(path)
		if err != nil {
			return nil, fmt.Errorf("каталог сообщений: %w", err)
		}
		msgs = loaded
	}

	probeClient, err := backend.New(backend.Config{
		BaseURL: a.config.Backend.URL,
		Timeout: a.config.Backend.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("клиент бэкенда: %w", err)
	}
	a.probe = &backendProbe{client: probeClient, path: a.config.Backend.HealthPath}
	if a.config.Backend.ProbeTimeout > 0 {
		if err := a.probe.waitReady(ctx, a.config.Backend.ProbeTimeout); err != nil {
			return nil, fmt.Errorf("бэкенд недоступен: %w", err)
		}
		logger.Info("Service: Бэкенд доступен", zap.String("url", a.config.Backend.URL))
	}

	store := session.NewStore()
	a.sessions, err = session.NewManager(session.Options{
		BackendURL:     a.config.Backend.URL,
		Timeout:        a.config.Backend.Timeout,
		Messages:       msgs,
		Currency:       a.config.UI.Currency,
		BannerLifetime: a.config.UI.BannerLifetime,
	}, store)
	if err != nil {
		return nil, err
	}

	interval, idle := a.config.Sessions.SweepInterval, a.config.Sessions.IdleTimeout
	a.worker = worker.NewSweepWorker(store, &interval, &idle, nil)

	a.router = chi.NewRouter()
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logging)
	a.router.Use(middleware.Recover)
	a.router.Use(middleware.RateLimit(a.config.Server.RateLimit))
	handlers.NewHandler(a.sessions, a.probe).Routes(a.router)

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           otelhttp.NewHandler(a.router, "task-board"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Run запускает очистку сессий и HTTP-сервер; возвращается после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorker := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		a.worker.Start(workerCtx)
		close(done)
	}()
	a.shutdowns = append([]func(){func() {
		stopWorker()
		<-done
	}}, a.shutdowns...)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			runErr = fmt.Errorf("HTTP сервер: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP: Ошибка остановки сервера", err)
	}
	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	for _, fn := range a.shutdowns {
		fn()
	}
}
