// Package backend - диспетчер запросов к бэкенду задач и счетов.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"taskBoard/internal/dom"
	"taskBoard/internal/logger"
)

const (
	csrfMetaName       = "_csrf"
	csrfHeaderMetaName = "_csrf_header"
	maxBodySize        = 10 << 20
)

// Token - пара анти-CSRF: имя заголовка и значение. Читается со страницы один раз.
type Token struct {
	HeaderName string
	Value      string
}

func (t Token) Empty() bool {
	return t.HeaderName == "" || t.Value == ""
}

// TokenFromPage достаёт токен из <meta name="_csrf"> и <meta name="_csrf_header">.
func TokenFromPage(doc *dom.Document) (Token, error) {
	t := Token{
		HeaderName: strings.TrimSpace(doc.Meta(csrfHeaderMetaName)),
		Value:      strings.TrimSpace(doc.Meta(csrfMetaName)),
	}
	if t.Empty() {
		return Token{}, errors.New("на странице нет мета-тегов _csrf/_csrf_header")
	}
	return t, nil
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   Token
	// Cookies сессии браузера, пересылаются в каждый запрос.
	Cookies   []*http.Cookie
	Transport http.RoundTripper
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   Token
	cookies []*http.Cookie
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("неверный адрес бэкенда %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("таймаут запросов к бэкенду должен быть положительным")
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
			// редирект на страницу входа - это отказ, а не успех
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		token:   cfg.Token,
		cookies: cfg.Cookies,
	}, nil
}

func (c *Client) Token() Token {
	return c.token
}

type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Payload Payload
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode разбирает JSON-тело; ошибка разбора тоже становится *Failure.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &Failure{StatusCode: 0, Body: string(r.Body), Err: fmt.Errorf("разбор ответа: %w", err)}
	}
	return nil
}

func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Body))
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Submit выполняет запрос. Любая неудача возвращается как *Failure, паники не выходят наружу.
func (c *Client) Submit(ctx context.Context, req Request) (resp *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = &Failure{Err: fmt.Errorf("паника при запросе %s %s: %v", req.Method, req.Path, r)}
		}
	}()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.Payload != nil {
		body, contentType, err = req.Payload.encode()
		if err != nil {
			return nil, &Failure{Err: fmt.Errorf("кодирование тела: %w", err)}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, &Failure{Err: fmt.Errorf("создание запроса: %w", err)}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json, */*")
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	if mutating(method) && !c.token.Empty() {
		httpReq.Header.Set(c.token.HeaderName, c.token.Value)
	}
	for _, ck := range c.cookies {
		httpReq.AddCookie(ck)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Warn("Backend: запрос не выполнен",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return nil, &Failure{Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return nil, &Failure{StatusCode: httpResp.StatusCode, Err: fmt.Errorf("чтение ответа: %w", err)}
	}

	logger.Debug("Backend: ответ получен",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &Failure{
			StatusCode: httpResp.StatusCode,
			Body:       string(bytes.TrimSpace(data)),
			Location:   httpResp.Header.Get("Location"),
		}
	}
	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}
