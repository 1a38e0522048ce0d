// Package pagination строит ссылки Previous / 1..N / Next и переключает страницы поиска.
package pagination

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"sync"

	"taskBoard/internal/dom"
	"taskBoard/internal/models/page"
)

type Kind string

const (
	KindPrevious Kind = "previous"
	KindPage     Kind = "page"
	KindNext     Kind = "next"
)

// Link - элемент списка; Page - номер страницы с нуля.
type Link struct {
	Kind     Kind
	Label    string
	Page     int
	Disabled bool
	Active   bool
}

type Labels struct {
	Previous string
	Next     string
}

var DefaultLabels = Labels{Previous: "Previous", Next: "Next"}

// Build возвращает ссылки для meta. При TotalPages == 0 ссылок нет.
func Build(meta page.Meta, labels Labels) []Link {
	if meta.TotalPages <= 0 {
		return nil
	}
	links := make([]Link, 0, meta.TotalPages+2)
	links = append(links, Link{
		Kind:     KindPrevious,
		Label:    labels.Previous,
		Page:     meta.PageNumber - 1,
		Disabled: meta.PageNumber == 0,
	})
	for i := 0; i < meta.TotalPages; i++ {
		links = append(links, Link{
			Kind:   KindPage,
			Label:  strconv.Itoa(i + 1),
			Page:   i,
			Active: i == meta.PageNumber,
		})
	}
	links = append(links, Link{
		Kind:     KindNext,
		Label:    labels.Next,
		Page:     meta.PageNumber + 1,
		Disabled: meta.PageNumber >= meta.TotalPages-1,
	})
	return links
}

var listTmpl = template.Must(template.New("pagination").Parse(
	`{{range .}}<li class="page-item{{if .Disabled}} disabled{{end}}{{if .Active}} active{{end}}">` +
		`<a class="page-link" href="#" data-page="{{.Page}}">{{.Label}}</a></li>{{end}}`))

// Markup - HTML списка ссылок.
func Markup(links []Link) (string, error) {
	var buf bytes.Buffer
	if err := listTmpl.Execute(&buf, links); err != nil {
		return "", fmt.Errorf("отрисовка пагинации: %w", err)
	}
	return buf.String(), nil
}

// List - селектор списка .pagination на страницах поиска.
var List = dom.MustCompile(".pagination")

// Render перестраивает список ссылок целиком.
func Render(doc *dom.Document, list dom.Selector, meta page.Meta, labels Labels) error {
	n := doc.Query(list)
	if n == nil {
		return fmt.Errorf("на странице нет контейнера %s", list)
	}
	markup, err := Markup(Build(meta, labels))
	if err != nil {
		return err
	}
	return dom.SetInnerHTML(n, markup)
}

// Searcher повторяет активный поиск с другим номером страницы и сам применяет
// метаданные ответа через Controller.Apply, пока держит блокировку документа.
type Searcher func(ctx context.Context, pageNumber int) error

type Controller struct {
	mu     sync.Mutex
	doc    *dom.Document
	list   dom.Selector
	labels Labels
	search Searcher
	meta   page.Meta
	// docMu - блокировка документа, общая с остальными правками страницы
	docMu sync.Locker
}

func NewController(doc *dom.Document, list dom.Selector, labels Labels, search Searcher) *Controller {
	return &Controller{doc: doc, list: list, labels: labels, search: search}
}

// GuardDocument задаёт блокировку, под которой перерисовываются ссылки.
func (c *Controller) GuardDocument(l sync.Locker) *Controller {
	c.docMu = l
	return c
}

// Reset запоминает метаданные свежего поиска и перерисовывает ссылки.
func (c *Controller) Reset(meta page.Meta) error {
	if c.docMu != nil {
		c.docMu.Lock()
		defer c.docMu.Unlock()
	}
	return c.Apply(meta)
}

// Apply - то же, что Reset, но блокировку документа уже держит вызывающий.
func (c *Controller) Apply(meta page.Meta) error {
	c.mu.Lock()
	c.meta = meta
	c.mu.Unlock()
	return Render(c.doc, c.list, meta, c.labels)
}

func (c *Controller) Meta() page.Meta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// ErrOutOfRange - переход на несуществующую страницу (клик по отключённой ссылке).
var ErrOutOfRange = errors.New("страница вне диапазона")

// Go выполняет поиск для pageNumber и перестраивает пагинацию из нового ответа.
func (c *Controller) Go(ctx context.Context, pageNumber int) error {
	current := c.Meta()
	if pageNumber < 0 || (current.TotalPages > 0 && pageNumber >= current.TotalPages) {
		return ErrOutOfRange
	}
	return c.search(ctx, pageNumber)
}
