// Package board - доска задач из трёх колонок и перенос карточек между ними.
package board

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"taskBoard/internal/backend"
	"taskBoard/internal/dom"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/render"
)

var ErrUnknownCard = errors.New("карточки нет на доске")

// Mover - операция бэкенда, подтверждающая перенос.
type Mover interface {
	MoveTask(ctx context.Context, id int64, status task.Status, ids []int64) (*task.Task, error)
}

type CardRenderer interface {
	TaskCard(t task.Task) (string, error)
}

var listSelectors = func() map[task.Status]dom.Selector {
	m := make(map[task.Status]dom.Selector, len(task.Statuses))
	for _, s := range task.Statuses {
		m[s] = dom.MustCompile("#" + s.Column() + " .task-list")
	}
	return m
}()

// ListSelector - селектор списка карточек колонки status.
func ListSelector(s task.Status) dom.Selector {
	return listSelectors[s]
}

// position - место карточки, подтверждённое бэкендом.
type position struct {
	status task.Status
	index  int
}

type Board struct {
	mu    sync.Mutex
	doc   *dom.Document
	cards CardRenderer
	mover Mover
	seq   *backend.Sequencer
	// confirmed - последнее принятое бэкендом место каждой карточки; туда возвращает откат.
	confirmed map[int64]position
}

func New(doc *dom.Document, cards CardRenderer, mover Mover, seq *backend.Sequencer) (*Board, error) {
	b := &Board{doc: doc, cards: cards, mover: mover, seq: seq, confirmed: make(map[int64]position)}
	for _, s := range task.Statuses {
		if _, err := b.list(s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) list(s task.Status) (*html.Node, error) {
	sel, ok := listSelectors[s]
	if !ok {
		return nil, fmt.Errorf("неизвестный статус %q", s)
	}
	n := b.doc.Query(sel)
	if n == nil {
		return nil, fmt.Errorf("на доске нет колонки %s", sel)
	}
	return n, nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// find возвращает карточку и статус колонки, в которой она лежит.
func (b *Board) find(id int64) (*html.Node, task.Status, error) {
	for _, s := range task.Statuses {
		l, err := b.list(s)
		if err != nil {
			return nil, "", err
		}
		if card := render.FindRow(l, idString(id)); card != nil {
			return card, s, nil
		}
	}
	return nil, "", ErrUnknownCard
}

func (b *Board) cardNode(parent *html.Node, t task.Task) (*html.Node, error) {
	markup, err := b.cards.TaskCard(t)
	if err != nil {
		return nil, err
	}
	return dom.ParseElement(parent, markup)
}

// Load раскладывает задачи по колонкам статусов в порядке OrderIndex.
func (b *Board) Load(tasks []task.Task) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sorted := append([]task.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	for _, s := range task.Statuses {
		l, err := b.list(s)
		if err != nil {
			return err
		}
		dom.Clear(l)
	}
	for _, t := range sorted {
		l, err := b.list(t.Status)
		if err != nil {
			return err
		}
		card, err := b.cardNode(l, t)
		if err != nil {
			return fmt.Errorf("карточка %d: %w", t.ID, err)
		}
		l.AppendChild(card)
	}
	clear(b.confirmed)
	for _, s := range task.Statuses {
		l, _ := b.list(s)
		renumber(l)
		for i, card := range dom.Elements(l) {
			if id, err := strconv.ParseInt(dom.Attr(card, "data-id"), 10, 64); err == nil {
				b.confirmed[id] = position{status: s, index: i}
			}
		}
	}
	return nil
}

// Column - id карточек колонки по порядку.
func (b *Board) Column(s task.Status) ([]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.list(s)
	if err != nil {
		return nil, err
	}
	return render.IntIDs(l)
}

// Validate проверяет, что data-order в каждой колонке уникальны и идут подряд с нуля.
func (b *Board) Validate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range task.Statuses {
		l, err := b.list(s)
		if err != nil {
			return err
		}
		cards := dom.Elements(l)
		seen := make([]bool, len(cards))
		for _, card := range cards {
			order, err := strconv.Atoi(dom.Attr(card, "data-order"))
			if err != nil || order < 0 || order >= len(cards) || seen[order] {
				return fmt.Errorf("колонка %s: неверный data-order у карточки %s",
					s.Column(), dom.Attr(card, "data-id"))
			}
			seen[order] = true
		}
	}
	return nil
}

// Fragment - внешний HTML списка карточек колонки.
func (b *Board) Fragment(s task.Status) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.list(s)
	if err != nil {
		return "", err
	}
	return dom.Render(l)
}

func restamp(l *html.Node, ids []int64) {
	for i, id := range ids {
		if card := render.FindRow(l, idString(id)); card != nil {
			dom.SetAttr(card, "data-order", strconv.Itoa(i))
		}
	}
}

// renumber выставляет data-order по фактическому порядку карточек с нуля.
func renumber(l *html.Node) {
	for i, card := range dom.Elements(l) {
		dom.SetAttr(card, "data-order", strconv.Itoa(i))
	}
}

// renumberExcept перенумеровывает все колонки, кроме skip.
func (b *Board) renumberExcept(skip task.Status) {
	for _, s := range task.Statuses {
		if s == skip {
			continue
		}
		if l, err := b.list(s); err == nil {
			renumber(l)
		}
	}
}

func (b *Board) confirm(id int64, s task.Status, card *html.Node) {
	b.confirmed[id] = position{status: s, index: dom.Index(card)}
}

func (b *Board) logDrop(msg string, d Drop, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.Int64("task_id", d.TaskID),
		zap.String("target", string(d.Target)),
		zap.Int("index", d.Index),
	}, fields...)
	logger.Info(msg, fields...)
}
