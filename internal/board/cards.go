package board

import (
	"strconv"

	"taskBoard/internal/dom"
	"taskBoard/internal/models/task"
	"taskBoard/internal/render"
)

// AddCard добавляет карточку новой задачи в конец её колонки.
func (b *Board) AddCard(t task.Task) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.list(t.Status)
	if err != nil {
		return err
	}
	card, err := b.cardNode(l, t)
	if err != nil {
		return err
	}
	l.AppendChild(card)
	renumber(l)
	b.confirm(t.ID, t.Status, card)
	return nil
}

// UpdateCard обновляет карточку на месте и переносит её, если сменился статус.
// Возвращает исходный статус колонки; false - карточки нет на доске.
func (b *Board) UpdateCard(t task.Task) (task.Status, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	card, source, err := b.find(t.ID)
	if err != nil {
		return "", false, nil
	}
	if source != t.Status {
		target, err := b.list(t.Status)
		if err != nil {
			return "", false, err
		}
		dom.Detach(card)
		target.AppendChild(card)
	}
	fresh, err := b.cardNode(card.Parent, t)
	if err != nil {
		return "", false, err
	}
	// раскрытая карточка остаётся раскрытой
	expanded := dom.HasClass(card, "expanded")
	dom.Morph(card, fresh)
	if expanded {
		dom.RemoveClass(card, "collapsed")
		dom.AddClass(card, "expanded")
	}
	if source != t.Status {
		sourceList, _ := b.list(source)
		renumber(sourceList)
	}
	renumber(card.Parent)
	b.confirm(t.ID, t.Status, card)
	return source, true, nil
}

// RemoveCard убирает карточку (удаление или скрытие задачи).
func (b *Board) RemoveCard(id int64) (task.Status, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	card, source, err := b.find(id)
	if err != nil {
		return "", false
	}
	parent := card.Parent
	dom.Detach(card)
	renumber(parent)
	delete(b.confirmed, id)
	b.seq.Forget(sequenceKey(id))
	return source, true
}

// SetColor меняет фон карточки после подтверждения бэкендом.
func (b *Board) SetColor(id int64, color string) (task.Status, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	card, source, err := b.find(id)
	if err != nil {
		return "", false
	}
	dom.SetAttr(card, "style", "background-color: "+render.SafeColor(color))
	return source, true
}

// CardClient - клиент карточки из её span.client-name; ok=false для "N/A".
type CardClient struct {
	ID   int64
	Name string
}

func (b *Board) ClientOf(id int64) (CardClient, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	card, _, err := b.find(id)
	if err != nil {
		return CardClient{}, false
	}
	span := dom.First(card, dom.ByClass("client-name"))
	if span == nil {
		return CardClient{}, false
	}
	clientID, err := strconv.ParseInt(dom.Attr(span, "data-client-id"), 10, 64)
	name := dom.Text(span)
	if err != nil || name == "" || name == render.NA {
		return CardClient{}, false
	}
	return CardClient{ID: clientID, Name: name}, true
}

// Billable сообщает, можно ли выставить счёт по карточке (флажок выбора не отключён).
func (b *Board) Billable(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	card, _, err := b.find(id)
	if err != nil {
		return false
	}
	sel := dom.First(card, dom.ByClass("task-select"))
	return sel != nil && !dom.HasAttr(sel, "disabled")
}
