package board

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"taskBoard/internal/dom"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/render"
)

// Drop - жест перетаскивания: карточка TaskID брошена в колонку Target на позицию Index.
type Drop struct {
	TaskID int64
	Target task.Status
	Index  int
}

type Outcome struct {
	// Task - подтверждённая бэкендом задача; nil при отказе или устаревшем ответе.
	Task *task.Task
	// Stale - ответ пришёл после более нового переноса той же карточки и отброшен.
	Stale bool
	// Reverted - бэкенд отказал, карточка вернулась на исходное место.
	Reverted bool
	Source   task.Status
	Err      error
}

// Columns - колонки, HTML которых изменился.
func (o Outcome) Columns(d Drop) []task.Status {
	if o.Stale {
		return nil
	}
	if o.Reverted {
		// откат мог вернуть карточку в третью колонку и перенумеровал все
		return append([]task.Status(nil), task.Statuses...)
	}
	cols := []task.Status{d.Target}
	if o.Source != "" && o.Source != d.Target {
		cols = append(cols, o.Source)
	}
	if o.Task != nil && o.Task.Status != d.Target && o.Task.Status != o.Source {
		cols = append(cols, o.Task.Status)
	}
	return cols
}

func sequenceKey(id int64) string {
	return fmt.Sprintf("task:%d", id)
}

// Move применяет перенос к копии страницы, подтверждает его у бэкенда и сверяет результат.
// Отказ бэкенда возвращает карточку на последнее подтверждённое место; ошибка отказа лежит в Outcome.Err.
func (b *Board) Move(ctx context.Context, d Drop) (Outcome, error) {
	if !d.Target.Valid() {
		return Outcome{}, fmt.Errorf("неизвестная колонка %q", d.Target)
	}

	b.mu.Lock()
	card, source, err := b.find(d.TaskID)
	if err != nil {
		b.mu.Unlock()
		return Outcome{}, err
	}
	sourceList, _ := b.list(source)
	targetList, _ := b.list(d.Target)
	sourceIndex := dom.Index(card)

	dom.InsertAt(targetList, card, d.Index)
	ids, err := render.IntIDs(targetList)
	if err != nil {
		dom.InsertAt(sourceList, card, sourceIndex)
		b.mu.Unlock()
		return Outcome{}, err
	}
	key := sequenceKey(d.TaskID)
	ticket := b.seq.Next(key)
	b.mu.Unlock()

	b.logDrop("Board: перенос карточки", d, zap.Int64s("order", ids))
	updated, moveErr := b.mover.MoveTask(ctx, d.TaskID, d.Target, ids)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.seq.Current(key, ticket) {
		b.logDrop("Board: устаревший ответ на перенос отброшен", d)
		return Outcome{Stale: true, Source: source, Err: moveErr}, nil
	}

	current, _, findErr := b.find(d.TaskID)
	if moveErr != nil {
		back := source
		if findErr == nil {
			back = b.revert(d.TaskID, current, source, sourceIndex)
		}
		b.renumberExcept("")
		b.logDrop("Board: бэкенд отклонил перенос, карточка возвращена", d,
			zap.String("back", string(back)), zap.Error(moveErr))
		return Outcome{Reverted: true, Source: back, Err: moveErr}, nil
	}
	if findErr != nil {
		// карточку успели удалить, пока шёл запрос
		return Outcome{Task: updated, Source: source}, nil
	}

	home := targetList
	if updated.Status != d.Target {
		logger.Warn("Board: бэкенд вернул другой статус",
			zap.Int64("task_id", updated.ID),
			zap.String("expected", string(d.Target)),
			zap.String("actual", string(updated.Status)),
		)
		if home, err = b.list(updated.Status); err != nil {
			return Outcome{}, err
		}
	}
	fresh, err := b.cardNode(home, *updated)
	if err != nil {
		return Outcome{}, fmt.Errorf("отрисовка карточки %d: %w", updated.ID, err)
	}
	if home == targetList {
		dom.Replace(current, fresh)
	} else {
		dom.Detach(current)
		home.AppendChild(fresh)
	}
	restamp(targetList, ids)
	b.renumberExcept(d.Target)
	b.confirm(updated.ID, updated.Status, fresh)
	return Outcome{Task: updated, Source: source}, nil
}

// revert ставит карточку на подтверждённое место; без него - на место до этого жеста.
func (b *Board) revert(id int64, card *html.Node, source task.Status, sourceIndex int) task.Status {
	pos, ok := b.confirmed[id]
	if !ok {
		pos = position{status: source, index: sourceIndex}
	}
	l, err := b.list(pos.status)
	if err != nil {
		return source
	}
	dom.InsertAt(l, card, pos.index)
	return pos.status
}
