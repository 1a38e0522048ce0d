package pages

import (
	"context"
	"errors"

	"taskBoard/internal/backend"
	"taskBoard/internal/models/page"
	"taskBoard/internal/pagination"
	"taskBoard/internal/render"
)

const defaultPageSize = 10

var errStaleSearch = errors.New("устаревший ответ поиска")

// fetchFunc выполняет поиск q на странице pageNumber.
type fetchFunc[T, Q any] func(ctx context.Context, q Q, pageNumber, size int) (*page.Page[T], error)

// table - страница с поиском, таблицей и пагинацией; Q - параметры активного поиска.
type table[T, Q any] struct {
	env   *Env
	view  render.View
	row   render.RowFunc[T]
	fetch fetchFunc[T, Q]
	op    backend.Op
	key   string
	size  int
	pager *pagination.Controller

	query Q
}

func newTable[T, Q any](env *Env, key string, view render.View, op backend.Op, row render.RowFunc[T], fetch fetchFunc[T, Q]) *table[T, Q] {
	t := &table[T, Q]{env: env, view: view, row: row, fetch: fetch, op: op, key: key, size: defaultPageSize}
	labels := pagination.Labels{
		Previous: env.text("pagination.previous"),
		Next:     env.text("pagination.next"),
	}
	t.pager = pagination.NewController(env.Doc, pagination.List, labels, t.load).GuardDocument(&env.mu)
	return t
}

// load - поиск для пагинации: активный запрос, другая страница.
// Таблица и ссылки перерисовываются вместе и только для последнего запроса.
func (t *table[T, Q]) load(ctx context.Context, pageNumber int) error {
	t.env.mu.Lock()
	q := t.query
	t.env.mu.Unlock()

	ticket := t.env.Seq.Next(t.key)
	p, err := t.fetch(ctx, q, pageNumber, t.size)
	if err != nil {
		return err
	}

	t.env.mu.Lock()
	defer t.env.mu.Unlock()
	if !t.env.Seq.Current(t.key, ticket) {
		return errStaleSearch
	}
	if err := render.Render(t.env.Doc, t.view, p.Content, t.row); err != nil {
		return err
	}
	return t.pager.Apply(p.Meta())
}

func (t *table[T, Q]) result() (*Result, error) {
	res := newResult()
	t.env.mu.Lock()
	defer t.env.mu.Unlock()
	if err := res.add(t.env.Doc, t.view.Table, t.view.Empty, t.view.Pagination); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *table[T, Q]) outcome(err error) (*Result, error) {
	switch {
	case err == nil:
		return t.result()
	case errors.Is(err, errStaleSearch):
		return newResult(), nil
	case errors.Is(err, pagination.ErrOutOfRange):
		return nil, err
	}
	if _, ok := backend.AsFailure(err); ok {
		return t.env.fail(t.op, err), nil
	}
	return nil, err
}

// Search начинает новый поиск с первой страницы.
func (t *table[T, Q]) Search(ctx context.Context, q Q) (*Result, error) {
	t.env.mu.Lock()
	t.query = q
	t.env.mu.Unlock()

	return t.outcome(t.load(ctx, 0))
}

// Page переходит на страницу pageNumber активного поиска.
func (t *table[T, Q]) Page(ctx context.Context, pageNumber int) (*Result, error) {
	return t.outcome(t.pager.Go(ctx, pageNumber))
}

// Patch обновляет строку на месте после успешного сохранения.
func (t *table[T, Q]) Patch(id string, item T) (bool, error) {
	t.env.mu.Lock()
	defer t.env.mu.Unlock()
	return render.PatchRow(t.env.Doc, t.view, id, item, t.row)
}

func (t *table[T, Q]) Remove(id string) (bool, error) {
	t.env.mu.Lock()
	defer t.env.mu.Unlock()
	return render.RemoveRow(t.env.Doc, t.view, id)
}

func (t *table[T, Q]) Append(item T) error {
	t.env.mu.Lock()
	defer t.env.mu.Unlock()
	return render.AppendRow(t.env.Doc, t.view, item, t.row)
}
