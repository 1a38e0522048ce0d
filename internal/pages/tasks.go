package pages

import (
	"context"
	"net/url"
	"strconv"

	"taskBoard/internal/backend"
	"taskBoard/internal/dom"
	"taskBoard/internal/models/page"
	"taskBoard/internal/models/task"
	"taskBoard/internal/render"
)

// TaskFilter - параметры поиска на странице задач.
type TaskFilter struct {
	Search   string
	ClientID string
	Status   string
	Size     int
}

var unhideButton = dom.MustCompile(".unhide-task-btn")

// Tasks - таблица всех задач, включая скрытые.
type Tasks struct {
	env   *Env
	table *table[task.Task, TaskFilter]
}

func NewTasks(env *Env) *Tasks {
	row := func(t task.Task) (string, error) {
		return env.Render.TaskRow(t, render.AllTaskColumns)
	}
	fetch := func(ctx context.Context, f TaskFilter, pageNumber, size int) (*page.Page[task.Task], error) {
		if f.Size > 0 {
			size = f.Size
		}
		return env.API.SearchTasks(ctx, backend.TaskQuery{
			Search:   f.Search,
			ClientID: f.ClientID,
			Status:   f.Status,
			Page:     pageNumber,
			Size:     size,
		})
	}
	return &Tasks{
		env:   env,
		table: newTable(env, "search:tasks", render.TasksView, backend.OpSearchTasks, row, fetch),
	}
}

func (p *Tasks) Search(ctx context.Context, f TaskFilter) (*Result, error) {
	return p.table.Search(ctx, f)
}

func (p *Tasks) Page(ctx context.Context, pageNumber int) (*Result, error) {
	return p.table.Page(ctx, pageNumber)
}

func (p *Tasks) EditForm(ctx context.Context, id int64) (*Result, error) {
	return editForm(ctx, p.env, id)
}

// UpdateTask сохраняет правку из таблицы; пустые суммы уходят нулём.
func (p *Tasks) UpdateTask(ctx context.Context, id int64, form url.Values) (*Result, error) {
	updated, err := p.env.API.UpdateTask(ctx, id, normalizeTaskForm(form, true))
	if err != nil {
		return p.env.fail(backend.OpUpdateTask, err), nil
	}
	if _, err := p.table.Patch(strconv.FormatInt(updated.ID, 10), *updated); err != nil {
		return nil, err
	}
	res, err := p.table.result()
	if err != nil {
		return nil, err
	}
	res.Data = updated
	return res, nil
}

// DeleteTask убирает строку; последняя удалённая строка включает состояние "нет результатов".
func (p *Tasks) DeleteTask(ctx context.Context, id int64) (*Result, error) {
	if err := p.env.API.DeleteTask(ctx, id); err != nil {
		return p.env.fail(backend.OpDeleteTask, err), nil
	}
	if _, err := p.table.Remove(strconv.FormatInt(id, 10)); err != nil {
		return nil, err
	}
	return p.table.result()
}

// UnhideTask: в колонке "скрыта" становится "нет", кнопка возврата исчезает.
func (p *Tasks) UnhideTask(ctx context.Context, id int64) (*Result, error) {
	if err := p.env.API.UnhideTask(ctx, id); err != nil {
		return p.env.fail(backend.OpUnhideTask, err), nil
	}

	p.env.mu.Lock()
	body := p.env.Doc.Query(render.TasksView.Body)
	if body != nil {
		if row := render.FindRow(body, strconv.FormatInt(id, 10)); row != nil {
			hiddenLabel := p.env.text("dashboard.table.hidden")
			if cell := dom.First(row, dom.All(dom.ByTag("td"), dom.ByAttr("data-label", hiddenLabel))); cell != nil {
				dom.SetText(cell, p.env.text("dashboard.table.no"))
			}
			for _, btn := range unhideButton.All(row) {
				dom.Detach(btn)
			}
		}
	}
	p.env.mu.Unlock()

	return p.table.result()
}
