package pages

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"taskBoard/internal/backend"
	"taskBoard/internal/board"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
)

const zeroAmount = "0.0"

// Dashboard - доска задач с формами добавления и правки и выставлением счетов.
type Dashboard struct {
	env   *Env
	board *board.Board
}

func NewDashboard(env *Env) (*Dashboard, error) {
	b, err := board.New(env.Doc, env.Render, env.API, env.Seq)
	if err != nil {
		return nil, err
	}
	return &Dashboard{env: env, board: b}, nil
}

func (d *Dashboard) Board() *board.Board {
	return d.board
}

// columns кладёт в ответ списки карточек перечисленных колонок.
func (d *Dashboard) columns(res *Result, statuses ...task.Status) (*Result, error) {
	seen := make(map[task.Status]bool, len(statuses))
	for _, s := range statuses {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		markup, err := d.board.Fragment(s)
		if err != nil {
			return nil, err
		}
		res.Fragments[board.ListSelector(s).String()] = markup
	}
	return res, nil
}

// Drop - карточку перетащили в колонку.
func (d *Dashboard) Drop(ctx context.Context, drop board.Drop) (*Result, error) {
	out, err := d.board.Move(ctx, drop)
	if err != nil {
		return nil, err
	}
	res := newResult()
	if out.Err != nil && !out.Stale {
		res = d.env.fail(backend.OpMoveTask, out.Err)
	}
	if out.Task != nil {
		res.Data = out.Task
	}
	return d.columns(res, out.Columns(drop)...)
}

func billable(form url.Values) bool {
	switch strings.ToLower(form.Get("billable")) {
	case "on", "true", "1":
		return true
	}
	return false
}

// normalizeTaskForm готовит поля формы задачи к отправке: дата дедлайна получает полдень,
// у неоплачиваемой задачи ставка и аванс обнуляются. zeroEmpty заполняет пустые суммы нулём.
func normalizeTaskForm(form url.Values, zeroEmpty bool) url.Values {
	out := make(url.Values, len(form))
	for k, v := range form {
		out[k] = append([]string(nil), v...)
	}
	if dl := strings.TrimSpace(out.Get("deadline")); dl != "" && !strings.Contains(dl, "T") {
		out.Set("deadline", dl+"T12:00")
	}
	if zeroEmpty {
		for _, k := range []string{"hoursWorked", "hourlyRate", "advancePayment"} {
			if strings.TrimSpace(out.Get(k)) == "" {
				out.Set(k, zeroAmount)
			}
		}
	}
	if !billable(out) {
		out.Set("hourlyRate", zeroAmount)
		out.Set("advancePayment", zeroAmount)
	}
	return out
}

func (d *Dashboard) AddTask(ctx context.Context, form url.Values) (*Result, error) {
	created, err := d.env.API.CreateTask(ctx, normalizeTaskForm(form, false))
	if err != nil {
		return d.env.fail(backend.OpCreateTask, err), nil
	}
	if err := d.board.AddCard(*created); err != nil {
		return nil, err
	}
	res := newResult()
	res.Data = created
	return d.columns(res, created.Status)
}

// TaskForm - значения формы правки задачи.
type TaskForm struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Deadline       string      `json:"deadline"`
	Billable       bool        `json:"billable"`
	RatesDisabled  bool        `json:"ratesDisabled"`
	HoursWorked    float64     `json:"hoursWorked"`
	HourlyRate     float64     `json:"hourlyRate"`
	AdvancePayment float64     `json:"advancePayment"`
	ClientID       string      `json:"clientId"`
	Color          string      `json:"color"`
	Status         task.Status `json:"status"`
}

func newTaskForm(t *task.Task) TaskForm {
	f := TaskForm{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Billable:       t.Billable,
		RatesDisabled:  !t.Billable,
		HoursWorked:    t.HoursWorked,
		HourlyRate:     t.HourlyRate,
		AdvancePayment: t.AdvancePayment,
		Color:          t.Color,
		Status:         t.Status,
	}
	if t.Deadline != nil {
		f.Deadline = t.Deadline.Format("2006-01-02")
	}
	if t.Client != nil {
		f.ClientID = strconv.FormatInt(t.Client.ID, 10)
	}
	return f
}

// EditForm загружает задачу для формы правки.
func (d *Dashboard) EditForm(ctx context.Context, id int64) (*Result, error) {
	return editForm(ctx, d.env, id)
}

func editForm(ctx context.Context, env *Env, id int64) (*Result, error) {
	t, err := env.API.GetTask(ctx, id)
	if err != nil {
		return env.fail(backend.OpFetchTask, err), nil
	}
	res := newResult()
	res.Data = newTaskForm(t)
	return res, nil
}

// UpdateTask сохраняет правку; карточка переезжает, если сменился статус.
func (d *Dashboard) UpdateTask(ctx context.Context, id int64, form url.Values) (*Result, error) {
	updated, err := d.env.API.UpdateTask(ctx, id, normalizeTaskForm(form, false))
	if err != nil {
		return d.env.fail(backend.OpUpdateTask, err), nil
	}
	source, ok, err := d.board.UpdateCard(*updated)
	if err != nil {
		return nil, err
	}
	res := newResult()
	res.Data = updated
	if !ok {
		return res, nil
	}
	return d.columns(res, source, updated.Status)
}

func (d *Dashboard) removeCard(id int64) (*Result, error) {
	source, ok := d.board.RemoveCard(id)
	res := newResult()
	if !ok {
		return res, nil
	}
	return d.columns(res, source)
}

func (d *Dashboard) DeleteTask(ctx context.Context, id int64) (*Result, error) {
	if err := d.env.API.DeleteTask(ctx, id); err != nil {
		return d.env.fail(backend.OpDeleteTask, err), nil
	}
	return d.removeCard(id)
}

// HideTask убирает карточку с доски; задача остаётся в списке задач.
func (d *Dashboard) HideTask(ctx context.Context, id int64) (*Result, error) {
	if err := d.env.API.HideTask(ctx, id); err != nil {
		return d.env.fail(backend.OpHideTask, err), nil
	}
	return d.removeCard(id)
}

var errUnconfirmedColor = errors.New("бэкенд не подтвердил смену цвета")

func (d *Dashboard) ChangeColor(ctx context.Context, id int64, color string) (*Result, error) {
	ok, err := d.env.API.ChangeColor(ctx, id, color)
	if err != nil {
		return d.env.fail(backend.OpChangeColor, err), nil
	}
	if !ok {
		logger.Warn("Service: смена цвета без подтверждения", zap.Int64("task_id", id), zap.Error(errUnconfirmedColor))
		return newResult(), nil
	}
	source, found := d.board.SetColor(id, color)
	res := newResult()
	if !found {
		return res, nil
	}
	return d.columns(res, source)
}
