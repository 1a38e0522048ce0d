package pages

import (
	"context"
	"strconv"

	"taskBoard/internal/backend"
	"taskBoard/internal/models/task"
	"taskBoard/internal/render"
)

const (
	defaultEventColor = "#0d6efd"
	calendarPageSize  = 100
	calendarMaxPages  = 1000
)

type EventProps struct {
	Description     string `json:"description"`
	ClientName      string `json:"clientName"`
	Status          string `json:"status"`
	StatusText      string `json:"statusText"`
	StatusClass     string `json:"statusClass"`
	RawDeadline     string `json:"rawDeadline,omitempty"`
	DisplayDeadline string `json:"displayDeadline"`
}

// Event - событие календаря на день дедлайна задачи.
type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Start           string     `json:"start,omitempty"`
	AllDay          bool       `json:"allDay"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderColor     string     `json:"borderColor"`
	ExtendedProps   EventProps `json:"extendedProps"`
}

type Calendar struct {
	env *Env
}

func NewCalendar(env *Env) *Calendar {
	return &Calendar{env: env}
}

func (p *Calendar) event(t task.Task) Event {
	color := t.Color
	if color == "" {
		color = defaultEventColor
	}
	client := t.ClientName()
	if client == "" {
		client = render.NA
	}
	e := Event{
		ID:              strconv.FormatInt(t.ID, 10),
		Title:           t.Title,
		AllDay:          true,
		BackgroundColor: color,
		BorderColor:     color,
		ExtendedProps: EventProps{
			Description:     t.Description,
			ClientName:      client,
			Status:          string(t.Status),
			StatusText:      p.env.text("status." + t.Status.MessageKey()),
			StatusClass:     t.Status.CSSClass(),
			DisplayDeadline: render.NA,
		},
	}
	if t.Description == "" {
		e.ExtendedProps.Description = p.env.text("calendar.noDescription")
	}
	if t.Deadline != nil {
		e.Start = t.Deadline.Format("2006-01-02")
		e.ExtendedProps.RawDeadline = t.Deadline.Format("2006-01-02T15:04:05")
		e.ExtendedProps.DisplayDeadline = t.Deadline.Format("2 January 2006")
	}
	return e
}

// Events собирает события по всем страницам поиска задач.
func (p *Calendar) Events(ctx context.Context) (*Result, error) {
	events := []Event{}
	for n := 0; n < calendarMaxPages; n++ {
		pg, err := p.env.API.SearchTasks(ctx, backend.TaskQuery{Page: n, Size: calendarPageSize})
		if err != nil {
			return p.env.fail(backend.OpSearchTasks, err), nil
		}
		for _, t := range pg.Content {
			events = append(events, p.event(t))
		}
		if pg.PageNumber >= pg.TotalPages-1 {
			break
		}
	}
	res := newResult()
	res.Data = events
	return res, nil
}
