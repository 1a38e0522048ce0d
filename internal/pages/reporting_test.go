package pages

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"taskBoard/internal/backend"
	"taskBoard/internal/models/page"
	"taskBoard/internal/models/report"
	"taskBoard/internal/models/task"
	"taskBoard/internal/notice"
)

func series(labels []string, values ...float64) *report.Series {
	return &report.Series{Labels: labels, Values: values}
}

func TestReportingLoad(t *testing.T) {
	ctx := context.Background()
	months := []string{"2025-03", "2025-04"}
	clients := []string{"Acme", "Globex"}

	t.Run("success - both charts", func(t *testing.T) {
		api := new(MockBackend)
		env := newEnv(t, "<html><body></body></html>", api)
		api.On("ReportSeries", mock.Anything, backend.ReportTasksPerMonth, "6m").Return(series(months, 3, 5), nil).Once()
		api.On("ReportSeries", mock.Anything, backend.ReportRevenuePerMonth, "6m").Return(series(months, 300, 520.5), nil).Once()
		api.On("ReportSeries", mock.Anything, backend.ReportTasksPerClient, "6m").Return(series(clients, 6, 2), nil).Once()
		api.On("ReportSeries", mock.Anything, backend.ReportRevenuePerClient, "6m").Return(series(clients, 700, 120.5), nil).Once()

		p := NewReporting(env)
		res, err := p.Load(ctx, "6m")
		require.NoError(t, err)
		assert.False(t, res.Failed)
		charts := res.Data.(*Charts)
		assert.Equal(t, []float64{300, 520.5}, charts.RevenuePerMonth.Values)
		assert.Equal(t, clients, charts.TasksPerClient.Labels)

		exported, err := p.Export()
		require.NoError(t, err)
		require.NotNil(t, exported.Download)
		assert.Equal(t, "report_6m.xlsx", exported.Download.Filename)

		f, err := excelize.OpenReader(bytes.NewReader(exported.Download.Content))
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{
			backend.ReportTasksPerMonth, backend.ReportRevenuePerMonth,
			backend.ReportTasksPerClient, backend.ReportRevenuePerClient,
		}, f.GetSheetList())
		rows, err := f.GetRows(backend.ReportTasksPerClient)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"label", "value"}, {"Acme", "6"}, {"Globex", "2"}}, rows)
		api.AssertExpectations(t)
	})

	t.Run("error - one chart rate limited", func(t *testing.T) {
		api := new(MockBackend)
		env := newEnv(t, "<html><body></body></html>", api)
		api.On("ReportSeries", mock.Anything, backend.ReportTasksPerMonth, "1y").Return(series(months, 3, 5), nil).Once()
		api.On("ReportSeries", mock.Anything, backend.ReportRevenuePerMonth, "1y").Return(series(months, 1, 2), nil).Once()
		api.On("ReportSeries", mock.Anything, backend.ReportTasksPerClient, "1y").
			Return(nil, &backend.Failure{StatusCode: 429}).Maybe()
		api.On("ReportSeries", mock.Anything, backend.ReportRevenuePerClient, "1y").Return(series(clients, 1, 2), nil).Maybe()

		p := NewReporting(env)
		res, err := p.Load(ctx, "1y")
		require.NoError(t, err)
		assert.True(t, res.Failed)
		assert.Equal(t, "Report generation limit exceeded. Please try again later.", banner(env, notice.KindError))
		charts := res.Data.(*Charts)
		assert.NotNil(t, charts.TasksPerMonth)
		assert.Nil(t, charts.TasksPerClient)
		assert.Nil(t, charts.RevenuePerClient)

		exported, err := p.Export()
		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(exported.Download.Content))
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{backend.ReportTasksPerMonth, backend.ReportRevenuePerMonth}, f.GetSheetList())
	})

	t.Run("error - export before load", func(t *testing.T) {
		_, err := NewReporting(newEnv(t, "<html><body></body></html>", new(MockBackend))).Export()
		assert.ErrorIs(t, err, ErrNoReport)
	})
}

func TestCalendarEvents(t *testing.T) {
	ctx := context.Background()
	deadline := task.Timestamp{Time: time.Date(2025, 5, 9, 18, 30, 0, 0, time.UTC)}

	api := new(MockBackend)
	env := newEnv(t, "<html><body></body></html>", api)
	api.On("SearchTasks", mock.Anything, backend.TaskQuery{Page: 0, Size: 100}).Return(&page.Page[task.Task]{
		Content: []task.Task{{
			ID: 42, Title: "Invoice", Status: task.StatusInProgress, Deadline: &deadline, Color: "#ff0000",
			Description: "Send it", Client: &task.ClientRef{ID: 3, Name: "Acme"},
		}},
		PageNumber: 0, TotalPages: 2,
	}, nil).Once()
	api.On("SearchTasks", mock.Anything, backend.TaskQuery{Page: 1, Size: 100}).Return(&page.Page[task.Task]{
		Content:    []task.Task{{ID: 7, Title: "Logo", Status: task.StatusTodo}},
		PageNumber: 1, TotalPages: 2,
	}, nil).Once()

	res, err := NewCalendar(env).Events(ctx)
	require.NoError(t, err)
	events := res.Data.([]Event)
	require.Len(t, events, 2)

	assert.Equal(t, Event{
		ID: "42", Title: "Invoice", Start: "2025-05-09", AllDay: true,
		BackgroundColor: "#ff0000", BorderColor: "#ff0000",
		ExtendedProps: EventProps{
			Description: "Send it", ClientName: "Acme", Status: "IN_PROGRESS", StatusText: "In Progress",
			StatusClass: "status-in-progress", RawDeadline: "2025-05-09T18:30:00", DisplayDeadline: "9 May 2025",
		},
	}, events[0])

	assert.Empty(t, events[1].Start)
	assert.Equal(t, "#0d6efd", events[1].BackgroundColor)
	assert.Equal(t, "N/A", events[1].ExtendedProps.ClientName)
	assert.Equal(t, "N/A", events[1].ExtendedProps.DisplayDeadline)
	assert.Equal(t, "No description", events[1].ExtendedProps.Description)
	api.AssertExpectations(t)
}

func TestCalendarEventsFailure(t *testing.T) {
	api := new(MockBackend)
	env := newEnv(t, "<html><body></body></html>", api)
	api.On("SearchTasks", mock.Anything, mock.Anything).Return(nil, &backend.Failure{StatusCode: 500}).Once()

	res, err := NewCalendar(env).Events(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Nil(t, res.Data)
}
