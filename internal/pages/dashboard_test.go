package pages

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskBoard/internal/backend"
	"taskBoard/internal/board"
	"taskBoard/internal/dom"
	"taskBoard/internal/models/client"
	"taskBoard/internal/models/task"
	"taskBoard/internal/notice"
	"taskBoard/internal/render"
)

const dashboardPage = `<html><head>
<meta name="_csrf" content="tok"><meta name="_csrf_header" content="X-CSRF-TOKEN">
</head><body><div class="board">
<div class="task-column" id="todo-column" data-status="TODO"><div class="task-list"></div></div>
<div class="task-column" id="in-progress-column" data-status="IN_PROGRESS"><div class="task-list"></div></div>
<div class="task-column" id="completed-column" data-status="COMPLETED"><div class="task-list"></div></div>
</div></body></html>`

var (
	acme   = &task.ClientRef{ID: 3, Name: "Acme"}
	globex = &task.ClientRef{ID: 5, Name: "Globex"}
)

func newDashboard(t *testing.T, api *MockBackend) (*Dashboard, *Env) {
	t.Helper()
	env := newEnv(t, dashboardPage, api)
	d, err := NewDashboard(env)
	require.NoError(t, err)
	require.NoError(t, d.Board().Load([]task.Task{
		{ID: 42, Title: "Invoice", Status: task.StatusTodo, OrderIndex: 0, Billable: true, Client: acme},
		{ID: 7, Title: "Logo", Status: task.StatusInProgress, OrderIndex: 0, Billable: true, Client: acme},
		{ID: 9, Title: "Site", Status: task.StatusInProgress, OrderIndex: 1, Billable: true, Client: globex},
		{ID: 11, Title: "Chore", Status: task.StatusCompleted, OrderIndex: 0},
	}))
	return d, env
}

func cardOrders(env *Env, s task.Status) []string {
	var out []string
	for _, card := range dom.Elements(env.Doc.Query(board.ListSelector(s))) {
		out = append(out, dom.Attr(card, "data-id")+"@"+dom.Attr(card, "data-order"))
	}
	return out
}

func TestDashboardDrop(t *testing.T) {
	tests := []struct {
		name       string
		result     *task.Task
		err        error
		wantBanner string
		wantInProg []string
		wantTodo   []string
		reload     bool
	}{
		{
			name:       "success - card restamped from ordered ids",
			result:     &task.Task{ID: 42, Title: "Invoice", Status: task.StatusInProgress, OrderIndex: 1, Total: 250},
			wantInProg: []string{"7@0", "42@1", "9@2"},
		},
		{
			name:       "error - unverified sentinel reverts the card",
			err:        &backend.Failure{StatusCode: 403, Body: "limit.error.task.unverified"},
			wantBanner: "Unverified users are limited to 10 tasks. Please verify your email to add more tasks.",
			wantInProg: []string{"7@0", "9@1"},
			wantTodo:   []string{"42@0"},
		},
		{
			name:       "error - generic failure",
			err:        &backend.Failure{StatusCode: 500, Body: "boom"},
			wantBanner: "Failed to move task",
			wantInProg: []string{"7@0", "9@1"},
			wantTodo:   []string{"42@0"},
		},
		{
			name:       "error - redirect to login asks for reload",
			err:        &backend.Failure{StatusCode: 302, Location: "/login"},
			wantInProg: []string{"7@0", "9@1"},
			wantTodo:   []string{"42@0"},
			reload:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockBackend)
			api.On("MoveTask", mock.Anything, int64(42), task.StatusInProgress, []int64{7, 42, 9}).
				Return(tt.result, tt.err).Once()
			d, env := newDashboard(t, api)

			res, err := d.Drop(context.Background(), board.Drop{TaskID: 42, Target: task.StatusInProgress, Index: 1})
			require.NoError(t, err)

			assert.Equal(t, tt.err != nil, res.Failed)
			assert.Equal(t, tt.reload, res.Reload)
			assert.Equal(t, tt.wantBanner, banner(env, notice.KindError))
			assert.Equal(t, tt.wantInProg, cardOrders(env, task.StatusInProgress))
			assert.Equal(t, tt.wantTodo, cardOrders(env, task.StatusTodo))
			assert.Contains(t, res.Fragments, "#in-progress-column .task-list")
			assert.Contains(t, res.Fragments, "#todo-column .task-list")
			if tt.result != nil {
				assert.Contains(t, res.Fragments["#in-progress-column .task-list"], "$250.00")
			}
			api.AssertExpectations(t)
		})
	}
}

func TestNormalizeTaskForm(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		zeroEmpty bool
		want      url.Values
	}{
		{
			name: "success - not billable forces zero rates",
			form: url.Values{"title": {"A"}, "hourlyRate": {"55"}, "advancePayment": {"10"}, "deadline": {"2025-05-09"}},
			want: url.Values{"title": {"A"}, "hourlyRate": {"0.0"}, "advancePayment": {"0.0"}, "deadline": {"2025-05-09T12:00"}},
		},
		{
			name: "success - billable keeps rates",
			form: url.Values{"billable": {"on"}, "hourlyRate": {"55"}, "advancePayment": {"10"}},
			want: url.Values{"billable": {"on"}, "hourlyRate": {"55"}, "advancePayment": {"10"}},
		},
		{
			name:      "success - empty amounts default to zero",
			form:      url.Values{"billable": {"true"}, "hoursWorked": {""}, "hourlyRate": {" "}, "deadline": {""}},
			zeroEmpty: true,
			want: url.Values{"billable": {"true"}, "hoursWorked": {"0.0"}, "hourlyRate": {"0.0"},
				"advancePayment": {"0.0"}, "deadline": {""}},
		},
		{
			name: "success - full timestamp untouched",
			form: url.Values{"billable": {"on"}, "deadline": {"2025-05-09T08:30"}},
			want: url.Values{"billable": {"on"}, "deadline": {"2025-05-09T08:30"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := url.Values{}
			for k, v := range tt.form {
				orig[k] = append([]string(nil), v...)
			}
			assert.Equal(t, tt.want, normalizeTaskForm(tt.form, tt.zeroEmpty))
			assert.Equal(t, orig, tt.form)
		})
	}
}

func TestDashboardAddTask(t *testing.T) {
	api := new(MockBackend)
	d, env := newDashboard(t, api)

	sent := url.Values{"title": {"New"}, "hourlyRate": {"0.0"}, "advancePayment": {"0.0"}, "deadline": {"2025-06-01T12:00"}}
	api.On("CreateTask", mock.Anything, sent).
		Return(&task.Task{ID: 50, Title: "New", Status: task.StatusCompleted, OrderIndex: 1}, nil).Once()

	res, err := d.AddTask(context.Background(),
		url.Values{"title": {"New"}, "hourlyRate": {"80"}, "advancePayment": {"20"}, "deadline": {"2025-06-01"}})
	require.NoError(t, err)
	assert.False(t, res.Failed)
	assert.Equal(t, []string{"11@0", "50@1"}, cardOrders(env, task.StatusCompleted))
	assert.Contains(t, res.Fragments, "#completed-column .task-list")
	api.AssertExpectations(t)

	api.On("CreateTask", mock.Anything, mock.Anything).
		Return(nil, &backend.Failure{StatusCode: 429, Body: "limit.error.rate.task"}).Once()
	res, err = d.AddTask(context.Background(), url.Values{"title": {"Again"}})
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Equal(t, "You have reached the task creation limit. Please try again later.", banner(env, notice.KindError))
}

func TestDashboardEdit(t *testing.T) {
	api := new(MockBackend)
	d, env := newDashboard(t, api)

	deadline, err := task.ParseTimestamp("2025-05-09T14:30:00")
	require.NoError(t, err)
	api.On("GetTask", mock.Anything, int64(42)).
		Return(&task.Task{ID: 42, Title: "Invoice", Status: task.StatusTodo, Deadline: &deadline, Client: acme}, nil).Once()

	res, err := d.EditForm(context.Background(), 42)
	require.NoError(t, err)
	form := res.Data.(TaskForm)
	assert.Equal(t, "2025-05-09", form.Deadline)
	assert.Equal(t, "3", form.ClientID)
	assert.True(t, form.RatesDisabled)

	api.On("UpdateTask", mock.Anything, int64(42), mock.Anything).
		Return(&task.Task{ID: 42, Title: "Invoice v2", Status: task.StatusCompleted, Client: acme}, nil).Once()
	res, err = d.UpdateTask(context.Background(), 42, url.Values{"title": {"Invoice v2"}, "status": {"COMPLETED"}})
	require.NoError(t, err)

	assert.Empty(t, cardOrders(env, task.StatusTodo))
	assert.Contains(t, cardOrders(env, task.StatusCompleted), "42@0")
	assert.Contains(t, res.Fragments["#completed-column .task-list"], "Invoice v2")
	assert.Contains(t, res.Fragments, "#todo-column .task-list")
	api.AssertExpectations(t)
}

func TestDashboardRemoveAndColor(t *testing.T) {
	api := new(MockBackend)
	d, env := newDashboard(t, api)
	ctx := context.Background()

	api.On("DeleteTask", mock.Anything, int64(9)).Return(nil).Once()
	api.On("HideTask", mock.Anything, int64(7)).Return(nil).Once()
	api.On("HideTask", mock.Anything, int64(11)).Return(&backend.Failure{StatusCode: 500}).Once()
	api.On("ChangeColor", mock.Anything, int64(42), "#CCFFCC").Return(true, nil).Once()
	api.On("ChangeColor", mock.Anything, int64(42), "#FFCCCC").Return(false, nil).Once()

	_, err := d.DeleteTask(ctx, 9)
	require.NoError(t, err)
	_, err = d.HideTask(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, cardOrders(env, task.StatusInProgress))

	res, err := d.HideTask(ctx, 11)
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Equal(t, "Failed to hide task", banner(env, notice.KindError))
	assert.Equal(t, []string{"11@0"}, cardOrders(env, task.StatusCompleted))

	_, err = d.ChangeColor(ctx, 42, "#CCFFCC")
	require.NoError(t, err)
	card := render.FindRow(env.Doc.Query(board.ListSelector(task.StatusTodo)), "42")
	assert.Equal(t, "background-color: #CCFFCC", dom.Attr(card, "style"))

	res, err = d.ChangeColor(ctx, 42, "#FFCCCC")
	require.NoError(t, err)
	assert.Empty(t, res.Fragments)
	assert.Equal(t, "background-color: #CCFFCC", dom.Attr(card, "style"))
	api.AssertExpectations(t)
}

func TestInvoices(t *testing.T) {
	ctx := context.Background()

	t.Run("error - nothing selected", func(t *testing.T) {
		d, env := newDashboard(t, new(MockBackend))
		res, err := d.DownloadInvoice(ctx, nil)
		require.NoError(t, err)
		assert.True(t, res.Failed)
		assert.Equal(t, "Please select at least one billable task.", banner(env, notice.KindError))
	})

	t.Run("success - single client downloads directly", func(t *testing.T) {
		api := new(MockBackend)
		d, _ := newDashboard(t, api)
		inv := &backend.Invoice{Filename: "invoice_Acme.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}
		api.On("DownloadInvoice", mock.Anything, "Acme", []int64{42, 7}).Return(inv, nil).Once()

		res, err := d.DownloadInvoice(ctx, []int64{42, 7, 11})
		require.NoError(t, err)
		assert.Same(t, inv, res.Download)
		api.AssertExpectations(t)
	})

	t.Run("success - several clients offer a choice", func(t *testing.T) {
		d, _ := newDashboard(t, new(MockBackend))
		res, err := d.DownloadInvoice(ctx, []int64{9, 42, 7})
		require.NoError(t, err)
		choice := res.Data.(InvoiceChoice)
		require.Len(t, choice.Clients, 2)
		assert.Equal(t, "Globex", choice.Clients[0].Name)
		assert.Equal(t, []int64{9}, choice.Clients[0].TaskIDs)
		assert.Equal(t, []int64{42, 7}, choice.Clients[1].TaskIDs)
	})

	t.Run("success - single client sends directly", func(t *testing.T) {
		api := new(MockBackend)
		d, env := newDashboard(t, api)
		api.On("SendInvoice", mock.Anything, int64(5), []int64{9}).Return(nil).Once()

		_, err := d.SendInvoice(ctx, []int64{9})
		require.NoError(t, err)
		assert.Equal(t, "Invoice sent successfully.", banner(env, notice.KindSuccess))
		api.AssertExpectations(t)
	})

	t.Run("success - several clients looked up in parallel", func(t *testing.T) {
		api := new(MockBackend)
		d, _ := newDashboard(t, api)
		api.On("GetClient", mock.Anything, int64(3)).Return(&client.Client{ID: 3, Name: "Acme", Email: "a@acme.io"}, nil).Once()
		api.On("GetClient", mock.Anything, int64(5)).Return(&client.Client{ID: 5, Name: "Globex", Email: " "}, nil).Once()

		res, err := d.SendInvoice(ctx, []int64{42, 9})
		require.NoError(t, err)
		choice := res.Data.(InvoiceChoice)
		require.Len(t, choice.Clients, 2)
		assert.Equal(t, "a@acme.io", choice.Clients[0].Email)
		assert.True(t, choice.Clients[0].CanSend)
		assert.False(t, choice.Clients[1].CanSend)
		api.AssertExpectations(t)
	})

	t.Run("success - failed lookup drops the client", func(t *testing.T) {
		api := new(MockBackend)
		d, _ := newDashboard(t, api)
		api.On("GetClient", mock.Anything, int64(3)).Return(&client.Client{ID: 3, Name: "Acme", Email: "a@acme.io"}, nil).Once()
		api.On("GetClient", mock.Anything, int64(5)).Return(nil, errors.New("down")).Once()

		res, err := d.SendInvoice(ctx, []int64{42, 9})
		require.NoError(t, err)
		choice := res.Data.(InvoiceChoice)
		require.Len(t, choice.Clients, 1)
		assert.Equal(t, int64(3), choice.Clients[0].ClientID)
	})

	t.Run("error - send mapping", func(t *testing.T) {
		for status, want := range map[int]string{
			429: "Invoice sending limit exceeded. Please try again later.",
			400: "Invalid invoice request.",
			500: "Failed to process invoice.",
		} {
			api := new(MockBackend)
			d, env := newDashboard(t, api)
			api.On("SendInvoice", mock.Anything, int64(3), []int64{42}).
				Return(&backend.Failure{StatusCode: status, Body: "x"}).Once()
			res, err := d.SendClientInvoice(ctx, 3, []int64{42})
			require.NoError(t, err)
			assert.True(t, res.Failed)
			assert.Equal(t, want, banner(env, notice.KindError), status)
		}
	})
}
