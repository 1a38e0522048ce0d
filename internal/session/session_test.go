package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskBoard/internal/notice"
	"taskBoard/internal/pages"
)

const (
	tokenHead = `<head><meta name="_csrf" content="tok"><meta name="_csrf_header" content="X-CSRF-TOKEN"></head>`

	dashboardHTML = `<html>` + tokenHead + `<body>
<div class="task-column" id="todo-column"><div class="task-list"></div></div>
<div class="task-column" id="in-progress-column"><div class="task-list"></div></div>
<div class="task-column" id="completed-column"><div class="task-list"></div></div>
</body></html>`

	tasksHTML    = `<html>` + tokenHead + `<body><table id="tasksTable"><tbody></tbody></table><ul class="pagination"></ul></body></html>`
	registerHTML = `<html><body><input id="username"><div id="passwordStrength"></div><small id="strengthText"></small></body></html>`
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newManager(t *testing.T) (*Manager, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	m, err := NewManager(Options{
		BackendURL:     "http://backend.test",
		Timeout:        time.Second,
		Currency:       "USD",
		BannerLifetime: notice.DefaultLifetime,
		Now:            c.Now,
	}, NewStore())
	require.NoError(t, err)
	return m, c
}

func TestManagerOpen(t *testing.T) {
	tests := []struct {
		name     string
		req      OpenRequest
		checkErr func(t *testing.T, err error)
		check    func(t *testing.T, s *Session)
	}{
		{
			name: "success - dashboard",
			req:  OpenRequest{Kind: KindDashboard, HTML: dashboardHTML},
			check: func(t *testing.T, s *Session) {
				_, ok := s.Page.(*pages.Dashboard)
				assert.True(t, ok)
			},
		},
		{
			name: "success - tasks",
			req:  OpenRequest{Kind: KindTasks, HTML: tasksHTML, Currency: "EUR"},
			check: func(t *testing.T, s *Session) {
				_, ok := s.Page.(*pages.Tasks)
				assert.True(t, ok)
			},
		},
		{
			name: "success - register without token",
			req:  OpenRequest{Kind: KindRegister, HTML: registerHTML},
			check: func(t *testing.T, s *Session) {
				_, ok := s.Page.(*pages.Register)
				assert.True(t, ok)
			},
		},
		{
			name: "error - unknown kind",
			req:  OpenRequest{Kind: "settings", HTML: tasksHTML},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownKind)
			},
		},
		{
			name: "error - missing token",
			req:  OpenRequest{Kind: KindTasks, HTML: registerHTML},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoToken)
			},
		},
		{
			name: "error - dashboard without columns",
			req:  OpenRequest{Kind: KindDashboard, HTML: tasksHTML},
			checkErr: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t)

			s, err := m.Open(context.Background(), tt.req)
			if tt.checkErr != nil {
				tt.checkErr(t, err)
				assert.Zero(t, m.Store().Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Kind, s.Kind)
			assert.NotEqual(t, uuid.Nil, s.ID)

			got, err := m.Get(s.ID)
			require.NoError(t, err)
			assert.Same(t, s, got)
			tt.check(t, s)
		})
	}
}

func TestManagerClose(t *testing.T) {
	m, _ := newManager(t)
	s, err := m.Open(context.Background(), OpenRequest{Kind: KindTasks, HTML: tasksHTML})
	require.NoError(t, err)

	require.NoError(t, m.Close(s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Close(s.ID), ErrNotFound)
}

func TestStoreSweep(t *testing.T) {
	m, c := newManager(t)
	ctx := context.Background()

	stale, err := m.Open(ctx, OpenRequest{Kind: KindTasks, HTML: tasksHTML})
	require.NoError(t, err)
	c.Advance(20 * time.Minute)
	fresh, err := m.Open(ctx, OpenRequest{Kind: KindTasks, HTML: tasksHTML})
	require.NoError(t, err)
	fresh.Env.Banners.Error("Failed to move task", c.Now())

	c.Advance(15 * time.Minute)
	res := m.Store().Sweep(c.Now(), 30*time.Minute, 0)
	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, 1, res.Expired)
	assert.Equal(t, 1, res.Banners)

	_, err = m.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
	assert.Empty(t, fresh.Banners(c.Now()))
}

func TestStoreSweepLimit(t *testing.T) {
	m, c := newManager(t)
	for i := 0; i < 3; i++ {
		_, err := m.Open(context.Background(), OpenRequest{Kind: KindRegister, HTML: registerHTML})
		require.NoError(t, err)
	}
	c.Advance(time.Hour)

	res := m.Store().Sweep(c.Now(), time.Minute, 2)
	assert.Equal(t, 2, res.Expired)
	assert.Equal(t, 1, m.Store().Len())

	res = m.Store().Sweep(c.Now(), time.Minute, 2)
	assert.Equal(t, 1, res.Expired)
	assert.Zero(t, m.Store().Len())
}
