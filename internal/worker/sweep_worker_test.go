package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskBoard/internal/session"
)

type MockSweeper struct {
	mock.Mock
}

var _ Sweeper = (*MockSweeper)(nil)

func (m *MockSweeper) Sweep(now time.Time, idle time.Duration, limit int) session.SweepResult {
	args := m.Called(now, idle, limit)
	return args.Get(0).(session.SweepResult)
}

func TestNewSweepWorkerDefaults(t *testing.T) {
	w := NewSweepWorker(new(MockSweeper), nil, nil, nil)
	assert.Equal(t, time.Second, w.interval)
	assert.Equal(t, 30*time.Minute, w.idle)
	assert.Equal(t, 100, w.batchSize)

	interval, idle, batch := 10*time.Millisecond, time.Minute, 5
	w = NewSweepWorker(new(MockSweeper), &interval, &idle, &batch)
	assert.Equal(t, interval, w.interval)
	assert.Equal(t, idle, w.idle)
	assert.Equal(t, 5, w.batchSize)
}

func TestSweepWorkerCheck(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	idle, batch := time.Minute, 10
	store := new(MockSweeper)
	store.On("Sweep", now, idle, batch).Return(session.SweepResult{Checked: 3, Expired: 1}).Once()

	w := NewSweepWorker(store, nil, &idle, &batch)
	w.now = func() time.Time { return now }

	res := w.Check(context.Background())
	assert.Equal(t, 1, res.Expired)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Zero(t, w.Check(ctx))
	store.AssertExpectations(t)
}

func TestSweepWorkerStartStops(t *testing.T) {
	interval := time.Millisecond
	called := make(chan struct{}, 1)
	store := new(MockSweeper)
	store.On("Sweep", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case called <- struct{}{}:
			default:
			}
		}).
		Return(session.SweepResult{})

	w := NewSweepWorker(store, &interval, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("очистка не запускалась")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("воркер не остановился")
	}
}
