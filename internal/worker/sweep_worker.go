package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskBoard/internal/logger"
	"taskBoard/internal/session"
)

// Sweeper - хранилище сессий, которое умеет закрывать простаивающие.
type Sweeper interface {
	Sweep(now time.Time, idle time.Duration, limit int) session.SweepResult
}

type SweepWorker struct {
	store     Sweeper
	interval  time.Duration
	idle      time.Duration
	batchSize int
	now       func() time.Time
}

func NewSweepWorker(store Sweeper, interval, idle *time.Duration, batchSize *int) *SweepWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = time.Second
	} else {
		intervalToSet = *interval
	}

	var idleToSet time.Duration
	if idle == nil {
		idleToSet = 30 * time.Minute
	} else {
		idleToSet = *idle
	}

	var batchToSet int
	if batchSize == nil {
		batchToSet = 100
	} else {
		batchToSet = *batchSize
	}
	return &SweepWorker{
		store:     store,
		interval:  intervalToSet,
		idle:      idleToSet,
		batchSize: batchToSet,
		now:       time.Now,
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Очистка сессий останавливается")
			return
		}
	}
}

// Check - один проход: баннеры истекают, простаивающие сессии закрываются.
func (w *SweepWorker) Check(ctx context.Context) session.SweepResult {
	if ctx.Err() != nil {
		return session.SweepResult{}
	}
	res := w.store.Sweep(w.now(), w.idle, w.batchSize)
	if res.Expired > 0 {
		logger.Info(
			"Worker: Завершение очистки сессий",
			zap.Duration("ms", res.Duration),
			zap.Int("checked", res.Checked),
			zap.Int("expired", res.Expired),
			zap.Int("banners", res.Banners),
		)
	}
	return res
}
