package janitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/usecase"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
)

// Janitor closes sessions whose browser went away, releasing their models.
type Janitor struct {
	sessions usecase.SessionUseCase
	logger   logger.Interface

	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(sessions usecase.SessionUseCase, l logger.Interface, interval time.Duration) *Janitor {
	return &Janitor{
		sessions: sessions,
		logger:   l,
		interval: interval,
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	if j.interval <= 0 {
		return fmt.Errorf("Janitor - Start - invalid interval %s", j.interval)
	}
	if !j.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Janitor - Start - worker already started")
	}

	j.ctx, j.cancel = context.WithCancel(ctx)

	j.worker(j.interval, func() {
		n := j.sessions.ExpireIdle()
		if n > 0 {
			j.logger.Debug("Janitor - worker - expired %d sessions, %d left", n, j.sessions.Len())
		}
	})

	return nil
}

func (j *Janitor) worker(interval time.Duration, task func()) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-j.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

// Shutdown stops the worker and closes every remaining session.
func (j *Janitor) Shutdown(ctx context.Context) error {
	if !j.started.Load() {
		return nil
	}

	if j.cancel != nil {
		j.cancel()
	}

	done := make(chan struct{})

	go func() {
		j.wg.Wait()
		j.sessions.CloseAll()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("Janitor - Shutdown: %w", ctx.Err())
	}
}
