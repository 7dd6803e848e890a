package services

import (
	"sync"

	"go.uber.org/zap"
)

// Dispatcher runs best-effort side effects (notifications, alerts) off the
// request path. Failures are logged, never returned to the caller.
type Dispatcher struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Go executes fn in the background. The task name shows up in the failure log.
func (d *Dispatcher) Go(task string, fn func() error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := fn(); err != nil {
			d.logger.Warn("background task failed",
				zap.String("task", task),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until all dispatched tasks finish. Used on shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
