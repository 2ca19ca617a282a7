package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SaveFunc performs the actual submission for one form.
type SaveFunc func(ctx context.Context, formID string)

// AutoSaver coalesces rapid form edits into at most one submission per
// quiet period. Each Schedule resets the form's timer, so the save only
// fires once edits have stopped for the configured delay. Cancel drops a
// pending save outright; Stop drops all of them on shutdown.
type AutoSaver struct {
	delay time.Duration
	save  SaveFunc
	log   *zap.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewAutoSaver(delay time.Duration, save SaveFunc, log *zap.Logger) *AutoSaver {
	return &AutoSaver{
		delay:  delay,
		save:   save,
		log:    log,
		timers: make(map[string]*time.Timer),
	}
}

func (a *AutoSaver) Schedule(formID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	if t, ok := a.timers[formID]; ok {
		t.Stop()
	}

	a.timers[formID] = time.AfterFunc(a.delay, func() {
		a.fire(formID)
	})
}

func (a *AutoSaver) Cancel(formID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[formID]; ok {
		t.Stop()
		delete(a.timers, formID)
	}
}

// Stop cancels every pending save. Scheduled after Stop is a no-op, so a
// shutting-down server cannot leak submissions.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}

// Pending reports how many forms currently have a save scheduled.
func (a *AutoSaver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.timers)
}

func (a *AutoSaver) fire(formID string) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	delete(a.timers, formID)
	a.mu.Unlock()

	a.log.Debug("auto-save firing", zap.String("form_id", formID))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.save(ctx, formID)
}
