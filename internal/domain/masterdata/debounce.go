package masterdata

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid successive calls: only the last function handed
// to Do within the window actually runs. Used to avoid recomputing product
// suggestions on every keystroke-level draft edit.
type Debouncer struct {
	d time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{d: d}
}

// Do schedules fn after the debounce window, cancelling any pending call.
func (b *Debouncer) Do(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, fn)
}

// Stop cancels any pending call.
func (b *Debouncer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
