package console

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

// Debouncer runs a function only after its input has been quiet for the
// window. A newer call supersedes any pending one, so at most the
// latest function fires. Used for the interactive search box so the
// backend sees one query per pause, not one per keystroke.
type Debouncer struct {
	mu     sync.Mutex
	fn     func()
	call   func()
	cancel func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	d := &Debouncer{}
	d.call, d.cancel = lo.NewDebounce(delay, func() {
		d.mu.Lock()
		fn := d.fn
		d.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
	return d
}

func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	d.fn = fn
	d.mu.Unlock()
	d.call()
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.cancel()
}
