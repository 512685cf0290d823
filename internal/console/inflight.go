package console

import "sync"

// Guard admits at most one outstanding submission per action per
// appointment. Repeated operator input while a call is on the wire is
// dropped, not queued; the second press would only duplicate the
// mutation.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Begin claims the (action, id) slot. When ok is true the caller owns
// the slot and must call release exactly once when the submission
// settles, success or failure.
func (g *Guard) Begin(action, id string) (release func(), ok bool) {
	key := action + "|" + id

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, false
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true
}
