package dispatch

import "sync"

// pendingSet tracks which (user, product) pairs have an action in flight.
// Pending is scoped to a single item so the rest of the page stays
// interactive, and at most one cycle runs per item at a time.
type pendingSet struct {
	mu    sync.Mutex
	byKey map[pendingKey]struct{}
}

type pendingKey struct {
	userID    string
	productID string
}

func newPendingSet() *pendingSet {
	return &pendingSet{byKey: make(map[pendingKey]struct{})}
}

// enter marks the pair pending, reporting false when it already was.
func (p *pendingSet) enter(userID, productID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := pendingKey{userID, productID}

	if _, exists := p.byKey[key]; exists {
		return false
	}

	p.byKey[key] = struct{}{}

	return true
}

func (p *pendingSet) exit(userID, productID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.byKey, pendingKey{userID, productID})
}

func (p *pendingSet) has(userID, productID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, exists := p.byKey[pendingKey{userID, productID}]

	return exists
}
