package utils

import "sync"

// LocationTracker remembers the last navigation URL seen by a rerun source
type LocationTracker struct {
	mu   sync.Mutex
	last string
}

// NewLocationTracker creates a tracker seeded with the initial URL
func NewLocationTracker(initial string) *LocationTracker {
	return &LocationTracker{last: initial}
}

// Observe records href and reports whether it differs from the previous value.
// Empty hrefs are ignored.
func (t *LocationTracker) Observe(href string) bool {
	if href == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if href == t.last {
		return false
	}
	t.last = href
	return true
}

// Last returns the last recorded URL
func (t *LocationTracker) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
