package usecase

import "sync"

// generations hands out freshness stamps per UI slot. A fetch begun for a
// slot is committed only while its stamp is still current; a newer fetch
// for the same slot (query change, locale switch mid-flight) supersedes it
// and the stale result is discarded instead of overwriting newer state.
type generations struct {
	mu      sync.Mutex
	current map[string]uint64
}

func newGenerations() *generations {
	return &generations{current: make(map[string]uint64)}
}

// begin starts a new generation for slot and returns its stamp.
func (g *generations) begin(slot string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[slot]++
	return g.current[slot]
}

// isCurrent reports whether stamp is still the newest for slot.
func (g *generations) isCurrent(slot string, stamp uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current[slot] == stamp
}
