package session

import (
	"sync"

	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/repository"
)

var _ repository.SelectionRepository = (*MemoryTracker)(nil)

// MemoryTracker keeps at most one pending disambiguation list per user in
// process memory. One slot per Telegram ID: Set overwrites, Get does not
// consume (the resolver clears explicitly once a choice is accepted). No TTL:
// a stale list is only ever replaced or consumed.
type MemoryTracker struct {
	mu    sync.RWMutex
	slots map[int64][]model.CityCandidate
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{slots: make(map[int64][]model.CityCandidate)}
}

func (t *MemoryTracker) Get(tgID int64) ([]model.CityCandidate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list, ok := t.slots[tgID]
	if !ok {
		return nil, false
	}
	cp := make([]model.CityCandidate, len(list))
	copy(cp, list)
	return cp, true
}

func (t *MemoryTracker) Set(tgID int64, candidates []model.CityCandidate) {
	cp := make([]model.CityCandidate, len(candidates))
	copy(cp, candidates)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[tgID] = cp
}

func (t *MemoryTracker) Clear(tgID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.slots, tgID)
}
