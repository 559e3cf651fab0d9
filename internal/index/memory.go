package index

import (
	"sort"
	"sync"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
)

// MemoryIndex provides in-memory storage and lookup for alarms.
// It is the primary read path; Redis remains the durable copy and is
// synced into the index on startup.
type MemoryIndex struct {
	mu       sync.RWMutex
	alarms   map[string]*domain.Alarm // ID -> Alarm
	lastSync time.Time                // Timestamp of last bulk replace
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		alarms: make(map[string]*domain.Alarm),
	}
}

// UpdateAlarms replaces all alarms in the index
func (idx *MemoryIndex) UpdateAlarms(alarms []*domain.Alarm) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.alarms = make(map[string]*domain.Alarm, len(alarms))
	for _, alarm := range alarms {
		idx.alarms[alarm.ID] = alarm
	}
	idx.lastSync = time.Now()
}

// GetAlarm retrieves an alarm by ID
func (idx *MemoryIndex) GetAlarm(id string) (*domain.Alarm, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	alarm, ok := idx.alarms[id]
	return alarm, ok
}

// AllAlarms returns all alarms in creation order (ties broken by id).
// This ordering is what makes identical-instant resolution ties
// deterministic across the whole process.
func (idx *MemoryIndex) AllAlarms() []*domain.Alarm {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	alarms := make([]*domain.Alarm, 0, len(idx.alarms))
	for _, alarm := range idx.alarms {
		alarms = append(alarms, alarm)
	}

	sort.Slice(alarms, func(i, j int) bool {
		if !alarms[i].CreatedAt.Equal(alarms[j].CreatedAt) {
			return alarms[i].CreatedAt.Before(alarms[j].CreatedAt)
		}
		return alarms[i].ID < alarms[j].ID
	})

	return alarms
}

// AddAlarm adds or updates a single alarm
func (idx *MemoryIndex) AddAlarm(alarm *domain.Alarm) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.alarms[alarm.ID] = alarm
}

// DeleteAlarm removes an alarm from the index
func (idx *MemoryIndex) DeleteAlarm(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.alarms, id)
}

// Count returns the number of alarms in the index
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.alarms)
}

// GetLastSync returns the timestamp of the last bulk replace
func (idx *MemoryIndex) GetLastSync() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSync
}
