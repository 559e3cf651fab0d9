package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/holiday"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

type stubSource struct {
	mu     sync.Mutex
	byYear map[int][]domain.Holiday
	err    error
	calls  int
}

func (s *stubSource) FetchHolidays(_ context.Context, year int) ([]domain.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byYear[year], nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubPersistence never has a record; every load is a miss.
type stubPersistence struct{}

func (stubPersistence) LoadYear(context.Context, int) ([]domain.Holiday, time.Time, error) {
	return nil, time.Time{}, errors.New("holiday record missing")
}

func (stubPersistence) LoadLegacy(context.Context) (int, []domain.Holiday, time.Time, error) {
	return 0, nil, time.Time{}, errors.New("holiday record missing")
}

func (stubPersistence) SaveYear(context.Context, int, []domain.Holiday, time.Time) error {
	return nil
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newRefresherFixture(source *stubSource) (*HolidayRefresher, *holiday.Cache, *testClock) {
	clock := &testClock{t: time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)}
	log := logger.New("error", false)
	cache := holiday.NewCache(source, stubPersistence{}, log, clock.now)
	refresher := NewHolidayRefresher(cache, log, time.Hour, nil, clock.now)
	return refresher, cache, clock
}

func TestRefreshLoadsCurrentAndNextYear(t *testing.T) {
	source := &stubSource{byYear: map[int][]domain.Holiday{
		2026: {{Date: 20260101, Name: "New Year", IsHoliday: "Y"}},
		2027: {{Date: 20270101, Name: "New Year", IsHoliday: "Y"}},
	}}
	refresher, cache, _ := newRefresherFixture(source)
	ctx := context.Background()

	if err := refresher.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := source.callCount(); got != 2 {
		t.Fatalf("source calls = %d, want 2 (current and next year)", got)
	}
	if got := cache.CacheStatus().LoadedYears; len(got) != 2 {
		t.Fatalf("loaded years = %v, want [2026 2027]", got)
	}

	// A second pass inside the freshness window touches nothing.
	if err := refresher.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := source.callCount(); got != 2 {
		t.Fatalf("source calls after second pass = %d, want 2", got)
	}
}

func TestRefreshRefetchesAgedYears(t *testing.T) {
	source := &stubSource{byYear: map[int][]domain.Holiday{
		2026: {{Date: 20260101, Name: "New Year", IsHoliday: "Y"}},
		2027: nil,
	}}
	refresher, cache, clock := newRefresherFixture(source)
	ctx := context.Background()

	if err := refresher.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// A substitute holiday is announced after the initial load.
	source.mu.Lock()
	source.byYear[2026] = append(source.byYear[2026],
		domain.Holiday{Date: 20260302, Name: "Substitute Holiday", IsHoliday: "Y"})
	source.mu.Unlock()

	clock.advance(40 * 24 * time.Hour)

	if err := refresher.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := source.callCount(); got != 4 {
		t.Fatalf("source calls = %d, want 4 (both years refetched)", got)
	}
	if !cache.IsHoliday(ctx, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("late-announced holiday must be visible after the refresh pass")
	}
}

func TestRefreshKeepsOldDataWhenSourceDown(t *testing.T) {
	source := &stubSource{byYear: map[int][]domain.Holiday{
		2026: {{Date: 20260101, Name: "New Year", IsHoliday: "Y"}},
		2027: nil,
	}}
	refresher, cache, clock := newRefresherFixture(source)
	ctx := context.Background()

	if err := refresher.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	clock.advance(40 * 24 * time.Hour)
	source.mu.Lock()
	source.err = errors.New("connection refused")
	source.mu.Unlock()

	if err := refresher.Refresh(ctx); err == nil {
		t.Fatal("Refresh() with a dead source must report the failure")
	}
	if !cache.IsHoliday(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("stale data must keep serving while the source is down")
	}
}
