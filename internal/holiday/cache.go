package holiday

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

const (
	// MultiYearTTL is the freshness window of a persisted multi-year entry.
	MultiYearTTL = 30 * 24 * time.Hour

	// LegacyTTL is the shorter freshness window of the legacy
	// single-year record, consulted only as a fallback.
	LegacyTTL = 7 * 24 * time.Hour
)

// Source fetches the holiday list for a calendar year. It is treated as
// unreliable and possibly slow; failures are recovered locally.
type Source interface {
	FetchHolidays(ctx context.Context, year int) ([]domain.Holiday, error)
}

// Persistence is the durable tier behind the in-memory cache.
// A missing or corrupt record is reported as an error and handled as a
// plain miss by the cache.
type Persistence interface {
	LoadYear(ctx context.Context, year int) ([]domain.Holiday, time.Time, error)
	LoadLegacy(ctx context.Context) (int, []domain.Holiday, time.Time, error)
	SaveYear(ctx context.Context, year int, holidays []domain.Holiday, updated time.Time) error
}

// Status is a read-only diagnostic snapshot of the cache.
type Status struct {
	LoadedYears   []int `json:"loadedYears"`
	TotalHolidays int   `json:"totalHolidays"`
	Initialized   bool  `json:"initialized"`
}

// Cache answers holiday lookups in O(1) after the covering year is
// loaded. Years load lazily from the persisted tier when fresh, from
// the data source otherwise. A year is either fully loaded or not
// loaded at all: a failed load leaves no trace, so every later lookup
// retries instead of reading a poisoned entry.
type Cache struct {
	source Source
	store  Persistence
	logger logger.Logger
	now    func() time.Time

	mu          sync.RWMutex
	dates       map[string]domain.Holiday // YYYYMMDD -> Holiday
	loadedYears map[int]bool
	loadedAt    map[int]time.Time     // when each year entered memory
	inflight    map[int]chan struct{} // collapses concurrent loads per year
	initialized bool
}

// NewCache creates a holiday cache. A nil now defaults to time.Now.
func NewCache(source Source, store Persistence, log logger.Logger, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		source:      source,
		store:       store,
		logger:      log,
		now:         now,
		dates:       make(map[string]domain.Holiday),
		loadedYears: make(map[int]bool),
		loadedAt:    make(map[int]time.Time),
		inflight:    make(map[int]chan struct{}),
	}
}

// Initialize eagerly loads the current and next calendar year.
// It is idempotent once both loads have succeeded; a failed initialize
// may be retried and every lookup still lazy-loads on its own.
func (c *Cache) Initialize(ctx context.Context) error {
	c.mu.RLock()
	done := c.initialized
	c.mu.RUnlock()
	if done {
		return nil
	}

	year := c.now().Year()
	if err := c.EnsureYears(ctx, year, year+1); err != nil {
		return err
	}

	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()

	c.logger.Info("holiday cache initialized",
		logger.Int("current_year", year))

	return nil
}

// EnsureYears loads every listed year that is not loaded yet.
func (c *Cache) EnsureYears(ctx context.Context, years ...int) error {
	var errs []string
	for _, year := range years {
		if err := c.ensureYear(ctx, year); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to load holiday years: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsHoliday reports whether date is a public holiday. When the covering
// year cannot be loaded the answer degrades to false for this call; the
// year stays unloaded so the next call retries.
func (c *Cache) IsHoliday(ctx context.Context, date time.Time) bool {
	if err := c.ensureYear(ctx, date.Year()); err != nil {
		c.logger.Warn("holiday lookup degraded to non-holiday",
			logger.Int("year", date.Year()),
			logger.Error(err))
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.dates[domain.DateKey(date)]
	return ok
}

// HolidayName returns the holiday name for date, if any.
func (c *Cache) HolidayName(ctx context.Context, date time.Time) (string, bool) {
	if err := c.ensureYear(ctx, date.Year()); err != nil {
		c.logger.Warn("holiday name lookup degraded",
			logger.Int("year", date.Year()),
			logger.Error(err))
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	holiday, ok := c.dates[domain.DateKey(date)]
	if !ok {
		return "", false
	}
	return holiday.Name, true
}

// HolidaysForYear returns the year's holidays sorted by date ascending.
// An unloadable year yields an empty list.
func (c *Cache) HolidaysForYear(ctx context.Context, year int) []domain.Holiday {
	if err := c.ensureYear(ctx, year); err != nil {
		c.logger.Warn("holiday year listing degraded to empty",
			logger.Int("year", year),
			logger.Error(err))
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	holidays := make([]domain.Holiday, 0, 16)
	for _, holiday := range c.dates {
		if holiday.Year() == year {
			holidays = append(holidays, holiday)
		}
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date < holidays[j].Date
	})

	return holidays
}

// RefreshYear discards the year's cached entries and reloads straight
// from the data source, bypassing persisted-store freshness.
func (c *Cache) RefreshYear(ctx context.Context, year int) error {
	c.mu.Lock()
	c.evictYearLocked(year)
	c.mu.Unlock()

	holidays, err := c.fetchAndPersist(ctx, year)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.storeYearLocked(year, holidays, c.now())
	c.mu.Unlock()

	c.logger.Info("holiday year refreshed",
		logger.Int("year", year),
		logger.Int("holidays", len(holidays)))

	return nil
}

// RefreshStale refetches every loaded year whose in-memory copy is
// older than MultiYearTTL. Unlike RefreshYear, the old entries keep
// serving until the replacement fetch succeeds, so a provider outage
// costs freshness rather than coverage. Run from the periodic refresh
// pass; plain lookups never pay for a refetch.
func (c *Cache) RefreshStale(ctx context.Context) error {
	now := c.now()

	c.mu.RLock()
	stale := make([]int, 0, len(c.loadedYears))
	for year := range c.loadedYears {
		if now.Sub(c.loadedAt[year]) >= MultiYearTTL {
			stale = append(stale, year)
		}
	}
	c.mu.RUnlock()
	sort.Ints(stale)

	var errs []string
	for _, year := range stale {
		holidays, err := c.fetchAndPersist(ctx, year)
		if err != nil {
			c.logger.Warn("stale holiday year kept, refetch failed",
				logger.Int("year", year),
				logger.Error(err))
			errs = append(errs, err.Error())
			continue
		}

		c.mu.Lock()
		c.evictYearLocked(year)
		c.storeYearLocked(year, holidays, c.now())
		c.mu.Unlock()

		c.logger.Info("stale holiday year refreshed",
			logger.Int("year", year),
			logger.Int("holidays", len(holidays)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to refresh stale holiday years: %s", strings.Join(errs, "; "))
	}
	return nil
}

// CacheStatus returns a diagnostic snapshot. Read-only, no side effects.
func (c *Cache) CacheStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	years := make([]int, 0, len(c.loadedYears))
	for year := range c.loadedYears {
		years = append(years, year)
	}
	sort.Ints(years)

	return Status{
		LoadedYears:   years,
		TotalHolidays: len(c.dates),
		Initialized:   c.initialized,
	}
}

// ensureYear makes the year loaded, collapsing concurrent loads of the
// same year into one fetch. Waiters return nil even when the load they
// waited on failed: the year is simply still unloaded and their own
// lookup degrades, exactly as if the failure had been theirs.
func (c *Cache) ensureYear(ctx context.Context, year int) error {
	c.mu.RLock()
	loaded := c.loadedYears[year]
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	if c.loadedYears[year] {
		c.mu.Unlock()
		return nil
	}
	if pending, ok := c.inflight[year]; ok {
		c.mu.Unlock()
		select {
		case <-pending:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}
	pending := make(chan struct{})
	c.inflight[year] = pending
	c.mu.Unlock()

	holidays, asOf, err := c.loadYear(ctx, year)

	c.mu.Lock()
	if err == nil {
		c.storeYearLocked(year, holidays, asOf)
	}
	delete(c.inflight, year)
	close(pending)
	c.mu.Unlock()

	return err
}

// loadYear resolves a year through the tiers: fresh multi-year entry,
// then fresh legacy record, then the data source. The returned time is
// when the data was originally fetched, so a year hydrated from an
// aging persisted record goes stale on the record's clock, not on the
// hydration's.
func (c *Cache) loadYear(ctx context.Context, year int) ([]domain.Holiday, time.Time, error) {
	now := c.now()

	holidays, updated, err := c.store.LoadYear(ctx, year)
	if err == nil && now.Sub(updated) < MultiYearTTL {
		c.logger.Debug("holiday year hydrated from persisted store",
			logger.Int("year", year),
			logger.Int("holidays", len(holidays)))
		return holidays, updated, nil
	}
	if err != nil {
		c.logger.Debug("multi-year holiday record unusable",
			logger.Int("year", year),
			logger.Error(err))
	}

	legacyYear, legacyHolidays, legacyUpdated, err := c.store.LoadLegacy(ctx)
	if err == nil && legacyYear == year && now.Sub(legacyUpdated) < LegacyTTL {
		c.logger.Debug("holiday year hydrated from legacy record",
			logger.Int("year", year),
			logger.Int("holidays", len(legacyHolidays)))
		return legacyHolidays, legacyUpdated, nil
	}

	holidays, err = c.fetchAndPersist(ctx, year)
	return holidays, now, err
}

// fetchAndPersist pulls a year from the data source, keeps only actual
// holidays and persists them best effort.
func (c *Cache) fetchAndPersist(ctx context.Context, year int) ([]domain.Holiday, error) {
	entries, err := c.source.FetchHolidays(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}

	holidays := make([]domain.Holiday, 0, len(entries))
	for _, entry := range entries {
		if entry.Actual() {
			holidays = append(holidays, entry)
		}
	}

	if err := c.store.SaveYear(ctx, year, holidays, c.now()); err != nil {
		// Memory is the primary tier; a failed persist only costs a
		// re-fetch after the next restart.
		c.logger.Warn("failed to persist holiday year",
			logger.Int("year", year),
			logger.Error(err))
	}

	c.logger.Info("holidays loaded from data source",
		logger.Int("year", year),
		logger.Int("holidays", len(holidays)))

	return holidays, nil
}

// storeYearLocked writes a fully loaded year into the memory maps.
// asOf is when the data was fetched from the source. Callers hold c.mu.
func (c *Cache) storeYearLocked(year int, holidays []domain.Holiday, asOf time.Time) {
	for _, holiday := range holidays {
		c.dates[holiday.Key()] = holiday
	}
	c.loadedYears[year] = true
	c.loadedAt[year] = asOf
}

// evictYearLocked drops a year's entries and loaded marker.
// Callers hold c.mu.
func (c *Cache) evictYearLocked(year int) {
	for key, holiday := range c.dates {
		if holiday.Year() == year {
			delete(c.dates, key)
		}
	}
	delete(c.loadedYears, year)
	delete(c.loadedAt, year)
}
