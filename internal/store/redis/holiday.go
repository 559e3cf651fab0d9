package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snoozelab/holiday-alarm/internal/domain"
)

const (
	// HolidayRecordTTL bounds how long a persisted year entry survives
	// in Redis at all. Freshness below this bound is decided by the
	// cache from the record's lastUpdated timestamp, not by Redis.
	HolidayRecordTTL = 120 * 24 * time.Hour
)

// ErrHolidayRecordMissing is returned when no persisted record exists.
var ErrHolidayRecordMissing = errors.New("holiday record missing")

// yearRecord is one entry of the multi-year persisted holiday store.
type yearRecord struct {
	Holidays    []domain.Holiday `json:"holidays"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// legacyRecord is the old single-year cache format, kept readable for
// backward compatibility during migration. It is written alongside the
// multi-year entry so older deployments keep working, but it is only
// ever read as a fallback.
type legacyRecord struct {
	Year        int              `json:"year"`
	Holidays    []domain.Holiday `json:"holidays"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// LoadYear reads the multi-year store entry for a year.
// A missing or unreadable record surfaces as an error; the cache treats
// both as a plain miss.
func (s *Store) LoadYear(ctx context.Context, year int) ([]domain.Holiday, time.Time, error) {
	data, err := s.client.Get(ctx, HolidayYearKey(year)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, time.Time{}, ErrHolidayRecordMissing
		}
		return nil, time.Time{}, fmt.Errorf("failed to load holiday year: %w", err)
	}

	var record yearRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal holiday year: %w", err)
	}

	return record.Holidays, record.LastUpdated, nil
}

// LoadLegacy reads the legacy single-year record.
func (s *Store) LoadLegacy(ctx context.Context) (int, []domain.Holiday, time.Time, error) {
	data, err := s.client.Get(ctx, KeyHolidayLegacy).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil, time.Time{}, ErrHolidayRecordMissing
		}
		return 0, nil, time.Time{}, fmt.Errorf("failed to load legacy holiday record: %w", err)
	}

	var record legacyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to unmarshal legacy holiday record: %w", err)
	}

	return record.Year, record.Holidays, record.LastUpdated, nil
}

// SaveYear writes both the multi-year entry and the legacy single-year
// record for a freshly fetched year.
func (s *Store) SaveYear(ctx context.Context, year int, holidays []domain.Holiday, updated time.Time) error {
	yearData, err := json.Marshal(yearRecord{Holidays: holidays, LastUpdated: updated})
	if err != nil {
		return fmt.Errorf("failed to marshal holiday year: %w", err)
	}

	legacyData, err := json.Marshal(legacyRecord{Year: year, Holidays: holidays, LastUpdated: updated})
	if err != nil {
		return fmt.Errorf("failed to marshal legacy holiday record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, HolidayYearKey(year), yearData, HolidayRecordTTL)
	pipe.Set(ctx, KeyHolidayLegacy, legacyData, HolidayRecordTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save holiday year: %w", err)
	}

	return nil
}
