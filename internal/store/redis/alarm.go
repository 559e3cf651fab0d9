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

// ErrAlarmNotFound is returned when no record exists for an alarm ID.
var ErrAlarmNotFound = errors.New("alarm not found")

// Store handles Redis operations for alarms, outstanding triggers and
// the persisted holiday cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveAlarm stores an alarm, refreshing its updatedAt timestamp.
// Alarms are durable records and carry no expiry.
func (s *Store) SaveAlarm(ctx context.Context, alarm *domain.Alarm) error {
	alarm.UpdatedAt = time.Now()

	data, err := json.Marshal(alarm)
	if err != nil {
		return fmt.Errorf("failed to marshal alarm: %w", err)
	}

	key := AlarmKey(alarm.ID)

	// Store alarm data
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save alarm: %w", err)
	}

	// Add to set of all alarms
	if err := s.client.SAdd(ctx, KeyAllAlarms, alarm.ID).Err(); err != nil {
		return fmt.Errorf("failed to add alarm to set: %w", err)
	}

	return nil
}

// GetAlarm retrieves an alarm from Redis by ID
func (s *Store) GetAlarm(ctx context.Context, id string) (*domain.Alarm, error) {
	key := AlarmKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
		}
		return nil, fmt.Errorf("failed to get alarm: %w", err)
	}

	var alarm domain.Alarm
	if err := json.Unmarshal(data, &alarm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alarm: %w", err)
	}

	return &alarm, nil
}

// GetAllAlarms retrieves all alarms from Redis
func (s *Store) GetAllAlarms(ctx context.Context) ([]*domain.Alarm, error) {
	// Get all alarm IDs
	ids, err := s.client.SMembers(ctx, KeyAllAlarms).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get alarm IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Alarm{}, nil
	}

	alarms := make([]*domain.Alarm, 0, len(ids))
	for _, id := range ids {
		alarm, err := s.GetAlarm(ctx, id)
		if err != nil {
			// Skip records that couldn't be retrieved
			continue
		}
		alarms = append(alarms, alarm)
	}

	return alarms, nil
}

// DeleteAlarm removes an alarm from Redis
func (s *Store) DeleteAlarm(ctx context.Context, id string) error {
	key := AlarmKey(id)

	// Delete alarm data
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}

	// Remove from set of all alarms
	if err := s.client.SRem(ctx, KeyAllAlarms, id).Err(); err != nil {
		return fmt.Errorf("failed to remove alarm from set: %w", err)
	}

	return nil
}

// SaveAlarmsMany stores multiple alarms in one pipeline (bulk migrations).
// Each record's updatedAt is refreshed, matching the single-save path.
func (s *Store) SaveAlarmsMany(ctx context.Context, alarms []*domain.Alarm) error {
	pipe := s.client.Pipeline()
	now := time.Now()

	for _, alarm := range alarms {
		alarm.UpdatedAt = now

		data, err := json.Marshal(alarm)
		if err != nil {
			return fmt.Errorf("failed to marshal alarm %s: %w", alarm.ID, err)
		}

		key := AlarmKey(alarm.ID)
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, KeyAllAlarms, alarm.ID)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save alarms: %w", err)
	}

	return nil
}
