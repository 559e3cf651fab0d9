package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/snoozelab/holiday-alarm/internal/domain"
)

// SaveTrigger stores the outstanding trigger for an alarm, replacing
// any previous one under the same id.
func (s *Store) SaveTrigger(ctx context.Context, trigger *domain.Trigger) error {
	data, err := json.Marshal(trigger)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, TriggerKey(trigger.AlarmID), data, 0)
	pipe.SAdd(ctx, KeyAllTriggers, trigger.AlarmID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save trigger: %w", err)
	}

	return nil
}

// GetTrigger retrieves the outstanding trigger for an alarm id, or nil
// when none exists.
func (s *Store) GetTrigger(ctx context.Context, alarmID string) (*domain.Trigger, error) {
	data, err := s.client.Get(ctx, TriggerKey(alarmID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trigger: %w", err)
	}

	var trigger domain.Trigger
	if err := json.Unmarshal(data, &trigger); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trigger: %w", err)
	}

	return &trigger, nil
}

// GetAllTriggers retrieves every outstanding trigger
func (s *Store) GetAllTriggers(ctx context.Context) ([]*domain.Trigger, error) {
	ids, err := s.client.SMembers(ctx, KeyAllTriggers).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get trigger IDs: %w", err)
	}

	triggers := make([]*domain.Trigger, 0, len(ids))
	for _, id := range ids {
		trigger, err := s.GetTrigger(ctx, id)
		if err != nil || trigger == nil {
			continue
		}
		triggers = append(triggers, trigger)
	}

	return triggers, nil
}

// DeleteTrigger removes the outstanding trigger for an alarm id.
// Deleting an id without a live trigger is a no-op.
func (s *Store) DeleteTrigger(ctx context.Context, alarmID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, TriggerKey(alarmID))
	pipe.SRem(ctx, KeyAllTriggers, alarmID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete trigger: %w", err)
	}

	return nil
}

// DeleteAllTriggers removes every outstanding trigger
func (s *Store) DeleteAllTriggers(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, KeyAllTriggers).Result()
	if err != nil {
		return fmt.Errorf("failed to get trigger IDs: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, TriggerKey(id))
	}
	pipe.Del(ctx, KeyAllTriggers)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete triggers: %w", err)
	}

	return nil
}
