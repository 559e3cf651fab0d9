package notify

import (
	"context"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	redisstore "github.com/snoozelab/holiday-alarm/internal/store/redis"
)

// Platform is the device notification scheduler the reconciler drives.
// Install replaces any live trigger under the same alarm id; Cancel and
// CancelAll are idempotent.
type Platform interface {
	Install(ctx context.Context, trigger *domain.Trigger) error
	Cancel(ctx context.Context, alarmID string) error
	CancelAll(ctx context.Context) error
	Outstanding(ctx context.Context) ([]*domain.Trigger, error)
}

// StorePlatform persists triggers in Redis. It makes the outstanding
// trigger set durable across restarts and observable through the API;
// actual delivery is the device agent's concern.
type StorePlatform struct {
	store *redisstore.Store
}

// NewStorePlatform creates a Redis-backed trigger platform
func NewStorePlatform(store *redisstore.Store) *StorePlatform {
	return &StorePlatform{
		store: store,
	}
}

// Install stores the trigger, retiring any previous one for the id.
func (p *StorePlatform) Install(ctx context.Context, trigger *domain.Trigger) error {
	return p.store.SaveTrigger(ctx, trigger)
}

// Cancel removes the trigger for an alarm id, if any.
func (p *StorePlatform) Cancel(ctx context.Context, alarmID string) error {
	return p.store.DeleteTrigger(ctx, alarmID)
}

// CancelAll removes every outstanding trigger.
func (p *StorePlatform) CancelAll(ctx context.Context) error {
	return p.store.DeleteAllTriggers(ctx)
}

// Outstanding lists the live triggers.
func (p *StorePlatform) Outstanding(ctx context.Context) ([]*domain.Trigger, error) {
	return p.store.GetAllTriggers(ctx)
}
