package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/holiday"
	"github.com/snoozelab/holiday-alarm/internal/index"
	"github.com/snoozelab/holiday-alarm/internal/logger"
	"github.com/snoozelab/holiday-alarm/internal/notify"
	redisstore "github.com/snoozelab/holiday-alarm/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	RedisClient *redis.Client      // Redis client connection
	Store       *redisstore.Store  // Persisted alarms and triggers
	MemoryIndex *index.MemoryIndex // In-memory alarm index
	Cache       *holiday.Cache     // Holiday lookup cache
	Resolver    *domain.Resolver   // Trigger resolution policy
	Reconciler  *notify.Reconciler // Trigger reconciliation
	Sounds      *domain.SoundSet   // Alarm sound catalog

	RefreshTrigger chan struct{} // Channel to trigger a manual holiday refresh
}
