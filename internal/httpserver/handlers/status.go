package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	AlarmsLoaded *int   `json:"alarms_loaded,omitempty"`
	LastSync     string `json:"last_sync,omitempty"`
	LoadedYears  []int  `json:"loaded_years,omitempty"`
	Holidays     *int   `json:"holidays,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type statusResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Status reports per-component health. Mode is "ok" when everything is
// up, "degraded" when the holiday cache is cold (alarms still ring,
// holidays are treated as ordinary weekdays) and "critical" when redis
// is down.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alarmsCount := d.MemoryIndex.Count()
		lastSync := d.MemoryIndex.GetLastSync()
		lastSyncStr := "never"
		if !lastSync.IsZero() {
			lastSyncStr = lastSync.Format("2006-01-02 15:04:05")
		}

		cacheStatus := d.Cache.CacheStatus()
		holidays := cacheStatus.TotalHolidays

		components := map[string]componentStatus{
			"alarms": {
				OK:           true,
				AlarmsLoaded: &alarmsCount,
				LastSync:     lastSyncStr,
			},
			"redis": checkRedis(d),
			"holiday_cache": {
				OK:          cacheStatus.Initialized,
				LoadedYears: cacheStatus.LoadedYears,
				Holidays:    &holidays,
				Impact:      cacheImpact(cacheStatus.Initialized),
			},
		}

		respondJSON(w, http.StatusOK, statusResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func cacheImpact(initialized bool) string {
	if initialized {
		return "holiday-aware"
	}
	return "holidays-treated-as-weekdays"
}

func determineMode(components map[string]componentStatus) string {
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "critical"
	}
	if cache, exists := components["holiday_cache"]; exists && !cache.OK {
		return "degraded"
	}
	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Impact: "alarms-not-persisted",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Impact: "alarms-not-persisted",
			Error:  "timeout",
		}
	}

	return componentStatus{OK: true}
}
