package utils

import (
	"context"
	"strconv"
	"time"

	"tax-backoffice-backend/activities/repositories"
	"tax-backoffice-backend/config"
	ws "tax-backoffice-backend/websocket"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const maxRetries = 3
const retryDelay = 2 * time.Minute

const defaultRetentionDays = 180

// RetentionDays reads ACTIVITY_RETENTION_DAYS, falling back to 180.
func RetentionDays() int {
	raw := config.GetEnvOrDefault("ACTIVITY_RETENTION_DAYS", "")
	if raw == "" {
		return defaultRetentionDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		config.Logger.Warn("Invalid ACTIVITY_RETENTION_DAYS, using default", zap.String("value", raw))
		return defaultRetentionDays
	}
	return days
}

// PruneActivities deletes activity rows older than the retention window
// and trims the redis replay list back to its cap.
func PruneActivities(activityRepo repositories.ActivityRepository, redisClient *redis.Client, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	deleted, err := activityRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		config.Logger.Info("Pruned old activities",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}

	if redisClient != nil {
		if err := redisClient.LTrim(context.Background(), ws.RecentActivitiesKey, 0, 99).Err(); err != nil {
			return err
		}
	}

	return nil
}

// RunScheduledCleanup runs the retention job daily at 1 AM with retries.
// Blocks forever; run it on its own goroutine.
func RunScheduledCleanup(activityRepo repositories.ActivityRepository, redisClient *redis.Client) {
	retentionDays := RetentionDays()

	c := cron.New()
	c.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Running scheduled activity cleanup", zap.Int("retentionDays", retentionDays))

		for attempt := 1; attempt <= maxRetries; attempt++ {
			err := PruneActivities(activityRepo, redisClient, retentionDays)
			if err == nil {
				return
			}
			config.Logger.Error("Activity cleanup failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if attempt < maxRetries {
				time.Sleep(retryDelay)
			}
		}
		config.Logger.Error("Activity cleanup failed after retries", zap.Int("retries", maxRetries))
	})
	c.Start()

	select {}
}
