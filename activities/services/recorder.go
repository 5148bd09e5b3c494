package services

import (
	"context"
	"encoding/json"
	"time"

	"tax-backoffice-backend/activities/repositories"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
	ws "tax-backoffice-backend/websocket"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recentActivityLimit caps the redis replay buffer.
const recentActivityLimit = 100

// ActivityDTO is the wire shape of one log entry.
type ActivityDTO struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Email     *string `json:"email"`
	CreatedAt int64   `json:"createdAt"`
}

func MapActivity(activity models.Activity) ActivityDTO {
	created := activity.CreatedAt
	dto := ActivityDTO{
		ID:        activity.ID,
		Type:      activity.Type,
		Message:   activity.Message,
		CreatedAt: utils.MillisOrNow(&created),
	}
	if activity.User != nil {
		email := activity.User.Email
		dto.Email = &email
	}
	return dto
}

func MapActivities(activities []models.Activity) []ActivityDTO {
	out := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, MapActivity(a))
	}
	return out
}

// Recorder persists an activity row, fans it out to connected dashboards
// and keeps the capped redis replay buffer current. Hub and redis are
// optional so tests and the importer can run without them.
type Recorder struct {
	DB          *gorm.DB
	Repo        repositories.ActivityRepository
	Hub         *ws.Hub
	RedisClient *redis.Client
	Ctx         context.Context
}

func NewRecorder(db *gorm.DB, hub *ws.Hub, redisClient *redis.Client, ctx context.Context) *Recorder {
	return &Recorder{
		DB:          db,
		Repo:        repositories.NewActivityRepository(db),
		Hub:         hub,
		RedisClient: redisClient,
		Ctx:         ctx,
	}
}

// Record writes the row and publishes it. The publish path is best-effort:
// a dead redis or an empty hub never fails the request that logged the
// activity.
func (r *Recorder) Record(activity *models.Activity) (*models.Activity, error) {
	if _, err := r.Repo.CreateActivity(activity); err != nil {
		return nil, err
	}

	// Reload the user relation for the DTO when the row references one.
	if activity.UserID != nil && activity.User == nil {
		var user models.User
		if err := r.DB.Where("id = ?", *activity.UserID).First(&user).Error; err == nil {
			activity.User = &user
		}
	}

	dto := MapActivity(*activity)
	r.publish(dto)
	return activity, nil
}

func (r *Recorder) publish(dto ActivityDTO) {
	if r.Hub != nil {
		r.Hub.Broadcast(ws.StreamMessage{
			Type:      ws.MessageTypeActivity,
			Payload:   dto,
			Timestamp: time.Now(),
		})
	}

	if r.RedisClient != nil {
		raw, err := json.Marshal(dto)
		if err != nil {
			return
		}
		pipe := r.RedisClient.Pipeline()
		pipe.LPush(r.Ctx, ws.RecentActivitiesKey, raw)
		pipe.LTrim(r.Ctx, ws.RecentActivitiesKey, 0, recentActivityLimit-1)
		if _, err := pipe.Exec(r.Ctx); err != nil {
			config.Logger.Warn("Failed to buffer activity in redis", zap.Error(err))
		}
	}
}
