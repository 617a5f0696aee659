package cron

import (
	"context"
	"encoding/json"
	"time"

	"tutorhive/config"
	"tutorhive/models"
	"tutorhive/services/tasks"
	"tutorhive/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// SessionReminderChannel is the Redis pub/sub channel due reminders are
// published on. Delivery transports (push, email) subscribe here.
const SessionReminderChannel = "session.reminders"

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker() {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, handleSessionReminderTask)

	go monitorRedisConnection()

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleSessionReminderTask publishes a due reminder on the reminder
// channel. The booking is not re-checked here; a cancelled session's
// reminder is harmless and subscribers filter on current status.
func handleSessionReminderTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.SessionReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid session reminder payload", zap.Error(err))
		return err
	}

	logger.Info("session reminder due",
		zap.String("bookingID", p.BookingID),
		zap.String("tutorID", p.TutorID),
		zap.String("studentID", p.StudentID),
		zap.String("fireDate", p.FireDate))

	if err := utils.GetCacheClient().Publish(ctx, SessionReminderChannel, task.Payload()).Err(); err != nil {
		logger.Error("failed to publish session reminder",
			zap.String("bookingID", p.BookingID), zap.Error(err))
		return err
	}
	return nil
}

// monitorRedisConnection pings the queue Redis periodically to detect
// failures at runtime.
func monitorRedisConnection() {
	logger := utils.GetLogger()

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("reminder queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
