package tasks

import (
	"context"
	"encoding/json"
	"time"

	"tutorhive/config"
	"tutorhive/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "session:reminder"

// NewSessionReminderTask builds the asynq task that fires ahead of a booked
// session's start time.
func NewSessionReminderTask(payload models.SessionReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues session reminders on the Redis-backed
// reminder queue. It satisfies the booking service's ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{client: client}
}

func (s *AsynqReminderScheduler) ScheduleSessionReminder(ctx context.Context, payload models.SessionReminderPayload, fireAt time.Time) error {
	task, opts, err := NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return err
	}
	return nil
}

func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
