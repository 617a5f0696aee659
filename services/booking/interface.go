package booking

import (
	"context"
	"time"

	bookingRepo "tutorhive/database/repository/booking"
	"tutorhive/models"
	"tutorhive/services/tutor"
)

// ReminderScheduler enqueues a session reminder to fire at a given instant.
// Implemented by the asynq-backed scheduler in services/tasks.
type ReminderScheduler interface {
	ScheduleSessionReminder(ctx context.Context, payload models.SessionReminderPayload, fireAt time.Time) error
}

// BookingService is the student-facing booking surface: slot discovery,
// duration bounding, submission and lifecycle.
type BookingService interface {
	AvailableSlots(ctx context.Context, tutorID, date string, durationHours float64) (*models.AvailableSlotsResult, error)
	MaxDuration(ctx context.Context, tutorID, date, startTime string) (int, []float64, error)
	SubmitBooking(ctx context.Context, studentID string, candidate models.BookingCandidate) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID string) error
	UpdateStatus(ctx context.Context, bookingID, status string) error
	ListForStudent(ctx context.Context, studentID string) ([]models.Booking, error)
	ListForTutor(ctx context.Context, tutorID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService. Now is injected so the
// lead-time cutoff stays testable; when nil it falls back to time.Now.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	TutorSvc  tutor.TutorService
	Reminders ReminderScheduler
	Now       func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
