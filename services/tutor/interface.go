package tutor

import (
	"context"

	bookingRepo "tutorhive/database/repository/booking"
	tutorRepo "tutorhive/database/repository/tutor"
	"tutorhive/models"

	"github.com/go-redis/redis/v8"
)

// TutorService manages tutor profiles and their weekly availability.
type TutorService interface {
	Register(ctx context.Context, tutor *models.Tutor) (*models.Tutor, error)
	GetProfile(ctx context.Context, tutorID string) (*models.TutorProfileDTO, error)
	UpdateProfile(ctx context.Context, tutor *models.Tutor) (*models.Tutor, error)
	DeleteTutor(ctx context.Context, tutorID string) error
	Browse(ctx context.Context, subject string, limit int64) ([]models.TutorProfileDTO, error)

	GetAvailability(ctx context.Context, tutorID string) (models.WeeklyAvailability, error)
	SetAvailability(ctx context.Context, tutorID string, entries []models.AvailabilityEntry) (models.WeeklyAvailability, error)

	AddWeekday(ctx context.Context, tutorID, day string) (models.WeeklyAvailability, error)
	RemoveWeekday(ctx context.Context, tutorID, day string) (models.WeeklyAvailability, error)
	AddTimeBlock(ctx context.Context, tutorID, day string, durationMinutes int) (models.WeeklyAvailability, error)
	UpdateTimeBlock(ctx context.Context, tutorID, day string, index int, field, rawValue string) (models.WeeklyAvailability, error)
	RemoveTimeBlock(ctx context.Context, tutorID, day string, index int) (models.WeeklyAvailability, error)
}

// DefaultTutorService implements TutorService.
type DefaultTutorService struct {
	Repo        tutorRepo.TutorRepository
	BookingRepo bookingRepo.BookingRepository
	CacheClient *redis.Client
}
