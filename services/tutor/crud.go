package tutor

import (
	"context"
	"fmt"

	"tutorhive/models"
	"tutorhive/utils"

	"go.uber.org/zap"
)

// Register creates a pending tutor profile. Activation happens when the
// tutor first declares availability.
func (s *DefaultTutorService) Register(ctx context.Context, tutor *models.Tutor) (*models.Tutor, error) {
	if tutor.Name == "" || tutor.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	tutor.Status = "pending"
	if err := s.Repo.Create(ctx, tutor); err != nil {
		return nil, fmt.Errorf("failed to register tutor: %w", err)
	}
	return tutor, nil
}

func (s *DefaultTutorService) GetProfile(ctx context.Context, tutorID string) (*models.TutorProfileDTO, error) {
	tut, err := s.Repo.GetByIDWithProjection(ctx, tutorID, nil)
	if err != nil {
		return nil, fmt.Errorf("tutor not found: %w", err)
	}
	dto := tut.PublicProfile()
	return &dto, nil
}

func (s *DefaultTutorService) UpdateProfile(ctx context.Context, tutor *models.Tutor) (*models.Tutor, error) {
	existing, err := s.Repo.GetByIDWithProjection(ctx, tutor.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("tutor not found: %w", err)
	}

	// Availability and status are managed by their own flows; profile
	// updates never touch them.
	tutor.Availability = existing.Availability
	tutor.Status = existing.Status
	tutor.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(ctx, tutor); err != nil {
		return nil, fmt.Errorf("failed to update tutor: %w", err)
	}
	return tutor, nil
}

func (s *DefaultTutorService) DeleteTutor(ctx context.Context, tutorID string) error {
	logger := utils.GetLogger()
	if err := s.Repo.Delete(ctx, tutorID); err != nil {
		return fmt.Errorf("failed to delete tutor: %w", err)
	}
	s.invalidateAvailabilityCache(ctx, tutorID)
	logger.Info("tutor deleted", zap.String("tutorID", tutorID))
	return nil
}

func (s *DefaultTutorService) Browse(ctx context.Context, subject string, limit int64) ([]models.TutorProfileDTO, error) {
	tutors, err := s.Repo.ListBySubject(ctx, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to browse tutors: %w", err)
	}
	dtos := make([]models.TutorProfileDTO, len(tutors))
	for i := range tutors {
		dtos[i] = tutors[i].PublicProfile()
	}
	return dtos, nil
}
