package tutor

import (
	"context"
	"fmt"

	"tutorhive/models"
	"tutorhive/services/schedule"
)

// Server-side availability editing. Each operation loads the current weekly
// map, applies one pure schedule-package edit, and persists the whole result
// in one write. A failed edit leaves the stored schedule untouched.

func (s *DefaultTutorService) AddWeekday(ctx context.Context, tutorID, day string) (models.WeeklyAvailability, error) {
	weekly, err := s.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	next := schedule.AddWeekday(weekly, day)
	return s.persistWeekly(ctx, tutorID, next)
}

func (s *DefaultTutorService) RemoveWeekday(ctx context.Context, tutorID, day string) (models.WeeklyAvailability, error) {
	weekly, err := s.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	next := schedule.RemoveWeekday(weekly, day)
	return s.persistWeekly(ctx, tutorID, next)
}

func (s *DefaultTutorService) AddTimeBlock(ctx context.Context, tutorID, day string, durationMinutes int) (models.WeeklyAvailability, error) {
	weekly, err := s.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	next, err := schedule.AddTimeBlock(weekly, day, durationMinutes)
	if err != nil {
		return nil, err
	}
	return s.persistWeekly(ctx, tutorID, next)
}

func (s *DefaultTutorService) UpdateTimeBlock(ctx context.Context, tutorID, day string, index int, field, rawValue string) (models.WeeklyAvailability, error) {
	weekly, err := s.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	next, err := schedule.UpdateTimeBlock(weekly, day, index, field, rawValue)
	if err != nil {
		return nil, err
	}
	return s.persistWeekly(ctx, tutorID, next)
}

func (s *DefaultTutorService) RemoveTimeBlock(ctx context.Context, tutorID, day string, index int) (models.WeeklyAvailability, error) {
	weekly, err := s.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	next, err := schedule.RemoveTimeBlock(weekly, day, index)
	if err != nil {
		return nil, err
	}
	return s.persistWeekly(ctx, tutorID, next)
}

func (s *DefaultTutorService) persistWeekly(ctx context.Context, tutorID string, weekly models.WeeklyAvailability) (models.WeeklyAvailability, error) {
	ordered := weekly.Entries()
	if err := s.Repo.SetAvailability(ctx, tutorID, ordered); err != nil {
		return nil, fmt.Errorf("failed to persist availability: %w", err)
	}
	s.invalidateAvailabilityCache(ctx, tutorID)
	s.populateAvailabilityCache(ctx, tutorID, ordered)
	return weekly, nil
}
