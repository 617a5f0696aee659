package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"tutorhive/models"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"go.uber.org/zap"
)

// GetAvailability returns the tutor's weekly map, served from the Redis
// cache when warm. A cache miss falls through to Mongo and repopulates.
func (s *DefaultTutorService) GetAvailability(ctx context.Context, tutorID string) (models.WeeklyAvailability, error) {
	logger := utils.GetLogger()
	cacheKey := utils.AvailabilityCachePrefix + tutorID

	if s.CacheClient != nil {
		if raw, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var entries []models.AvailabilityEntry
			if err := json.Unmarshal([]byte(raw), &entries); err == nil {
				return models.WeeklyFromEntries(entries), nil
			}
			logger.Warn("corrupt availability cache entry, refetching",
				zap.String("tutorID", tutorID))
		}
	}

	entries, err := s.Repo.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	s.populateAvailabilityCache(ctx, tutorID, entries)
	return models.WeeklyFromEntries(entries), nil
}

// SetAvailability replaces the tutor's weekly availability. Incoming rows
// are rebuilt into the weekly map and checked against the editor invariants
// (strict ordering, no intra-day overlap) before anything is written; the
// write is all-or-nothing. A tutor with at least one block becomes active.
func (s *DefaultTutorService) SetAvailability(ctx context.Context, tutorID string, entries []models.AvailabilityEntry) (models.WeeklyAvailability, error) {
	logger := utils.GetLogger()

	weekly := models.WeeklyFromEntries(entries)
	if err := schedule.Validate(weekly); err != nil {
		return nil, err
	}

	// Re-flatten so what lands in Mongo is normalized and ordered,
	// regardless of how the rows arrived.
	ordered := weekly.Entries()
	if err := s.Repo.SetAvailability(ctx, tutorID, ordered); err != nil {
		return nil, fmt.Errorf("failed to persist availability: %w", err)
	}

	if len(ordered) > 0 {
		if err := s.activateTutor(ctx, tutorID); err != nil {
			logger.Warn("failed to activate tutor after availability setup",
				zap.String("tutorID", tutorID), zap.Error(err))
		}
	}

	s.invalidateAvailabilityCache(ctx, tutorID)
	s.populateAvailabilityCache(ctx, tutorID, ordered)
	return weekly, nil
}

func (s *DefaultTutorService) activateTutor(ctx context.Context, tutorID string) error {
	tut, err := s.Repo.GetByIDWithProjection(ctx, tutorID, nil)
	if err != nil {
		return err
	}
	if tut.Status == "active" {
		return nil
	}
	tut.Status = "active"
	return s.Repo.Update(ctx, tut)
}

func (s *DefaultTutorService) populateAvailabilityCache(ctx context.Context, tutorID string, entries []models.AvailabilityEntry) {
	if s.CacheClient == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	cacheKey := utils.AvailabilityCachePrefix + tutorID
	if err := s.CacheClient.Set(ctx, cacheKey, raw, utils.AvailabilityCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability",
			zap.String("tutorID", tutorID), zap.Error(err))
	}
}

func (s *DefaultTutorService) invalidateAvailabilityCache(ctx context.Context, tutorID string) {
	if s.CacheClient == nil {
		return
	}
	cacheKey := utils.AvailabilityCachePrefix + tutorID
	if err := s.CacheClient.Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("tutorID", tutorID), zap.Error(err))
	}
}
