package booking

import (
	"context"
	"fmt"

	"tutorhive/models"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"go.uber.org/zap"
)

// AvailableSlots resolves the bookable start times for one tutor, date and
// duration selection. Availability and the active-bookings snapshot are
// fetched fresh on every call; the caller re-invokes on any date or duration
// change rather than patching stale results.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, tutorID, date string, durationHours float64) (*models.AvailableSlotsResult, error) {
	logger := utils.GetLogger()

	weekly, err := s.TutorSvc.GetAvailability(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	snapshot, err := s.Repo.ListActiveByTutorAndDate(ctx, tutorID, date)
	if err != nil {
		// A missing snapshot must not crash slot calculation; fall back to
		// empty and let the caller surface a freshness warning.
		logger.Warn("active bookings fetch failed, using empty snapshot",
			zap.String("tutorID", tutorID), zap.String("date", date), zap.Error(err))
		snapshot = nil
	}

	starts, err := schedule.ComputeAvailableStarts(date, weekly, snapshot, durationHours, s.now())
	if err != nil {
		if schedule.ErrCode(err) == schedule.CodeNoAvailabilityForDate {
			return &models.AvailableSlotsResult{Date: date, NoAvailability: true}, nil
		}
		return nil, err
	}

	result := &models.AvailableSlotsResult{
		Date:        date,
		StartTimes:  starts,
		FullyBooked: len(starts) == 0,
	}
	if max, err := schedule.ComputeMaxDuration(date, "", weekly, snapshot); err == nil {
		result.DurationOptions = schedule.DurationOptions(max)
	}
	return result, nil
}

// MaxDuration bounds the duration selector for a chosen start time: the
// longest contiguous free span in minutes plus the selectable half-hour
// options it expands to.
func (s *DefaultBookingService) MaxDuration(ctx context.Context, tutorID, date, startTime string) (int, []float64, error) {
	weekly, err := s.TutorSvc.GetAvailability(ctx, tutorID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load availability: %w", err)
	}
	snapshot, err := s.Repo.ListActiveByTutorAndDate(ctx, tutorID, date)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	max, err := schedule.ComputeMaxDuration(date, startTime, weekly, snapshot)
	if err != nil {
		return 0, nil, err
	}
	return max, schedule.DurationOptions(max), nil
}
