package booking

import (
	"context"
	"fmt"
	"time"

	"tutorhive/models"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"go.uber.org/zap"
)

// SubmitBooking validates a candidate against a fresh availability and
// bookings snapshot, persists it as pending, and schedules a reminder ahead
// of the session. Validation failures are schedule-taxonomy errors; the
// service never retries a failed remote write.
func (s *DefaultBookingService) SubmitBooking(ctx context.Context, studentID string, candidate models.BookingCandidate) (*models.Booking, error) {
	logger := utils.GetLogger()

	if studentID == "" {
		return nil, NewBookingError("student is not identified")
	}
	if _, err := time.Parse(schedule.DateLayout, candidate.Date); err != nil {
		return nil, NewBookingError(fmt.Sprintf("invalid date %q", candidate.Date))
	}

	durationMinutes := schedule.DurationToMinutes(candidate.DurationHours)
	if durationMinutes < 30 || durationMinutes%30 != 0 {
		return nil, schedule.NewError(schedule.CodeOutOfRangeDuration,
			"duration must be a multiple of 0.5 hours, at least 0.5; got %v", candidate.DurationHours)
	}

	weekly, err := s.TutorSvc.GetAvailability(ctx, candidate.TutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	snapshot, err := s.Repo.ListActiveByTutorAndDate(ctx, candidate.TutorID, candidate.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	startTime := schedule.NormalizeClock(candidate.StartTime)
	starts, err := schedule.ComputeAvailableStarts(candidate.Date, weekly, snapshot, candidate.DurationHours, s.now())
	if err != nil {
		return nil, err
	}
	offered := false
	for _, st := range starts {
		if st == startTime {
			offered = true
			break
		}
	}
	if !offered {
		return nil, schedule.NewError(schedule.CodeOverlapConflict,
			"start %s on %s is not bookable for %.1f hours", startTime, candidate.Date, candidate.DurationHours)
	}

	max, err := schedule.ComputeMaxDuration(candidate.Date, startTime, weekly, snapshot)
	if err != nil {
		return nil, err
	}
	if durationMinutes > max {
		return nil, schedule.NewError(schedule.CodeOutOfRangeDuration,
			"requested %d minutes from %s but only %d are free", durationMinutes, startTime, max)
	}

	booking := &models.Booking{
		TutorID:       candidate.TutorID,
		StudentID:     studentID,
		Subject:       candidate.Subject,
		Date:          candidate.Date,
		StartTime:     startTime,
		DurationHours: candidate.DurationHours,
		Notes:         candidate.Notes,
		Status:        models.BookingStatusPending,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.scheduleReminder(ctx, booking)

	logger.Info("booking submitted",
		zap.String("bookingID", booking.ID),
		zap.String("tutorID", booking.TutorID),
		zap.String("date", booking.Date),
		zap.String("start", booking.StartTime))
	return booking, nil
}

// scheduleReminder enqueues a reminder one hour before the session. Best
// effort: a queue hiccup must not fail an already-persisted booking.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	sessionDay, err := time.Parse(schedule.DateLayout, booking.Date)
	if err != nil {
		return
	}
	startMin := schedule.ClockToMinutes(booking.StartTime)
	fireAt := sessionDay.Add(time.Duration(startMin)*time.Minute - time.Hour)
	if fireAt.Before(s.now()) {
		return
	}

	payload := models.SessionReminderPayload{
		BookingID: booking.ID,
		TutorID:   booking.TutorID,
		StudentID: booking.StudentID,
		Subject:   booking.Subject,
		FireDate:  fireAt.Format(time.RFC3339),
		Title:     "Upcoming tutoring session",
		Body:      fmt.Sprintf("Your %s session starts at %s.", booking.Subject, booking.StartTime),
	}
	if err := s.Reminders.ScheduleSessionReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule session reminder",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// CancelBooking moves a booking to cancelled. Either side of the session may
// cancel; anyone else is rejected.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, requesterID string) error {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("booking not found: %w", err)
	}
	if requesterID != booking.StudentID && requesterID != booking.TutorID {
		return NewBookingError("only the student or tutor on a booking may cancel it")
	}
	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
		return NewBookingError(fmt.Sprintf("booking is already %s", booking.Status))
	}
	return s.Repo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled)
}

// UpdateStatus applies a lifecycle transition (confirm, complete, ...).
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, status string) error {
	if !models.IsValidBookingStatus(status) {
		return NewBookingError(fmt.Sprintf("unknown booking status %q", status))
	}
	if err := s.Repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

func (s *DefaultBookingService) ListForStudent(ctx context.Context, studentID string) ([]models.Booking, error) {
	return s.Repo.ListByStudent(ctx, studentID)
}

func (s *DefaultBookingService) ListForTutor(ctx context.Context, tutorID string) ([]models.Booking, error) {
	return s.Repo.ListByTutor(ctx, tutorID)
}
