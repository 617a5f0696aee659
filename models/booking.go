package models

import "time"

// Booking statuses. Only the active set consumes a tutor's availability;
// completed and cancelled bookings free their slots.
const (
	BookingStatusPending   = "pending"
	BookingStatusUpcoming  = "upcoming"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ActiveBookingStatuses lists the statuses that still block slot availability.
func ActiveBookingStatuses() []string {
	return []string{BookingStatusPending, BookingStatusUpcoming, BookingStatusConfirmed}
}

// IsValidBookingStatus reports whether s is one of the known statuses.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusUpcoming, BookingStatusConfirmed,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a confirmed or in-flight tutoring session record.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	TutorID       string    `bson:"tutor_id" json:"tutor_id"`
	StudentID     string    `bson:"student_id" json:"student_id"`
	Subject       string    `bson:"subject" json:"subject"`
	Date          string    `bson:"date" json:"date"`             // "2006-01-02"
	StartTime     string    `bson:"start_time" json:"start_time"` // "HH:MM"
	DurationHours float64   `bson:"duration_hours" json:"duration_hours"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// BookingCandidate is the payload a student submits to book a session. It is
// validated against a fresh availability snapshot before persisting.
type BookingCandidate struct {
	TutorID       string  `json:"tutor_id" binding:"required"`
	Subject       string  `json:"subject" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	StartTime     string  `json:"start_time" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required"`
	Notes         string  `json:"notes"`
}

// AvailableSlotsResult carries slot starts for one (tutor, date, duration)
// query. NoAvailability distinguishes "tutor declared nothing for this
// weekday" from "blocks exist but every start is taken".
type AvailableSlotsResult struct {
	Date            string    `json:"date"`
	StartTimes      []string  `json:"start_times"`
	DurationOptions []float64 `json:"duration_options,omitempty"`
	NoAvailability  bool      `json:"no_availability"`
	FullyBooked     bool      `json:"fully_booked"`
}

// SessionReminderPayload is the asynq task payload scheduled ahead of a
// booked session's start.
type SessionReminderPayload struct {
	BookingID string `json:"bookingId"`
	TutorID   string `json:"tutorId"`
	StudentID string `json:"studentId"`
	Subject   string `json:"subject"`
	FireDate  string `json:"fireDate"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
