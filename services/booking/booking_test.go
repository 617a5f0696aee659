package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tutorhive/models"
	"tutorhive/services/schedule"
	"tutorhive/services/tutor"
)

// fakeBookingRepo keeps bookings in memory and mirrors the repository's
// active-snapshot filtering.
type fakeBookingRepo struct {
	bookings []models.Booking
	nextID   int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	f.nextID++
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", f.nextID)
	}
	b.CreatedAt = time.Now()
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", id)
}

func (f *fakeBookingRepo) ListActiveByTutorAndDate(_ context.Context, tutorID, date string) ([]models.Booking, error) {
	active := map[string]bool{}
	for _, s := range models.ActiveBookingStatuses() {
		active[s] = true
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TutorID == tutorID && b.Date == date && active[b.Status] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByStudent(_ context.Context, studentID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByTutor(_ context.Context, tutorID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TutorID == tutorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

// fakeTutorService serves a fixed weekly availability. The embedded
// interface panics on any other method, which no booking path should reach.
type fakeTutorService struct {
	tutor.TutorService
	weekly models.WeeklyAvailability
	err    error
}

func (f *fakeTutorService) GetAvailability(_ context.Context, _ string) (models.WeeklyAvailability, error) {
	return f.weekly, f.err
}

type fakeReminderScheduler struct {
	payloads []models.SessionReminderPayload
	fireAts  []time.Time
}

func (f *fakeReminderScheduler) ScheduleSessionReminder(_ context.Context, p models.SessionReminderPayload, fireAt time.Time) error {
	f.payloads = append(f.payloads, p)
	f.fireAts = append(f.fireAts, fireAt)
	return nil
}

// testMonday is a Monday.
const testMonday = "2026-03-02"

func farPast() time.Time {
	return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
}

func newTestService(weekly models.WeeklyAvailability) (*DefaultBookingService, *fakeBookingRepo, *fakeReminderScheduler) {
	repo := &fakeBookingRepo{}
	reminders := &fakeReminderScheduler{}
	svc := &DefaultBookingService{
		Repo:      repo,
		TutorSvc:  &fakeTutorService{weekly: weekly},
		Reminders: reminders,
		Now:       farPast,
	}
	return svc, repo, reminders
}

func mondayNineToFive() models.WeeklyAvailability {
	return models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "17:00"}},
	}
}

func TestSubmitBookingPersistsAndSchedulesReminder(t *testing.T) {
	svc, repo, reminders := newTestService(mondayNineToFive())

	booked, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID:       "tutor-1",
		Subject:       "algebra",
		Date:          testMonday,
		StartTime:     "10:00",
		DurationHours: 1.0,
	})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if booked.ID == "" {
		t.Error("expected a generated booking ID")
	}
	if booked.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", booked.Status)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("persisted %d bookings, want 1", len(repo.bookings))
	}

	if len(reminders.fireAts) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(reminders.fireAts))
	}
	wantFire := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !reminders.fireAts[0].Equal(wantFire) {
		t.Errorf("reminder fires at %v, want %v (one hour before start)", reminders.fireAts[0], wantFire)
	}
	if reminders.payloads[0].BookingID != booked.ID {
		t.Errorf("reminder payload booking ID = %q, want %q", reminders.payloads[0].BookingID, booked.ID)
	}
}

func TestSubmitBookingNormalizesStartTime(t *testing.T) {
	svc, repo, _ := newTestService(mondayNineToFive())

	_, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID:       "tutor-1",
		Subject:       "algebra",
		Date:          testMonday,
		StartTime:     "9:30",
		DurationHours: 0.5,
	})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if got := repo.bookings[0].StartTime; got != "09:30" {
		t.Errorf("stored start = %q, want normalized 09:30", got)
	}
}

func TestSubmitBookingRejectsUnquantizedDuration(t *testing.T) {
	svc, _, _ := newTestService(mondayNineToFive())

	cases := []float64{0, 0.25, 0.75, 1.1, -1}
	for _, d := range cases {
		_, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
			TutorID:       "tutor-1",
			Subject:       "algebra",
			Date:          testMonday,
			StartTime:     "10:00",
			DurationHours: d,
		})
		if schedule.ErrCode(err) != schedule.CodeOutOfRangeDuration {
			t.Errorf("duration %v: err = %v, want outOfRangeDuration", d, err)
		}
	}
}

func TestSubmitBookingRejectsConflictingStart(t *testing.T) {
	svc, repo, _ := newTestService(mondayNineToFive())
	repo.bookings = append(repo.bookings, models.Booking{
		ID: "bk-existing", TutorID: "tutor-1", StudentID: "student-0",
		Date: testMonday, StartTime: "10:00", DurationHours: 1.0,
		Status: models.BookingStatusConfirmed,
	})

	// 10:30 for an hour lands inside the existing 10:00-11:00 session.
	_, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID:       "tutor-1",
		Subject:       "algebra",
		Date:          testMonday,
		StartTime:     "10:30",
		DurationHours: 1.0,
	})
	if schedule.ErrCode(err) != schedule.CodeOverlapConflict {
		t.Fatalf("err = %v, want overlapConflict", err)
	}

	// The adjacent slot right after the session is fine.
	if _, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID:       "tutor-1",
		Subject:       "algebra",
		Date:          testMonday,
		StartTime:     "11:00",
		DurationHours: 1.0,
	}); err != nil {
		t.Fatalf("adjacent start rejected: %v", err)
	}
}

func TestSubmitBookingRejectsStartPastBlockEnd(t *testing.T) {
	svc, _, _ := newTestService(mondayNineToFive())

	// One hour from 16:30 runs past the 17:00 block end.
	_, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID:       "tutor-1",
		Subject:       "algebra",
		Date:          testMonday,
		StartTime:     "16:30",
		DurationHours: 1.0,
	})
	if schedule.ErrCode(err) != schedule.CodeOverlapConflict {
		t.Fatalf("err = %v, want overlapConflict", err)
	}
}

func TestSubmitBookingNoAvailabilityForDate(t *testing.T) {
	svc, _, _ := newTestService(models.WeeklyAvailability{
		"Tuesday": {{Start: "09:00", End: "17:00"}},
	})

	_, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID:       "tutor-1",
		Subject:       "algebra",
		Date:          testMonday, // a Monday
		StartTime:     "10:00",
		DurationHours: 1.0,
	})
	if schedule.ErrCode(err) != schedule.CodeNoAvailabilityForDate {
		t.Fatalf("err = %v, want noAvailabilityForDate", err)
	}
}

func TestCancelBooking(t *testing.T) {
	svc, repo, _ := newTestService(mondayNineToFive())
	repo.bookings = append(repo.bookings, models.Booking{
		ID: "bk-1", TutorID: "tutor-1", StudentID: "student-1",
		Date: testMonday, StartTime: "10:00", DurationHours: 1.0,
		Status: models.BookingStatusConfirmed,
	})

	if err := svc.CancelBooking(context.Background(), "bk-1", "someone-else"); err == nil {
		t.Error("expected rejection for a requester who is neither party")
	}
	if repo.bookings[0].Status != models.BookingStatusConfirmed {
		t.Fatal("rejected cancel mutated the booking")
	}

	if err := svc.CancelBooking(context.Background(), "bk-1", "student-1"); err != nil {
		t.Fatalf("student cancel: %v", err)
	}
	if repo.bookings[0].Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", repo.bookings[0].Status)
	}

	if err := svc.CancelBooking(context.Background(), "bk-1", "tutor-1"); err == nil {
		t.Error("expected rejection when cancelling an already cancelled booking")
	}
}

func TestCancelledBookingFreesItsSlot(t *testing.T) {
	svc, repo, _ := newTestService(mondayNineToFive())

	booked, err := svc.SubmitBooking(context.Background(), "student-1", models.BookingCandidate{
		TutorID: "tutor-1", Subject: "algebra",
		Date: testMonday, StartTime: "10:00", DurationHours: 1.0,
	})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	// Slot taken while the booking is active.
	_, err = svc.SubmitBooking(context.Background(), "student-2", models.BookingCandidate{
		TutorID: "tutor-1", Subject: "algebra",
		Date: testMonday, StartTime: "10:00", DurationHours: 1.0,
	})
	if schedule.ErrCode(err) != schedule.CodeOverlapConflict {
		t.Fatalf("err = %v, want overlapConflict while active", err)
	}

	if err := svc.CancelBooking(context.Background(), booked.ID, "student-1"); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if _, err := svc.SubmitBooking(context.Background(), "student-2", models.BookingCandidate{
		TutorID: "tutor-1", Subject: "algebra",
		Date: testMonday, StartTime: "10:00", DurationHours: 1.0,
	}); err != nil {
		t.Fatalf("slot still blocked after cancellation: %v", err)
	}

	if len(repo.bookings) != 2 {
		t.Errorf("persisted %d bookings, want 2", len(repo.bookings))
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, repo, _ := newTestService(mondayNineToFive())
	repo.bookings = append(repo.bookings, models.Booking{
		ID: "bk-1", Status: models.BookingStatusPending,
	})

	if err := svc.UpdateStatus(context.Background(), "bk-1", "archived"); err == nil {
		t.Error("expected rejection of an unknown status")
	}
	if err := svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if repo.bookings[0].Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", repo.bookings[0].Status)
	}
}

func TestAvailableSlotsDistinguishesEmptyStates(t *testing.T) {
	// No blocks declared for Monday at all.
	svc, _, _ := newTestService(models.WeeklyAvailability{
		"Tuesday": {{Start: "09:00", End: "17:00"}},
	})
	res, err := svc.AvailableSlots(context.Background(), "tutor-1", testMonday, 1.0)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if !res.NoAvailability || res.FullyBooked {
		t.Errorf("got NoAvailability=%v FullyBooked=%v, want NoAvailability only", res.NoAvailability, res.FullyBooked)
	}

	// A single block fully consumed by one booking.
	svc, repo, _ := newTestService(models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "10:00"}},
	})
	repo.bookings = append(repo.bookings, models.Booking{
		ID: "bk-1", TutorID: "tutor-1", StudentID: "student-1",
		Date: testMonday, StartTime: "09:00", DurationHours: 1.0,
		Status: models.BookingStatusConfirmed,
	})
	res, err = svc.AvailableSlots(context.Background(), "tutor-1", testMonday, 0.5)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if res.NoAvailability || !res.FullyBooked {
		t.Errorf("got NoAvailability=%v FullyBooked=%v, want FullyBooked only", res.NoAvailability, res.FullyBooked)
	}
}

func TestMaxDurationForChosenStart(t *testing.T) {
	svc, repo, _ := newTestService(mondayNineToFive())
	repo.bookings = append(repo.bookings, models.Booking{
		ID: "bk-1", TutorID: "tutor-1", StudentID: "student-1",
		Date: testMonday, StartTime: "12:00", DurationHours: 1.0,
		Status: models.BookingStatusConfirmed,
	})

	max, options, err := svc.MaxDuration(context.Background(), "tutor-1", testMonday, "10:00")
	if err != nil {
		t.Fatalf("MaxDuration: %v", err)
	}
	if max != 120 {
		t.Errorf("max = %d minutes, want 120 (capped by the 12:00 session)", max)
	}
	want := []float64{0.5, 1, 1.5, 2}
	if len(options) != len(want) {
		t.Fatalf("options = %v, want %v", options, want)
	}
	for i := range want {
		if options[i] != want[i] {
			t.Fatalf("options = %v, want %v", options, want)
		}
	}
}
