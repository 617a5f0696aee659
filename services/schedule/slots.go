package schedule

import (
	"fmt"
	"sort"
	"time"

	"tutorhive/models"
)

const (
	// DateLayout is the calendar-date wire format used across the service.
	DateLayout = "2006-01-02"

	// CandidateStepMinutes spaces the offered session start times.
	CandidateStepMinutes = 30

	// LeadTimeMinutes is the minimum gap between "now" and the earliest
	// bookable start on the current date.
	LeadTimeMinutes = 30

	// MinSessionHours is the smallest bookable session; all durations are
	// multiples of it.
	MinSessionHours = 0.5
)

// ResolveDayBlocks maps a calendar date to its weekday's declared blocks.
// An empty result means the tutor declared nothing for that weekday.
func ResolveDayBlocks(date string, avail models.WeeklyAvailability) ([]models.TimeBlock, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return avail[d.Weekday().String()], nil
}

// GenerateCandidateStarts lists every candidate start within block, from its
// start to its end inclusive, stepped by CandidateStepMinutes. On the
// current date, starts at or before now plus the lead-time buffer are
// dropped so near-past slots are never offered.
func GenerateCandidateStarts(block models.TimeBlock, date string, now time.Time) []string {
	startMin := ClockToMinutes(block.Start)
	endMin := ClockToMinutes(block.End)

	cutoff := -1
	if date == now.Format(DateLayout) {
		cutoff = now.Hour()*60 + now.Minute() + LeadTimeMinutes
	}

	var starts []string
	for m := startMin; m <= endMin; m += CandidateStepMinutes {
		if m <= cutoff {
			continue
		}
		starts = append(starts, MinutesToClock(m))
	}
	return starts
}

// ComputeAvailableStarts returns the sorted feasible session start times for
// one (date, duration) selection. A start is feasible when some single block
// fully contains [start, start+duration] and the span overlaps no active
// booking. Zero duration skips the duration filter and returns every raw
// candidate, for flows where the student picks a time before a duration.
//
// A noAvailabilityForDate error means the weekday has no blocks at all; an
// empty result with a nil error means the day is fully booked. Callers must
// be able to tell the two apart.
func ComputeAvailableStarts(
	date string,
	avail models.WeeklyAvailability,
	activeBookings []models.Booking,
	durationHours float64,
	now time.Time,
) ([]string, error) {
	blocks, err := ResolveDayBlocks(date, avail)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, newScheduleError(CodeNoAvailabilityForDate, "no availability declared for %s", date)
	}

	seen := make(map[int]bool)
	var candidates []int
	for _, b := range blocks {
		for _, s := range GenerateCandidateStarts(b, date, now) {
			m := ClockToMinutes(s)
			if !seen[m] {
				seen[m] = true
				candidates = append(candidates, m)
			}
		}
	}
	sort.Ints(candidates)

	durationMinutes := DurationToMinutes(durationHours)
	starts := make([]string, 0, len(candidates))
	for _, s := range candidates {
		if durationMinutes > 0 {
			end := s + durationMinutes
			if !containedInAnyBlock(s, end, blocks) {
				continue
			}
			if overlapsAnyBooking(s, end, activeBookings) {
				continue
			}
		}
		starts = append(starts, MinutesToClock(s))
	}
	return starts, nil
}

// ComputeMaxDuration returns the longest contiguous bookable span, in
// minutes, from startTime on date. The ceiling is the containing block's
// end, lowered to the earliest active booking that starts after startTime.
// With an empty startTime it returns the single largest feasible span across
// all blocks after clipping each by its overlapping bookings, which bounds
// the duration selector before a start is chosen.
func ComputeMaxDuration(
	date string,
	startTime string,
	avail models.WeeklyAvailability,
	activeBookings []models.Booking,
) (int, error) {
	blocks, err := ResolveDayBlocks(date, avail)
	if err != nil {
		return 0, err
	}
	if len(blocks) == 0 {
		return 0, newScheduleError(CodeNoAvailabilityForDate, "no availability declared for %s", date)
	}

	if startTime == "" {
		max := 0
		for _, b := range blocks {
			if span := largestFreeSpan(ClockToMinutes(b.Start), ClockToMinutes(b.End), activeBookings); span > max {
				max = span
			}
		}
		return max, nil
	}

	start := ClockToMinutes(NormalizeClock(startTime))
	ceiling := -1
	for _, b := range blocks {
		bStart := ClockToMinutes(b.Start)
		bEnd := ClockToMinutes(b.End)
		if start >= bStart && start < bEnd {
			ceiling = bEnd
			break
		}
	}
	if ceiling < 0 {
		return 0, nil
	}

	for _, bk := range activeBookings {
		bkStart := ClockToMinutes(bk.StartTime)
		if bkStart > start && bkStart < ceiling {
			ceiling = bkStart
		}
	}
	return ceiling - start, nil
}

// DurationOptions expands a maximum span in minutes into the selectable
// session lengths: multiples of half an hour from 0.5 up to the floor of the
// span.
func DurationOptions(maxMinutes int) []float64 {
	steps := maxMinutes / 30
	if steps <= 0 {
		return nil
	}
	opts := make([]float64, steps)
	for i := range opts {
		opts[i] = MinSessionHours * float64(i+1)
	}
	return opts
}

// DurationToMinutes converts a session length in hours to whole minutes.
func DurationToMinutes(durationHours float64) int {
	return int(durationHours*60 + 0.5)
}

func containedInAnyBlock(start, end int, blocks []models.TimeBlock) bool {
	for _, b := range blocks {
		if start >= ClockToMinutes(b.Start) && end <= ClockToMinutes(b.End) {
			return true
		}
	}
	return false
}

func overlapsAnyBooking(start, end int, bookings []models.Booking) bool {
	for _, bk := range bookings {
		bkStart := ClockToMinutes(bk.StartTime)
		bkEnd := bkStart + DurationToMinutes(bk.DurationHours)
		if Overlaps(start, end, bkStart, bkEnd) {
			return true
		}
	}
	return false
}

// largestFreeSpan finds the widest sub-interval of [blockStart, blockEnd)
// untouched by any booking. Bookings are clipped to the block before the
// gaps between them are measured.
func largestFreeSpan(blockStart, blockEnd int, bookings []models.Booking) int {
	type span struct{ start, end int }
	var busy []span
	for _, bk := range bookings {
		s := ClockToMinutes(bk.StartTime)
		e := s + DurationToMinutes(bk.DurationHours)
		if !Overlaps(s, e, blockStart, blockEnd) {
			continue
		}
		if s < blockStart {
			s = blockStart
		}
		if e > blockEnd {
			e = blockEnd
		}
		busy = append(busy, span{s, e})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].start < busy[j].start })

	max := 0
	cursor := blockStart
	for _, b := range busy {
		if b.start-cursor > max {
			max = b.start - cursor
		}
		if b.end > cursor {
			cursor = b.end
		}
	}
	if blockEnd-cursor > max {
		max = blockEnd - cursor
	}
	return max
}
