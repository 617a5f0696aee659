package schedule

import (
	"fmt"
	"sort"

	"tutorhive/models"
)

// Editor policy constants. The day window bounds where new blocks may be
// placed; the default block is what a freshly added weekday starts with.
const (
	DayWindowStartMinutes = 7 * 60  // 07:00
	DayWindowEndMinutes   = 22 * 60 // 22:00

	DefaultBlockStart = "09:00"
	DefaultBlockEnd   = "17:00"

	// FallbackStepMinutes is the scan step used when no gap between existing
	// blocks is wide enough.
	FallbackStepMinutes = 15
)

// Field names accepted by UpdateTimeBlock.
const (
	FieldStart = "start"
	FieldEnd   = "end"
)

// AddWeekday inserts day with a single default block so it shows up
// immediately editable. Empty or already-present days are a no-op; the
// input is returned untouched.
func AddWeekday(avail models.WeeklyAvailability, day string) models.WeeklyAvailability {
	if day == "" {
		return avail
	}
	if _, ok := avail[day]; ok {
		return avail
	}
	next := avail.Clone()
	next[day] = []models.TimeBlock{{Start: DefaultBlockStart, End: DefaultBlockEnd}}
	return next
}

// RemoveWeekday drops day and every block on it. Destructive; confirming
// intent is the caller's job.
func RemoveWeekday(avail models.WeeklyAvailability, day string) models.WeeklyAvailability {
	if _, ok := avail[day]; !ok {
		return avail
	}
	next := avail.Clone()
	delete(next, day)
	return next
}

// AddTimeBlock places a block of durationMinutes on day. Placement is
// gap-first: the earliest gap in document order (before the first block,
// between consecutive blocks, after the last) wide enough wins, and the
// block lands at the gap's start. When no gap fits, the whole day window is
// scanned in FallbackStepMinutes steps for any non-overlapping position.
// Fails with noSlotAvailable when the day is exhausted; the input is
// returned unchanged on failure.
func AddTimeBlock(avail models.WeeklyAvailability, day string, durationMinutes int) (models.WeeklyAvailability, error) {
	if day == "" {
		return avail, fmt.Errorf("weekday is required")
	}
	if durationMinutes <= 0 {
		return avail, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}

	blocks := normalizeAndSort(avail[day])

	start, found := findGapStart(blocks, durationMinutes)
	if !found {
		start, found = scanDayWindow(blocks, durationMinutes)
	}
	if !found {
		return avail, newScheduleError(CodeNoSlotAvailable,
			"no free %d-minute span on %s within %s-%s",
			durationMinutes, day,
			MinutesToClock(DayWindowStartMinutes), MinutesToClock(DayWindowEndMinutes))
	}

	blocks = append(blocks, models.TimeBlock{
		Start: MinutesToClock(start),
		End:   MinutesToClock(start + durationMinutes),
	})
	sortBlocks(blocks)

	next := avail.Clone()
	next[day] = blocks
	return next, nil
}

// findGapStart walks the sorted blocks looking for the first gap of at least
// durationMinutes, bounded by the day window. Gaps are considered in
// document order: before the first block, between each pair, after the last.
func findGapStart(blocks []models.TimeBlock, durationMinutes int) (int, bool) {
	prevEnd := DayWindowStartMinutes
	for _, b := range blocks {
		start := ClockToMinutes(b.Start)
		if start-prevEnd >= durationMinutes {
			return prevEnd, true
		}
		if end := ClockToMinutes(b.End); end > prevEnd {
			prevEnd = end
		}
	}
	if DayWindowEndMinutes-prevEnd >= durationMinutes {
		return prevEnd, true
	}
	return 0, false
}

// scanDayWindow is the fallback: step through the whole allowed window and
// take the first position where the candidate overlaps nothing. Guarantees
// a hit whenever one exists anywhere in the day, not just between blocks.
func scanDayWindow(blocks []models.TimeBlock, durationMinutes int) (int, bool) {
	for s := DayWindowStartMinutes; s+durationMinutes <= DayWindowEndMinutes; s += FallbackStepMinutes {
		if !overlapsAnyBlock(s, s+durationMinutes, blocks, -1) {
			return s, true
		}
	}
	return 0, false
}

// UpdateTimeBlock applies a single-field edit to the block at index on day.
// The raw value is normalized first. Edits that invert the block's order are
// rejected; the invalidTimeOrder diagnostic is only raised once both fields
// are complete HH:MM values, so a half-typed field does not spam errors.
// Edits that would overlap a sibling block are rejected with
// overlapConflict. On any rejection the input is returned unchanged.
func UpdateTimeBlock(avail models.WeeklyAvailability, day string, index int, field, rawValue string) (models.WeeklyAvailability, error) {
	blocks, ok := avail[day]
	if !ok {
		return avail, fmt.Errorf("weekday %q has no blocks", day)
	}
	if index < 0 || index >= len(blocks) {
		return avail, fmt.Errorf("block index %d out of range for %s", index, day)
	}

	edited := blocks[index]
	normalized := NormalizeClock(rawValue)
	switch field {
	case FieldStart:
		edited.Start = normalized
	case FieldEnd:
		edited.End = normalized
	default:
		return avail, fmt.Errorf("unknown block field %q", field)
	}

	startMin := ClockToMinutes(edited.Start)
	endMin := ClockToMinutes(edited.End)
	if endMin <= startMin {
		if IsCompleteClock(rawValue) && IsCompleteClock(edited.Start) && IsCompleteClock(edited.End) {
			return avail, newScheduleError(CodeInvalidTimeOrder,
				"end time %s must be after start time %s", edited.End, edited.Start)
		}
		// Mid-edit fragment; drop the edit without a diagnostic.
		return avail, nil
	}

	if overlapsAnyBlock(startMin, endMin, blocks, index) {
		return avail, newScheduleError(CodeOverlapConflict,
			"block %s-%s overlaps another block on %s", edited.Start, edited.End, day)
	}

	next := avail.Clone()
	next[day][index] = edited
	sortBlocks(next[day])
	return next, nil
}

// RemoveTimeBlock deletes the block at index on day. A day whose last block
// is removed disappears from the map entirely.
func RemoveTimeBlock(avail models.WeeklyAvailability, day string, index int) (models.WeeklyAvailability, error) {
	blocks, ok := avail[day]
	if !ok {
		return avail, fmt.Errorf("weekday %q has no blocks", day)
	}
	if index < 0 || index >= len(blocks) {
		return avail, fmt.Errorf("block index %d out of range for %s", index, day)
	}

	next := avail.Clone()
	remaining := append(next[day][:index], next[day][index+1:]...)
	if len(remaining) == 0 {
		delete(next, day)
	} else {
		next[day] = remaining
	}
	return next, nil
}

// Validate checks an entire weekly map against the editor invariants:
// normalized times, end after start, and no intra-day overlap. Used before
// persisting availability that arrived over the wire.
func Validate(avail models.WeeklyAvailability) error {
	for day, blocks := range avail {
		sorted := normalizeAndSort(blocks)
		for i, b := range sorted {
			start := ClockToMinutes(b.Start)
			end := ClockToMinutes(b.End)
			if end <= start {
				return newScheduleError(CodeInvalidTimeOrder,
					"%s block %s-%s: end must be after start", day, b.Start, b.End)
			}
			if i > 0 && Overlaps(ClockToMinutes(sorted[i-1].Start), ClockToMinutes(sorted[i-1].End), start, end) {
				return newScheduleError(CodeOverlapConflict,
					"%s blocks %s-%s and %s-%s overlap",
					day, sorted[i-1].Start, sorted[i-1].End, b.Start, b.End)
			}
		}
	}
	return nil
}

func overlapsAnyBlock(start, end int, blocks []models.TimeBlock, skipIndex int) bool {
	for i, b := range blocks {
		if i == skipIndex {
			continue
		}
		if Overlaps(start, end, ClockToMinutes(b.Start), ClockToMinutes(b.End)) {
			return true
		}
	}
	return false
}

func normalizeAndSort(blocks []models.TimeBlock) []models.TimeBlock {
	out := make([]models.TimeBlock, len(blocks))
	for i, b := range blocks {
		out[i] = models.TimeBlock{Start: NormalizeClock(b.Start), End: NormalizeClock(b.End)}
	}
	sortBlocks(out)
	return out
}

func sortBlocks(blocks []models.TimeBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return ClockToMinutes(blocks[i].Start) < ClockToMinutes(blocks[j].Start)
	})
}
