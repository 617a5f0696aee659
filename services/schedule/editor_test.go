package schedule

import (
	"testing"

	"tutorhive/models"
)

func assertInvariants(t *testing.T, avail models.WeeklyAvailability) {
	t.Helper()
	for day, blocks := range avail {
		if len(blocks) == 0 {
			t.Errorf("%s present with zero blocks; empty days must be absent", day)
		}
		for i, b := range blocks {
			start := ClockToMinutes(b.Start)
			end := ClockToMinutes(b.End)
			if end <= start {
				t.Errorf("%s block %d: %s-%s is not strictly ordered", day, i, b.Start, b.End)
			}
			if i > 0 && ClockToMinutes(blocks[i-1].Start) > start {
				t.Errorf("%s blocks not sorted at index %d", day, i)
			}
			for j := i + 1; j < len(blocks); j++ {
				if Overlaps(start, end, ClockToMinutes(blocks[j].Start), ClockToMinutes(blocks[j].End)) {
					t.Errorf("%s blocks %d and %d overlap", day, i, j)
				}
			}
		}
	}
}

func TestAddWeekday(t *testing.T) {
	avail := models.WeeklyAvailability{}

	next := AddWeekday(avail, "Monday")
	blocks := next["Monday"]
	if len(blocks) != 1 || blocks[0].Start != "09:00" || blocks[0].End != "17:00" {
		t.Fatalf("want default 09:00-17:00 block, got %v", blocks)
	}
	if len(avail) != 0 {
		t.Fatal("input map was mutated")
	}

	// Adding an existing or empty day is a no-op.
	if again := AddWeekday(next, "Monday"); len(again["Monday"]) != 1 {
		t.Errorf("duplicate add changed state: %v", again["Monday"])
	}
	if same := AddWeekday(next, ""); len(same) != len(next) {
		t.Errorf("empty day add changed state")
	}
	assertInvariants(t, next)
}

func TestMissingWeekdays(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "17:00"}},
		"Friday": {{Start: "10:00", End: "12:00"}},
	}
	missing := avail.MissingWeekdays()
	want := []string{"Tuesday", "Wednesday", "Thursday", "Saturday", "Sunday"}
	if len(missing) != len(want) {
		t.Fatalf("want %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("want %v, got %v", want, missing)
		}
	}
}

func TestAddTimeBlock_GapBeforeFirstBlock(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "17:00"}},
	}
	// First gap in document order is 07:00-09:00 (120 min), so a 60-minute
	// block lands at the window floor.
	next, err := AddTimeBlock(avail, "Monday", 60)
	if err != nil {
		t.Fatalf("AddTimeBlock: %v", err)
	}
	blocks := next["Monday"]
	if len(blocks) != 2 {
		t.Fatalf("want 2 blocks, got %v", blocks)
	}
	if blocks[0].Start != "07:00" || blocks[0].End != "08:00" {
		t.Errorf("want new block 07:00-08:00 first, got %s-%s", blocks[0].Start, blocks[0].End)
	}
	assertInvariants(t, next)
}

func TestAddTimeBlock_GapBetweenBlocks(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Tuesday": {
			{Start: "07:00", End: "09:00"},
			{Start: "12:00", End: "22:00"},
		},
	}
	next, err := AddTimeBlock(avail, "Tuesday", 90)
	if err != nil {
		t.Fatalf("AddTimeBlock: %v", err)
	}
	blocks := next["Tuesday"]
	if len(blocks) != 3 {
		t.Fatalf("want 3 blocks, got %v", blocks)
	}
	if blocks[1].Start != "09:00" || blocks[1].End != "10:30" {
		t.Errorf("want 09:00-10:30 in the middle gap, got %s-%s", blocks[1].Start, blocks[1].End)
	}
	assertInvariants(t, next)
}

func TestAddTimeBlock_FallbackScan(t *testing.T) {
	// Gaps are 07:00-07:30 and 21:30-22:00, both 30 minutes. A 45-minute
	// request fits no gap, and the fallback scan finds no position either.
	avail := models.WeeklyAvailability{
		"Wednesday": {{Start: "07:30", End: "21:30"}},
	}
	next, err := AddTimeBlock(avail, "Wednesday", 45)
	if ErrCode(err) != CodeNoSlotAvailable {
		t.Fatalf("want noSlotAvailable, got %v (state %v)", err, next)
	}
	if len(next["Wednesday"]) != 1 {
		t.Errorf("failed add must leave state unchanged, got %v", next["Wednesday"])
	}

	// A 30-minute request fits the leading gap exactly.
	next, err = AddTimeBlock(avail, "Wednesday", 30)
	if err != nil {
		t.Fatalf("AddTimeBlock: %v", err)
	}
	if next["Wednesday"][0].Start != "07:00" || next["Wednesday"][0].End != "07:30" {
		t.Errorf("want 07:00-07:30, got %v", next["Wednesday"][0])
	}
	assertInvariants(t, next)
}

func TestAddTimeBlock_FullDay(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Thursday": {{Start: "07:00", End: "22:00"}},
	}
	_, err := AddTimeBlock(avail, "Thursday", 30)
	if ErrCode(err) != CodeNoSlotAvailable {
		t.Fatalf("want noSlotAvailable, got %v", err)
	}
}

func TestAddTimeBlock_EmptyDayPlacesAtWindowFloor(t *testing.T) {
	next, err := AddTimeBlock(models.WeeklyAvailability{}, "Friday", 120)
	if err != nil {
		t.Fatalf("AddTimeBlock: %v", err)
	}
	if b := next["Friday"][0]; b.Start != "07:00" || b.End != "09:00" {
		t.Errorf("want 07:00-09:00, got %s-%s", b.Start, b.End)
	}
}

func TestUpdateTimeBlock_InvalidOrderRejected(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "17:00"}},
	}
	next, err := UpdateTimeBlock(avail, "Monday", 0, FieldEnd, "08:00")
	if ErrCode(err) != CodeInvalidTimeOrder {
		t.Fatalf("want invalidTimeOrder, got %v", err)
	}
	if next["Monday"][0].End != "17:00" {
		t.Errorf("rejected edit must leave the block unchanged, got %v", next["Monday"][0])
	}
}

func TestUpdateTimeBlock_MidEditFragmentSilentlyDropped(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "17:00"}},
	}
	// "0:3" normalizes to 00:30 which inverts the block, but the fragment is
	// not complete HH:MM, so no diagnostic is raised mid-edit.
	next, err := UpdateTimeBlock(avail, "Monday", 0, FieldEnd, "0:3")
	if err != nil {
		t.Fatalf("mid-edit fragment must not error, got %v", err)
	}
	if next["Monday"][0].End != "17:00" {
		t.Errorf("mid-edit fragment must not apply, got %v", next["Monday"][0])
	}
}

func TestUpdateTimeBlock_OverlapRejected(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {
			{Start: "09:00", End: "11:00"},
			{Start: "13:00", End: "15:00"},
		},
	}
	next, err := UpdateTimeBlock(avail, "Monday", 0, FieldEnd, "14:00")
	if ErrCode(err) != CodeOverlapConflict {
		t.Fatalf("want overlapConflict, got %v", err)
	}
	if next["Monday"][0].End != "11:00" {
		t.Errorf("rejected edit must leave prior state untouched, got %v", next["Monday"][0])
	}
}

func TestUpdateTimeBlock_AdjacencyAllowedAndResorted(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {
			{Start: "09:00", End: "11:00"},
			{Start: "13:00", End: "15:00"},
		},
	}
	// Extending the first block to touch the second is legal.
	next, err := UpdateTimeBlock(avail, "Monday", 0, FieldEnd, "13:00")
	if err != nil {
		t.Fatalf("UpdateTimeBlock: %v", err)
	}
	if next["Monday"][0].End != "13:00" {
		t.Errorf("want end 13:00, got %v", next["Monday"][0])
	}
	assertInvariants(t, next)

	// Moving the first block after the second must re-sort.
	next, err = UpdateTimeBlock(models.WeeklyAvailability{
		"Monday": {
			{Start: "09:00", End: "10:00"},
			{Start: "11:00", End: "12:00"},
		},
	}, "Monday", 0, FieldStart, "16:00")
	if err != nil {
		t.Fatalf("UpdateTimeBlock: %v", err)
	}
	if next["Monday"][0].Start != "11:00" || next["Monday"][1].Start != "16:00" {
		t.Errorf("blocks not re-sorted: %v", next["Monday"])
	}
	assertInvariants(t, next)
}

func TestUpdateTimeBlock_NormalizesRawInput(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Monday": {{Start: "09:00", End: "17:00"}},
	}
	next, err := UpdateTimeBlock(avail, "Monday", 0, FieldStart, "08:15:00")
	if err != nil {
		t.Fatalf("UpdateTimeBlock: %v", err)
	}
	if next["Monday"][0].Start != "08:15" {
		t.Errorf("want normalized 08:15, got %q", next["Monday"][0].Start)
	}
}

func TestRemoveTimeBlock_LastBlockRemovesDay(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Sunday": {{Start: "10:00", End: "12:00"}},
	}
	next, err := RemoveTimeBlock(avail, "Sunday", 0)
	if err != nil {
		t.Fatalf("RemoveTimeBlock: %v", err)
	}
	if _, ok := next["Sunday"]; ok {
		t.Errorf("day with zero blocks must be absent from the map, got %v", next)
	}
	// Original untouched.
	if len(avail["Sunday"]) != 1 {
		t.Errorf("input map was mutated")
	}
}

func TestRemoveWeekday(t *testing.T) {
	avail := models.WeeklyAvailability{
		"Saturday": {
			{Start: "08:00", End: "10:00"},
			{Start: "11:00", End: "13:00"},
		},
	}
	next := RemoveWeekday(avail, "Saturday")
	if _, ok := next["Saturday"]; ok {
		t.Errorf("weekday not removed")
	}
	if same := RemoveWeekday(next, "Saturday"); len(same) != 0 {
		t.Errorf("removing an absent day must be a no-op")
	}
}

func TestValidate(t *testing.T) {
	good := models.WeeklyAvailability{
		"Monday": {
			{Start: "09:00", End: "12:00"},
			{Start: "12:00", End: "15:00"}, // adjacency is fine
		},
	}
	if err := Validate(good); err != nil {
		t.Fatalf("valid availability rejected: %v", err)
	}

	inverted := models.WeeklyAvailability{
		"Monday": {{Start: "12:00", End: "09:00"}},
	}
	if ErrCode(Validate(inverted)) != CodeInvalidTimeOrder {
		t.Errorf("want invalidTimeOrder for inverted block")
	}

	overlapping := models.WeeklyAvailability{
		"Monday": {
			{Start: "09:00", End: "12:00"},
			{Start: "11:00", End: "13:00"},
		},
	}
	if ErrCode(Validate(overlapping)) != CodeOverlapConflict {
		t.Errorf("want overlapConflict for overlapping blocks")
	}
}
