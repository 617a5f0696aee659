package models

// TimeBlock is a contiguous availability window within one weekday,
// expressed as zero-padded 24-hour "HH:MM" wall-clock times.
// End is strictly after Start; zero-length blocks are invalid.
type TimeBlock struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WeeklyAvailability maps a canonical weekday name ("Monday".."Sunday") to
// that day's blocks, sorted ascending by start time. A weekday with no
// blocks is absent from the map rather than present with an empty list.
type WeeklyAvailability map[string][]TimeBlock

// Weekdays is the canonical ordering used everywhere availability is
// displayed or diffed. Names match time.Weekday.String().
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Clone returns a deep copy so editor operations can stay copy-on-write.
func (w WeeklyAvailability) Clone() WeeklyAvailability {
	out := make(WeeklyAvailability, len(w))
	for day, blocks := range w {
		cp := make([]TimeBlock, len(blocks))
		copy(cp, blocks)
		out[day] = cp
	}
	return out
}

// MissingWeekdays returns the canonical weekdays not yet present, in week
// order. The availability editor offers these as "add day" choices.
func (w WeeklyAvailability) MissingWeekdays() []string {
	var missing []string
	for _, day := range Weekdays {
		if _, ok := w[day]; !ok {
			missing = append(missing, day)
		}
	}
	return missing
}

// AvailabilityEntry is the persisted wire shape: one row per block, ordered
// by weekday then start time.
type AvailabilityEntry struct {
	Weekday   string `bson:"weekday" json:"weekday"`
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
}

// Entries flattens the weekly map into the persisted row shape, in canonical
// weekday order. Blocks within a day keep their sorted order.
func (w WeeklyAvailability) Entries() []AvailabilityEntry {
	var entries []AvailabilityEntry
	for _, day := range Weekdays {
		for _, b := range w[day] {
			entries = append(entries, AvailabilityEntry{
				Weekday:   day,
				StartTime: b.Start,
				EndTime:   b.End,
			})
		}
	}
	return entries
}

// WeeklyFromEntries rebuilds the weekly map from persisted rows, skipping
// rows whose weekday is not one of the canonical seven.
func WeeklyFromEntries(entries []AvailabilityEntry) WeeklyAvailability {
	valid := make(map[string]bool, len(Weekdays))
	for _, d := range Weekdays {
		valid[d] = true
	}
	w := make(WeeklyAvailability)
	for _, e := range entries {
		if !valid[e.Weekday] {
			continue
		}
		w[e.Weekday] = append(w[e.Weekday], TimeBlock{Start: e.StartTime, End: e.EndTime})
	}
	return w
}
