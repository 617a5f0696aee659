package schedule

import "testing"

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09:00", "09:00"},
		{"9:0", "09:00"},
		{"9", "09:00"},
		{"", "00:00"},
		{"09:00:00.000000", "09:00"},
		{"7:45", "07:45"},
		{"1a:3b", "01:03"},
		{":30", "00:30"},
		{"12:", "12:00"},
	}
	for _, c := range cases {
		if got := NormalizeClock(c.in); got != c.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeClock_Idempotent(t *testing.T) {
	inputs := []string{"9:5", "", "23:59", "bogus", "07:15:30", "1:2:3"}
	for _, in := range inputs {
		once := NormalizeClock(in)
		if twice := NormalizeClock(once); twice != once {
			t.Errorf("NormalizeClock not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestClockConversions(t *testing.T) {
	cases := []struct {
		clock   string
		minutes int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"09:30", 570},
		{"16:30", 990},
		{"23:59", 1439},
	}
	for _, c := range cases {
		if got := ClockToMinutes(c.clock); got != c.minutes {
			t.Errorf("ClockToMinutes(%q) = %d, want %d", c.clock, got, c.minutes)
		}
		if got := MinutesToClock(c.minutes); got != c.clock {
			t.Errorf("MinutesToClock(%d) = %q, want %q", c.minutes, got, c.clock)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 60, 120, 180, 240, false},
		{"adjacent is not overlap", 60, 120, 120, 180, false},
		{"partial", 60, 130, 120, 180, true},
		{"contained", 60, 240, 120, 180, true},
		{"identical", 60, 120, 60, 120, true},
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
		// Symmetry must hold for every pair.
		if got := Overlaps(c.bStart, c.bEnd, c.aStart, c.aEnd); got != c.want {
			t.Errorf("%s: Overlaps not symmetric", c.name)
		}
	}
}

func TestIsCompleteClock(t *testing.T) {
	complete := []string{"00:00", "09:30", "23:59"}
	for _, s := range complete {
		if !IsCompleteClock(s) {
			t.Errorf("IsCompleteClock(%q) = false, want true", s)
		}
	}
	incomplete := []string{"9:30", "09:3", "09-30", "24:00", "09:60", "", "0930"}
	for _, s := range incomplete {
		if IsCompleteClock(s) {
			t.Errorf("IsCompleteClock(%q) = true, want false", s)
		}
	}
}
