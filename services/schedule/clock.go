package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeClock coerces a raw wall-clock fragment into "HH:MM" shape. Each
// colon-separated component is stripped to digits and left-padded to two
// characters; a missing component degrades to "00"; seconds and anything
// after them are discarded. Lenient on purpose: the availability editor
// feeds it keystroke-by-keystroke input, so this never fails. Idempotent.
func NormalizeClock(raw string) string {
	parts := strings.SplitN(raw, ":", 3)
	hour := padComponent(digitsOnly(parts[0]))
	minute := "00"
	if len(parts) > 1 {
		minute = padComponent(digitsOnly(parts[1]))
	}
	return hour + ":" + minute
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func padComponent(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

// ClockToMinutes converts a normalized "HH:MM" string to minutes since
// midnight. Components that fail to parse count as zero, matching the
// leniency of NormalizeClock.
func ClockToMinutes(t string) int {
	parts := strings.SplitN(NormalizeClock(t), ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return hour*60 + minute
}

// MinutesToClock renders minutes since midnight as zero-padded "HH:MM".
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IsCompleteClock reports whether s is already a full "HH:MM" value with
// in-range components. The editor uses it to suppress ordering diagnostics
// while a field is still being typed.
func IsCompleteClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour <= 23 && minute <= 59
}

// Overlaps tests two half-open minute intervals. Strict inequalities on both
// sides, so blocks that merely touch (end of one equals start of the next)
// do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
