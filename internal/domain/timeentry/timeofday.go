package timeentry

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// TimeOfDay is a wall-clock time with no date component. Callers pair it with
// an entry date; elapsed-time arithmetic works at minutes resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:MM:SS" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid clock time %q: %w", s, err)
		}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) minutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

// Before compares at minutes resolution, matching the elapsed-hours formula.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.minutesSinceMidnight() < u.minutesSinceMidnight()
}

// HoursBetween returns (out - in) as fractional hours at minutes resolution.
// A clock-out earlier than the clock-in yields a negative result; callers
// must reject it (crossing midnight is not supported).
func HoursBetween(in, out TimeOfDay) decimal.Decimal {
	diff := out.minutesSinceMidnight() - in.minutesSinceMidnight()
	return decimal.NewFromInt(int64(diff)).Div(minutesPerHour)
}
