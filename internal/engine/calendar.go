package engine

import (
	"fmt"
	"time"
)

// Weekday returns 1..7 for Monday..Sunday, independent of locale. Go's
// time.Weekday numbers Sunday as 0, so it needs remapping.
func Weekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// NormalizeDate truncates t to a UTC calendar day with no time-of-day
// component. Every date the engine reasons about (absences, "today",
// fairness lookback boundaries) is normalized this way so comparisons
// never trip over timezone or sub-day precision.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange calls fn once for every calendar day in [start, end],
// inclusive of both endpoints. start and end are normalized before
// iterating. fn's error short-circuits the walk.
func DateRange(start, end time.Time, fn func(time.Time) error) error {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

// CombineDateAndHour builds the absolute instant for a schedule's
// start or end hour ("HH:MM") on calendar day d.
func CombineDateAndHour(d time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour %q: %w", hhmm, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
