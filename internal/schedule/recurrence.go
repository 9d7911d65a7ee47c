package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRule indicates a recurrence rule the preview cannot interpret.
var ErrInvalidRule = errors.New("schedule: invalid recurrence rule")

// Rule describes a recurring payment for next-run preview purposes. Weekday
// uses the backend encoding (sunday=0); Monthday is 1-31.
type Rule struct {
	Frequency Frequency
	Weekday   int
	Monthday  int
	Hour      int
	Minute    int
	Zone      string
}

// NextOccurrence computes the rule's next execution wall clock strictly after
// the given instant, rendered in the rule's zone. The preview is display-only;
// the backend scheduler remains authoritative.
//
// Months that lack the requested day-of-month are skipped, and wall clocks
// that fall into a daylight-saving gap advance to the following occurrence.
func NextOccurrence(rule Rule, after time.Time) (time.Time, error) {
	if !rule.Frequency.Valid() {
		return time.Time{}, ErrInvalidRule
	}
	if rule.Hour < 0 || rule.Hour > 23 || rule.Minute < 0 || rule.Minute > 59 {
		return time.Time{}, ErrInvalidRule
	}
	if !ZoneAllowed(rule.Zone) {
		return time.Time{}, ErrZoneNotAllowed
	}
	loc, err := time.LoadLocation(rule.Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: load zone %q: %w", rule.Zone, err)
	}

	local := after.In(loc)
	year, month, day := local.Date()

	switch rule.Frequency {
	case FrequencyDaily:
		return nextDaily(year, month, day, rule, after, loc)
	case FrequencyWeekly:
		if rule.Weekday < 0 || rule.Weekday > 6 {
			return time.Time{}, ErrInvalidRule
		}
		return nextWeekly(year, month, day, rule, after, loc)
	case FrequencyMonthly:
		if rule.Monthday < 1 || rule.Monthday > 31 {
			return time.Time{}, ErrInvalidRule
		}
		return nextMonthly(year, month, rule, after, loc)
	}
	return time.Time{}, ErrInvalidRule
}

func nextDaily(year int, month time.Month, day int, rule Rule, after time.Time, loc *time.Location) (time.Time, error) {
	for i := 0; i < 3; i++ {
		candidate := time.Date(year, month, day+i, 0, 0, 0, 0, loc)
		instant, err := LocalToUTC(candidate.Year(), candidate.Month(), candidate.Day(), rule.Hour, rule.Minute, rule.Zone)
		if errors.Is(err, ErrNonexistentLocalTime) {
			continue
		}
		if err != nil {
			return time.Time{}, err
		}
		if instant.After(after) {
			return instant.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidRule
}

func nextWeekly(year int, month time.Month, day int, rule Rule, after time.Time, loc *time.Location) (time.Time, error) {
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	offset := (rule.Weekday - int(start.Weekday()) + 7) % 7
	for i := 0; i < 3; i++ {
		candidate := start.AddDate(0, 0, offset+7*i)
		instant, err := LocalToUTC(candidate.Year(), candidate.Month(), candidate.Day(), rule.Hour, rule.Minute, rule.Zone)
		if errors.Is(err, ErrNonexistentLocalTime) {
			continue
		}
		if err != nil {
			return time.Time{}, err
		}
		if instant.After(after) {
			return instant.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidRule
}

func nextMonthly(year int, month time.Month, rule Rule, after time.Time, loc *time.Location) (time.Time, error) {
	// Up to 48 months covers any run of short months plus DST skips.
	for i := 0; i < 48; i++ {
		y, m := year, month
		for j := 0; j < i; j++ {
			y, m = NextMonth(y, m)
		}
		if daysIn(y, m) < rule.Monthday {
			continue
		}
		instant, err := LocalToUTC(y, m, rule.Monthday, rule.Hour, rule.Minute, rule.Zone)
		if errors.Is(err, ErrNonexistentLocalTime) {
			continue
		}
		if err != nil {
			return time.Time{}, err
		}
		if instant.After(after) {
			return instant.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidRule
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
