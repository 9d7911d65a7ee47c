package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizeHour applies the hour field's blur behavior: a valid value is
// zero-padded, anything else falls back to the default of "12".
func NormalizeHour(value string) string {
	if h, ok := parseInRange(value, 0, 23); ok {
		return fmt.Sprintf("%02d", h)
	}
	return "12"
}

// NormalizeMinute applies the minute field's blur behavior: a valid value is
// zero-padded, anything else falls back to "00".
func NormalizeMinute(value string) string {
	if m, ok := parseInRange(value, 0, 59); ok {
		return fmt.Sprintf("%02d", m)
	}
	return "00"
}

func parseInRange(value string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}

// SpecificInput carries the one-off form's fields as entered.
type SpecificInput struct {
	EmployeeID string
	Amount     string
	Asset      string
	Network    string
	Date       time.Time // calendar date from the month grid; y/m/d significant
	Hour       string
	Minute     string
	Zone       string
}

// RecurringInput carries the repeating form's fields as entered. Day holds a
// weekday name for weekly rules or a day-of-month number for monthly rules.
type RecurringInput struct {
	EmployeeID string
	Amount     string
	Asset      string
	Network    string
	Frequency  Frequency
	Day        string
	Hour       string
	Minute     string
	Zone       string
}

// RecurringDraft tracks the repeating form's selector state. Changing the
// frequency clears the day selector so a weekly day never leaks into a
// monthly rule.
type RecurringDraft struct {
	Frequency Frequency
	Day       string
}

// SetFrequency switches the draft's frequency, resetting the day selector
// whenever the frequency actually changes.
func (d *RecurringDraft) SetFrequency(f Frequency) {
	if d == nil {
		return
	}
	if d.Frequency != f {
		d.Day = ""
	}
	d.Frequency = f
}

// Composer validates schedule form input and assembles backend payloads.
type Composer struct {
	now func() time.Time
}

// NewComposer wires the composer's clock; a nil clock uses time.Now.
func NewComposer(now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{now: now}
}

// ComposeSpecific validates a one-off schedule and produces its payload.
// The scheduled instant is derived from the local wall clock plus the
// selected zone, converted to UTC before transmission, and must be strictly
// in the future.
func (c *Composer) ComposeSpecific(in SpecificInput) (Payload, error) {
	vErr := &ValidationError{}

	if strings.TrimSpace(in.EmployeeID) == "" {
		vErr.add("employeeId", "Employee ID is missing")
	}
	amount, amountErr := parseAmount(in.Amount)
	if amountErr != "" {
		vErr.add("amount", amountErr)
	}
	if in.Date.IsZero() {
		vErr.add("date", "Please select a date")
	}
	hour, hourOK := parseInRange(in.Hour, 0, 23)
	if !hourOK {
		vErr.add("hour", "Hour must be between 0 and 23")
	}
	minute, minuteOK := parseInRange(in.Minute, 0, 59)
	if !minuteOK {
		vErr.add("minute", "Minute must be between 0 and 59")
	}
	if !ZoneAllowed(in.Zone) {
		vErr.add("timezone", "Please select a supported timezone")
	}
	if vErr.HasErrors() {
		return Payload{}, vErr
	}

	instant, err := LocalToUTC(in.Date.Year(), in.Date.Month(), in.Date.Day(), hour, minute, in.Zone)
	if err != nil {
		return Payload{}, err
	}
	if !instant.After(c.now().UTC()) {
		return Payload{}, ErrNotInFuture
	}

	return Payload{
		EmployeeID:        strings.TrimSpace(in.EmployeeID),
		Amount:            amount,
		Asset:             normalizeToken(in.Asset, "usdc"),
		Network:           normalizeToken(in.Network, "base"),
		ScheduleType:      PaymentSpecific,
		ScheduledDateTime: instant.Format(time.RFC3339),
	}, nil
}

// ComposeRecurring validates a repeating schedule and produces its payload.
// Weekly day names map to sunday=0..saturday=6; monthly day-of-month values
// 1-31 are passed through verbatim, leaving short-month interpretation to
// the backend scheduler.
func (c *Composer) ComposeRecurring(in RecurringInput) (Payload, error) {
	vErr := &ValidationError{}

	if strings.TrimSpace(in.EmployeeID) == "" {
		vErr.add("employeeId", "Employee information is missing")
	}
	amount, amountErr := parseAmount(in.Amount)
	if amountErr != "" {
		vErr.add("amount", amountErr)
	}
	if !in.Frequency.Valid() {
		vErr.add("frequency", "Please select a frequency")
	}
	hour, hourOK := parseInRange(in.Hour, 0, 23)
	if !hourOK {
		vErr.add("hour", "Hour must be between 0 and 23")
	}
	minute, minuteOK := parseInRange(in.Minute, 0, 59)
	if !minuteOK {
		vErr.add("minute", "Minute must be between 0 and 59")
	}
	if !ZoneAllowed(in.Zone) {
		vErr.add("timezone", "Please select a supported timezone")
	}

	day := 0
	date := 1
	switch in.Frequency {
	case FrequencyWeekly:
		name := strings.ToLower(strings.TrimSpace(in.Day))
		if n, ok := weekdayNumbers[name]; ok {
			day = n
		} else {
			vErr.add("day", "Please select a day of the week")
		}
	case FrequencyMonthly:
		if n, ok := parseInRange(in.Day, 1, 31); ok {
			date = n
		} else {
			vErr.add("day", "Day of month must be between 1 and 31")
		}
	}

	if vErr.HasErrors() {
		return Payload{}, vErr
	}

	return Payload{
		EmployeeID:   strings.TrimSpace(in.EmployeeID),
		Amount:       amount,
		Asset:        normalizeToken(in.Asset, "usdc"),
		Network:      normalizeToken(in.Network, "base"),
		ScheduleType: PaymentRecurring,
		Frequency:    in.Frequency,
		Hour:         &hour,
		Minute:       &minute,
		Day:          &day,
		Date:         &date,
	}, nil
}

func parseAmount(value string) (float64, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, "Please enter an amount"
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || amount <= 0 {
		return 0, "Please enter a valid amount"
	}
	return amount, ""
}

func normalizeToken(value, fallback string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
