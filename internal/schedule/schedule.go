// Package schedule implements the payment schedule composer: calendar
// arithmetic, wall-clock to UTC conversion against named IANA zones, and
// assembly of the payloads the payroll backend's scheduler consumes.
package schedule

import "errors"

// PaymentType distinguishes one-off and repeating payment instructions.
type PaymentType string

const (
	// PaymentSpecific is a one-time payment at an exact future instant.
	PaymentSpecific PaymentType = "specific"
	// PaymentRecurring is a repeating payment rule interpreted by the backend.
	PaymentRecurring PaymentType = "recurring"
)

// Frequency represents supported recurrence intervals.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether the frequency is one of the supported intervals.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

var (
	// ErrZoneNotAllowed indicates a timezone outside the supported list.
	ErrZoneNotAllowed = errors.New("schedule: timezone is not in the supported list")
	// ErrNonexistentLocalTime indicates a wall clock that does not exist in the
	// selected zone because a daylight-saving transition skips over it.
	ErrNonexistentLocalTime = errors.New("schedule: selected local time does not exist in the selected timezone")
	// ErrNotInFuture indicates a one-off schedule whose UTC instant is not
	// strictly after the current instant.
	ErrNotInFuture = errors.New("schedule: scheduled time must be in the future")
)

// ValidationError captures field level issues the form can surface inline.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// Payload is the schedule-creation request body for the backend's
// /wallet/schedule-transaction/ endpoint. Specific schedules carry an
// absolute UTC instant; recurring schedules carry the rule fields verbatim.
type Payload struct {
	EmployeeID        string      `json:"employeeId"`
	Amount            float64     `json:"amount"`
	Asset             string      `json:"asset"`
	Network           string      `json:"network"`
	ScheduleType      PaymentType `json:"scheduleType"`
	ScheduledDateTime string      `json:"scheduledDateTime,omitempty"`
	Frequency         Frequency   `json:"frequency,omitempty"`
	Hour              *int        `json:"hour,omitempty"`
	Minute            *int        `json:"minute,omitempty"`
	Day               *int        `json:"day,omitempty"`
	Date              *int        `json:"date,omitempty"`
}

// weekdayNumbers maps day-of-week names to the backend's encoding, where
// Sunday is 0 and Saturday is 6.
var weekdayNumbers = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// WeekdayNames lists the selectable day-of-week names in backend order.
func WeekdayNames() []string {
	return []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
}
