package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func validSpecificInput() SpecificInput {
	return SpecificInput{
		EmployeeID: "emp-1",
		Amount:     "1500.50",
		Asset:      "USDT",
		Network:    "Base",
		Date:       time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Hour:       "14",
		Minute:     "30",
		Zone:       "America/New_York",
	}
}

func TestComposeSpecific_BuildsUTCPayload(t *testing.T) {
	composer := NewComposer(fixedNow)

	payload, err := composer.ComposeSpecific(validSpecificInput())
	require.NoError(t, err)

	assert.Equal(t, "emp-1", payload.EmployeeID)
	assert.Equal(t, 1500.50, payload.Amount)
	assert.Equal(t, "usdt", payload.Asset)
	assert.Equal(t, "base", payload.Network)
	assert.Equal(t, PaymentSpecific, payload.ScheduleType)
	// 14:30 EDT on June 10 is 18:30 UTC.
	assert.Equal(t, "2025-06-10T18:30:00Z", payload.ScheduledDateTime)
	assert.Nil(t, payload.Hour)
	assert.Nil(t, payload.Day)
}

func TestComposeSpecific_FieldValidation(t *testing.T) {
	composer := NewComposer(fixedNow)

	cases := []struct {
		name   string
		mutate func(*SpecificInput)
		field  string
	}{
		{"missing employee", func(in *SpecificInput) { in.EmployeeID = " " }, "employeeId"},
		{"empty amount", func(in *SpecificInput) { in.Amount = "" }, "amount"},
		{"non-positive amount", func(in *SpecificInput) { in.Amount = "0" }, "amount"},
		{"negative amount", func(in *SpecificInput) { in.Amount = "-5" }, "amount"},
		{"missing date", func(in *SpecificInput) { in.Date = time.Time{} }, "date"},
		{"hour above range", func(in *SpecificInput) { in.Hour = "24" }, "hour"},
		{"hour not numeric", func(in *SpecificInput) { in.Hour = "noon" }, "hour"},
		{"minute above range", func(in *SpecificInput) { in.Minute = "60" }, "minute"},
		{"unsupported zone", func(in *SpecificInput) { in.Zone = "Etc/GMT+12" }, "timezone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSpecificInput()
			tc.mutate(&in)

			_, err := composer.ComposeSpecific(in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.FieldErrors, tc.field)
		})
	}
}

func TestComposeSpecific_RejectsPastInstant(t *testing.T) {
	composer := NewComposer(fixedNow)

	in := validSpecificInput()
	in.Date = time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)

	_, err := composer.ComposeSpecific(in)
	require.ErrorIs(t, err, ErrNotInFuture)
}

func TestComposeSpecific_RejectsExactlyNow(t *testing.T) {
	composer := NewComposer(fixedNow)

	in := validSpecificInput()
	in.Zone = "UTC"
	in.Date = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	in.Hour = "12"
	in.Minute = "00"

	_, err := composer.ComposeSpecific(in)
	require.ErrorIs(t, err, ErrNotInFuture)
}

func TestComposeSpecific_SpringForwardGap(t *testing.T) {
	composer := NewComposer(func() time.Time {
		return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	})

	in := validSpecificInput()
	in.Date = time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	in.Hour = "02"
	in.Minute = "30"

	_, err := composer.ComposeSpecific(in)
	require.ErrorIs(t, err, ErrNonexistentLocalTime)
}

func validRecurringInput() RecurringInput {
	return RecurringInput{
		EmployeeID: "emp-1",
		Amount:     "2000",
		Asset:      "USDC",
		Network:    "Ethereum",
		Frequency:  FrequencyWeekly,
		Day:        "Friday",
		Hour:       "9",
		Minute:     "0",
		Zone:       "Europe/London",
	}
}

func TestComposeRecurring_WeeklyDayMapping(t *testing.T) {
	composer := NewComposer(fixedNow)

	for name, want := range map[string]int{
		"sunday": 0, "Monday": 1, "TUESDAY": 2, "wednesday": 3,
		"thursday": 4, "Friday": 5, "saturday": 6,
	} {
		in := validRecurringInput()
		in.Day = name

		payload, err := composer.ComposeRecurring(in)
		require.NoError(t, err, "day %q", name)
		require.NotNil(t, payload.Day)
		assert.Equal(t, want, *payload.Day, "day %q", name)
	}
}

func TestComposeRecurring_MonthlyDayVerbatim(t *testing.T) {
	composer := NewComposer(fixedNow)

	in := validRecurringInput()
	in.Frequency = FrequencyMonthly
	// 31 is accepted even though some months are shorter; the backend decides.
	in.Day = "31"

	payload, err := composer.ComposeRecurring(in)
	require.NoError(t, err)
	require.NotNil(t, payload.Date)
	assert.Equal(t, 31, *payload.Date)
	assert.Equal(t, FrequencyMonthly, payload.Frequency)
}

func TestComposeRecurring_DailyNeedsNoDay(t *testing.T) {
	composer := NewComposer(fixedNow)

	in := validRecurringInput()
	in.Frequency = FrequencyDaily
	in.Day = ""

	payload, err := composer.ComposeRecurring(in)
	require.NoError(t, err)
	require.NotNil(t, payload.Day)
	require.NotNil(t, payload.Date)
	assert.Equal(t, 0, *payload.Day)
	assert.Equal(t, 1, *payload.Date)
}

func TestComposeRecurring_FieldValidation(t *testing.T) {
	composer := NewComposer(fixedNow)

	cases := []struct {
		name   string
		mutate func(*RecurringInput)
		field  string
	}{
		{"missing frequency", func(in *RecurringInput) { in.Frequency = "" }, "frequency"},
		{"unknown frequency", func(in *RecurringInput) { in.Frequency = "yearly" }, "frequency"},
		{"weekly without day", func(in *RecurringInput) { in.Day = "" }, "day"},
		{"weekly with bogus day", func(in *RecurringInput) { in.Day = "someday" }, "day"},
		{"monthly day zero", func(in *RecurringInput) { in.Frequency = FrequencyMonthly; in.Day = "0" }, "day"},
		{"monthly day over 31", func(in *RecurringInput) { in.Frequency = FrequencyMonthly; in.Day = "32" }, "day"},
		{"hour out of range", func(in *RecurringInput) { in.Hour = "25" }, "hour"},
		{"minute out of range", func(in *RecurringInput) { in.Minute = "-1" }, "minute"},
		{"missing amount", func(in *RecurringInput) { in.Amount = "" }, "amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRecurringInput()
			tc.mutate(&in)

			_, err := composer.ComposeRecurring(in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.FieldErrors, tc.field)
		})
	}
}

func TestRecurringDraft_FrequencySwitchResetsDay(t *testing.T) {
	draft := &RecurringDraft{}
	draft.SetFrequency(FrequencyWeekly)
	draft.Day = "friday"

	draft.SetFrequency(FrequencyMonthly)
	assert.Empty(t, draft.Day, "weekly day must not survive a switch to monthly")

	draft.Day = "15"
	draft.SetFrequency(FrequencyMonthly)
	assert.Equal(t, "15", draft.Day, "re-selecting the same frequency keeps the day")
}

func TestRecurringPayload_SerializesZeroDay(t *testing.T) {
	composer := NewComposer(fixedNow)

	in := validRecurringInput()
	in.Day = "sunday"

	payload, err := composer.ComposeRecurring(in)
	require.NoError(t, err)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	// Sunday encodes as 0 and must still appear in the body.
	assert.Contains(t, string(raw), `"day":0`)
	assert.NotContains(t, string(raw), "scheduledDateTime")
}

func TestNormalizeBlurDefaults(t *testing.T) {
	assert.Equal(t, "09", NormalizeHour("9"))
	assert.Equal(t, "23", NormalizeHour("23"))
	assert.Equal(t, "12", NormalizeHour(""))
	assert.Equal(t, "12", NormalizeHour("24"))
	assert.Equal(t, "12", NormalizeHour("abc"))

	assert.Equal(t, "05", NormalizeMinute("5"))
	assert.Equal(t, "00", NormalizeMinute(""))
	assert.Equal(t, "00", NormalizeMinute("60"))
}
