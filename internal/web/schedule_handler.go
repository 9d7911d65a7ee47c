package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coinomad/payroll-dashboard/internal/api"
	"github.com/coinomad/payroll-dashboard/internal/schedule"
)

// scheduleForm carries the composer's state as it travels through query
// strings and form posts.
type scheduleForm struct {
	EmployeeID string
	Type       string // specific | recurring
	Zone       string
	Year       int
	Month      time.Month
	Date       string // selected day, 2006-01-02
	Hour       string
	Minute     string
	Amount     string
	Asset      string
	Network    string
	Frequency  schedule.Frequency
	Day        string
}

func (h *Handler) parseScheduleForm(r *http.Request) scheduleForm {
	_ = r.ParseForm()
	values := r.Form

	form := scheduleForm{
		EmployeeID: values.Get("employee"),
		Type:       values.Get("type"),
		Zone:       values.Get("zone"),
		Date:       values.Get("date"),
		Hour:       values.Get("hour"),
		Minute:     values.Get("minute"),
		Amount:     values.Get("amount"),
		Asset:      values.Get("asset"),
		Network:    values.Get("network"),
		Frequency:  schedule.Frequency(values.Get("frequency")),
		Day:        values.Get("day"),
	}
	if form.Type != "recurring" {
		form.Type = "specific"
	}
	if !schedule.ZoneAllowed(form.Zone) {
		form.Zone = schedule.DefaultZone()
	}
	if form.Hour == "" {
		form.Hour = schedule.NormalizeHour("")
	}
	if form.Minute == "" {
		form.Minute = schedule.NormalizeMinute("")
	}
	if !form.Frequency.Valid() {
		form.Frequency = schedule.FrequencyMonthly
	}
	// A day picked under one frequency must not ride into another; the form
	// posts the frequency it was rendered with so a switch clears the day.
	if shown := schedule.Frequency(values.Get("shown_frequency")); shown.Valid() {
		draft := schedule.RecurringDraft{Frequency: shown, Day: form.Day}
		draft.SetFrequency(form.Frequency)
		form.Day = draft.Day
	}

	now := h.now().UTC()
	if loc, err := time.LoadLocation(form.Zone); err == nil {
		now = now.In(loc)
	}
	form.Year = now.Year()
	form.Month = now.Month()
	if y, err := strconv.Atoi(values.Get("year")); err == nil && y > 0 {
		form.Year = y
	}
	if m, err := strconv.Atoi(values.Get("month")); err == nil && m >= 1 && m <= 12 {
		form.Month = time.Month(m)
	}
	return form
}

// query rebuilds the canonical query string for calendar navigation links.
func (f scheduleForm) query(overrides map[string]string) string {
	values := url.Values{}
	values.Set("employee", f.EmployeeID)
	values.Set("type", f.Type)
	values.Set("zone", f.Zone)
	values.Set("year", strconv.Itoa(f.Year))
	values.Set("month", strconv.Itoa(int(f.Month)))
	if f.Date != "" {
		values.Set("date", f.Date)
	}
	values.Set("hour", f.Hour)
	values.Set("minute", f.Minute)
	if f.Amount != "" {
		values.Set("amount", f.Amount)
	}
	if f.Asset != "" {
		values.Set("asset", f.Asset)
	}
	if f.Network != "" {
		values.Set("network", f.Network)
	}
	values.Set("frequency", string(f.Frequency))
	if f.Day != "" {
		values.Set("day", f.Day)
	}
	for key, value := range overrides {
		values.Set(key, value)
	}
	return "/schedule?" + values.Encode()
}

type calendarCell struct {
	Day      int
	Date     string
	Link     string
	Padding  bool
	Selected bool
	Today    bool
}

type scheduleView struct {
	Page
	Employee api.Employee
	Form     scheduleForm
	Errors   map[string]string

	Zones    []schedule.Zone
	ZoneTime string

	MonthLabel string
	Weekdays   []string
	Weeks      [][]calendarCell
	PrevLink   string
	NextLink   string

	SpecificLink  string
	RecurringLink string
	QuickTimes    []quickTime

	WeekdayNames []string
	MonthDays    []int

	UTCPreview string
	NextRun    string

	Schedules []api.ScheduleSummary
}

type quickTime struct {
	Label string
	Link  string
}

// SchedulePage renders the payment composer for one employee: calendar and
// time selection for one-off payments, or the rule form for recurring ones.
func (h *Handler) SchedulePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	form := h.parseScheduleForm(r)
	if form.EmployeeID == "" {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}

	sess, _ := SessionFromContext(r.Context())
	employees, err := h.client.Employees(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, r.URL.RequestURI())
		return
	}
	employee, ok := findEmployee(employees, form.EmployeeID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	view := h.buildScheduleView(r, employee, form, nil)
	h.renderer.Render(r.Context(), w, http.StatusOK, "schedule", view)
}

func (h *Handler) buildScheduleView(r *http.Request, employee api.Employee, form scheduleForm, fieldErrors map[string]string) scheduleView {
	prevYear, prevMonth := schedule.PreviousMonth(form.Year, form.Month)
	nextYear, nextMonth := schedule.NextMonth(form.Year, form.Month)

	view := scheduleView{
		Page:          h.page(r, "Schedule payment", "employees"),
		Employee:      employee,
		Form:          form,
		Errors:        fieldErrors,
		Zones:         schedule.Zones(),
		MonthLabel:    schedule.MonthLabel(form.Year, form.Month),
		Weekdays:      schedule.Weekdays(),
		PrevLink:      navLink(form, prevYear, prevMonth),
		NextLink:      navLink(form, nextYear, nextMonth),
		SpecificLink:  form.query(map[string]string{"type": "specific"}),
		RecurringLink: form.query(map[string]string{"type": "recurring"}),
		WeekdayNames:  schedule.WeekdayNames(),
		MonthDays:     monthDays(),
		Schedules:     employee.AllSchedules(),
	}

	if zoneTime, err := schedule.CurrentTimeIn(form.Zone, h.now()); err == nil {
		view.ZoneTime = zoneTime
	}

	for _, preset := range []struct{ label, hour string }{
		{"9:00 AM", "09"},
		{"12:00 PM", "12"},
		{"5:00 PM", "17"},
	} {
		view.QuickTimes = append(view.QuickTimes, quickTime{
			Label: preset.label,
			Link:  form.query(map[string]string{"hour": preset.hour, "minute": "00"}),
		})
	}

	today := h.now().UTC()
	if loc, err := time.LoadLocation(form.Zone); err == nil {
		today = today.In(loc)
	}
	view.Weeks = buildCalendar(form, today)

	if form.Type == "specific" {
		view.UTCPreview = h.utcPreview(form)
	} else {
		view.NextRun = h.nextRunPreview(form)
	}
	return view
}

func navLink(form scheduleForm, year int, month time.Month) string {
	return form.query(map[string]string{
		"year":  strconv.Itoa(year),
		"month": strconv.Itoa(int(month)),
	})
}

func buildCalendar(form scheduleForm, today time.Time) [][]calendarCell {
	grid := schedule.MonthGrid(form.Year, form.Month)
	todayKey := today.Format("2006-01-02")

	cells := make([]calendarCell, 0, len(grid)+6)
	for _, day := range grid {
		if day.IsZero() {
			cells = append(cells, calendarCell{Padding: true})
			continue
		}
		key := day.Format("2006-01-02")
		cells = append(cells, calendarCell{
			Day:      day.Day(),
			Date:     key,
			Link:     form.query(map[string]string{"date": key}),
			Selected: key == form.Date,
			Today:    key == todayKey,
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, calendarCell{Padding: true})
	}

	weeks := make([][]calendarCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// utcPreview shows the exact transmitted instant for the current selection.
func (h *Handler) utcPreview(form scheduleForm) string {
	date, err := time.Parse("2006-01-02", form.Date)
	if err != nil {
		return ""
	}
	hour, err := strconv.Atoi(form.Hour)
	if err != nil {
		return ""
	}
	minute, err := strconv.Atoi(form.Minute)
	if err != nil {
		return ""
	}
	instant, err := schedule.LocalToUTC(date.Year(), date.Month(), date.Day(), hour, minute, form.Zone)
	if err != nil {
		return ""
	}
	return instant.Format("Jan 2, 2006 15:04 UTC")
}

// nextRunPreview shows when the recurring rule would fire next.
func (h *Handler) nextRunPreview(form scheduleForm) string {
	rule := schedule.Rule{
		Frequency: form.Frequency,
		Zone:      form.Zone,
		Monthday:  1,
	}
	var err error
	if rule.Hour, err = strconv.Atoi(form.Hour); err != nil {
		return ""
	}
	if rule.Minute, err = strconv.Atoi(form.Minute); err != nil {
		return ""
	}
	switch form.Frequency {
	case schedule.FrequencyWeekly:
		rule.Weekday = -1
		for i, name := range schedule.WeekdayNames() {
			if strings.EqualFold(name, form.Day) {
				rule.Weekday = i
			}
		}
	case schedule.FrequencyMonthly:
		if rule.Monthday, err = strconv.Atoi(form.Day); err != nil {
			return ""
		}
	}

	next, err := schedule.NextOccurrence(rule, h.now())
	if err != nil {
		return ""
	}
	return next.Format("Mon, Jan 2, 2006 at 15:04 MST")
}

// CreateSpecific validates and submits a one-off payment schedule.
func (h *Handler) CreateSpecific(w http.ResponseWriter, r *http.Request) {
	form := h.parseScheduleForm(r)
	form.Type = "specific"

	sess, _ := SessionFromContext(r.Context())
	employees, err := h.client.Employees(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, form.query(nil))
		return
	}
	employee, ok := findEmployee(employees, form.EmployeeID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	input := schedule.SpecificInput{
		EmployeeID: form.EmployeeID,
		Amount:     form.Amount,
		Asset:      pick(form.Asset, employee.Asset),
		Network:    pick(form.Network, employee.Network),
		Hour:       form.Hour,
		Minute:     form.Minute,
		Zone:       form.Zone,
	}
	if date, err := time.Parse("2006-01-02", form.Date); err == nil {
		input.Date = date
	}

	payload, err := h.composer.ComposeSpecific(input)
	if err != nil {
		h.renderComposeFailure(w, r, employee, form, err)
		return
	}
	if _, err := sess.EmployerClaims(); err != nil {
		h.renderComposeFailure(w, r, employee, form, errEmployerUnknown)
		return
	}

	h.submitSchedule(w, r, employee, form, payload)
}

// CreateRecurring validates and submits a repeating payment schedule.
func (h *Handler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	form := h.parseScheduleForm(r)
	form.Type = "recurring"

	sess, _ := SessionFromContext(r.Context())
	employees, err := h.client.Employees(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, form.query(nil))
		return
	}
	employee, ok := findEmployee(employees, form.EmployeeID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	payload, err := h.composer.ComposeRecurring(schedule.RecurringInput{
		EmployeeID: form.EmployeeID,
		Amount:     form.Amount,
		Asset:      pick(form.Asset, employee.Asset),
		Network:    pick(form.Network, employee.Network),
		Frequency:  form.Frequency,
		Day:        form.Day,
		Hour:       form.Hour,
		Minute:     form.Minute,
		Zone:       form.Zone,
	})
	if err != nil {
		h.renderComposeFailure(w, r, employee, form, err)
		return
	}
	if _, err := sess.EmployerClaims(); err != nil {
		h.renderComposeFailure(w, r, employee, form, errEmployerUnknown)
		return
	}

	h.submitSchedule(w, r, employee, form, payload)
}

var errEmployerUnknown = errors.New("Unable to get employer information. Please log in again.")

func (h *Handler) submitSchedule(w http.ResponseWriter, r *http.Request, employee api.Employee, form scheduleForm, payload schedule.Payload) {
	sess, _ := SessionFromContext(r.Context())
	if err := h.client.ScheduleTransaction(r.Context(), sess.Token, payload); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			view := h.buildScheduleView(r, employee, form, map[string]string{"form": apiErr.Message})
			h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "schedule", view)
			return
		}
		h.renderBackendError(w, r, err, form.query(nil))
		return
	}
	http.Redirect(w, r, "/employees?scheduled=1", http.StatusSeeOther)
}

// renderComposeFailure re-renders the composer with the entered values and
// the validation outcome.
func (h *Handler) renderComposeFailure(w http.ResponseWriter, r *http.Request, employee api.Employee, form scheduleForm, err error) {
	fieldErrors := map[string]string{}

	var vErr *schedule.ValidationError
	switch {
	case errors.As(err, &vErr):
		for field, message := range vErr.FieldErrors {
			fieldErrors[field] = message
		}
	case errors.Is(err, schedule.ErrNonexistentLocalTime):
		fieldErrors["time"] = "That local time does not exist on the selected date. Pick another time."
	case errors.Is(err, schedule.ErrNotInFuture):
		fieldErrors["time"] = "Scheduled time must be in the future"
	case errors.Is(err, schedule.ErrZoneNotAllowed):
		fieldErrors["timezone"] = "Please select a supported timezone"
	default:
		fieldErrors["form"] = err.Error()
	}

	view := h.buildScheduleView(r, employee, form, fieldErrors)
	h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "schedule", view)
}

// CancelSchedule deletes a scheduled payment. When the backend reports the
// schedule already gone or executed, its message is shown but the flow still
// completes.
func (h *Handler) CancelSchedule(w http.ResponseWriter, r *http.Request, id string) {
	sess, _ := SessionFromContext(r.Context())
	if err := h.client.DeleteScheduledTransaction(r.Context(), sess.Token, id); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			http.Redirect(w, r, "/employees?notice="+url.QueryEscape(apiErr.Message), http.StatusSeeOther)
			return
		}
		h.renderBackendError(w, r, err, "/employees")
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func pick(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func monthDays() []int {
	days := make([]int, 31)
	for i := range days {
		days[i] = i + 1
	}
	return days
}
