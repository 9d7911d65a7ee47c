package schedule

import (
	"fmt"
	"time"
)

// Zone pairs an IANA zone name with its dropdown label.
type Zone struct {
	Name  string
	Label string
}

// zones is the fixed list offered by the composer. Selection is restricted to
// these names; arbitrary zone input is rejected before any lookup.
var zones = []Zone{
	{Name: "UTC", Label: "UTC (Coordinated Universal Time)"},
	{Name: "America/New_York", Label: "Eastern Time (ET)"},
	{Name: "America/Chicago", Label: "Central Time (CT)"},
	{Name: "America/Denver", Label: "Mountain Time (MT)"},
	{Name: "America/Los_Angeles", Label: "Pacific Time (PT)"},
	{Name: "Europe/London", Label: "London (GMT/BST)"},
	{Name: "Europe/Paris", Label: "Paris (CET/CEST)"},
	{Name: "Europe/Berlin", Label: "Berlin (CET/CEST)"},
	{Name: "Africa/Lagos", Label: "Lagos (WAT) - Nigeria"},
	{Name: "Asia/Tokyo", Label: "Tokyo (JST)"},
	{Name: "Asia/Shanghai", Label: "Shanghai (CST)"},
	{Name: "Asia/Kolkata", Label: "India (IST)"},
	{Name: "Australia/Sydney", Label: "Sydney (AEST/AEDT)"},
}

// Zones returns the selectable timezone list in display order.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// ZoneAllowed reports whether name is in the supported list.
func ZoneAllowed(name string) bool {
	for _, z := range zones {
		if z.Name == name {
			return true
		}
	}
	return false
}

// DefaultZone returns the host's zone when it appears in the supported list,
// falling back to UTC. This mirrors auto-detecting the user's timezone.
func DefaultZone() string {
	if name := time.Local.String(); ZoneAllowed(name) {
		return name
	}
	return "UTC"
}

// LocalToUTC converts a wall-clock reading in the named zone to the absolute
// UTC instant, respecting the zone's daylight-saving rules at that specific
// date rather than a fixed offset.
//
// Wall clocks skipped by a spring-forward transition do not correspond to any
// instant; those are rejected with ErrNonexistentLocalTime instead of being
// silently shifted.
func LocalToUTC(year int, month time.Month, day, hour, minute int, zone string) (time.Time, error) {
	if !ZoneAllowed(zone) {
		return time.Time{}, ErrZoneNotAllowed
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: load zone %q: %w", zone, err)
	}

	local := time.Date(year, month, day, hour, minute, 0, 0, loc)
	// time.Date normalizes a nonexistent wall clock onto a neighboring valid
	// instant; a changed reading after the round trip marks the DST gap.
	if local.Year() != year || local.Month() != month || local.Day() != day ||
		local.Hour() != hour || local.Minute() != minute {
		return time.Time{}, ErrNonexistentLocalTime
	}
	return local.UTC(), nil
}

// OffsetAt samples the zone's UTC offset in effect at the given instant.
func OffsetAt(zone string, at time.Time) (time.Duration, error) {
	if !ZoneAllowed(zone) {
		return 0, ErrZoneNotAllowed
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, fmt.Errorf("schedule: load zone %q: %w", zone, err)
	}
	_, seconds := at.In(loc).Zone()
	return time.Duration(seconds) * time.Second, nil
}

// CurrentTimeIn renders the present wall clock in the named zone as HH:MM,
// shown next to the timezone selector for reference.
func CurrentTimeIn(zone string, now time.Time) (string, error) {
	if !ZoneAllowed(zone) {
		return "", ErrZoneNotAllowed
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", fmt.Errorf("schedule: load zone %q: %w", zone, err)
	}
	return now.In(loc).Format("15:04"), nil
}
