package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// KickoffLayout renders a local first-pitch time, e.g. "07:05 PM".
const KickoffLayout = "03:04 PM"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DateForOffset returns the calendar day offset days away from now, as seen in loc.
// Calendar arithmetic keeps DST transitions from skipping or repeating a day.
func DateForOffset(now time.Time, offset int, loc *time.Location) time.Time {
	return Midnight(now, loc).AddDate(0, 0, offset)
}

// FormatKickoff converts a UTC game time into loc and formats it with KickoffLayout.
func FormatKickoff(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(KickoffLayout)
}

// ResolveLocation loads a timezone by name. "Local" and "" map to the host zone;
// unknown names report false.
func ResolveLocation(name string) (*time.Location, bool) {
	if name == "" || name == "Local" {
		return time.Local, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}
