// Package dateutil produces the YYYY-MM-DD date keys used as the sole
// temporal grouping unit across the app. Keys are computed in the local
// time zone, not UTC, so a task added late in the evening stays on the
// day the user sees.
package dateutil

import "time"

// KeyLayout is the date key format
const KeyLayout = "2006-01-02"

// Key returns the date key for t in t's location
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Today returns today's date key in local time
func Today() string {
	return Key(time.Now())
}

// Offset returns the date key n days after today (negative n for the past)
func Offset(n int) string {
	return Key(time.Now().AddDate(0, 0, n))
}

// NextDays returns date keys for today through today+(n-1)
func NextDays(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = Offset(i)
	}
	return keys
}

// Parse converts a date key back to a local-midnight time. Returns the
// zero time for malformed keys.
func Parse(key string) time.Time {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether key is a well-formed date key
func Valid(key string) bool {
	_, err := time.ParseInLocation(KeyLayout, key, time.Local)
	return err == nil
}

// Label formats a date key for display: "Today", "Tomorrow", or a short
// human date like "Mon, Jan 2"
func Label(key string) string {
	switch key {
	case Today():
		return "Today"
	case Offset(1):
		return "Tomorrow"
	}
	t := Parse(key)
	if t.IsZero() {
		return key
	}
	if t.Year() == time.Now().Year() {
		return t.Format("Mon, Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

// Weekday returns the short weekday name for a date key ("Mon")
func Weekday(key string) string {
	t := Parse(key)
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon")
}

// DayOfMonth returns the day-of-month portion of a date key ("02" -> "2")
func DayOfMonth(key string) string {
	t := Parse(key)
	if t.IsZero() {
		return ""
	}
	return t.Format("2")
}
