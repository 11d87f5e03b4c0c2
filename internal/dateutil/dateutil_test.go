package dateutil

import (
	"testing"
	"time"
)

func TestKeyUsesLocalCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 23:30 local is already the next day in UTC-ahead zones relative to
	// a UTC rendering. The key must follow the wall clock, not UTC.
	at := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	if got := Key(at); got != "2024-06-01" {
		t.Errorf("Key = %q, want 2024-06-01", got)
	}
	if got := Key(at.UTC()); got != "2024-06-01" {
		t.Logf("UTC rendering differs as expected: %q", got)
	}
}

func TestOffsetOrdering(t *testing.T) {
	today := Today()
	tomorrow := Offset(1)
	yesterday := Offset(-1)

	if !(yesterday < today && today < tomorrow) {
		t.Errorf("date keys not lexically ordered: %q %q %q", yesterday, today, tomorrow)
	}
}

func TestNextDays(t *testing.T) {
	keys := NextDays(7)
	if len(keys) != 7 {
		t.Fatalf("NextDays(7) returned %d keys", len(keys))
	}
	if keys[0] != Today() {
		t.Errorf("first key = %q, want today %q", keys[0], Today())
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			t.Errorf("keys not strictly increasing at %d: %q <= %q", i, keys[i], keys[i-1])
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	key := "2024-06-01"
	parsed := Parse(key)
	if parsed.IsZero() {
		t.Fatal("Parse returned zero time for valid key")
	}
	if got := Key(parsed); got != key {
		t.Errorf("round trip = %q, want %q", got, key)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"2024-06-01", true},
		{"2024-6-1", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.key); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(Today()); got != "Today" {
		t.Errorf("Label(today) = %q", got)
	}
	if got := Label(Offset(1)); got != "Tomorrow" {
		t.Errorf("Label(tomorrow) = %q", got)
	}
	if got := Label("bogus"); got != "bogus" {
		t.Errorf("Label(bogus) = %q, want input echoed", got)
	}
}
