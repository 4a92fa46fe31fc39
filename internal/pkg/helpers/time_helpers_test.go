package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("ParseDuration(90s) = %v", got)
	}
	if got := ParseDuration("garbage", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(garbage) = %v, want default", got)
	}
}

func TestDayUTC(t *testing.T) {
	tashkent := time.FixedZone("UZT", 5*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midday stays on the same day",
			in:   time.Date(2025, 5, 11, 13, 45, 12, 0, time.UTC),
			want: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local morning can be the previous UTC day",
			in:   time.Date(2025, 5, 11, 3, 0, 0, 0, tashkent),
			want: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight is idempotent",
			in:   time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayUTC(tt.in); !got.Equal(tt.want) {
				t.Errorf("DayUTC(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthStartUTC(t *testing.T) {
	in := time.Date(2025, 5, 11, 13, 45, 12, 0, time.UTC)
	want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthStartUTC(in); !got.Equal(want) {
		t.Errorf("MonthStartUTC(%v) = %v, want %v", in, got, want)
	}

	// a local time early on the 1st can still belong to the previous UTC month
	tashkent := time.FixedZone("UZT", 5*3600)
	in = time.Date(2025, 5, 1, 3, 0, 0, 0, tashkent)
	want = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthStartUTC(in); !got.Equal(want) {
		t.Errorf("MonthStartUTC(%v) = %v, want %v", in, got, want)
	}
}

func TestDayWindowUTC(t *testing.T) {
	in := time.Date(2025, 5, 11, 23, 59, 59, 0, time.UTC)
	start, end := DayWindowUTC(in)

	if !start.Equal(time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
	// half-open: the end instant belongs to the next window
	if !in.Before(end) {
		t.Error("in-day instant must fall before end")
	}
	nextStart, _ := DayWindowUTC(end)
	if !nextStart.Equal(end) {
		t.Errorf("next window starts at %v, want %v", nextStart, end)
	}
}

func TestSessionsSince(t *testing.T) {
	now := time.Date(2025, 5, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		anchor time.Time
		want   int
	}{
		{"zero anchor equals now", now, 0},
		{"future anchor", now.Add(time.Hour), 0},
		{"one hour ago rounds up to one", now.Add(-time.Hour), 1},
		{"exactly one day", now.AddDate(0, 0, -1), 1},
		{"one day and one second", now.AddDate(0, 0, -1).Add(-time.Second), 2},
		{"ten days", now.AddDate(0, 0, -10), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionsSince(tt.anchor, now); got != tt.want {
				t.Errorf("SessionsSince(%v) = %d, want %d", tt.anchor, got, tt.want)
			}
		})
	}
}
