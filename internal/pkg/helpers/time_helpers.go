package helpers

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DayUTC truncates t to its UTC calendar day. The one-record-per-day window
// is always computed in UTC regardless of the host timezone.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStartUTC returns midnight UTC on the first day of t's month, the
// default aggregation window for per-user summaries.
func MonthStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DayWindowUTC returns the half-open [midnight, next midnight) UTC window
// containing t.
func DayWindowUTC(t time.Time) (start, end time.Time) {
	start = DayUTC(t)
	return start, start.Add(24 * time.Hour)
}

// SessionsSince counts the whole days between anchor and now, inclusive:
// ceil((now - anchor) / 24h). It models how many days attendance could have
// been taken since the anchor, not how many records exist.
func SessionsSince(anchor, now time.Time) int {
	if !anchor.Before(now) {
		return 0
	}
	return int(math.Ceil(now.Sub(anchor).Hours() / 24))
}
