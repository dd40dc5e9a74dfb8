package helpers

import (
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

// ParseTimeOrNow parses an RFC 3339 timestamp, falling back to the current
// time when the value is empty or malformed. Event start/end times arrive as
// ISO-8601 strings and default to "now" when absent.
func ParseTimeOrNow(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("Failed to parse timestamp, using current time")
		return time.Now()
	}
	return t
}
