package utils

import (
	"os"
	"strconv"
	"time"
)

// CancelLeadTime is the minimum notice a patient must give before their
// slot to self-cancel. CANCEL_LEAD_HOURS overrides the 24h default.
func CancelLeadTime() time.Duration {
	if v := os.Getenv("CANCEL_LEAD_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours >= 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return 24 * time.Hour
}

// SessionTTL is how long the server-side login session record lives.
// SESSION_TTL_MINUTES overrides the 60m default.
func SessionTTL() time.Duration {
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return 60 * time.Minute
}
