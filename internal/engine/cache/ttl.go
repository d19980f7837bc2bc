package cache

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TTL bounds.
const (
	DefaultTTL = 7 * 24 * time.Hour
	MinTTL     = time.Minute
	MaxTTL     = 90 * 24 * time.Hour

	hoursPerDay = 24
)

// ErrInvalidTTL is returned for TTLs outside [MinTTL, MaxTTL].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %s and %s", FormatTTL(MinTTL), FormatTTL(MaxTTL))

// ParseTTL accepts integer seconds ("3600"), Go durations ("36h") and
// whole days ("7d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty TTL")
	}

	var d time.Duration
	switch {
	case strings.HasSuffix(s, "d"):
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid TTL %q: %w", s, err)
		}
		d = time.Duration(days) * hoursPerDay * time.Hour
	default:
		if secs, err := strconv.Atoi(s); err == nil {
			d = time.Duration(secs) * time.Second
			break
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid TTL %q: %w", s, err)
		}
		d = parsed
	}

	if err := ValidateTTL(d); err != nil {
		return 0, err
	}
	return d, nil
}

// ValidateTTL checks d against the allowed range.
func ValidateTTL(d time.Duration) error {
	if d < MinTTL || d > MaxTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, FormatTTL(d))
	}
	return nil
}

// FormatTTL renders d as "45s", "30m", "5h", "7d" or "2d3h".
func FormatTTL(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < hoursPerDay*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
