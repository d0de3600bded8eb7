package bars

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseBarSize parses a time-bar size expression into a window length.
// Accepts everything time.ParseDuration does ("30s", "15m", "1h") plus day
// and week suffixes ("1d", "2w") matching the bar sizes the data team uses
// downstream. The result must be positive.
func ParseBarSize(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty bar size", ErrInvalidBarSize)
	}

	var d time.Duration
	switch unit := trimmed[len(trimmed)-1]; unit {
	case 'd', 'w':
		n, err := strconv.Atoi(trimmed[:len(trimmed)-1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidBarSize, s)
		}
		d = time.Duration(n) * 24 * time.Hour
		if unit == 'w' {
			d *= 7
		}
	default:
		var err error
		d, err = time.ParseDuration(trimmed)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidBarSize, s)
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: %q is not positive", ErrInvalidBarSize, s)
	}
	return d, nil
}
