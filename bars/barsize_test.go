package bars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBarSize(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"1h", time.Hour},
		{"90m", 90 * time.Minute},
		{"1d", 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{" 5m ", 5 * time.Minute},
	}
	for _, tc := range cases {
		got, err := ParseBarSize(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseBarSizeInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "15", "-15m", "0m", "0d", "xd", "1.5w"} {
		_, err := ParseBarSize(in)
		assert.ErrorIs(t, err, ErrInvalidBarSize, "input %q", in)
	}
}
