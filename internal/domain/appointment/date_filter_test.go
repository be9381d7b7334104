package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureDateFilter_Window(t *testing.T) {
	today := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"next_7_days", time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)},
		{"next_30_days", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"next_90_days", time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		f, err := ParseFutureDateFilter(tt.raw)
		require.NoError(t, err)

		from, to := f.Window(today)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, tt.want, to, tt.raw)
	}
}

func TestParseFutureDateFilter_Unknown(t *testing.T) {
	_, err := ParseFutureDateFilter("last_7_days")
	assert.Error(t, err)
}

func TestDateOnly_KeepsLocalCalendarDay(t *testing.T) {
	late := time.Date(2025, 6, 1, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), DateOnly(late))
}
