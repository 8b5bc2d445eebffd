package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/balcao/internal/period"
)

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2024, 2, 17, 15, 4, 5, 0, time.UTC)

	r := period.CurrentMonth(now)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.End)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), r.LastDay())
}

func TestParse(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "Defaults",
			wantStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Explicit",
			start:     "2024-01-15",
			end:       "2024-01-20",
			wantStart: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "SingleDay",
			start:     "2024-03-03",
			end:       "2024-03-03",
			wantStart: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "BadFormat",
			start:   "03/03/2024",
			wantErr: true,
		},
		{
			name:    "Inverted",
			start:   "2024-03-10",
			end:     "2024-03-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := period.Parse(tt.start, tt.end, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
			assert.True(t, r.Contains(tt.wantEnd.Add(-time.Nanosecond)))
			assert.False(t, r.Contains(tt.wantEnd))
		})
	}
}

func TestRange_LastInstantOfDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	r, err := period.Parse("2026-03-01", "2026-03-31", now)
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2026, 3, 31, 23, 59, 59, 500_000_000, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, 3, 31, 23, 59, 59, 999_999_000, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(r.Start))
	assert.False(t, r.Contains(r.Start.Add(-time.Microsecond)))

	assert.Equal(t, "2026-03-01 - 2026-03-31", r.String())
}
