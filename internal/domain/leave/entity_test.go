package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single day",
			start: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "inclusive range",
			start: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			want:  5,
		},
		{
			name:  "across month boundary",
			start: time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := LeaveRequest{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, lr.Days())
		})
	}
}

func TestDecide(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("approves a pending request", func(t *testing.T) {
		lr := LeaveRequest{Status: StatusPending}
		require.NoError(t, lr.Decide(true, "manager-1", now))

		assert.Equal(t, StatusApproved, lr.Status)
		assert.Equal(t, "manager-1", *lr.DecidedBy)
		assert.Equal(t, now, *lr.DecidedAt)
	})

	t.Run("rejects a pending request", func(t *testing.T) {
		lr := LeaveRequest{Status: StatusPending}
		require.NoError(t, lr.Decide(false, "manager-1", now))
		assert.Equal(t, StatusRejected, lr.Status)
	})

	t.Run("resolved requests are terminal", func(t *testing.T) {
		lr := LeaveRequest{Status: StatusApproved}
		assert.ErrorIs(t, lr.Decide(false, "manager-1", now), ErrLeaveAlreadyProcessed)
	})
}
