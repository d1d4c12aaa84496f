package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRegularization(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("moves an absent day to pending", func(t *testing.T) {
		att := &Attendance{Status: StatusAbsent, RegularizeRequest: RegularizeNone}

		err := att.RequestRegularization(checkIn, checkOut, "forgot to check in")
		require.NoError(t, err)

		assert.Equal(t, StatusPendingRegularize, att.Status)
		assert.Equal(t, RegularizePending, att.RegularizeRequest)
		assert.Equal(t, checkIn, *att.RequestedCheckIn)
		assert.Equal(t, checkOut, *att.RequestedCheckOut)
		assert.Equal(t, "forgot to check in", *att.RegularizationReason)
	})

	t.Run("rejects a second request while pending", func(t *testing.T) {
		att := &Attendance{Status: StatusPendingRegularize, RegularizeRequest: RegularizePending}

		err := att.RequestRegularization(checkIn, checkOut, "again")
		assert.ErrorIs(t, err, ErrRegularizationPending)
	})

	t.Run("rejects an already regularized record", func(t *testing.T) {
		att := &Attendance{Status: StatusApprovedRegularise, RegularizeRequest: RegularizeApproved, IsRegularized: true}

		err := att.RequestRegularization(checkIn, checkOut, "again")
		assert.ErrorIs(t, err, ErrAlreadyRegularized)
	})

	t.Run("rejects leave-covered days", func(t *testing.T) {
		att := &Attendance{Status: StatusOnLeave, RegularizeRequest: RegularizeNone}

		err := att.RequestRegularization(checkIn, checkOut, "was here")
		assert.ErrorIs(t, err, ErrRegularizationNotAllowed)
	})
}

func TestApproveRegularization(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	att := &Attendance{Status: StatusAbsent, RegularizeRequest: RegularizeNone}
	require.NoError(t, att.RequestRegularization(checkIn, checkOut, "forgot"))

	err := att.ApproveRegularization("manager-1")
	require.NoError(t, err)

	assert.Equal(t, StatusApprovedRegularise, att.Status)
	assert.Equal(t, RegularizeApproved, att.RegularizeRequest)
	assert.True(t, att.IsRegularized)
	assert.Equal(t, "manager-1", *att.RegularizedBy)
	assert.Equal(t, checkIn, *att.CheckInTime)
	assert.Equal(t, checkOut, *att.CheckOutTime)
	require.NotNil(t, att.WorkDurationHours)
	assert.InDelta(t, 9.0, *att.WorkDurationHours, 0.001)

	// Terminal: cannot be decided twice.
	assert.ErrorIs(t, att.ApproveRegularization("manager-1"), ErrRegularizationNotPending)
	assert.ErrorIs(t, att.RejectRegularization("manager-1"), ErrRegularizationNotPending)
}

func TestRejectRegularization(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	att := &Attendance{Status: StatusAbsent, RegularizeRequest: RegularizeNone}
	require.NoError(t, att.RequestRegularization(checkIn, checkOut, "forgot"))

	err := att.RejectRegularization("manager-1")
	require.NoError(t, err)

	assert.Equal(t, StatusRejectRegularise, att.Status)
	assert.Equal(t, RegularizeRejected, att.RegularizeRequest)
	assert.False(t, att.IsRegularized)
	// Rejection never touches the live times.
	assert.Nil(t, att.CheckInTime)
	assert.Nil(t, att.CheckOutTime)

	// A rejected day stays open for another attempt.
	assert.True(t, att.CanRequestRegularization())
	require.NoError(t, att.RequestRegularization(checkIn, checkOut, "second attempt"))
	assert.Equal(t, RegularizePending, att.RegularizeRequest)
}

func TestMarkLeave(t *testing.T) {
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	hours := 4.5

	att := &Attendance{
		Status:            StatusHalfDay,
		CheckInTime:       &in,
		WorkDurationHours: &hours,
		RegularizeRequest: RegularizeNone,
	}

	att.MarkLeave(true)
	assert.Equal(t, StatusOnLeave, att.Status)
	assert.Nil(t, att.CheckInTime)
	assert.Nil(t, att.WorkDurationHours)

	att.MarkLeave(false)
	assert.Equal(t, StatusPaidLeave, att.Status)
}
