package service

import (
	"context"
	"testing"
	"time"

	"shiftdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockIn(t *testing.T) {
	t.Parallel()

	t.Run("opens a record", func(t *testing.T) {
		t.Parallel()
		attendance := noopAttendanceRepo()
		var created *models.AttendanceRecord
		attendance.createFn = func(_ context.Context, r *models.AttendanceRecord) error {
			created = r
			return nil
		}
		svc := NewAttendanceService(attendance)

		record, err := svc.ClockIn(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.UserID)
		assert.Nil(t, record.ClockOut)
		assert.False(t, record.ClockIn.IsZero())
	})

	t.Run("rejects double clock-in", func(t *testing.T) {
		t.Parallel()
		attendance := noopAttendanceRepo()
		attendance.getOpenFn = func(_ context.Context, userID uint) (*models.AttendanceRecord, error) {
			return &models.AttendanceRecord{ID: 5, UserID: userID}, nil
		}
		svc := NewAttendanceService(attendance)

		_, err := svc.ClockIn(context.Background(), 1)
		assertValidationError(t, err)
	})
}

func TestClockOut(t *testing.T) {
	t.Parallel()

	t.Run("rejects when not clocked in", func(t *testing.T) {
		t.Parallel()
		svc := NewAttendanceService(noopAttendanceRepo())
		_, err := svc.ClockOut(context.Background(), 1)
		assertValidationError(t, err)
	})

	t.Run("closes the open break too", func(t *testing.T) {
		t.Parallel()
		attendance := noopAttendanceRepo()
		attendance.getOpenFn = func(_ context.Context, userID uint) (*models.AttendanceRecord, error) {
			return &models.AttendanceRecord{ID: 5, UserID: userID, ClockIn: time.Now().Add(-4 * time.Hour)}, nil
		}
		openBreak := &models.BreakRecord{ID: 9, AttendanceID: 5, StartedAt: time.Now().Add(-10 * time.Minute)}
		attendance.getOpenBreakFn = func(_ context.Context, _ uint) (*models.BreakRecord, error) {
			return openBreak, nil
		}
		var updatedBreak *models.BreakRecord
		attendance.updateBreakFn = func(_ context.Context, br *models.BreakRecord) error {
			updatedBreak = br
			return nil
		}
		svc := NewAttendanceService(attendance)

		record, err := svc.ClockOut(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, record.ClockOut)
		require.NotNil(t, updatedBreak)
		assert.NotNil(t, updatedBreak.EndedAt)
	})
}

func TestBreaks(t *testing.T) {
	t.Parallel()

	openShift := func() *attendanceRepoStub {
		attendance := noopAttendanceRepo()
		attendance.getOpenFn = func(_ context.Context, userID uint) (*models.AttendanceRecord, error) {
			return &models.AttendanceRecord{ID: 5, UserID: userID}, nil
		}
		return attendance
	}

	t.Run("requires an open shift", func(t *testing.T) {
		t.Parallel()
		svc := NewAttendanceService(noopAttendanceRepo())
		_, err := svc.StartBreak(context.Background(), 1, models.BreakKindShort)
		assertValidationError(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()
		svc := NewAttendanceService(openShift())
		_, err := svc.StartBreak(context.Background(), 1, "nap")
		assertValidationError(t, err)
	})

	t.Run("only one break at a time", func(t *testing.T) {
		t.Parallel()
		attendance := openShift()
		attendance.getOpenBreakFn = func(_ context.Context, _ uint) (*models.BreakRecord, error) {
			return &models.BreakRecord{ID: 9}, nil
		}
		svc := NewAttendanceService(attendance)
		_, err := svc.StartBreak(context.Background(), 1, models.BreakKindLunch)
		assertValidationError(t, err)
	})

	t.Run("start then end", func(t *testing.T) {
		t.Parallel()
		attendance := openShift()
		var stored *models.BreakRecord
		attendance.createBreakFn = func(_ context.Context, br *models.BreakRecord) error {
			stored = br
			return nil
		}
		attendance.getOpenBreakFn = func(_ context.Context, _ uint) (*models.BreakRecord, error) {
			if stored == nil || stored.EndedAt != nil {
				return nil, nil
			}
			return stored, nil
		}
		attendance.updateBreakFn = func(_ context.Context, br *models.BreakRecord) error {
			stored = br
			return nil
		}
		svc := NewAttendanceService(attendance)

		br, err := svc.StartBreak(context.Background(), 1, models.BreakKindLunch)
		require.NoError(t, err)
		assert.Equal(t, models.BreakKindLunch, br.Kind)
		assert.Nil(t, br.EndedAt)

		ended, err := svc.EndBreak(context.Background(), 1)
		require.NoError(t, err)
		assert.NotNil(t, ended.EndedAt)

		// Ending again fails since no break is open.
		_, err = svc.EndBreak(context.Background(), 1)
		assertValidationError(t, err)
	})
}
