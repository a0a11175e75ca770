package attendance_test

import (
	"errors"
	"testing"
	"time"

	"go-absensi/internal/attendance"
	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/geo"
	"go-absensi/internal/location"

	"github.com/stretchr/testify/assert"
)

const flowUser = "2b1f1c64-0b43-4c4a-9a57-4a3b7f0d6c11"

func started(t *testing.T, typ attendance.Type) attendance.Attempt {
	t.Helper()
	a, eff, err := attendance.Transition(attendance.IdleAttempt(flowUser), attendance.StartEvent{
		ID:             "attempt-1",
		Type:           typ,
		CheckedInToday: typ == attendance.TypeCheckOut,
		At:             at(7, 15),
	})
	assert.NoError(t, err)
	assert.True(t, eff.Has(attendance.EffectAcquirePosition))
	return a
}

func resolved(t *testing.T, typ attendance.Type, within bool) attendance.Attempt {
	t.Helper()
	a, _, err := attendance.Transition(started(t, typ), attendance.PositionAcquiredEvent{
		Coords:     geo.Coordinates{Latitude: 4.3316, Longitude: 97.4694},
		DistanceKm: 0.02,
		Within:     within,
	})
	assert.NoError(t, err)
	return a
}

func TestTransition_Start(t *testing.T) {
	idle := attendance.IdleAttempt(flowUser)

	t.Run("check-in from idle", func(t *testing.T) {
		a, eff, err := attendance.Transition(idle, attendance.StartEvent{ID: "x", Type: attendance.TypeCheckIn, At: at(7, 0)})

		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectAcquirePosition, eff)
		assert.Equal(t, attendance.StateAwaitingLocation, a.State)
		assert.Equal(t, attendance.TypeCheckIn, a.Type)
		assert.Equal(t, "x", a.ID)
		assert.Equal(t, at(7, 0), a.StartedAt)
	})

	tests := []struct {
		name    string
		event   attendance.StartEvent
		wantErr error
	}{
		{"second check-in", attendance.StartEvent{Type: attendance.TypeCheckIn, CheckedInToday: true}, attendanceerrors.ErrAlreadyCheckedIn},
		{"check-out before check-in", attendance.StartEvent{Type: attendance.TypeCheckOut}, attendanceerrors.ErrCheckInRequired},
		{"second check-out", attendance.StartEvent{Type: attendance.TypeCheckOut, CheckedInToday: true, CheckedOutToday: true}, attendanceerrors.ErrAlreadyCheckedOut},
		{"unknown type", attendance.StartEvent{Type: "Masuk"}, attendanceerrors.ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, eff, err := attendance.Transition(idle, tt.event)

			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, attendance.EffectNone, eff)
			assert.Equal(t, idle, a)
		})
	}

	t.Run("start while another attempt runs", func(t *testing.T) {
		running := started(t, attendance.TypeCheckIn)
		a, _, err := attendance.Transition(running, attendance.StartEvent{Type: attendance.TypeCheckIn})

		assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidState))
		assert.Equal(t, running, a)
	})
}

func TestTransition_Position(t *testing.T) {
	t.Run("inside radius resolves address", func(t *testing.T) {
		a, eff, err := attendance.Transition(started(t, attendance.TypeCheckIn), attendance.PositionAcquiredEvent{
			Coords:     geo.Coordinates{Latitude: 4.3316, Longitude: 97.4694},
			DistanceKm: 0.02,
			Within:     true,
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StateLocationResolved, a.State)
		assert.True(t, eff.Has(attendance.EffectResolveAddress))
		assert.False(t, eff.Has(attendance.EffectWarnOutsideRadius))
		assert.Equal(t, 0.02, *a.DistanceKm)
		assert.True(t, a.WithinRadius)
	})

	t.Run("outside radius warns but does not block", func(t *testing.T) {
		a, eff, err := attendance.Transition(started(t, attendance.TypeCheckIn), attendance.PositionAcquiredEvent{
			Coords:     geo.Coordinates{Latitude: 4.40, Longitude: 97.4695},
			DistanceKm: 7.6,
			Within:     false,
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StateLocationResolved, a.State)
		assert.True(t, eff.Has(attendance.EffectResolveAddress))
		assert.True(t, eff.Has(attendance.EffectWarnOutsideRadius))

		a, eff, err = attendance.Transition(a, attendance.SubmitEvent{Keterangan: attendance.KeteranganHadir})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectPersistRecord, eff)
	})

	t.Run("failure returns to idle", func(t *testing.T) {
		locErr := &location.Error{Kind: location.KindPermissionDenied}
		a, eff, err := attendance.Transition(started(t, attendance.TypeCheckIn), attendance.PositionFailedEvent{Err: locErr})

		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectShowError, eff)
		assert.Equal(t, attendance.StateIdle, a.State)
		assert.Empty(t, a.Type)
		assert.Nil(t, a.Coords)
		assert.Contains(t, a.LastError, "permission_denied")
	})

	t.Run("late results are discarded", func(t *testing.T) {
		idle := attendance.IdleAttempt(flowUser)
		lateEvents := []attendance.Event{
			attendance.PositionAcquiredEvent{Within: true},
			attendance.PositionFailedEvent{Err: errors.New("late")},
			attendance.AddressResolvedEvent{},
		}
		for _, ev := range lateEvents {
			a, eff, err := attendance.Transition(idle, ev)
			assert.True(t, errors.Is(err, attendanceerrors.ErrStaleEvent))
			assert.Equal(t, attendance.EffectNone, eff)
			assert.Equal(t, idle, a)
		}

		// posisi kedua setelah lokasi terselesaikan juga dibuang
		r := resolved(t, attendance.TypeCheckIn, true)
		a, _, err := attendance.Transition(r, attendance.PositionAcquiredEvent{DistanceKm: 9})
		assert.True(t, errors.Is(err, attendanceerrors.ErrStaleEvent))
		assert.Equal(t, r, a)
	})
}

func TestTransition_Address(t *testing.T) {
	r := resolved(t, attendance.TypeCheckIn, true)
	addr := "Indra Makmu, Aceh Timur, Aceh"

	a, eff, err := attendance.Transition(r, attendance.AddressResolvedEvent{Address: &addr})
	assert.NoError(t, err)
	assert.Equal(t, attendance.EffectNone, eff)
	assert.Equal(t, attendance.StateLocationResolved, a.State)
	assert.Equal(t, &addr, a.Address)

	t.Run("nil address keeps the flow going", func(t *testing.T) {
		a, _, err := attendance.Transition(r, attendance.AddressResolvedEvent{Address: nil})
		assert.NoError(t, err)
		assert.Nil(t, a.Address)
		assert.True(t, a.AddressResolved)
	})

	t.Run("second address is stale", func(t *testing.T) {
		_, _, err := attendance.Transition(a, attendance.AddressResolvedEvent{Address: &addr})
		assert.True(t, errors.Is(err, attendanceerrors.ErrStaleEvent))
	})
}

func TestTransition_Submit(t *testing.T) {
	t.Run("sick without reason is rejected and state kept", func(t *testing.T) {
		r := resolved(t, attendance.TypeCheckIn, true)

		a, eff, err := attendance.Transition(r, attendance.SubmitEvent{Keterangan: attendance.KeteranganSakit, Reason: "   "})

		assert.True(t, errors.Is(err, attendanceerrors.ErrReasonRequired))
		assert.Equal(t, attendance.EffectNone, eff)
		assert.Equal(t, r, a)
	})

	t.Run("permission with reason", func(t *testing.T) {
		a, eff, err := attendance.Transition(resolved(t, attendance.TypeCheckIn, true), attendance.SubmitEvent{
			Keterangan: attendance.KeteranganIzin,
			Reason:     " Acara keluarga ",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectPersistRecord, eff)
		assert.Equal(t, attendance.StateSubmitting, a.State)
		assert.Equal(t, attendance.KeteranganIzin, a.Keterangan)
		assert.Equal(t, "Acara keluarga", a.Reason)
	})

	t.Run("empty keterangan defaults to hadir", func(t *testing.T) {
		a, _, err := attendance.Transition(resolved(t, attendance.TypeCheckIn, true), attendance.SubmitEvent{})
		assert.NoError(t, err)
		assert.Equal(t, attendance.KeteranganHadir, a.Keterangan)
	})

	t.Run("check-out ignores keterangan and reason", func(t *testing.T) {
		a, _, err := attendance.Transition(resolved(t, attendance.TypeCheckOut, true), attendance.SubmitEvent{
			Keterangan: attendance.KeteranganSakit,
			Reason:     "pusing",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.KeteranganHadir, a.Keterangan)
		assert.Empty(t, a.Reason)
	})

	t.Run("unknown keterangan", func(t *testing.T) {
		_, _, err := attendance.Transition(resolved(t, attendance.TypeCheckIn, true), attendance.SubmitEvent{Keterangan: "Cuti"})
		assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidKeterangan))
	})

	t.Run("submit without attempt", func(t *testing.T) {
		_, _, err := attendance.Transition(attendance.IdleAttempt(flowUser), attendance.SubmitEvent{})
		assert.True(t, errors.Is(err, attendanceerrors.ErrNoActiveAttempt))
	})

	t.Run("submit before location", func(t *testing.T) {
		_, _, err := attendance.Transition(started(t, attendance.TypeCheckIn), attendance.SubmitEvent{})
		assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidState))
	})
}

func TestTransition_Persistence(t *testing.T) {
	submitting, _, err := attendance.Transition(resolved(t, attendance.TypeCheckIn, true), attendance.SubmitEvent{})
	assert.NoError(t, err)

	t.Run("failure keeps submitting and allows resubmit", func(t *testing.T) {
		a, eff, err := attendance.Transition(submitting, attendance.PersistFailedEvent{Err: errors.New("db down")})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectShowError, eff)
		assert.Equal(t, attendance.StateSubmitting, a.State)
		assert.Equal(t, "db down", a.LastError)

		a, eff, err = attendance.Transition(a, attendance.SubmitEvent{})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectPersistRecord, eff)
	})

	t.Run("resubmit keeps the first record id", func(t *testing.T) {
		first, _, err := attendance.Transition(resolved(t, attendance.TypeCheckIn, true), attendance.SubmitEvent{RecordID: "rec-1"})
		assert.NoError(t, err)
		assert.Equal(t, "rec-1", first.RecordID)

		again, _, err := attendance.Transition(first, attendance.SubmitEvent{RecordID: "rec-2"})
		assert.NoError(t, err)
		assert.Equal(t, attendance.StateSubmitting, again.State)
		assert.Equal(t, "rec-1", again.RecordID)
	})

	t.Run("success then reset after display interval", func(t *testing.T) {
		doneAt := at(7, 20)
		a, eff, err := attendance.Transition(submitting, attendance.PersistedEvent{RecordID: "rec-1", At: doneAt})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectScheduleReset, eff)
		assert.Equal(t, attendance.StateSubmitted, a.State)
		assert.Equal(t, "rec-1", a.RecordID)

		early, eff, err := attendance.Transition(a, attendance.TickEvent{Now: doneAt.Add(time.Second), DisplayInterval: 3 * time.Second})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectNone, eff)
		assert.Equal(t, attendance.StateSubmitted, early.State)

		_, _, err = attendance.Transition(a, attendance.CancelEvent{})
		assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidState))

		idle, eff, err := attendance.Transition(a, attendance.TickEvent{Now: doneAt.Add(3 * time.Second), DisplayInterval: 3 * time.Second})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectClearSelection, eff)
		assert.Equal(t, attendance.IdleAttempt(flowUser), idle)
	})

	t.Run("persisted event outside submitting is stale", func(t *testing.T) {
		_, _, err := attendance.Transition(attendance.IdleAttempt(flowUser), attendance.PersistedEvent{RecordID: "x"})
		assert.True(t, errors.Is(err, attendanceerrors.ErrStaleEvent))
	})
}

func TestTransition_Cancel(t *testing.T) {
	for _, a := range []attendance.Attempt{
		attendance.IdleAttempt(flowUser),
		started(t, attendance.TypeCheckIn),
		resolved(t, attendance.TypeCheckIn, false),
	} {
		next, eff, err := attendance.Transition(a, attendance.CancelEvent{})
		assert.NoError(t, err)
		assert.Equal(t, attendance.EffectNone, eff)
		assert.Equal(t, attendance.IdleAttempt(flowUser), next)
	}
}
