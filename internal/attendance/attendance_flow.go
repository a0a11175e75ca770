package attendance

import (
	"strings"
	"time"

	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/geo"
)

type State string

const (
	StateIdle             State = "idle"
	StateAwaitingLocation State = "awaiting_location"
	StateLocationResolved State = "location_resolved"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
)

// Attempt adalah satu proses absensi yang sedang berjalan untuk seorang user.
type Attempt struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	State           State            `json:"state"`
	Type            Type             `json:"type,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
	Coords          *geo.Coordinates `json:"coords,omitempty"`
	DistanceKm      *float64         `json:"distance_km,omitempty"`
	WithinRadius    bool             `json:"within_radius"`
	Address         *string          `json:"address,omitempty"`
	AddressResolved bool             `json:"address_resolved"`
	Keterangan      Keterangan       `json:"keterangan,omitempty"`
	Reason          string           `json:"reason,omitempty"`
	RecordID        string           `json:"record_id,omitempty"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	LastError       string           `json:"last_error,omitempty"`
}

func IdleAttempt(userID string) Attempt {
	return Attempt{UserID: userID, State: StateIdle}
}

// Effect adalah kumpulan flag aksi yang harus dijalankan pemanggil setelah transisi.
type Effect uint8

const EffectNone Effect = 0

const (
	EffectAcquirePosition Effect = 1 << iota
	EffectResolveAddress
	EffectWarnOutsideRadius
	EffectShowError
	EffectPersistRecord
	EffectScheduleReset
	EffectClearSelection
)

func (e Effect) Has(flag Effect) bool {
	return e&flag != 0
}

type Event interface {
	isEvent()
}

type StartEvent struct {
	ID              string
	Type            Type
	CheckedInToday  bool
	CheckedOutToday bool
	At              time.Time
}

type PositionAcquiredEvent struct {
	Coords     geo.Coordinates
	DistanceKm float64
	Within     bool
}

type PositionFailedEvent struct {
	Err error
}

type AddressResolvedEvent struct {
	Address *string
}

type SubmitEvent struct {
	Keterangan Keterangan
	Reason     string
	// RecordID dipakai hanya saat pertama masuk submitting; submit ulang memakai id lama.
	RecordID string
}

type PersistedEvent struct {
	RecordID string
	At       time.Time
}

type PersistFailedEvent struct {
	Err error
}

type TickEvent struct {
	Now             time.Time
	DisplayInterval time.Duration
}

type CancelEvent struct{}

func (StartEvent) isEvent()            {}
func (PositionAcquiredEvent) isEvent() {}
func (PositionFailedEvent) isEvent()   {}
func (AddressResolvedEvent) isEvent()  {}
func (SubmitEvent) isEvent()           {}
func (PersistedEvent) isEvent()        {}
func (PersistFailedEvent) isEvent()    {}
func (TickEvent) isEvent()             {}
func (CancelEvent) isEvent()           {}

// Transition adalah mesin status absensi. Fungsi murni: tidak ada I/O, efek
// dikembalikan ke pemanggil. Bila error, attempt dikembalikan tanpa perubahan.
func Transition(a Attempt, ev Event) (Attempt, Effect, error) {
	if a.State == "" {
		a.State = StateIdle
	}

	switch e := ev.(type) {
	case StartEvent:
		return onStart(a, e)

	case PositionAcquiredEvent:
		if a.State != StateAwaitingLocation {
			return a, EffectNone, attendanceerrors.ErrStaleEvent
		}
		next := a
		next.State = StateLocationResolved
		coords := e.Coords
		dist := e.DistanceKm
		next.Coords = &coords
		next.DistanceKm = &dist
		next.WithinRadius = e.Within
		next.LastError = ""
		eff := EffectResolveAddress
		if !e.Within {
			eff |= EffectWarnOutsideRadius
		}
		return next, eff, nil

	case PositionFailedEvent:
		if a.State != StateAwaitingLocation {
			return a, EffectNone, attendanceerrors.ErrStaleEvent
		}
		next := IdleAttempt(a.UserID)
		if e.Err != nil {
			next.LastError = e.Err.Error()
		}
		return next, EffectShowError, nil

	case AddressResolvedEvent:
		if a.State != StateLocationResolved || a.AddressResolved {
			return a, EffectNone, attendanceerrors.ErrStaleEvent
		}
		next := a
		next.Address = e.Address
		next.AddressResolved = true
		return next, EffectNone, nil

	case SubmitEvent:
		return onSubmit(a, e)

	case PersistedEvent:
		if a.State != StateSubmitting {
			return a, EffectNone, attendanceerrors.ErrStaleEvent
		}
		next := a
		next.State = StateSubmitted
		next.RecordID = e.RecordID
		next.SubmittedAt = e.At
		next.LastError = ""
		return next, EffectScheduleReset, nil

	case PersistFailedEvent:
		if a.State != StateSubmitting {
			return a, EffectNone, attendanceerrors.ErrStaleEvent
		}
		next := a
		if e.Err != nil {
			next.LastError = e.Err.Error()
		}
		return next, EffectShowError, nil

	case TickEvent:
		if a.State != StateSubmitted || e.Now.Before(a.SubmittedAt.Add(e.DisplayInterval)) {
			return a, EffectNone, nil
		}
		return IdleAttempt(a.UserID), EffectClearSelection, nil

	case CancelEvent:
		if a.State == StateSubmitted {
			return a, EffectNone, attendanceerrors.ErrInvalidState
		}
		return IdleAttempt(a.UserID), EffectNone, nil
	}

	return a, EffectNone, attendanceerrors.ErrInvalidState
}

func onStart(a Attempt, e StartEvent) (Attempt, Effect, error) {
	if a.State != StateIdle {
		return a, EffectNone, attendanceerrors.ErrInvalidState
	}

	switch e.Type {
	case TypeCheckIn:
		if e.CheckedInToday {
			return a, EffectNone, attendanceerrors.ErrAlreadyCheckedIn
		}
	case TypeCheckOut:
		if !e.CheckedInToday {
			return a, EffectNone, attendanceerrors.ErrCheckInRequired
		}
		if e.CheckedOutToday {
			return a, EffectNone, attendanceerrors.ErrAlreadyCheckedOut
		}
	default:
		return a, EffectNone, attendanceerrors.ErrInvalidType
	}

	next := IdleAttempt(a.UserID)
	next.ID = e.ID
	next.State = StateAwaitingLocation
	next.Type = e.Type
	next.StartedAt = e.At
	return next, EffectAcquirePosition, nil
}

func onSubmit(a Attempt, e SubmitEvent) (Attempt, Effect, error) {
	switch a.State {
	case StateLocationResolved, StateSubmitting:
	case StateIdle:
		return a, EffectNone, attendanceerrors.ErrNoActiveAttempt
	default:
		return a, EffectNone, attendanceerrors.ErrInvalidState
	}

	keterangan := KeteranganHadir
	reason := ""
	if a.Type == TypeCheckIn {
		if e.Keterangan != "" {
			keterangan = e.Keterangan
		}
		if !keterangan.Valid() {
			return a, EffectNone, attendanceerrors.ErrInvalidKeterangan
		}
		if keterangan.NeedsReason() {
			reason = strings.TrimSpace(e.Reason)
			if reason == "" {
				return a, EffectNone, attendanceerrors.ErrReasonRequired
			}
		}
	}

	next := a
	if a.State != StateSubmitting {
		next.RecordID = e.RecordID
	}
	next.State = StateSubmitting
	next.Keterangan = keterangan
	next.Reason = reason
	next.LastError = ""
	return next, EffectPersistRecord, nil
}
