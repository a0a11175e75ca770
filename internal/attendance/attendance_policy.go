package attendance

import (
	"strings"
	"time"

	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/geo"

	"github.com/google/uuid"
)

// Window adalah rentang jam desimal inklusif, 8.5 = 08:30.
type Window struct {
	Start float64
	End   float64
}

func (w Window) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

type PunctualityPolicy struct {
	CheckIn  Window
	CheckOut Window
}

// ClassifyRemark memakai jam dan menit lokal (detik diabaikan).
func (p PunctualityPolicy) ClassifyRemark(typ Type, local time.Time) Remark {
	t := float64(local.Hour()) + float64(local.Minute())/60

	w := p.CheckIn
	if typ == TypeCheckOut {
		w = p.CheckOut
	}
	if w.Contains(t) {
		return RemarkOnTime
	}
	return RemarkLate
}

// Policy menggabungkan semua aturan yang dipakai saat absensi.
type Policy struct {
	School          geo.Geofence
	Punctuality     PunctualityPolicy
	Location        *time.Location
	PositionTimeout time.Duration
	DisplayInterval time.Duration
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func (p Policy) StartOfDay(t time.Time) time.Time {
	l := t.In(p.loc())
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, p.loc())
}

var hari = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

func DayLabel(t time.Time) string {
	return hari[t.Weekday()]
}

func StatusFor(k Keterangan) Status {
	if k == KeteranganHadir {
		return StatusHadir
	}
	return StatusTidakHadir
}

func ParseType(s string) (Type, error) {
	switch Type(strings.TrimSpace(s)) {
	case TypeCheckIn:
		return TypeCheckIn, nil
	case TypeCheckOut:
		return TypeCheckOut, nil
	default:
		return "", attendanceerrors.ErrInvalidType
	}
}

// BuildRecord menyusun record dari attempt yang sudah disubmit. Remark selalu dihitung di sini.
func BuildRecord(a Attempt, actor Actor, userID uuid.UUID, p Policy, at time.Time) Record {
	local := at.In(p.loc())

	id, err := uuid.Parse(a.RecordID)
	if err != nil {
		id = uuid.New()
	}
	rec := Record{
		ID:              id,
		UserID:          userID,
		UserName:        actor.Name,
		JenisGTK:        actor.JenisGTK,
		StatusGTK:       actor.StatusGTK,
		Timestamp:       at.UnixMilli(),
		Day:             DayLabel(local),
		SchoolLatitude:  p.School.Center.Latitude,
		SchoolLongitude: p.School.Center.Longitude,
		Address:         a.Address,
		IsGPSActive:     a.Coords != nil,
		DistanceKm:      a.DistanceKm,
		IsWithinRadius:  a.WithinRadius,
		Type:            a.Type,
		Remark:          p.Punctuality.ClassifyRemark(a.Type, local),
		Status:          StatusFor(a.Keterangan),
		Keterangan:      a.Keterangan,
		Notification:    NotificationValid,
	}
	if a.Coords != nil {
		lat, lng := a.Coords.Latitude, a.Coords.Longitude
		rec.EmployeeLatitude = &lat
		rec.EmployeeLongitude = &lng
	}
	if a.Type == TypeCheckIn && a.Keterangan.NeedsReason() {
		reason := a.Reason
		rec.KeteranganIzin = &reason
	}
	return rec
}
