package attendance_test

import (
	"testing"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/geo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var wib = time.FixedZone("WIB", 7*3600)

func defaultPunctuality() attendance.PunctualityPolicy {
	return attendance.PunctualityPolicy{
		CheckIn:  attendance.Window{Start: 7.0, End: 8.5},
		CheckOut: attendance.Window{Start: 12.0, End: 14.5},
	}
}

func defaultPolicy() attendance.Policy {
	return attendance.Policy{
		School: geo.Geofence{
			Center:   geo.Coordinates{Latitude: 4.3315, Longitude: 97.4695},
			RadiusKm: 0.5,
		},
		Punctuality:     defaultPunctuality(),
		Location:        wib,
		PositionTimeout: 10 * time.Second,
		DisplayInterval: 3 * time.Second,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, wib)
}

func TestPunctualityPolicy_ClassifyRemark(t *testing.T) {
	p := defaultPunctuality()

	tests := []struct {
		name string
		typ  attendance.Type
		at   time.Time
		want attendance.Remark
	}{
		{"check-in 06:59 is late", attendance.TypeCheckIn, at(6, 59), attendance.RemarkLate},
		{"check-in 07:00 is on time", attendance.TypeCheckIn, at(7, 0), attendance.RemarkOnTime},
		{"check-in 08:30 is on time", attendance.TypeCheckIn, at(8, 30), attendance.RemarkOnTime},
		{"check-in 08:31 is late", attendance.TypeCheckIn, at(8, 31), attendance.RemarkLate},
		{"check-out 11:59 is late", attendance.TypeCheckOut, at(11, 59), attendance.RemarkLate},
		{"check-out 12:00 is on time", attendance.TypeCheckOut, at(12, 0), attendance.RemarkOnTime},
		{"check-out 14:30 is on time", attendance.TypeCheckOut, at(14, 30), attendance.RemarkOnTime},
		{"check-out 14:31 is late", attendance.TypeCheckOut, at(14, 31), attendance.RemarkLate},
		{"seconds are ignored", attendance.TypeCheckIn, at(8, 30).Add(59 * time.Second), attendance.RemarkOnTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ClassifyRemark(tt.typ, tt.at))
		})
	}
}

func TestDayLabel(t *testing.T) {
	// 10 Maret 2025 adalah Senin
	assert.Equal(t, "Senin", attendance.DayLabel(at(8, 0)))
	assert.Equal(t, "Jumat", attendance.DayLabel(at(8, 0).AddDate(0, 0, 4)))
	assert.Equal(t, "Minggu", attendance.DayLabel(at(8, 0).AddDate(0, 0, 6)))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, attendance.StatusHadir, attendance.StatusFor(attendance.KeteranganHadir))
	assert.Equal(t, attendance.StatusTidakHadir, attendance.StatusFor(attendance.KeteranganIzin))
	assert.Equal(t, attendance.StatusTidakHadir, attendance.StatusFor(attendance.KeteranganSakit))
}

func TestParseType(t *testing.T) {
	typ, err := attendance.ParseType("Pulang")
	assert.NoError(t, err)
	assert.Equal(t, attendance.TypeCheckOut, typ)

	_, err = attendance.ParseType("Masuk")
	assert.Error(t, err)
}

func TestBuildRecord(t *testing.T) {
	policy := defaultPolicy()
	userID := uuid.New()
	actor := attendance.Actor{
		UserID:    userID.String(),
		Name:      "Budi Guru",
		JenisGTK:  "Guru Mata Pelajaran",
		StatusGTK: "PNS (Pegawai Negeri Sipil)",
	}
	coords := geo.Coordinates{Latitude: 4.3320, Longitude: 97.4695}
	dist, within := policy.School.Evaluate(coords)
	addr := "Indra Makmu, Aceh Timur"

	t.Run("sick check-in keeps the reason and is not present", func(t *testing.T) {
		a := attendance.Attempt{
			UserID:       userID.String(),
			State:        attendance.StateSubmitting,
			Type:         attendance.TypeCheckIn,
			Coords:       &coords,
			DistanceKm:   &dist,
			WithinRadius: within,
			Address:      &addr,
			Keterangan:   attendance.KeteranganSakit,
			Reason:       "Demam",
		}

		rec := attendance.BuildRecord(a, actor, userID, policy, at(9, 0))

		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, userID, rec.UserID)
		assert.Equal(t, "Budi Guru", rec.UserName)
		assert.Equal(t, "Senin", rec.Day)
		assert.Equal(t, at(9, 0).UnixMilli(), rec.Timestamp)
		assert.Equal(t, attendance.RemarkLate, rec.Remark)
		assert.Equal(t, attendance.StatusTidakHadir, rec.Status)
		assert.Equal(t, attendance.KeteranganSakit, rec.Keterangan)
		if assert.NotNil(t, rec.KeteranganIzin) {
			assert.Equal(t, "Demam", *rec.KeteranganIzin)
		}
		assert.True(t, rec.IsGPSActive)
		assert.True(t, rec.IsWithinRadius)
		assert.Equal(t, 4.3315, rec.SchoolLatitude)
		assert.Equal(t, 4.3320, *rec.EmployeeLatitude)
		assert.Equal(t, &addr, rec.Address)
		assert.Equal(t, attendance.NotificationValid, rec.Notification)
	})

	t.Run("check-out is present without free text", func(t *testing.T) {
		a := attendance.Attempt{
			UserID:     userID.String(),
			State:      attendance.StateSubmitting,
			Type:       attendance.TypeCheckOut,
			Keterangan: attendance.KeteranganHadir,
		}

		rec := attendance.BuildRecord(a, actor, userID, policy, at(13, 0))

		assert.Equal(t, attendance.RemarkOnTime, rec.Remark)
		assert.Equal(t, attendance.StatusHadir, rec.Status)
		assert.Nil(t, rec.KeteranganIzin)
		assert.False(t, rec.IsGPSActive)
		assert.Nil(t, rec.EmployeeLatitude)
		assert.Nil(t, rec.DistanceKm)
	})

	t.Run("uses the record id reserved on the attempt", func(t *testing.T) {
		reserved := uuid.New()
		a := attendance.Attempt{
			UserID:     userID.String(),
			State:      attendance.StateSubmitting,
			Type:       attendance.TypeCheckOut,
			Keterangan: attendance.KeteranganHadir,
			RecordID:   reserved.String(),
		}

		rec := attendance.BuildRecord(a, actor, userID, policy, at(13, 0))

		assert.Equal(t, reserved, rec.ID)
	})
}

func TestTallyCheckIns(t *testing.T) {
	rows := []attendance.Record{
		{Type: attendance.TypeCheckIn, Keterangan: attendance.KeteranganHadir, Remark: attendance.RemarkOnTime},
		{Type: attendance.TypeCheckIn, Keterangan: attendance.KeteranganHadir, Remark: attendance.RemarkLate},
		{Type: attendance.TypeCheckIn, Keterangan: attendance.KeteranganIzin, Remark: attendance.RemarkLate},
		{Type: attendance.TypeCheckIn, Keterangan: attendance.KeteranganSakit, Remark: attendance.RemarkOnTime},
		{Type: attendance.TypeCheckOut, Keterangan: attendance.KeteranganHadir, Remark: attendance.RemarkLate},
	}

	got := attendance.TallyCheckIns(rows)

	assert.Equal(t, attendance.Tally{Hadir: 2, Izin: 1, Sakit: 1, Terlambat: 2, Total: 4}, got)
}

func TestSortNewestFirst(t *testing.T) {
	rows := []attendance.Record{{Timestamp: 1}, {Timestamp: 3}, {Timestamp: 2}}
	attendance.SortNewestFirst(rows)
	assert.Equal(t, []int64{3, 2, 1}, []int64{rows[0].Timestamp, rows[1].Timestamp, rows[2].Timestamp})
}
