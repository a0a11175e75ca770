package app

import (
	"testing"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestAttendancePolicyFromConfig(t *testing.T) {
	cfg := config.Config{
		School:   config.SchoolConfig{Latitude: 4.3315, Longitude: 97.4695, RadiusKm: 0.5, Timezone: "Asia/Jakarta"},
		Schedule: config.ScheduleConfig{CheckInStart: 7, CheckInEnd: 8.5, CheckOutStart: 12, CheckOutEnd: 14.5},
		Flow:     config.FlowConfig{PositionTimeout: 10 * time.Second, SubmittedDisplayInterval: 3 * time.Second},
	}

	p := attendancePolicy(cfg)

	assert.Equal(t, 4.3315, p.School.Center.Latitude)
	assert.Equal(t, 0.5, p.School.RadiusKm)
	assert.Equal(t, attendance.Window{Start: 7, End: 8.5}, p.Punctuality.CheckIn)
	assert.Equal(t, attendance.Window{Start: 12, End: 14.5}, p.Punctuality.CheckOut)
	assert.Equal(t, "Asia/Jakarta", p.Location.String())
	assert.Equal(t, 10*time.Second, p.PositionTimeout)
}

func TestSchoolLocationFallsBackToLocal(t *testing.T) {
	loc := schoolLocation(config.Config{School: config.SchoolConfig{Timezone: "Mars/Olympus"}})
	assert.Equal(t, time.Local, loc)
}
