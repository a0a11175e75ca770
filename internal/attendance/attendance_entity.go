package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeCheckIn  Type = "Datang"
	TypeCheckOut Type = "Pulang"
)

type Remark string

const (
	RemarkOnTime Remark = "Tepat Waktu"
	RemarkLate   Remark = "Terlambat"
)

type Status string

const (
	StatusHadir      Status = "Hadir"
	StatusTidakHadir Status = "Tidak Hadir"
)

type Keterangan string

const (
	KeteranganHadir Keterangan = "Hadir"
	KeteranganIzin  Keterangan = "Izin"
	KeteranganSakit Keterangan = "Sakit"
)

func (k Keterangan) NeedsReason() bool {
	return k == KeteranganIzin || k == KeteranganSakit
}

func (k Keterangan) Valid() bool {
	return k == KeteranganHadir || k.NeedsReason()
}

const (
	NotificationValid   = "Valid"
	NotificationInvalid = "Tidak Valid"
)

// Record adalah satu kejadian absensi. Tidak pernah di-update; hanya dihapus
// lewat penghapusan user.
type Record struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	UserName  string    `gorm:"column:user_name;type:varchar(255);not null"`
	JenisGTK  string    `gorm:"column:jenis_gtk;type:varchar(100)"`
	StatusGTK string    `gorm:"column:status_gtk;type:varchar(100)"`
	Timestamp int64     `gorm:"column:timestamp;not null;index"` // epoch ms
	Day       string    `gorm:"column:day;type:varchar(10);not null"`

	SchoolLatitude    float64  `gorm:"column:school_latitude;not null"`
	SchoolLongitude   float64  `gorm:"column:school_longitude;not null"`
	EmployeeLatitude  *float64 `gorm:"column:employee_latitude"`
	EmployeeLongitude *float64 `gorm:"column:employee_longitude"`
	Address           *string  `gorm:"column:address;type:text"`
	IsGPSActive       bool     `gorm:"column:is_gps_active;not null"`
	DistanceKm        *float64 `gorm:"column:distance_km"`
	IsWithinRadius    bool     `gorm:"column:is_within_radius;not null"`

	Type           Type       `gorm:"column:type;type:varchar(10);not null"`
	Remark         Remark     `gorm:"column:remark;type:varchar(20);not null"`
	Status         Status     `gorm:"column:status;type:varchar(20);not null"`
	Keterangan     Keterangan `gorm:"column:keterangan;type:varchar(10);not null"`
	KeteranganIzin *string    `gorm:"column:keterangan_izin;type:text"`
	Notification   string     `gorm:"column:notification;type:varchar(20);not null"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// Actor adalah guru yang sedang melakukan absensi, diambil dari token.
type Actor struct {
	UserID    string
	Name      string
	JenisGTK  string
	StatusGTK string
}
