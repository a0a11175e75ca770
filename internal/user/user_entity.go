package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
)

// JenisGTKOptions dan StatusGTKOptions adalah pilihan yang diterima saat registrasi guru.
var JenisGTKOptions = []string{
	"Guru Mata Pelajaran",
	"Guru Bimbingan Konseling",
	"Guru Kelas",
	"Kepala Sekolah",
	"Wakil Kepala Sekolah",
	"Staff Tata Usaha",
	"Pustakawan",
	"Laboran",
}

var StatusGTKOptions = []string{
	"PNS (Pegawai Negeri Sipil)",
	"PPPK (Pegawai Pemerintah dengan Perjanjian Kerja)",
	"GTT (Guru Tidak Tetap)",
	"PTT (Pegawai Tidak Tetap)",
	"Honorer",
}

func ValidJenisGTK(v string) bool {
	return contains(JenisGTKOptions, v)
}

func ValidStatusGTK(v string) bool {
	return contains(StatusGTKOptions, v)
}

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

// User: Name sekaligus username login. Unik per role (idx_users_name_role).
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_users_name_role"`
	Email     *string   `gorm:"column:email;type:varchar(255)"`
	Password  string    `gorm:"column:password;type:text;not null"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:TEACHER;uniqueIndex:idx_users_name_role"`
	JenisGTK  string    `gorm:"column:jenis_gtk;type:varchar(100)"`
	StatusGTK string    `gorm:"column:status_gtk;type:varchar(100)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
