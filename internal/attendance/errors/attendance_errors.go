package attendanceerrors

import (
	"go-absensi/internal/shared/apperror"
	"net/http"
)

var (
	ErrLocationUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"Gagal mendapatkan lokasi. Pastikan GPS aktif dan Anda telah memberikan izin lokasi.",
		http.StatusUnprocessableEntity,
	)
	ErrLocationDenied = apperror.New(
		apperror.CodeForbidden,
		"Izin lokasi ditolak. Mohon izinkan akses lokasi untuk melakukan absensi.",
		http.StatusForbidden,
	)
	ErrLocationTimeout = apperror.New(
		apperror.CodeInvalidState,
		"Waktu pengambilan lokasi habis. Mohon ulangi proses absensi.",
		http.StatusRequestTimeout,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Alasan izin/sakit harus diisi.",
		http.StatusBadRequest,
	)
	ErrInvalidKeterangan = apperror.New(
		apperror.CodeInvalidInput,
		"Keterangan harus Hadir, Izin, atau Sakit",
		http.StatusBadRequest,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"Tipe absensi harus Datang atau Pulang",
		http.StatusBadRequest,
	)
	ErrPersistenceFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Absensi gagal disimpan. Silakan kirim ulang.",
		http.StatusServiceUnavailable,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Absen Datang hari ini sudah terekam.",
		http.StatusConflict,
	)
	ErrCheckInRequired = apperror.New(
		apperror.CodeInvalidState,
		"Absen Datang hari ini belum terekam.",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Absen Pulang hari ini sudah terekam.",
		http.StatusConflict,
	)
	ErrNoActiveAttempt = apperror.New(
		apperror.CodeInvalidState,
		"Tidak ada proses absensi yang sedang berjalan.",
		http.StatusConflict,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"Aksi tidak dapat dilakukan pada tahap absensi saat ini.",
		http.StatusConflict,
	)
	ErrStaleEvent = apperror.New(
		apperror.CodeInvalidState,
		"Hasil sudah tidak berlaku untuk proses absensi saat ini.",
		http.StatusConflict,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
