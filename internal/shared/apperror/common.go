package apperror

import "net/http"

// Error generik dipakai bila modul tidak punya error yang lebih spesifik.
var (
	ErrNotFound = New(
		CodeNotFound,
		"Data tidak ditemukan",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"Anda tidak memiliki akses ke fitur ini",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Terjadi kesalahan pada server",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Silakan login terlebih dahulu",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Data yang dikirim tidak valid",
		http.StatusBadRequest,
	)

	ErrServiceUnavailable = New(
		CodeServiceUnavailable,
		"Layanan sedang tidak tersedia, coba lagi nanti",
		http.StatusServiceUnavailable,
	)
)
