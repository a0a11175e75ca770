package usererrors

import (
	"go-absensi/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pengguna tidak ditemukan.",
		http.StatusNotFound,
	)

	ErrDuplicateUser = apperror.New(
		apperror.CodeConflict,
		"Username sudah terdaftar.",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidJenisGTK = apperror.New(
		apperror.CodeInvalidInput,
		"Jenis GTK tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidStatusGTK = apperror.New(
		apperror.CodeInvalidInput,
		"Status GTK tidak valid",
		http.StatusBadRequest,
	)

	ErrCannotDeleteAdmin = apperror.New(
		apperror.CodeForbidden,
		"Akun admin tidak dapat dihapus",
		http.StatusForbidden,
	)

	ErrDeleteFailed = apperror.New(
		apperror.CodeInternalError,
		"Gagal menghapus pengguna",
		http.StatusInternalServerError,
	)
)
