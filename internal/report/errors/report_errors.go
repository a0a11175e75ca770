package reporterrors

import (
	"go-absensi/internal/shared/apperror"
	"net/http"
)

var (
	ErrNoDataToExport = apperror.New(
		apperror.CodeNotFound,
		"Tidak ada data untuk diekspor.",
		http.StatusNotFound,
	)
	ErrInvalidFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format export harus csv, pdf, atau xlsx",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"ID pegawai tidak valid",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pegawai tidak ditemukan",
		http.StatusNotFound,
	)
	ErrReportUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Gagal memuat data laporan",
		http.StatusServiceUnavailable,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Gagal membuat file export",
		http.StatusInternalServerError,
	)
)
