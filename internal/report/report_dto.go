package report

import (
	"strings"

	"go-absensi/internal/attendance"
	reporterrors "go-absensi/internal/report/errors"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat: kosong berarti csv, seperti tombol export bawaan dashboard.
func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", reporterrors.ErrInvalidFormat
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

type MonthlySummaryRow struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	JenisGTK   string  `json:"jenis_gtk"`
	StatusGTK  string  `json:"status_gtk"`
	Hadir      int     `json:"hadir"`
	Izin       int     `json:"izin"`
	Sakit      int     `json:"sakit"`
	Terlambat  int     `json:"terlambat"`
	Persentase float64 `json:"persentase"`
}

type MonthlyReportResponse struct {
	Month       string              `json:"month"`
	Label       string              `json:"label"`
	DaysInMonth int                 `json:"days_in_month"`
	Rows        []MonthlySummaryRow `json:"rows"`
}

type RecordsReportResponse struct {
	Period  string                      `json:"period"`
	UserID  string                      `json:"user_id,omitempty"`
	Records []attendance.RecordResponse `json:"records"`
}

type EmployeeInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	JenisGTK  string `json:"jenis_gtk"`
	StatusGTK string `json:"status_gtk"`
}

type EmployeeReportResponse struct {
	Employee EmployeeInfo                `json:"employee"`
	Period   string                      `json:"period"`
	Summary  attendance.Tally            `json:"summary"`
	Records  []attendance.RecordResponse `json:"records"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
