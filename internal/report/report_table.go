package report

import (
	"strconv"
	"time"

	"go-absensi/internal/attendance"
)

// Table adalah bentuk netral sebuah laporan sebelum di-encode. Headers/Rows dipakai
// PDF & XLSX; CSV memakai CSVHeaders/CSVRows bila diisi (dump field mentah).
type Table struct {
	Title      string
	Subtitle   string
	Headers    []string
	Rows       [][]any
	Widths     []float64
	CSVHeaders []string
	CSVRows    [][]string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

var recordColumns = []string{"Waktu", "Nama", "Tipe", "Status Waktu", "Jarak", "Alamat", "Keterangan"}

var recordColumnWidths = []float64{1.3, 1.4, 0.7, 1, 1.3, 2.2, 1.6}

var rawRecordColumns = []string{
	"id", "userId", "userName", "jenisGTK", "statusGTK", "timestamp", "day",
	"schoolLatitude", "schoolLongitude", "employeeLatitude", "employeeLongitude",
	"address", "isGpsActive", "distance", "isWithinRadius",
	"type", "remark", "status", "keterangan", "keteranganIzin", "notification",
}

func monthlyTable(resp MonthlyReportResponse) Table {
	t := Table{
		Title:      "Rekap Bulanan",
		Subtitle:   "Periode: " + resp.Label,
		Headers:    []string{"Nama", "Hadir", "Izin", "Sakit", "Terlambat", "% Hadir"},
		Widths:     []float64{2.5, 1, 1, 1, 1, 1},
		CSVHeaders: []string{"name", "hadir", "izin", "sakit", "terlambat", "persentase"},
	}
	for _, r := range resp.Rows {
		pct := formatPersentase(r.Persentase)
		t.Rows = append(t.Rows, []any{r.Name, r.Hadir, r.Izin, r.Sakit, r.Terlambat, pct})
		t.CSVRows = append(t.CSVRows, []string{
			r.Name,
			strconv.Itoa(r.Hadir),
			strconv.Itoa(r.Izin),
			strconv.Itoa(r.Sakit),
			strconv.Itoa(r.Terlambat),
			pct,
		})
	}
	return t
}

func recordTable(title, subtitle string, rows []attendance.Record, loc *time.Location) Table {
	t := Table{
		Title:      title,
		Subtitle:   subtitle,
		Headers:    recordColumns,
		Widths:     recordColumnWidths,
		CSVHeaders: rawRecordColumns,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			formatTimestamp(r.Timestamp, loc),
			r.UserName,
			string(r.Type),
			orNA(stringPtr(string(r.Remark))),
			formatDistance(r.DistanceKm) + " (" + formatRadius(r.IsWithinRadius) + ")",
			orNA(r.Address),
			formatKeterangan(r.Keterangan, r.KeteranganIzin),
		})
		t.CSVRows = append(t.CSVRows, rawRecord(r))
	}
	return t
}

func rawRecord(r attendance.Record) []string {
	return []string{
		r.ID.String(),
		r.UserID.String(),
		r.UserName,
		r.JenisGTK,
		r.StatusGTK,
		strconv.FormatInt(r.Timestamp, 10),
		r.Day,
		strconv.FormatFloat(r.SchoolLatitude, 'f', -1, 64),
		strconv.FormatFloat(r.SchoolLongitude, 'f', -1, 64),
		rawFloat(r.EmployeeLatitude),
		rawFloat(r.EmployeeLongitude),
		rawString(r.Address),
		strconv.FormatBool(r.IsGPSActive),
		rawFloat(r.DistanceKm),
		strconv.FormatBool(r.IsWithinRadius),
		string(r.Type),
		string(r.Remark),
		string(r.Status),
		string(r.Keterangan),
		rawString(r.KeteranganIzin),
		r.Notification,
	}
}

func stringPtr(v string) *string {
	return &v
}
