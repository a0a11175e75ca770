package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/period"
	reporterrors "go-absensi/internal/report/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

var wib = time.FixedZone("WIB", 7*3600)

func sampleMonthly() MonthlyReportResponse {
	return MonthlyReportResponse{
		Month:       "2025-03",
		Label:       MonthLabel(period.Month{Year: 2025, Month: time.March}),
		DaysInMonth: 31,
		Rows: []MonthlySummaryRow{
			{Name: "Ani", Hadir: 20, Izin: 1, Sakit: 0, Terlambat: 2, Persentase: 64.5},
			{Name: `Budi "Guru"`, Hadir: 0, Persentase: 0},
		},
	}
}

func sampleRecord() attendance.Record {
	addr := "Jl. Merdeka No. 1"
	reason := "demam"
	dist := 0.123
	return attendance.Record{
		ID:             uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:         uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		UserName:       "Budi Guru",
		Timestamp:      time.Date(2025, 3, 10, 7, 15, 0, 0, wib).UnixMilli(),
		Day:            "Senin",
		Address:        &addr,
		DistanceKm:     &dist,
		IsWithinRadius: true,
		Type:           attendance.TypeCheckIn,
		Remark:         attendance.RemarkOnTime,
		Status:         attendance.StatusHadir,
		Keterangan:     attendance.KeteranganSakit,
		KeteranganIzin: &reason,
		Notification:   attendance.NotificationValid,
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Maret 2025", MonthLabel(period.Month{Year: 2025, Month: time.March}))
	assert.Equal(t, "Desember 2024", MonthLabel(period.Month{Year: 2024, Month: time.December}))
}

func TestValueFormatting(t *testing.T) {
	ts := time.Date(2025, 3, 10, 7, 5, 0, 0, wib).UnixMilli()
	assert.Equal(t, "10 Mar 2025, 07.05", formatTimestamp(ts, wib))

	d := 1.5
	assert.Equal(t, "1.50 km", formatDistance(&d))
	assert.Equal(t, "N/A", formatDistance(nil))
	assert.Equal(t, "Dalam Area", formatRadius(true))
	assert.Equal(t, "Luar Area", formatRadius(false))

	reason := "urusan keluarga"
	assert.Equal(t, "Izin (urusan keluarga)", formatKeterangan(attendance.KeteranganIzin, &reason))
	assert.Equal(t, "Hadir (-)", formatKeterangan(attendance.KeteranganHadir, nil))

	empty := ""
	assert.Equal(t, "N/A", orNA(&empty))
	assert.Equal(t, "66.7%", formatPersentase(66.7))
	assert.Equal(t, "0.0%", formatPersentase(0))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	assert.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	assert.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, reporterrors.ErrInvalidFormat)
}

func TestEncode_EmptyTable(t *testing.T) {
	_, err := Encode(Table{Title: "Rekap Bulanan"}, FormatCSV, "rekap")
	assert.ErrorIs(t, err, reporterrors.ErrNoDataToExport)
}

func TestEncode_MonthlyCSV(t *testing.T) {
	file, err := Encode(monthlyTable(sampleMonthly()), FormatCSV, "rekap_bulanan_2025-03")
	assert.NoError(t, err)
	assert.Equal(t, "rekap_bulanan_2025-03.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"name", "hadir", "izin", "sakit", "terlambat", "persentase"}, rows[0])
	assert.Equal(t, []string{"Ani", "20", "1", "0", "2", "64.5%"}, rows[1])
	assert.Equal(t, `Budi "Guru"`, rows[2][0])
	assert.Contains(t, string(file.Data), `"Budi ""Guru"""`)
}

func TestEncode_RecordCSVDumpsRawFields(t *testing.T) {
	table := recordTable("Laporan Harian", "Periode: 2025-03-10 s/d 2025-03-10", []attendance.Record{sampleRecord()}, wib)

	file, err := Encode(table, FormatCSV, "laporan_harian_2025-03-10_2025-03-10")
	assert.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, rawRecordColumns, rows[0])
	assert.Equal(t, "Budi Guru", rows[1][2])
	assert.Equal(t, "0.123", rows[1][13])
	assert.Equal(t, "demam", rows[1][19])
	assert.Equal(t, "", rows[1][9])
}

func TestRecordTable_FormattedColumns(t *testing.T) {
	table := recordTable("Rekap Pegawai", "Pegawai: Budi Guru", []attendance.Record{sampleRecord()}, wib)

	assert.Equal(t, []string{"Waktu", "Nama", "Tipe", "Status Waktu", "Jarak", "Alamat", "Keterangan"}, table.Headers)
	assert.Equal(t, []any{
		"10 Mar 2025, 07.15",
		"Budi Guru",
		"Datang",
		"Tepat Waktu",
		"0.12 km (Dalam Area)",
		"Jl. Merdeka No. 1",
		"Sakit (demam)",
	}, table.Rows[0])
}

func TestEncode_PDF(t *testing.T) {
	file, err := Encode(monthlyTable(sampleMonthly()), FormatPDF, "rekap_bulanan_2025-03")
	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)

	body := string(file.Data)
	assert.True(t, strings.HasPrefix(body, "%PDF-1.4"))
	assert.True(t, strings.HasSuffix(body, "%%EOF"))
	assert.Contains(t, body, "(Rekap Bulanan) Tj")
	assert.Contains(t, body, "(Periode: Maret 2025) Tj")
	assert.Contains(t, body, "(% Hadir) Tj")
	assert.Contains(t, body, "(64.5%) Tj")
	assert.Equal(t, 1, strings.Count(body, "/Type /Page /Parent"))
}

func TestEncode_PDFPaginates(t *testing.T) {
	resp := MonthlyReportResponse{Label: "Maret 2025"}
	for i := 0; i < 60; i++ {
		resp.Rows = append(resp.Rows, MonthlySummaryRow{Name: fmt.Sprintf("Guru %02d", i)})
	}

	file, err := Encode(monthlyTable(resp), FormatPDF, "rekap")
	assert.NoError(t, err)

	body := string(file.Data)
	// 23 baris di halaman pertama, 26 di halaman berikutnya
	assert.Equal(t, 3, strings.Count(body, "/Type /Page /Parent"))
	assert.Contains(t, body, "/Count 3")
	assert.Contains(t, body, "(Halaman 3 dari 3) Tj")
	assert.Contains(t, body, "(Guru 59) Tj")
}

func TestPDFText(t *testing.T) {
	assert.Equal(t, `Guru \(Honorer\)`, pdfString("Guru (Honorer)"))
	assert.Equal(t, "Caf\xe9", pdfString("Café"))
	assert.Equal(t, "Alamat sa...", fitText("Alamat sangat panjang sekali", 36, 6))
}

func TestEncode_XLSX(t *testing.T) {
	file, err := Encode(monthlyTable(sampleMonthly()), FormatXLSX, "rekap_bulanan_2025-03")
	assert.NoError(t, err)
	assert.Equal(t, "rekap_bulanan_2025-03.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	assert.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue(xlsxSheet, "A1")
	assert.Equal(t, "Rekap Bulanan", title)
	subtitle, _ := f.GetCellValue(xlsxSheet, "A2")
	assert.Equal(t, "Periode: Maret 2025", subtitle)
	header, _ := f.GetCellValue(xlsxSheet, "F4")
	assert.Equal(t, "% Hadir", header)
	name, _ := f.GetCellValue(xlsxSheet, "A5")
	assert.Equal(t, "Ani", name)
	hadir, _ := f.GetCellValue(xlsxSheet, "B5")
	assert.Equal(t, "20", hadir)
}
