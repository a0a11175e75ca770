package report

import (
	"fmt"
	"strconv"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/period"
)

const notAvailable = "N/A"

var (
	namaBulan = [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	namaBulanSingkat = [...]string{
		"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
		"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
	}
)

// MonthLabel: "Maret 2025".
func MonthLabel(m period.Month) string {
	return fmt.Sprintf("%s %d", namaBulan[m.Month-1], m.Year)
}

func periodLabel(f period.Filter) string {
	switch {
	case f.Month != nil:
		return MonthLabel(*f.Month)
	case f.Range != nil:
		return f.Range.From.Format("2006-01-02") + " s/d " + f.Range.To.Format("2006-01-02")
	default:
		return ""
	}
}

// formatTimestamp meniru format tanggal id-ID: "10 Mar 2025, 07.15".
func formatTimestamp(ts int64, loc *time.Location) string {
	t := time.UnixMilli(ts).In(loc)
	return fmt.Sprintf("%02d %s %d, %02d.%02d", t.Day(), namaBulanSingkat[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func formatDistance(km *float64) string {
	if km == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f km", *km)
}

func formatRadius(within bool) string {
	if within {
		return "Dalam Area"
	}
	return "Luar Area"
}

func formatKeterangan(k attendance.Keterangan, reason *string) string {
	r := "-"
	if reason != nil && *reason != "" {
		r = *reason
	}
	return fmt.Sprintf("%s (%s)", k, r)
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return notAvailable
	}
	return *v
}

func formatPersentase(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func rawString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func rawFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
