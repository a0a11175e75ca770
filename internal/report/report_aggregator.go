package report

import (
	"math"
	"sort"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/period"
	"go-absensi/internal/user"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MonthlySummaries menghasilkan satu baris per guru, termasuk guru tanpa absensi.
// Persentase = hadir / jumlah hari kalender bulan tsb.
func MonthlySummaries(records []attendance.Record, teachers []user.User, month period.Month, loc *time.Location) []MonthlySummaryRow {
	if loc == nil {
		loc = time.Local
	}
	filter := period.Filter{Month: &month}

	tallies := make(map[string]*attendance.Tally, len(teachers))
	for _, r := range records {
		if !filter.Contains(r.Timestamp, loc) {
			continue
		}
		id := r.UserID.String()
		t, ok := tallies[id]
		if !ok {
			t = &attendance.Tally{}
			tallies[id] = t
		}
		t.Add(r)
	}

	days := float64(month.Days())
	rows := make([]MonthlySummaryRow, 0, len(teachers))
	for _, u := range teachers {
		var t attendance.Tally
		if found, ok := tallies[u.ID.String()]; ok {
			t = *found
		}
		rows = append(rows, MonthlySummaryRow{
			UserID:     u.ID.String(),
			Name:       u.Name,
			JenisGTK:   u.JenisGTK,
			StatusGTK:  u.StatusGTK,
			Hadir:      t.Hadir,
			Izin:       t.Izin,
			Sakit:      t.Sakit,
			Terlambat:  t.Terlambat,
			Persentase: round1(float64(t.Hadir) / days * 100),
		})
	}

	col := collate.New(language.Indonesian)
	sort.SliceStable(rows, func(i, j int) bool {
		return col.CompareString(rows[i].Name, rows[j].Name) < 0
	})
	return rows
}

// Listing: filter kosong selalu menghasilkan slice kosong. userID kosong berarti semua guru.
func Listing(records []attendance.Record, filter period.Filter, userID string, loc *time.Location) []attendance.Record {
	if loc == nil {
		loc = time.Local
	}
	out := make([]attendance.Record, 0)
	if !filter.IsSet() {
		return out
	}
	for _, r := range records {
		if userID != "" && r.UserID.String() != userID {
			continue
		}
		if filter.Contains(r.Timestamp, loc) {
			out = append(out, r)
		}
	}
	attendance.SortNewestFirst(out)
	return out
}

type EmployeeSummaryResult struct {
	Tally   attendance.Tally
	Records []attendance.Record
}

// EmployeeSummary: month nil berarti seluruh riwayat pegawai.
func EmployeeSummary(records []attendance.Record, userID string, month *period.Month, loc *time.Location) EmployeeSummaryResult {
	if loc == nil {
		loc = time.Local
	}
	var filter period.Filter
	if month != nil {
		filter.Month = month
	}

	out := make([]attendance.Record, 0)
	for _, r := range records {
		if r.UserID.String() != userID {
			continue
		}
		if month != nil && !filter.Contains(r.Timestamp, loc) {
			continue
		}
		out = append(out, r)
	}
	attendance.SortNewestFirst(out)
	return EmployeeSummaryResult{
		Tally:   attendance.TallyCheckIns(out),
		Records: out,
	}
}
