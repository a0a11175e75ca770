// Package period adalah filter periode laporan: satu bulan kalender, atau rentang
// tanggal inklusif, keduanya dihitung pada zona waktu sekolah.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

var ErrInvalidPeriod = errors.New("invalid period")

type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidPeriod)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0).Add(-time.Millisecond)
}

// DateRange inklusif: To berlaku sampai 23:59:59.999 waktu lokal.
type DateRange struct {
	From time.Time
	To   time.Time
}

func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	f, err := time.ParseInLocation(dateLayout, strings.TrimSpace(from), loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(to), loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	if t.Before(f) {
		return DateRange{}, fmt.Errorf("%w: end_date is before start_date", ErrInvalidPeriod)
	}
	return DateRange{From: f, To: t}, nil
}

func (r DateRange) Bounds(loc *time.Location) (time.Time, time.Time) {
	from := r.From.In(loc)
	to := r.To.In(loc)
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// Filter memilih Month atau Range. Filter kosong tidak mencakup apa pun.
type Filter struct {
	Month *Month
	Range *DateRange
}

func (f Filter) IsSet() bool {
	return f.Month != nil || f.Range != nil
}

// Bounds mengembalikan batas epoch milidetik inklusif; ok=false bila filter kosong.
func (f Filter) Bounds(loc *time.Location) (from, to int64, ok bool) {
	var start, end time.Time
	switch {
	case f.Month != nil:
		start, end = f.Month.Bounds(loc)
	case f.Range != nil:
		start, end = f.Range.Bounds(loc)
	default:
		return 0, 0, false
	}
	return start.UnixMilli(), end.UnixMilli(), true
}

func (f Filter) Contains(ts int64, loc *time.Location) bool {
	from, to, ok := f.Bounds(loc)
	if !ok {
		return false
	}
	return ts >= from && ts <= to
}

// Label dipakai untuk judul dan nama file export.
func (f Filter) Label() string {
	switch {
	case f.Month != nil:
		return f.Month.String()
	case f.Range != nil:
		return f.Range.From.Format(dateLayout) + "_" + f.Range.To.Format(dateLayout)
	default:
		return ""
	}
}

// Parse membaca query month=YYYY-MM atau start_date/end_date=YYYY-MM-DD.
// Semua kosong menghasilkan filter kosong tanpa error; rentang yang hanya diisi
// salah satu ujungnya adalah ErrInvalidPeriod.
func Parse(month, startDate, endDate string, loc *time.Location) (Filter, error) {
	if strings.TrimSpace(month) != "" {
		m, err := ParseMonth(month)
		if err != nil {
			return Filter{}, err
		}
		return Filter{Month: &m}, nil
	}
	hasStart, hasEnd := strings.TrimSpace(startDate) != "", strings.TrimSpace(endDate) != ""
	if !hasStart && !hasEnd {
		return Filter{}, nil
	}
	if hasStart != hasEnd {
		return Filter{}, fmt.Errorf("%w: start_date and end_date must be given together", ErrInvalidPeriod)
	}
	r, err := ParseDateRange(startDate, endDate, loc)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Range: &r}, nil
}
