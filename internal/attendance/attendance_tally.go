package attendance

import "sort"

// Tally menghitung rekap dari record Datang saja. Terlambat dihitung terpisah
// dari keterangan: Izin yang tercatat di luar jendela tetap terhitung terlambat.
type Tally struct {
	Hadir     int `json:"hadir"`
	Izin      int `json:"izin"`
	Sakit     int `json:"sakit"`
	Terlambat int `json:"terlambat"`
	Total     int `json:"total"`
}

func (t *Tally) Add(r Record) {
	if r.Type != TypeCheckIn {
		return
	}
	t.Total++
	switch r.Keterangan {
	case KeteranganHadir:
		t.Hadir++
	case KeteranganIzin:
		t.Izin++
	case KeteranganSakit:
		t.Sakit++
	}
	if r.Remark == RemarkLate {
		t.Terlambat++
	}
}

func TallyCheckIns(rows []Record) Tally {
	var t Tally
	for _, r := range rows {
		t.Add(r)
	}
	return t
}

// SortNewestFirst mengurutkan berdasarkan timestamp menurun; urutan asal dipertahankan bila sama.
func SortNewestFirst(rows []Record) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp > rows[j].Timestamp
	})
}
