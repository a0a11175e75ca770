package attendance

import (
	"time"
)

type StartAttemptRequest struct {
	Type string `json:"type" binding:"required,oneof=Datang Pulang"`
}

// LocationRequest adalah hasil pembacaan GPS perangkat: koordinat, atau kode error
// (permission_denied | unavailable | timeout) bila perangkat gagal.
type LocationRequest struct {
	Latitude     *float64 `json:"latitude" binding:"required_without=ErrorCode"`
	Longitude    *float64 `json:"longitude" binding:"required_without=ErrorCode"`
	ErrorCode    string   `json:"error_code"`
	ErrorMessage string   `json:"error_message"`
}

type SubmitRequest struct {
	Keterangan     string `json:"keterangan" binding:"omitempty,oneof=Hadir Izin Sakit"`
	KeteranganIzin string `json:"keterangan_izin"`
}

type AttemptResponse struct {
	ID               string          `json:"id,omitempty"`
	State            State           `json:"state"`
	Type             Type            `json:"type,omitempty"`
	StartedAt        *string         `json:"started_at,omitempty"`
	PositionDeadline *string         `json:"position_deadline,omitempty"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	DistanceKm       *float64        `json:"distance_km,omitempty"`
	IsWithinRadius   bool            `json:"is_within_radius"`
	Address          *string         `json:"address,omitempty"`
	Keterangan       Keterangan      `json:"keterangan,omitempty"`
	KeteranganIzin   string          `json:"keterangan_izin,omitempty"`
	Warning          string          `json:"warning,omitempty"`
	Message          string          `json:"message,omitempty"`
	LastError        string          `json:"last_error,omitempty"`
	Record           *RecordResponse `json:"record,omitempty"`
}

type RecordResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	UserName          string     `json:"user_name"`
	JenisGTK          string     `json:"jenis_gtk"`
	StatusGTK         string     `json:"status_gtk"`
	Timestamp         int64      `json:"timestamp"`
	RecordedAt        string     `json:"recorded_at"`
	Day               string     `json:"day"`
	SchoolLatitude    float64    `json:"school_latitude"`
	SchoolLongitude   float64    `json:"school_longitude"`
	EmployeeLatitude  *float64   `json:"employee_latitude"`
	EmployeeLongitude *float64   `json:"employee_longitude"`
	Address           *string    `json:"address"`
	IsGPSActive       bool       `json:"is_gps_active"`
	DistanceKm        *float64   `json:"distance_km"`
	IsWithinRadius    bool       `json:"is_within_radius"`
	Type              Type       `json:"type"`
	Remark            Remark     `json:"remark"`
	Status            Status     `json:"status"`
	Keterangan        Keterangan `json:"keterangan"`
	KeteranganIzin    *string    `json:"keterangan_izin,omitempty"`
	Notification      string     `json:"notification"`
}

type TodayResponse struct {
	Date     string          `json:"date"`
	Day      string          `json:"day"`
	CheckIn  *RecordResponse `json:"check_in"`
	CheckOut *RecordResponse `json:"check_out"`
	Complete bool            `json:"complete"`
}

type HistoryResponse struct {
	Period  string           `json:"period"`
	Summary Tally            `json:"summary"`
	Records []RecordResponse `json:"records"`
}

func MapRecord(r Record, loc *time.Location) RecordResponse {
	if loc == nil {
		loc = time.Local
	}
	return RecordResponse{
		ID:                r.ID.String(),
		UserID:            r.UserID.String(),
		UserName:          r.UserName,
		JenisGTK:          r.JenisGTK,
		StatusGTK:         r.StatusGTK,
		Timestamp:         r.Timestamp,
		RecordedAt:        time.UnixMilli(r.Timestamp).In(loc).Format(time.RFC3339),
		Day:               r.Day,
		SchoolLatitude:    r.SchoolLatitude,
		SchoolLongitude:   r.SchoolLongitude,
		EmployeeLatitude:  r.EmployeeLatitude,
		EmployeeLongitude: r.EmployeeLongitude,
		Address:           r.Address,
		IsGPSActive:       r.IsGPSActive,
		DistanceKm:        r.DistanceKm,
		IsWithinRadius:    r.IsWithinRadius,
		Type:              r.Type,
		Remark:            r.Remark,
		Status:            r.Status,
		Keterangan:        r.Keterangan,
		KeteranganIzin:    r.KeteranganIzin,
		Notification:      r.Notification,
	}
}

func MapRecords(rows []Record, loc *time.Location) []RecordResponse {
	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = MapRecord(r, loc)
	}
	return res
}
