package events

import "time"

const AttendanceRecordedTopic = "absensi.attendance.recorded.v1"

type AttendanceRecordedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Timestamp  int64     `json:"timestamp"`
	OccurredAt time.Time `json:"occurred_at"`
}
