package events

import "time"

const UserRegisteredTopic = "absensi.user.registered.v1"

// UserRegisteredEvent dikirim saat guru mendaftar; rekap bulanan harus memuat baris nol untuknya.
type UserRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
