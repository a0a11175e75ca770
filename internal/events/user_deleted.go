package events

import "time"

const UserDeletedTopic = "absensi.user.deleted.v1"

type UserDeletedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	UserID         string    `json:"user_id"`
	RecordsDeleted int64     `json:"records_deleted"`
	OccurredAt     time.Time `json:"occurred_at"`
}
