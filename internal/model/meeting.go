package model

import "time"

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled"
	MeetingStatusCompleted MeetingStatus = "completed"
)

// Meeting is an in-person pickup/evaluation appointment on a request.
type Meeting struct {
	ID            uint64        `gorm:"primaryKey;autoIncrement"`
	RequestID     uint64        `gorm:"column:request_id;index;not null"`
	ScheduledDate time.Time     `gorm:"column:scheduled_date;not null"`
	Location      string        `gorm:"type:text;not null"`
	Duration      int           `gorm:"default:60"` // minutes
	Status        MeetingStatus `gorm:"column:status;size:20;not null;default:scheduled"`
	Notes         *string       `gorm:"type:text"`
	CreatedAt     time.Time     `gorm:"autoCreateTime"`
}

func (Meeting) TableName() string {
	return "meetings"
}
