package model

import "time"

// Notification is a side-effect record written alongside most state
// transitions to inform the counterpart. Type is a free-form tag the
// client switches on ("request_matched", "item_sold", ...).
type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;size:128;index;not null"`
	Type      string    `gorm:"size:50;not null"`
	Title     string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text;not null"`
	Link      *string   `gorm:"size:500"`
	IsRead    bool      `gorm:"column:is_read;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
