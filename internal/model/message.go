package model

import "time"

// Message is a directed chat message. There is no stored conversation
// entity; threads are derived from the (sender, receiver) pair.
type Message struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   string    `gorm:"column:sender_id;size:128;index;not null" json:"senderId"`
	ReceiverID string    `gorm:"column:receiver_id;size:128;index;not null" json:"receiverId"`
	RequestID  *uint64   `gorm:"column:request_id;index" json:"requestId,omitempty"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"column:is_read;default:false" json:"isRead"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
