package model

import "time"

// User mirrors the identity provider account. Rows are upserted from
// verified token claims so the rest of the app can join on user id
// without calling back into the provider.
type User struct {
	ID              string    `gorm:"primaryKey;size:128" json:"id"`
	Email           string    `gorm:"size:255;index" json:"email"`
	FirstName       string    `gorm:"size:100" json:"firstName"`
	LastName        string    `gorm:"size:100" json:"lastName"`
	ProfileImageURL *string   `gorm:"size:512" json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
