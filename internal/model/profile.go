package model

import "time"

type Role string

const (
	RoleSeller Role = "seller"
	RoleReusse Role = "reusse"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleReusse, RoleAdmin:
		return true
	}
	return false
}

type ProfileStatus string

const (
	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusApproved ProfileStatus = "approved"
	ProfileStatusRejected ProfileStatus = "rejected"
)

// Profile extends a User with marketplace role and contact details.
// Status only matters for reusses: their applications sit pending until
// an admin approves or rejects them. Sellers and admins are approved on
// creation.
type Profile struct {
	ID                     uint64        `gorm:"primaryKey;autoIncrement"`
	UserID                 string        `gorm:"column:user_id;size:128;uniqueIndex;not null"`
	Role                   Role          `gorm:"column:role;size:20;not null"`
	Phone                  *string       `gorm:"size:20"`
	Address                *string       `gorm:"type:text"`
	City                   *string       `gorm:"size:100"`
	PostalCode             *string       `gorm:"column:postal_code;size:10"`
	Department             *string       `gorm:"size:100"`
	Bio                    *string       `gorm:"type:text"`
	Experience             *string       `gorm:"type:text"`
	SiretNumber            *string       `gorm:"column:siret_number;size:20"`
	Status                 ProfileStatus `gorm:"column:status;size:20;not null;default:approved"`
	PreferredContactMethod string        `gorm:"column:preferred_contact_method;size:20"`
	CreatedAt              time.Time     `gorm:"autoCreateTime"`
	UpdatedAt              time.Time     `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
