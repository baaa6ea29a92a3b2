package models

import "time"

// User represents a registered customer of the shop.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FullName   string    `json:"full_name" gorm:"type:varchar(255)"`
	Phone      string    `json:"phone" gorm:"uniqueIndex;type:varchar(32)"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password   string    `json:"-" gorm:"type:text"` // bcrypt hash, never serialized
	ImageID    *uint     `json:"image_id"`
	Image      *Image    `json:"image,omitempty" gorm:"foreignKey:ImageID"`
	IsActive   bool      `json:"is_active"`
	RegisterAt time.Time `json:"register_at"`
}

// UserInfo is the public projection of a User returned by the API.
// It deliberately carries no password material.
type UserInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// PublicInfo returns the part of the user that is safe to expose.
func (u *User) PublicInfo() UserInfo {
	return UserInfo{
		FullName: u.FullName,
		Phone:    u.Phone,
		Email:    u.Email,
	}
}
