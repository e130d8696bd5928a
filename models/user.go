package models

import (
	"time"
)

// Account status values. Registration creates a pending account; only an
// admin approval moves it to approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Username       string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null"`
	Status         string     `gorm:"size:32;not null;default:pending;index"`
	Holders        []Holder   `gorm:"foreignKey:OwnerID"`
	RoleID         *uint      `gorm:"index"`
	Role           Role       `gorm:"foreignKey:RoleID;references:ID"`
}
