package models

import "time"

// Holder represents one agricultural operation being surveyed. A user
// account may own several holders; coordinates stay nil until the location
// section is saved.
type Holder struct {
	ID                     uint `gorm:"primaryKey"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              *time.Time `gorm:"index"`
	OwnerID                uint       `gorm:"index;not null"`
	Name                   string     `gorm:"size:255;not null"`
	Sex                    string     `gorm:"size:16"`
	DateOfBirth            *time.Time
	Nationality            string `gorm:"size:64"`
	NationalityOther       string `gorm:"size:100"`
	MaritalStatus          string `gorm:"size:64"`
	HighestEducation       string `gorm:"size:64"`
	AgriTraining           string `gorm:"size:8"`
	PrimaryOccupation      string `gorm:"size:100"`
	PrimaryOccupationOther string `gorm:"size:100"`
	SecondaryOccupation    string `gorm:"size:100"`
	Latitude               *float64
	Longitude              *float64
}
