package models

import "time"

// SurveyProgress is the explicit completion record for one holder+section.
// It is written in the same transaction as the section's data rows, so a
// section is complete iff its row exists here.
type SurveyProgress struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	HolderID    uint      `gorm:"not null;uniqueIndex:idx_holder_section"`
	SectionID   int       `gorm:"not null;uniqueIndex:idx_holder_section"`
	CompletedAt time.Time `gorm:"not null"`
}
