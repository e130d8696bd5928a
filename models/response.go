package models

import "time"

// SurveyResponse is a generic keyed answer for sections without a dedicated
// table (currently the remarks section). Unique per
// (holder_id, section, question_key); later writes overwrite the value.
type SurveyResponse struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	HolderID      uint   `gorm:"not null;uniqueIndex:idx_holder_section_key"`
	Section       int    `gorm:"not null;uniqueIndex:idx_holder_section_key"`
	QuestionKey   string `gorm:"size:128;not null;uniqueIndex:idx_holder_section_key"`
	ResponseValue string `gorm:"size:1024"`
}
