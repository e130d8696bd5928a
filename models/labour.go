package models

import "time"

// HoldingLabour stores one answer of the holding-labour section. Count
// questions fill the count columns, option questions fill OptionResponse;
// (holder_id, question_no) is the upsert key.
type HoldingLabour struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	HolderID       uint   `gorm:"not null;uniqueIndex:idx_holder_question"`
	QuestionNo     int    `gorm:"not null;uniqueIndex:idx_holder_question"`
	QuestionText   string `gorm:"size:512"`
	MaleCount      *int
	FemaleCount    *int
	TotalCount     *int
	OptionResponse *string `gorm:"size:32"`
}
