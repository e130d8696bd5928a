package models

import "time"

// HouseholdSummary holds the per-holder headcounts collected in the
// household section. One row per holder; resubmission overwrites it.
type HouseholdSummary struct {
	ID                 uint `gorm:"primaryKey"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	HolderID           uint `gorm:"uniqueIndex;not null"`
	TotalPersons       int  `gorm:"not null"`
	Under14Male        int  `gorm:"not null"`
	Under14Female      int  `gorm:"not null"`
	Plus14Male         int  `gorm:"not null"`
	Plus14Female       int  `gorm:"not null"`
	WorkingMalePaid    int  `gorm:"not null"`
	WorkingMaleUnpaid  int  `gorm:"not null"`
	WorkingFemalePaid  int  `gorm:"not null"`
	WorkingFemaleUnpaid int `gorm:"not null"`
}

// HouseholdMember is one person in the holder's household. The instrument
// records at most one member per relationship code, which is the upsert key.
type HouseholdMember struct {
	ID                      uint `gorm:"primaryKey"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
	HolderID                uint   `gorm:"not null;uniqueIndex:idx_holder_relationship"`
	RelationshipCode        int    `gorm:"not null;uniqueIndex:idx_holder_relationship"`
	Sex                     string `gorm:"size:16;not null"`
	Age                     int    `gorm:"not null"`
	EducationCode           int    `gorm:"not null"`
	PrimaryOccupationCode   int    `gorm:"not null"`
	SecondaryOccupationCode *int
	WorkTimeCode            string `gorm:"size:8;not null"`
}
