package main

import (
	"time"

	"nacp/models"
	"nacp/pkg/survey"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// censusStore is the persistence gateway for survey data. Each save is one
// transaction: the section's rows plus its explicit progress record commit
// together, so a mid-batch failure never leaves a section half marked
// complete.
type censusStore struct {
	db *gorm.DB
}

func newCensusStore(db *gorm.DB) *censusStore {
	return &censusStore{db: db}
}

// CompletedSections implements survey.CompletionStore from the explicit
// progress table.
func (s *censusStore) CompletedSections(holderID uint) ([]int, error) {
	var ids []int
	err := s.db.Model(&models.SurveyProgress{}).
		Where("holder_id = ?", holderID).
		Order("section_id").
		Pluck("section_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// markComplete upserts the progress row inside the caller's transaction.
func markComplete(tx *gorm.DB, holderID uint, sectionID int) error {
	rec := models.SurveyProgress{HolderID: holderID, SectionID: sectionID, CompletedAt: time.Now()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "holder_id"}, {Name: "section_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_at", "updated_at"}),
	}).Create(&rec).Error
}

// SaveHolderInfo writes section 1 onto an existing holder record.
func (s *censusStore) SaveHolderInfo(holderID uint, f *survey.HolderInfoForm) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":                     f.FullName,
			"sex":                      f.Sex,
			"date_of_birth":            f.DateOfBirth,
			"nationality":              f.Nationality,
			"nationality_other":        f.NationalityOther,
			"marital_status":           f.MaritalStatus,
			"highest_education":        f.HighestEducation,
			"agri_training":            f.AgriTraining,
			"primary_occupation":       f.PrimaryOccupation,
			"primary_occupation_other": f.PrimaryOccupationOther,
			"secondary_occupation":     f.SecondaryOccupation,
		}
		res := tx.Model(&models.Holder{}).Where("id = ?", holderID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return markComplete(tx, holderID, survey.SectionHolderInfo)
	})
}

// SaveLocation writes section 2.
func (s *censusStore) SaveLocation(holderID uint, f *survey.LocationForm) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Holder{}).Where("id = ?", holderID).
			Updates(map[string]any{"latitude": f.Latitude, "longitude": f.Longitude})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return markComplete(tx, holderID, survey.SectionLocation)
	})
}

// SaveHousehold writes section 3: the summary row plus member rows, all
// keyed for idempotent resubmission.
func (s *censusStore) SaveHousehold(holderID uint, f *survey.HouseholdForm) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		summary := models.HouseholdSummary{
			HolderID:            holderID,
			TotalPersons:        f.TotalPersons,
			Under14Male:         f.Under14Male,
			Under14Female:       f.Under14Female,
			Plus14Male:          f.Plus14Male,
			Plus14Female:        f.Plus14Female,
			WorkingMalePaid:     f.WorkingMalePaid,
			WorkingMaleUnpaid:   f.WorkingMaleUnpaid,
			WorkingFemalePaid:   f.WorkingFemalePaid,
			WorkingFemaleUnpaid: f.WorkingFemaleUnpaid,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "holder_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_persons", "under14_male", "under14_female",
				"plus14_male", "plus14_female", "working_male_paid",
				"working_male_unpaid", "working_female_paid",
				"working_female_unpaid", "updated_at",
			}),
		}).Create(&summary).Error; err != nil {
			return err
		}
		for _, m := range f.Members {
			member := models.HouseholdMember{
				HolderID:                holderID,
				RelationshipCode:        m.RelationshipCode,
				Sex:                     m.Sex,
				Age:                     m.Age,
				EducationCode:           m.EducationCode,
				PrimaryOccupationCode:   m.PrimaryOccupationCode,
				SecondaryOccupationCode: m.SecondaryOccupationCode,
				WorkTimeCode:            m.WorkTimeCode,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "holder_id"}, {Name: "relationship_code"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"sex", "age", "education_code", "primary_occupation_code",
					"secondary_occupation_code", "work_time_code", "updated_at",
				}),
			}).Create(&member).Error; err != nil {
				return err
			}
		}
		return markComplete(tx, holderID, survey.SectionHousehold)
	})
}

// SaveLabour writes section 4.
func (s *censusStore) SaveLabour(holderID uint, f *survey.LabourForm) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range f.Answers {
			q, _ := survey.LabourQuestionByNo(a.QuestionNo)
			row := models.HoldingLabour{
				HolderID:       holderID,
				QuestionNo:     a.QuestionNo,
				QuestionText:   q.Text,
				MaleCount:      a.MaleCount,
				FemaleCount:    a.FemaleCount,
				OptionResponse: a.OptionResponse,
			}
			if a.MaleCount != nil && a.FemaleCount != nil {
				total := *a.MaleCount + *a.FemaleCount
				row.TotalCount = &total
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "holder_id"}, {Name: "question_no"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"question_text", "male_count", "female_count",
					"total_count", "option_response", "updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return markComplete(tx, holderID, survey.SectionLabour)
	})
}

// SaveRemarks writes section 5 into the generic response table.
func (s *censusStore) SaveRemarks(holderID uint, f *survey.RemarksForm) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range f.Responses {
			row := models.SurveyResponse{
				HolderID:      holderID,
				Section:       survey.SectionRemarks,
				QuestionKey:   key,
				ResponseValue: value,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "holder_id"}, {Name: "section"}, {Name: "question_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"response_value", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return markComplete(tx, holderID, survey.SectionRemarks)
	})
}
