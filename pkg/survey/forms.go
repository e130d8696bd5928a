package survey

import (
	"fmt"
	"time"
)

// Typed payloads for each section. Every form validates before anything is
// written; a ValidationError blocks the save and is reported to the client,
// never silently coerced.

// HolderInfoForm is section 1. It creates or updates the holder record.
type HolderInfoForm struct {
	FullName               string     `json:"full_name"`
	Sex                    string     `json:"sex"`
	DateOfBirth            *time.Time `json:"date_of_birth"`
	Nationality            string     `json:"nationality"`
	NationalityOther       string     `json:"nationality_other"`
	MaritalStatus          string     `json:"marital_status"`
	HighestEducation       string     `json:"highest_education"`
	AgriTraining           string     `json:"agri_training"`
	PrimaryOccupation      string     `json:"primary_occupation"`
	PrimaryOccupationOther string     `json:"primary_occupation_other"`
	SecondaryOccupation    string     `json:"secondary_occupation"`
}

func (f *HolderInfoForm) Validate() error {
	if f.FullName == "" {
		return invalid("full_name", "required")
	}
	if f.Sex != "" && !contains(SexOptions, f.Sex) {
		return invalid("sex", "must be one of %v", SexOptions)
	}
	if f.DateOfBirth != nil {
		if f.DateOfBirth.After(time.Now()) {
			return invalid("date_of_birth", "must not be in the future")
		}
		if f.DateOfBirth.Year() < 1900 {
			return invalid("date_of_birth", "unreasonably old")
		}
	}
	if f.Nationality != "" && !contains(NationalityOptions, f.Nationality) {
		return invalid("nationality", "must be one of %v", NationalityOptions)
	}
	if f.Nationality == "Other" && f.NationalityOther == "" {
		return invalid("nationality_other", "required when nationality is Other")
	}
	if f.MaritalStatus != "" && !contains(MaritalStatusOptions, f.MaritalStatus) {
		return invalid("marital_status", "must be one of %v", MaritalStatusOptions)
	}
	if f.HighestEducation != "" && !contains(EducationOptions, f.HighestEducation) {
		return invalid("highest_education", "must be one of %v", EducationOptions)
	}
	if f.AgriTraining != "" && f.AgriTraining != "Yes" && f.AgriTraining != "No" {
		return invalid("agri_training", "must be Yes or No")
	}
	if f.PrimaryOccupation != "" && !contains(PrimaryOccupationOptions, f.PrimaryOccupation) {
		return invalid("primary_occupation", "must be one of %v", PrimaryOccupationOptions)
	}
	if f.PrimaryOccupation == "Other" && f.PrimaryOccupationOther == "" {
		return invalid("primary_occupation_other", "required when primary occupation is Other")
	}
	return nil
}

// LocationForm is section 2, the farm coordinates.
type LocationForm struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (f *LocationForm) Validate() error {
	if f.Latitude < -90 || f.Latitude > 90 {
		return invalid("latitude", "must be between -90 and 90, got %v", f.Latitude)
	}
	if f.Longitude < -180 || f.Longitude > 180 {
		return invalid("longitude", "must be between -180 and 180, got %v", f.Longitude)
	}
	return nil
}

// HouseholdMemberForm is one member row of section 3.
type HouseholdMemberForm struct {
	RelationshipCode        int    `json:"relationship_code"`
	Sex                     string `json:"sex"`
	Age                     int    `json:"age"`
	EducationCode           int    `json:"education_code"`
	PrimaryOccupationCode   int    `json:"primary_occupation_code"`
	SecondaryOccupationCode *int   `json:"secondary_occupation_code"`
	WorkTimeCode            string `json:"work_time_code"`
}

func (m *HouseholdMemberForm) Validate() error {
	if _, ok := RelationshipCodes[m.RelationshipCode]; !ok {
		return invalid("relationship_code", "unknown code %d", m.RelationshipCode)
	}
	if m.Sex != "Male" && m.Sex != "Female" {
		return invalid("sex", "must be Male or Female")
	}
	if m.Age < 0 || m.Age > 120 {
		return invalid("age", "must be between 0 and 120, got %d", m.Age)
	}
	if _, ok := EducationCodes[m.EducationCode]; !ok {
		return invalid("education_code", "unknown code %d", m.EducationCode)
	}
	if _, ok := OccupationCodes[m.PrimaryOccupationCode]; !ok {
		return invalid("primary_occupation_code", "unknown code %d", m.PrimaryOccupationCode)
	}
	if m.SecondaryOccupationCode != nil {
		if _, ok := OccupationCodes[*m.SecondaryOccupationCode]; !ok {
			return invalid("secondary_occupation_code", "unknown code %d", *m.SecondaryOccupationCode)
		}
	}
	if _, ok := WorkTimeCodes[m.WorkTimeCode]; !ok {
		return invalid("work_time_code", "unknown code %q", m.WorkTimeCode)
	}
	return nil
}

// HouseholdForm is section 3: summary headcounts plus member rows.
type HouseholdForm struct {
	TotalPersons        int                   `json:"total_persons"`
	Under14Male         int                   `json:"under14_male"`
	Under14Female       int                   `json:"under14_female"`
	Plus14Male          int                   `json:"plus14_male"`
	Plus14Female        int                   `json:"plus14_female"`
	WorkingMalePaid     int                   `json:"working_male_paid"`
	WorkingMaleUnpaid   int                   `json:"working_male_unpaid"`
	WorkingFemalePaid   int                   `json:"working_female_paid"`
	WorkingFemaleUnpaid int                   `json:"working_female_unpaid"`
	Members             []HouseholdMemberForm `json:"members"`
}

func (f *HouseholdForm) Validate() error {
	counts := map[string]int{
		"total_persons":         f.TotalPersons,
		"under14_male":          f.Under14Male,
		"under14_female":        f.Under14Female,
		"plus14_male":           f.Plus14Male,
		"plus14_female":         f.Plus14Female,
		"working_male_paid":     f.WorkingMalePaid,
		"working_male_unpaid":   f.WorkingMaleUnpaid,
		"working_female_paid":   f.WorkingFemalePaid,
		"working_female_unpaid": f.WorkingFemaleUnpaid,
	}
	for field, v := range counts {
		if v < 0 {
			return invalid(field, "must not be negative, got %d", v)
		}
	}
	seen := map[int]bool{}
	for i := range f.Members {
		if err := f.Members[i].Validate(); err != nil {
			return err
		}
		if seen[f.Members[i].RelationshipCode] {
			return invalid("members", "duplicate relationship code %d", f.Members[i].RelationshipCode)
		}
		seen[f.Members[i].RelationshipCode] = true
	}
	return nil
}

// Warnings reports inconsistencies that do not block the save. The age-group
// sum exceeding total persons is flagged but the data is stored as entered.
func (f *HouseholdForm) Warnings() []string {
	var warns []string
	ageSum := f.Under14Male + f.Under14Female + f.Plus14Male + f.Plus14Female
	if ageSum > f.TotalPersons {
		warns = append(warns, fmt.Sprintf("total persons (%d) is less than the sum of age groups (%d)", f.TotalPersons, ageSum))
	}
	return warns
}

// LabourAnswer is one answered holding-labour question.
type LabourAnswer struct {
	QuestionNo     int     `json:"question_no"`
	MaleCount      *int    `json:"male_count"`
	FemaleCount    *int    `json:"female_count"`
	TotalCount     *int    `json:"total_count"`
	OptionResponse *string `json:"option_response"`
}

// LabourForm is section 4.
type LabourForm struct {
	Answers []LabourAnswer `json:"answers"`
}

func (f *LabourForm) Validate() error {
	if len(f.Answers) == 0 {
		return invalid("answers", "at least one answer required")
	}
	seen := map[int]bool{}
	for _, a := range f.Answers {
		q, ok := LabourQuestionByNo(a.QuestionNo)
		if !ok {
			return invalid("question_no", "unknown question %d", a.QuestionNo)
		}
		if seen[a.QuestionNo] {
			return invalid("question_no", "duplicate answer for question %d", a.QuestionNo)
		}
		seen[a.QuestionNo] = true
		switch q.Type {
		case LabourCount:
			if a.MaleCount == nil || a.FemaleCount == nil {
				return invalid("answers", "question %d requires male and female counts", a.QuestionNo)
			}
			if *a.MaleCount < 0 || *a.FemaleCount < 0 {
				return invalid("answers", "question %d counts must not be negative", a.QuestionNo)
			}
			if a.TotalCount != nil && *a.TotalCount != *a.MaleCount+*a.FemaleCount {
				return invalid("answers", "question %d total %d does not equal male+female %d",
					a.QuestionNo, *a.TotalCount, *a.MaleCount+*a.FemaleCount)
			}
		case LabourOption:
			if a.OptionResponse == nil || !contains(q.Options, *a.OptionResponse) {
				return invalid("answers", "question %d requires one of %v", a.QuestionNo, q.Options)
			}
		}
	}
	return nil
}

// RemarksForm is section 5: free keyed responses.
type RemarksForm struct {
	Responses map[string]string `json:"responses"`
}

func (f *RemarksForm) Validate() error {
	if len(f.Responses) == 0 {
		return invalid("responses", "at least one response required")
	}
	for k, v := range f.Responses {
		if k == "" {
			return invalid("responses", "empty question key")
		}
		if len(k) > 128 {
			return invalid("responses", "question key %q too long", k)
		}
		if len(v) > 1024 {
			return invalid("responses", "response for %q too long", k)
		}
	}
	return nil
}
