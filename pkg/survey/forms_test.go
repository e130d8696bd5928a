package survey

import (
	"strings"
	"testing"
	"time"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestLocationFormBounds(t *testing.T) {
	bad := []LocationForm{
		{Latitude: 100, Longitude: 0},
		{Latitude: -91, Longitude: 0},
		{Latitude: 0, Longitude: 200},
		{Latitude: 0, Longitude: -180.5},
	}
	for _, f := range bad {
		if err := f.Validate(); !IsValidation(err) {
			t.Fatalf("expected validation error for %+v got %v", f, err)
		}
	}
	good := LocationForm{Latitude: 25.0343, Longitude: -77.3963}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid coordinates, got %v", err)
	}
}

func TestHolderInfoFormValidation(t *testing.T) {
	f := HolderInfoForm{}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected missing name rejection got %v", err)
	}

	future := time.Now().Add(48 * time.Hour)
	f = HolderInfoForm{FullName: "J. Rolle", DateOfBirth: &future}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected future dob rejection got %v", err)
	}

	f = HolderInfoForm{FullName: "J. Rolle", Nationality: "Other"}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected nationality_other requirement got %v", err)
	}

	dob := time.Date(1970, 5, 20, 0, 0, 0, 0, time.UTC)
	f = HolderInfoForm{
		FullName:          "J. Rolle",
		Sex:               "Female",
		DateOfBirth:       &dob,
		Nationality:       "Bahamian",
		MaritalStatus:     "Married",
		HighestEducation:  "Undergraduate",
		AgriTraining:      "Yes",
		PrimaryOccupation: "Agriculture",
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestHouseholdFormCountsAndWarning(t *testing.T) {
	f := HouseholdForm{TotalPersons: -1}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected negative count rejection got %v", err)
	}

	// age groups summing past total persons warns but does not block
	f = HouseholdForm{TotalPersons: 4, Under14Male: 2, Under14Female: 1, Plus14Male: 1, Plus14Female: 1}
	if err := f.Validate(); err != nil {
		t.Fatalf("mismatch must not fail validation: %v", err)
	}
	warns := f.Warnings()
	if len(warns) != 1 || !strings.Contains(warns[0], "age groups (5)") {
		t.Fatalf("expected one age-sum warning got %v", warns)
	}

	f = HouseholdForm{TotalPersons: 4, Under14Male: 1, Plus14Male: 1, Plus14Female: 2}
	if warns := f.Warnings(); len(warns) != 0 {
		t.Fatalf("expected no warnings got %v", warns)
	}
}

func TestHouseholdMemberValidation(t *testing.T) {
	m := HouseholdMemberForm{RelationshipCode: 42, Sex: "Male", EducationCode: 1, PrimaryOccupationCode: 1, WorkTimeCode: "F"}
	if err := m.Validate(); !IsValidation(err) {
		t.Fatalf("expected unknown relationship rejection got %v", err)
	}
	m = HouseholdMemberForm{RelationshipCode: 2, Sex: "Male", Age: 130, EducationCode: 1, PrimaryOccupationCode: 1, WorkTimeCode: "F"}
	if err := m.Validate(); !IsValidation(err) {
		t.Fatalf("expected age rejection got %v", err)
	}

	f := HouseholdForm{
		TotalPersons: 2,
		Members: []HouseholdMemberForm{
			{RelationshipCode: 1, Sex: "Female", Age: 40, EducationCode: 4, PrimaryOccupationCode: 1, WorkTimeCode: "F"},
			{RelationshipCode: 1, Sex: "Male", Age: 44, EducationCode: 4, PrimaryOccupationCode: 1, WorkTimeCode: "P"},
		},
	}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected duplicate relationship rejection got %v", err)
	}
}

func TestLabourFormValidation(t *testing.T) {
	f := LabourForm{}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected empty answers rejection got %v", err)
	}

	f = LabourForm{Answers: []LabourAnswer{{QuestionNo: 99, MaleCount: intp(1), FemaleCount: intp(1)}}}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected unknown question rejection got %v", err)
	}

	// total must equal male+female when supplied
	f = LabourForm{Answers: []LabourAnswer{{QuestionNo: 2, MaleCount: intp(2), FemaleCount: intp(3), TotalCount: intp(6)}}}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected total mismatch rejection got %v", err)
	}

	f = LabourForm{Answers: []LabourAnswer{{QuestionNo: 5, OptionResponse: strp("Maybe")}}}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected invalid option rejection got %v", err)
	}

	f = LabourForm{Answers: []LabourAnswer{
		{QuestionNo: 2, MaleCount: intp(2), FemaleCount: intp(3), TotalCount: intp(5)},
		{QuestionNo: 3, MaleCount: intp(0), FemaleCount: intp(0)},
		{QuestionNo: 5, OptionResponse: strp("Not Applicable")},
	}}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestRemarksFormValidation(t *testing.T) {
	f := RemarksForm{}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected empty responses rejection got %v", err)
	}
	f = RemarksForm{Responses: map[string]string{"": "value"}}
	if err := f.Validate(); !IsValidation(err) {
		t.Fatalf("expected empty key rejection got %v", err)
	}
	f = RemarksForm{Responses: map[string]string{"irrigation_notes": "rain-fed only"}}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}
