package survey

// Code tables of the census instrument. Codes are stored, labels are for
// display and exports.

var SexOptions = []string{"Male", "Female", "Other"}

var MaritalStatusOptions = []string{
	"Single", "Married", "Divorced", "Separated", "Widowed",
	"Common-Law", "Prefer not to disclose",
}

var NationalityOptions = []string{"Bahamian", "Other"}

var EducationOptions = []string{
	"No Schooling", "Primary", "Junior Secondary", "Senior Secondary",
	"Undergraduate", "Masters", "Doctorate", "Vocational", "Professional Designation",
}

var PrimaryOccupationOptions = []string{"Agriculture", "Other"}

var RelationshipCodes = map[int]string{
	1: "Spouse/Partner", 2: "Son", 3: "Daughter", 4: "In-Laws",
	5: "Grandchild", 6: "Parent/Parent-In-Law", 7: "Other Relative", 8: "Non-Relative",
}

var EducationCodes = map[int]string{
	1: "No Schooling", 2: "Primary", 3: "Junior Secondary", 4: "Senior Secondary",
	5: "Undergraduate", 6: "Masters", 7: "Doctorate", 8: "Vocational", 9: "Professional Designation",
}

var OccupationCodes = map[int]string{
	1: "Agriculture", 2: "Fishing", 3: "Professional/Technical", 4: "Administrative/Manager",
	5: "Sales", 6: "Customer Service", 7: "Tourism", 8: "Not Economically Active", 9: "Other",
}

var WorkTimeCodes = map[string]string{
	"N": "None", "F": "Full time", "P": "Part time",
	"P3": "1-3 months", "P6": "4-6 months", "P7": "7+ months",
}

// LabourQuestionType distinguishes male/female count questions from
// single-option questions.
type LabourQuestionType string

const (
	LabourCount  LabourQuestionType = "count"
	LabourOption LabourQuestionType = "option"
)

// LabourQuestion is one entry of the holding-labour questionnaire.
type LabourQuestion struct {
	No      int
	Text    string
	Type    LabourQuestionType
	Options []string
}

var yesNoNA = []string{"Yes", "No", "Not Applicable"}

// LabourQuestions is the fixed holding-labour questionnaire. Question
// numbers follow the paper instrument (question 1 is the holder identity).
var LabourQuestions = []LabourQuestion{
	{No: 2, Text: "How many permanent workers including administrative staff were hired on the holding (excluding household)?", Type: LabourCount},
	{No: 3, Text: "How many temporary workers including administrative staff were hired on the holding (excluding household)?", Type: LabourCount},
	{No: 4, Text: "What was the number of non-Bahamian workers on the holding?", Type: LabourCount},
	{No: 5, Text: "Did any of your workers have work permits?", Type: LabourOption, Options: yesNoNA},
	{No: 6, Text: "Were there any volunteer workers on the holding (i.e. unpaid labourers)?", Type: LabourOption, Options: yesNoNA},
	{No: 7, Text: "Did you use any agricultural contracted services on the holding?", Type: LabourOption, Options: yesNoNA},
}

// LabourQuestionByNo looks up a questionnaire entry.
func LabourQuestionByNo(no int) (LabourQuestion, bool) {
	for _, q := range LabourQuestions {
		if q.No == no {
			return q, true
		}
	}
	return LabourQuestion{}, false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
