package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the fixed 17-column schema of the evaluation export.
var Header = []string{
	"Transaction Id",
	"Time Stamp",
	"Student User Id",
	"Student Name",
	"Cohort",
	"Date Evaluated",
	"Time Frame",
	"Location",
	"Competency Evaluated",
	"Competency Id",
	"Level",
	"Evaluation Score",
	"Evaluator Name",
	"Evaluator Role",
	"Evidence",
	"Approved",
	"Comments",
}

// Row is one denormalized evaluation. Fields joined from entities that
// no longer exist stay blank.
type Row struct {
	TransactionID   string
	Timestamp       string
	StudentUserID   string
	StudentName     string
	Cohort          string
	DateEvaluated   string
	TimeFrame       string
	Location        string
	CompetencyTitle string
	CompetencyID    string
	Level           string
	EvaluationScore string
	EvaluatorName   string
	EvaluatorRole   string
	Evidence        string
	Approved        string
	Comments        string
}

func (r Row) record() []string {
	return []string{
		r.TransactionID,
		r.Timestamp,
		r.StudentUserID,
		r.StudentName,
		r.Cohort,
		r.DateEvaluated,
		r.TimeFrame,
		r.Location,
		r.CompetencyTitle,
		r.CompetencyID,
		r.Level,
		r.EvaluationScore,
		r.EvaluatorName,
		r.EvaluatorRole,
		r.Evidence,
		r.Approved,
		r.Comments,
	}
}

// displayDate derives the human-readable date and the time frame from a
// stored ISO date. Months are stored 0-based, so the displayed month is
// the stored month plus one, zero-padded. A displayed month below June
// lands in Spring, otherwise Fall. Malformed input yields blanks.
func displayDate(dateEvaluated string) (date, timeFrame string) {
	datePart, _, found := strings.Cut(dateEvaluated, "T")
	if !found {
		return "", ""
	}

	parts := strings.SplitN(datePart, "-", 3)
	if len(parts) != 3 {
		return "", ""
	}

	stored, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", ""
	}
	month := stored + 1

	date = fmt.Sprintf("%s-%02d-%s", parts[0], month, parts[2])
	if month < 6 {
		timeFrame = "Spring " + parts[0]
	} else {
		timeFrame = "Fall " + parts[0]
	}
	return date, timeFrame
}
