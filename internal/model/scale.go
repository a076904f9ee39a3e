package model

// EvaluationScore ranges 0 through 4.
type EvaluationScore int

// Valid reports whether the score is in range.
func (s EvaluationScore) Valid() bool { return s >= 0 && s <= 4 }

// EvaluationScale is a static reference row describing what each score
// means. Keyed by EvaluationScore.
type EvaluationScale struct {
	EvaluationScore EvaluationScore `dynamodbav:"EvaluationScore" json:"EvaluationScore"`
	Title           string          `dynamodbav:"Title" json:"Title"`
	Frequency       string          `dynamodbav:"Frequency" json:"Frequency"`
	Support         string          `dynamodbav:"Support" json:"Support"`
	Explanation     string          `dynamodbav:"Explanation" json:"Explanation"`
}
