package model

import "strings"

// Evidence is the closed set of evidence kinds backing an evaluation.
type Evidence string

const (
	EvidenceObservation Evidence = "Direct Observation"
	EvidenceSimulation  Evidence = "Simulation"
	EvidenceArtifact    Evidence = "Artifact"
	EvidenceSelfReport  Evidence = "Self-Report"
)

// Valid reports whether the evidence kind is a member of the closed set.
func (e Evidence) Valid() bool {
	switch e {
	case EvidenceObservation, EvidenceSimulation, EvidenceArtifact, EvidenceSelfReport:
		return true
	}
	return false
}

// Evaluation has the composite key (UserIdBeingEvaluated,
// CompetencyId_Timestamp), where the range key is the competency id and
// the creation timestamp joined with "_".
type Evaluation struct {
	UserIDBeingEvaluated  string          `dynamodbav:"UserIdBeingEvaluated" json:"UserIdBeingEvaluated"`
	CompetencyIDTimestamp string          `dynamodbav:"CompetencyId_Timestamp" json:"CompetencyId_Timestamp"`
	Timestamp             string          `dynamodbav:"Timestamp" json:"Timestamp"`
	UserIDEvaluator       string          `dynamodbav:"UserIdEvaluator" json:"UserIdEvaluator"`
	DateEvaluated         string          `dynamodbav:"DateEvaluated" json:"DateEvaluated"`
	EvaluationScore       EvaluationScore `dynamodbav:"EvaluationScore" json:"EvaluationScore"`
	Comments              string          `dynamodbav:"Comments" json:"Comments"`
	Evidence              Evidence        `dynamodbav:"Evidence" json:"Evidence"`
	Approved              bool            `dynamodbav:"Approved" json:"Approved"`
}

// TransactionID joins a competency id and an ISO 8601 timestamp into the
// composite range key.
func TransactionID(competencyID, timestamp string) string {
	return competencyID + "_" + timestamp
}

// CompetencyIDFromTransaction extracts the competency id from a
// composite range key: everything before the first "_". A key with no
// separator is returned whole.
func CompetencyIDFromTransaction(transactionID string) string {
	if i := strings.Index(transactionID, "_"); i >= 0 {
		return transactionID[:i]
	}
	return transactionID
}
