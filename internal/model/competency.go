package model

// Domain is the closed set of competency domains.
type Domain string

const (
	DomainClinical     Domain = "Clinical"
	DomainProfessional Domain = "Professional"
	DomainTechnical    Domain = "Technical"
	DomainResearch     Domain = "Research"
)

// Valid reports whether the domain is a member of the closed set.
func (d Domain) Valid() bool {
	switch d {
	case DomainClinical, DomainProfessional, DomainTechnical, DomainResearch:
		return true
	}
	return false
}

// Difficulty ranges 1 (introductory) through 4 (advanced).
type Difficulty int

// Valid reports whether the difficulty is in range.
func (d Difficulty) Valid() bool { return d >= 1 && d <= 4 }

// EvaluationFrequency is how often a competency is expected to be evaluated.
type EvaluationFrequency string

const (
	FrequencyOnce       EvaluationFrequency = "Once"
	FrequencySemesterly EvaluationFrequency = "Semesterly"
	FrequencyYearly     EvaluationFrequency = "Yearly"
	FrequencyContinuous EvaluationFrequency = "Continuous"
)

// Valid reports whether the frequency is a member of the closed set.
func (f EvaluationFrequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencySemesterly, FrequencyYearly, FrequencyContinuous:
		return true
	}
	return false
}

// Competency is keyed by CompetencyId, a numeric string. Referenced by
// Evaluation (via the composite transaction id) and TrackingLocation.
type Competency struct {
	CompetencyID          string              `dynamodbav:"CompetencyId" json:"CompetencyId"`
	CompetencyTitle       string              `dynamodbav:"CompetencyTitle" json:"CompetencyTitle"`
	Domain                Domain              `dynamodbav:"Domain" json:"Domain"`
	Subcategory           string              `dynamodbav:"Subcategory" json:"Subcategory"`
	Difficulty            Difficulty          `dynamodbav:"Difficulty" json:"Difficulty"`
	EvaluationFrequency   EvaluationFrequency `dynamodbav:"EvaluationFrequency" json:"EvaluationFrequency"`
	UniqueEvaluationScale string              `dynamodbav:"UniqueEvaluationScale,omitempty" json:"UniqueEvaluationScale,omitempty"`
}
