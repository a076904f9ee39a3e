package model

// UserTrackingAssociation is a many-to-many linking record keyed by the
// owning UserId. Exactly one of StudentIds (owner is a mentor) or
// LocationIds (any other role) is non-nil. Written by full replacement,
// never incremental merge.
type UserTrackingAssociation struct {
	UserID      string   `dynamodbav:"UserId" json:"UserId"`
	StudentIDs  []string `dynamodbav:"StudentIds,nullempty" json:"StudentIds"`
	LocationIDs []string `dynamodbav:"LocationIds,nullempty" json:"LocationIds"`
}
