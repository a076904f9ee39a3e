package model

// TrackingLocation is keyed by a generated numeric LocationId and links
// a named location to the competencies trackable there. Id uniqueness is
// enforced by generate-and-check, not by the store.
type TrackingLocation struct {
	LocationID    string   `dynamodbav:"LocationId" json:"LocationId"`
	LocationName  string   `dynamodbav:"LocationName" json:"LocationName"`
	CompetencyIDs []string `dynamodbav:"CompetencyIds" json:"CompetencyIds"`
}
