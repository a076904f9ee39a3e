package model

import "strings"

// Role classifies a user. Stored as a display string; role checks are
// case-insensitive, and student roles may carry a year prefix
// (e.g. "First Year Student"), so the student test is a substring match.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleFacultyStaff Role = "Faculty/Staff"
	RoleCoach        Role = "Coach"
	RoleMentor       Role = "Mentor"
	RoleStudent      Role = "Student"
)

// IsMentor reports whether the role is exactly Mentor.
func (r Role) IsMentor() bool {
	return strings.EqualFold(string(r), string(RoleMentor))
}

// IsStudent reports whether the role is any student variant.
func (r Role) IsStudent() bool {
	return strings.Contains(strings.ToLower(string(r)), "student")
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch {
	case r == RoleAdmin, r == RoleFacultyStaff, r == RoleCoach, r == RoleMentor:
		return true
	case r.IsStudent():
		return true
	}
	return false
}

// UserInfo holds display identity for a user.
type UserInfo struct {
	Name  string `dynamodbav:"name" json:"name"`
	Email string `dynamodbav:"email" json:"email"`
}

// User is keyed by UserId. Created at registration, never updated in
// place, deleted explicitly.
type User struct {
	UserID   string   `dynamodbav:"UserId" json:"UserId"`
	UserInfo UserInfo `dynamodbav:"UserInfo" json:"UserInfo"`
	Role     Role     `dynamodbav:"Role" json:"Role"`
	Cohort   string   `dynamodbav:"Cohort,omitempty" json:"Cohort,omitempty"`
	GTID     string   `dynamodbav:"GTId,omitempty" json:"GTId,omitempty"`
}
