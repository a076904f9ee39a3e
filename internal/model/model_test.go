package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/praxislab/comptrack/internal/model"
)

func TestRoleChecks(t *testing.T) {
	tests := []struct {
		role    model.Role
		mentor  bool
		student bool
	}{
		{model.RoleMentor, true, false},
		{"mentor", true, false},
		{"MENTOR", true, false},
		{model.RoleStudent, false, true},
		{"First Year Student", false, true},
		{"second year student", false, true},
		{model.RoleAdmin, false, false},
		{model.RoleCoach, false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.mentor, tt.role.IsMentor(), "IsMentor(%q)", tt.role)
		assert.Equal(t, tt.student, tt.role.IsStudent(), "IsStudent(%q)", tt.role)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, model.Role("Third Year Student").Valid())
	assert.True(t, model.RoleFacultyStaff.Valid())
	assert.False(t, model.Role("Wizard").Valid())
}

func TestTransactionID(t *testing.T) {
	id := model.TransactionID("12", "2023-01-05T10:00:00.000Z")
	assert.Equal(t, "12_2023-01-05T10:00:00.000Z", id)
	assert.Equal(t, "12", model.CompetencyIDFromTransaction(id))

	// no separator returns the input whole
	assert.Equal(t, "12", model.CompetencyIDFromTransaction("12"))
}

func TestErrorClasses(t *testing.T) {
	var err error = &model.InputError{Field: "Limit", Reason: "must be a positive integer"}
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Limit")

	err = &model.ReferenceError{Field: "UserIdEvaluator", ID: "ghost"}
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "ghost")

	err = &model.CursorError{Cause: errors.New("bad base64")}
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	err = &model.StoreError{Op: "scan", Table: "users", Cause: errors.New("throttled")}
	assert.ErrorIs(t, err, model.ErrStore)
	assert.Contains(t, err.Error(), "users")
}
