package integrity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxislab/comptrack/internal/integrity"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/repository"
	"github.com/praxislab/comptrack/internal/store"
	"github.com/praxislab/comptrack/internal/testutil"
)

func newChecker(t *testing.T) (*integrity.Checker, *testutil.FakeDynamo, *store.Store) {
	t.Helper()
	fake := testutil.NewFakeDynamo()
	fake.CreateTable("users", "UserId")
	fake.CreateTable("competencies", "CompetencyId")
	fake.CreateTable("locations", "LocationId")

	s := store.NewWithAPI(fake)
	checker := integrity.NewChecker(
		repository.NewUsers(s, "users"),
		repository.NewCompetencies(s, "competencies"),
		repository.NewLocations(s, "locations"),
	)
	return checker, fake, s
}

func TestCheckerUserExists(t *testing.T) {
	checker, _, s := newChecker(t)
	ctx := context.Background()

	users := repository.NewUsers(s, "users")
	require.NoError(t, users.Put(ctx, &model.User{
		UserID:   "u1",
		UserInfo: model.UserInfo{Name: "Ada"},
		Role:     model.RoleMentor,
	}))

	ok, err := checker.UserExists(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.UserExists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckerRequireUser_Absent(t *testing.T) {
	checker, _, _ := newChecker(t)

	err := checker.RequireUser(context.Background(), "UserIdEvaluator", "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)

	var refErr *model.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "UserIdEvaluator", refErr.Field)
	assert.Equal(t, "ghost", refErr.ID)
}

func TestCheckerRequireCompetency_Present(t *testing.T) {
	checker, _, s := newChecker(t)
	ctx := context.Background()

	comps := repository.NewCompetencies(s, "competencies")
	require.NoError(t, comps.Put(ctx, &model.Competency{
		CompetencyID:    "12",
		CompetencyTitle: "Suturing",
		Domain:          model.DomainClinical,
		Difficulty:      2,
	}))

	assert.NoError(t, checker.RequireCompetency(ctx, "CompetencyIds", "12"))
}

func TestCheckerStoreErrorPropagates(t *testing.T) {
	checker, fake, _ := newChecker(t)
	fake.Errs["get"] = errors.New("throttled")

	_, err := checker.UserExists(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStore)
	assert.NotErrorIs(t, err, model.ErrReferenceNotFound)
}

func TestCheckerRequireTrackingLocation(t *testing.T) {
	checker, _, s := newChecker(t)
	ctx := context.Background()

	locs := repository.NewLocations(s, "locations")
	require.NoError(t, locs.Put(ctx, &model.TrackingLocation{
		LocationID:    "00001234",
		LocationName:  "Library",
		CompetencyIDs: []string{"12"},
	}))

	assert.NoError(t, checker.RequireTrackingLocation(ctx, "LocationIds", "00001234"))
	assert.ErrorIs(t, checker.RequireTrackingLocation(ctx, "LocationIds", "nope"), model.ErrReferenceNotFound)
}
