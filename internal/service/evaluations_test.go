package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxislab/comptrack/internal/integrity"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/pagination"
	"github.com/praxislab/comptrack/internal/repository"
	"github.com/praxislab/comptrack/internal/store"
	"github.com/praxislab/comptrack/internal/testutil"
)

var frozenNow = time.Date(2023, time.June, 15, 10, 30, 0, 0, time.UTC)

func newEvaluationsService(t *testing.T) (*Evaluations, *testutil.FakeDynamo, *store.Store) {
	t.Helper()
	fake := testutil.NewFakeDynamo()
	fake.CreateTable("users", "UserId")
	fake.CreateTable("competencies", "CompetencyId")
	fake.CreateTable("locations", "LocationId")
	fake.CreateTable("evaluations", "UserIdBeingEvaluated", "CompetencyId_Timestamp")

	s := store.NewWithAPI(fake)
	checker := integrity.NewChecker(
		repository.NewUsers(s, "users"),
		repository.NewCompetencies(s, "competencies"),
		repository.NewLocations(s, "locations"),
	)

	svc := NewEvaluations(repository.NewEvaluations(s, "evaluations"), checker, testutil.MakeNoopLogger())
	svc.now = func() time.Time { return frozenNow }
	return svc, fake, s
}

func seedEvalRefs(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()
	users := repository.NewUsers(s, "users")
	comps := repository.NewCompetencies(s, "competencies")

	require.NoError(t, users.Put(ctx, &model.User{
		UserID:   "stu-1",
		UserInfo: model.UserInfo{Name: "Grace"},
		Role:     model.RoleStudent,
	}))
	require.NoError(t, users.Put(ctx, &model.User{
		UserID:   "mentor-1",
		UserInfo: model.UserInfo{Name: "Alan"},
		Role:     model.RoleMentor,
	}))
	require.NoError(t, comps.Put(ctx, &model.Competency{
		CompetencyID:    "12",
		CompetencyTitle: "Wound Care",
		Domain:          model.DomainClinical,
		Difficulty:      3,
	}))
}

func validParams() CreateEvaluationParams {
	return CreateEvaluationParams{
		UserIDBeingEvaluated: "stu-1",
		CompetencyID:         "12",
		UserIDEvaluator:      "mentor-1",
		Year:                 2023,
		Month:                0, // January on the wire
		Day:                  5,
		EvaluationScore:      3,
		Comments:             "good",
		Evidence:             model.EvidenceObservation,
		Approved:             true,
	}
}

func TestEvaluationsCreate(t *testing.T) {
	svc, fake, s := newEvaluationsService(t)
	seedEvalRefs(t, s)

	eval, err := svc.Create(context.Background(), validParams())
	require.NoError(t, err)

	assert.Equal(t, "2023-06-15T10:30:00.000Z", eval.Timestamp)
	assert.Equal(t, "12_2023-06-15T10:30:00.000Z", eval.CompetencyIDTimestamp)
	assert.Equal(t, "2023-00-05T00:00:00.000Z", eval.DateEvaluated, "wire month stored 0-based")
	assert.Equal(t, 1, fake.Len("evaluations"))

	stored, err := svc.Get(context.Background(), "stu-1", eval.CompetencyIDTimestamp)
	require.NoError(t, err)
	assert.Equal(t, model.EvaluationScore(3), stored.EvaluationScore)
	assert.True(t, stored.Approved)
}

func TestEvaluationsCreate_NonexistentEvaluatorWritesNothing(t *testing.T) {
	svc, fake, s := newEvaluationsService(t)
	seedEvalRefs(t, s)

	params := validParams()
	params.UserIDEvaluator = "ghost"

	_, err := svc.Create(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)

	var refErr *model.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "UserIdEvaluator", refErr.Field)

	assert.Equal(t, 0, fake.Len("evaluations"), "no record persisted on a failed check")
}

func TestEvaluationsCreate_FutureDateRejected(t *testing.T) {
	svc, fake, s := newEvaluationsService(t)
	seedEvalRefs(t, s)

	params := validParams()
	params.Year = 2024
	params.Month = 0
	params.Day = 1

	_, err := svc.Create(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Equal(t, 0, fake.Len("evaluations"))
}

func TestEvaluationsCreate_InvalidScore(t *testing.T) {
	svc, _, s := newEvaluationsService(t)
	seedEvalRefs(t, s)

	params := validParams()
	params.EvaluationScore = 7

	_, err := svc.Create(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestEvaluationsList_LimitValidation(t *testing.T) {
	svc, _, _ := newEvaluationsService(t)

	_, err := svc.List(context.Background(), "", "-1")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.List(context.Background(), "", "abc")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestEvaluationsList_Paged(t *testing.T) {
	svc, _, s := newEvaluationsService(t)
	seedEvalRefs(t, s)
	ctx := context.Background()

	evals := repository.NewEvaluations(s, "evaluations")
	for _, ts := range []string{"a", "b", "c"} {
		require.NoError(t, evals.Put(ctx, &model.Evaluation{
			UserIDBeingEvaluated:  "stu-1",
			CompetencyIDTimestamp: "12_" + ts,
			UserIDEvaluator:       "mentor-1",
		}))
	}

	page1, err := svc.List(ctx, "", "2")
	require.NoError(t, err)
	assert.Len(t, page1.Items, 2)
	require.NotEmpty(t, page1.Cursor, "more items remain")

	page2, err := svc.List(ctx, page1.Cursor, "2")
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)
	assert.Empty(t, page2.Cursor, "table exhausted")
}

func TestEvaluationsList_MalformedCursor(t *testing.T) {
	svc, _, _ := newEvaluationsService(t)

	page, err := svc.List(context.Background(), "%%%bogus%%%", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Equal(t, pagination.Page[model.Evaluation]{}, page)
}
