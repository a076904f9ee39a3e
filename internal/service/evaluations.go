// Package service holds the write-path orchestration the request
// handlers lean on: integrity checks run before any persist, paged
// reads go through the cursor codec.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/praxislab/comptrack/internal/integrity"
	"github.com/praxislab/comptrack/internal/logger"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/pagination"
	"github.com/praxislab/comptrack/internal/repository"
)

// isoMillis matches the wire timestamp format, ISO 8601 with
// millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Evaluations orchestrates evaluation writes and paged reads.
type Evaluations struct {
	evaluations *repository.Evaluations
	checker     *integrity.Checker
	logger      *logger.Logger
	now         func() time.Time
}

// NewEvaluations creates an Evaluations service.
func NewEvaluations(evaluations *repository.Evaluations, checker *integrity.Checker, l *logger.Logger) *Evaluations {
	return &Evaluations{
		evaluations: evaluations,
		checker:     checker,
		logger:      l,
		now:         time.Now,
	}
}

// CreateEvaluationParams carries the fields of a new evaluation. Month
// is 0-based on the wire and stored as-is; January is 0.
type CreateEvaluationParams struct {
	UserIDBeingEvaluated string
	CompetencyID         string
	UserIDEvaluator      string
	Year                 int
	Month                int
	Day                  int
	EvaluationScore      model.EvaluationScore
	Comments             string
	Evidence             model.Evidence
	Approved             bool
}

// Create persists a new evaluation. Both user references and the
// competency reference must exist, and the evaluated date must not be
// in the future; on any failed check nothing is written.
func (s *Evaluations) Create(ctx context.Context, params CreateEvaluationParams) (*model.Evaluation, error) {
	if params.UserIDBeingEvaluated == "" {
		return nil, &model.InputError{Field: "UserIdBeingEvaluated", Reason: "must not be empty"}
	}
	if params.UserIDEvaluator == "" {
		return nil, &model.InputError{Field: "UserIdEvaluator", Reason: "must not be empty"}
	}
	if params.CompetencyID == "" {
		return nil, &model.InputError{Field: "CompetencyId", Reason: "must not be empty"}
	}
	if !params.EvaluationScore.Valid() {
		return nil, &model.InputError{Field: "EvaluationScore", Reason: "must be between 0 and 4"}
	}
	if !params.Evidence.Valid() {
		return nil, &model.InputError{Field: "Evidence", Reason: fmt.Sprintf("unknown evidence kind %q", params.Evidence)}
	}

	now := s.now().UTC()

	// Calendar date with the wire month shifted to 1-based.
	evaluated := time.Date(params.Year, time.Month(params.Month+1), params.Day, 0, 0, 0, 0, time.UTC)
	if evaluated.After(now) {
		return nil, &model.InputError{Field: "DateEvaluated", Reason: "must not be in the future"}
	}

	if err := s.checker.RequireUser(ctx, "UserIdBeingEvaluated", params.UserIDBeingEvaluated); err != nil {
		return nil, err
	}
	if err := s.checker.RequireUser(ctx, "UserIdEvaluator", params.UserIDEvaluator); err != nil {
		return nil, err
	}
	if err := s.checker.RequireCompetency(ctx, "CompetencyId", params.CompetencyID); err != nil {
		return nil, err
	}

	timestamp := now.Format(isoMillis)
	eval := &model.Evaluation{
		UserIDBeingEvaluated:  params.UserIDBeingEvaluated,
		CompetencyIDTimestamp: model.TransactionID(params.CompetencyID, timestamp),
		Timestamp:             timestamp,
		UserIDEvaluator:       params.UserIDEvaluator,
		DateEvaluated:         fmt.Sprintf("%04d-%02d-%02dT00:00:00.000Z", params.Year, params.Month, params.Day),
		EvaluationScore:       params.EvaluationScore,
		Comments:              params.Comments,
		Evidence:              params.Evidence,
		Approved:              params.Approved,
	}

	if err := s.evaluations.Put(ctx, eval); err != nil {
		return nil, err
	}

	s.logger.Info("evaluation created",
		"userId", eval.UserIDBeingEvaluated,
		"transactionId", eval.CompetencyIDTimestamp,
	)
	return eval, nil
}

// Get fetches one evaluation by its composite key.
func (s *Evaluations) Get(ctx context.Context, userID, transactionID string) (*model.Evaluation, error) {
	return s.evaluations.Get(ctx, userID, transactionID)
}

// Delete removes one evaluation by its composite key.
func (s *Evaluations) Delete(ctx context.Context, userID, transactionID string) error {
	return s.evaluations.Delete(ctx, userID, transactionID)
}

// List returns one page of evaluations. cursor and rawLimit come
// straight off the wire; both are validated here.
func (s *Evaluations) List(ctx context.Context, cursor, rawLimit string) (pagination.Page[model.Evaluation], error) {
	startKey, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return pagination.Page[model.Evaluation]{}, err
	}
	limit, err := pagination.ParseLimit(rawLimit)
	if err != nil {
		return pagination.Page[model.Evaluation]{}, err
	}

	evals, lastKey, err := s.evaluations.List(ctx, startKey, limit)
	if err != nil {
		return pagination.Page[model.Evaluation]{}, err
	}
	return pagination.NewPage(evals, lastKey)
}
