package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// Evaluations accesses the evaluations table, keyed by the composite
// (UserIdBeingEvaluated, CompetencyId_Timestamp).
type Evaluations struct {
	store *store.Store
	table string
}

// NewEvaluations creates an Evaluations repository.
func NewEvaluations(s *store.Store, table string) *Evaluations {
	return &Evaluations{store: s, table: table}
}

func evaluationKey(userID, transactionID string) store.PK {
	return store.PK{
		"UserIdBeingEvaluated":   &types.AttributeValueMemberS{Value: userID},
		"CompetencyId_Timestamp": &types.AttributeValueMemberS{Value: transactionID},
	}
}

// Get fetches one evaluation by composite key, ErrNotFound when absent.
func (r *Evaluations) Get(ctx context.Context, userID, transactionID string) (*model.Evaluation, error) {
	item, found, err := r.store.Get(ctx, r.table, evaluationKey(userID, transactionID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("evaluation %q/%q: %w", userID, transactionID, model.ErrNotFound)
	}

	var eval model.Evaluation
	if err := attributevalue.UnmarshalMap(item, &eval); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return &eval, nil
}

// Put writes an evaluation wholesale.
func (r *Evaluations) Put(ctx context.Context, eval *model.Evaluation) error {
	item, err := attributevalue.MarshalMap(eval)
	if err != nil {
		return &model.StoreError{Op: "marshal", Table: r.table, Cause: err}
	}
	return r.store.Put(ctx, r.table, item)
}

// Delete removes one evaluation by composite key.
func (r *Evaluations) Delete(ctx context.Context, userID, transactionID string) error {
	return r.store.Delete(ctx, r.table, evaluationKey(userID, transactionID))
}

// List returns one page of evaluations.
func (r *Evaluations) List(ctx context.Context, startKey store.PK, limit int32) ([]model.Evaluation, store.PK, error) {
	page, err := r.store.Scan(ctx, store.ScanInput{
		Table:    r.table,
		StartKey: startKey,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	var evals []model.Evaluation
	if err := attributevalue.UnmarshalListOfMaps(page.Items, &evals); err != nil {
		return nil, nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return evals, page.LastKey, nil
}

// All scans the whole table. The export pipeline depends on this never
// returning a partial result set.
func (r *Evaluations) All(ctx context.Context) ([]model.Evaluation, error) {
	items, err := r.store.ScanAll(ctx, store.ScanInput{Table: r.table})
	if err != nil {
		return nil, err
	}

	var evals []model.Evaluation
	if err := attributevalue.UnmarshalListOfMaps(items, &evals); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return evals, nil
}
