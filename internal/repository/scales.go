package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// Scales accesses the evaluation-scale reference table, keyed by
// EvaluationScore.
type Scales struct {
	store *store.Store
	table string
}

// NewScales creates a Scales repository.
func NewScales(s *store.Store, table string) *Scales {
	return &Scales{store: s, table: table}
}

func scaleKey(score model.EvaluationScore) store.PK {
	return store.PK{
		"EvaluationScore": &types.AttributeValueMemberN{Value: strconv.Itoa(int(score))},
	}
}

// Get fetches the reference row for a score, ErrNotFound when absent.
func (r *Scales) Get(ctx context.Context, score model.EvaluationScore) (*model.EvaluationScale, error) {
	item, found, err := r.store.Get(ctx, r.table, scaleKey(score))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("evaluation scale %d: %w", score, model.ErrNotFound)
	}

	var scale model.EvaluationScale
	if err := attributevalue.UnmarshalMap(item, &scale); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return &scale, nil
}

// Put writes a reference row wholesale.
func (r *Scales) Put(ctx context.Context, scale *model.EvaluationScale) error {
	item, err := attributevalue.MarshalMap(scale)
	if err != nil {
		return &model.StoreError{Op: "marshal", Table: r.table, Cause: err}
	}
	return r.store.Put(ctx, r.table, item)
}

// All returns every reference row. The table is five static rows, so
// there is no paged variant.
func (r *Scales) All(ctx context.Context) ([]model.EvaluationScale, error) {
	items, err := r.store.ScanAll(ctx, store.ScanInput{Table: r.table})
	if err != nil {
		return nil, err
	}

	var scales []model.EvaluationScale
	if err := attributevalue.UnmarshalListOfMaps(items, &scales); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return scales, nil
}
