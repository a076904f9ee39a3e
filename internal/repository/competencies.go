package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// Competencies accesses the competencies table, keyed by CompetencyId.
type Competencies struct {
	store *store.Store
	table string
}

// NewCompetencies creates a Competencies repository.
func NewCompetencies(s *store.Store, table string) *Competencies {
	return &Competencies{store: s, table: table}
}

func competencyKey(id string) store.PK {
	return store.PK{
		"CompetencyId": &types.AttributeValueMemberS{Value: id},
	}
}

// Get fetches a competency by id, returning ErrNotFound when absent.
func (r *Competencies) Get(ctx context.Context, id string) (*model.Competency, error) {
	item, found, err := r.store.Get(ctx, r.table, competencyKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("competency %q: %w", id, model.ErrNotFound)
	}

	var comp model.Competency
	if err := attributevalue.UnmarshalMap(item, &comp); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return &comp, nil
}

// Put writes a competency wholesale.
func (r *Competencies) Put(ctx context.Context, comp *model.Competency) error {
	item, err := attributevalue.MarshalMap(comp)
	if err != nil {
		return &model.StoreError{Op: "marshal", Table: r.table, Cause: err}
	}
	return r.store.Put(ctx, r.table, item)
}

// Delete removes a competency by id.
func (r *Competencies) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.table, competencyKey(id))
}

// List returns one page of competencies.
func (r *Competencies) List(ctx context.Context, startKey store.PK, limit int32) ([]model.Competency, store.PK, error) {
	page, err := r.store.Scan(ctx, store.ScanInput{
		Table:    r.table,
		StartKey: startKey,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	var comps []model.Competency
	if err := attributevalue.UnmarshalListOfMaps(page.Items, &comps); err != nil {
		return nil, nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return comps, page.LastKey, nil
}
