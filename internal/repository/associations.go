package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// Associations accesses the user-to-tracking association table, keyed
// by the owning UserId.
type Associations struct {
	store *store.Store
	table string
}

// NewAssociations creates an Associations repository.
func NewAssociations(s *store.Store, table string) *Associations {
	return &Associations{store: s, table: table}
}

func associationKey(userID string) store.PK {
	return store.PK{
		"UserId": &types.AttributeValueMemberS{Value: userID},
	}
}

// Get fetches the association record for a user. Absence is reported as
// ErrNotFound, distinct from a present record with empty lists.
func (r *Associations) Get(ctx context.Context, userID string) (*model.UserTrackingAssociation, error) {
	item, found, err := r.store.Get(ctx, r.table, associationKey(userID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("association for user %q: %w", userID, model.ErrNotFound)
	}

	var assoc model.UserTrackingAssociation
	if err := attributevalue.UnmarshalMap(item, &assoc); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return &assoc, nil
}

// MarshalRecord converts an association to a raw store item. Exposed so
// the resolver can include the forward write in a transaction with its
// inverse-index records.
func (r *Associations) MarshalRecord(assoc *model.UserTrackingAssociation) (store.Item, error) {
	item, err := attributevalue.MarshalMap(assoc)
	if err != nil {
		return nil, &model.StoreError{Op: "marshal", Table: r.table, Cause: err}
	}
	return item, nil
}

// Table returns the backing table name.
func (r *Associations) Table() string { return r.table }

// Put replaces the association record for a user wholesale.
func (r *Associations) Put(ctx context.Context, assoc *model.UserTrackingAssociation) error {
	item, err := r.MarshalRecord(assoc)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, r.table, item)
}

// Delete removes the association record for a user.
func (r *Associations) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, r.table, associationKey(userID))
}

// List returns one page of association records.
func (r *Associations) List(ctx context.Context, startKey store.PK, limit int32) ([]model.UserTrackingAssociation, store.PK, error) {
	page, err := r.store.Scan(ctx, store.ScanInput{
		Table:    r.table,
		StartKey: startKey,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	var assocs []model.UserTrackingAssociation
	if err := attributevalue.UnmarshalListOfMaps(page.Items, &assocs); err != nil {
		return nil, nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return assocs, page.LastKey, nil
}

// All scans every association record. Reverse lookups that have no
// index fall back to this.
func (r *Associations) All(ctx context.Context) ([]model.UserTrackingAssociation, error) {
	items, err := r.store.ScanAll(ctx, store.ScanInput{Table: r.table})
	if err != nil {
		return nil, err
	}

	var assocs []model.UserTrackingAssociation
	if err := attributevalue.UnmarshalListOfMaps(items, &assocs); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return assocs, nil
}
