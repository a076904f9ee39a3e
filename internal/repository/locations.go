package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// Locations accesses the tracking-locations table, keyed by LocationId.
type Locations struct {
	store *store.Store
	table string
}

// NewLocations creates a Locations repository.
func NewLocations(s *store.Store, table string) *Locations {
	return &Locations{store: s, table: table}
}

func locationKey(id string) store.PK {
	return store.PK{
		"LocationId": &types.AttributeValueMemberS{Value: id},
	}
}

// Get fetches a tracking location by id, ErrNotFound when absent.
func (r *Locations) Get(ctx context.Context, id string) (*model.TrackingLocation, error) {
	item, found, err := r.store.Get(ctx, r.table, locationKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("tracking location %q: %w", id, model.ErrNotFound)
	}

	var loc model.TrackingLocation
	if err := attributevalue.UnmarshalMap(item, &loc); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return &loc, nil
}

// Put writes a tracking location wholesale.
func (r *Locations) Put(ctx context.Context, loc *model.TrackingLocation) error {
	item, err := attributevalue.MarshalMap(loc)
	if err != nil {
		return &model.StoreError{Op: "marshal", Table: r.table, Cause: err}
	}
	return r.store.Put(ctx, r.table, item)
}

// Delete removes a tracking location by id.
func (r *Locations) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.table, locationKey(id))
}

// FindByName scans for locations with exactly the given name. The store
// has no index on names, so this filters a full scan.
func (r *Locations) FindByName(ctx context.Context, name string) ([]model.TrackingLocation, error) {
	items, err := r.store.ScanAll(ctx, store.ScanInput{
		Table:            r.table,
		FilterExpression: "#name = :name",
		ExpressionAttributeNames: map[string]string{
			"#name": "LocationName",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return nil, err
	}

	var locs []model.TrackingLocation
	if err := attributevalue.UnmarshalListOfMaps(items, &locs); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return locs, nil
}

// List returns one page of tracking locations.
func (r *Locations) List(ctx context.Context, startKey store.PK, limit int32) ([]model.TrackingLocation, store.PK, error) {
	page, err := r.store.Scan(ctx, store.ScanInput{
		Table:    r.table,
		StartKey: startKey,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	var locs []model.TrackingLocation
	if err := attributevalue.UnmarshalListOfMaps(page.Items, &locs); err != nil {
		return nil, nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return locs, page.LastKey, nil
}
