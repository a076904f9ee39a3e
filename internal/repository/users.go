// Package repository contains one thin accessor per entity kind. Each
// is a pure pass-through to the store: marshal, call, unmarshal. No
// caching and no validation beyond shape.
package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// Users accesses the users table, keyed by UserId.
type Users struct {
	store *store.Store
	table string
}

// NewUsers creates a Users repository.
func NewUsers(s *store.Store, table string) *Users {
	return &Users{store: s, table: table}
}

// Table returns the backing table name.
func (r *Users) Table() string { return r.table }

func userKey(id string) store.PK {
	return store.PK{
		"UserId": &types.AttributeValueMemberS{Value: id},
	}
}

// Get fetches a user by id, returning ErrNotFound when absent.
func (r *Users) Get(ctx context.Context, id string) (*model.User, error) {
	item, found, err := r.store.Get(ctx, r.table, userKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user %q: %w", id, model.ErrNotFound)
	}

	var user model.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return &user, nil
}

// Put writes a user wholesale.
func (r *Users) Put(ctx context.Context, user *model.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return &model.StoreError{Op: "marshal", Table: r.table, Cause: err}
	}
	return r.store.Put(ctx, r.table, item)
}

// Delete removes a user by id.
func (r *Users) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.table, userKey(id))
}

// List returns one page of users.
func (r *Users) List(ctx context.Context, startKey store.PK, limit int32) ([]model.User, store.PK, error) {
	page, err := r.store.Scan(ctx, store.ScanInput{
		Table:    r.table,
		StartKey: startKey,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	var users []model.User
	if err := attributevalue.UnmarshalListOfMaps(page.Items, &users); err != nil {
		return nil, nil, &model.StoreError{Op: "unmarshal", Table: r.table, Cause: err}
	}
	return users, page.LastKey, nil
}
