// Package store is the DynamoDB adapter: per-key get/put/delete plus
// table scans with filter and native continuation-key pagination.
package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/model"
)

// PK is a DynamoDB primary key.
type PK = map[string]types.AttributeValue

// Item is a raw DynamoDB item.
type Item = map[string]types.AttributeValue

// api is the slice of the DynamoDB client the store consumes. Narrow so
// tests can substitute a fake without a real endpoint.
type api interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, input *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, input *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, input *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store provides key-value operations over DynamoDB tables.
type Store struct {
	client api
}

// New creates a Store backed by a DynamoDB client.
func New(client *dynamodb.Client) *Store {
	return &Store{client: client}
}

// NewWithAPI creates a Store with an injected API, used by tests.
func NewWithAPI(client api) *Store {
	return &Store{client: client}
}

// Get retrieves one item by key. The boolean is the explicit found
// result: a missing item is (nil, false, nil), never an empty item.
func (s *Store) Get(ctx context.Context, table string, key PK) (Item, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, false, &model.StoreError{Op: "get", Table: table, Cause: err}
	}
	if out.Item == nil {
		return nil, false, nil
	}
	return out.Item, true, nil
}

// Put writes one item wholesale, replacing any existing item with the
// same key.
func (s *Store) Put(ctx context.Context, table string, item Item) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return &model.StoreError{Op: "put", Table: table, Cause: err}
	}
	return nil
}

// Delete removes one item by key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, table string, key PK) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return &model.StoreError{Op: "delete", Table: table, Cause: err}
	}
	return nil
}

// ScanInput selects one page of a table scan.
type ScanInput struct {
	Table string

	// FilterExpression is applied server-side after items are read, so
	// a page can hold fewer items than Limit without being the last.
	FilterExpression          string
	ExpressionAttributeNames  map[string]string
	ExpressionAttributeValues map[string]types.AttributeValue

	// StartKey resumes a scan from a prior page's LastKey.
	StartKey PK

	// Limit bounds the page size. Zero means the store's own page limit.
	Limit int32
}

// ScanOutput is one page of scan results.
type ScanOutput struct {
	Items []Item

	// LastKey is non-nil only when more results remain.
	LastKey PK
}

// Scan reads a single page.
func (s *Store) Scan(ctx context.Context, input ScanInput) (*ScanOutput, error) {
	in := &dynamodb.ScanInput{
		TableName: aws.String(input.Table),
	}
	if input.FilterExpression != "" {
		in.FilterExpression = aws.String(input.FilterExpression)
		in.ExpressionAttributeNames = input.ExpressionAttributeNames
		in.ExpressionAttributeValues = input.ExpressionAttributeValues
	}
	if input.StartKey != nil {
		in.ExclusiveStartKey = input.StartKey
	}
	if input.Limit > 0 {
		in.Limit = aws.Int32(input.Limit)
	}

	out, err := s.client.Scan(ctx, in)
	if err != nil {
		return nil, &model.StoreError{Op: "scan", Table: input.Table, Cause: err}
	}

	result := &ScanOutput{Items: out.Items}
	if len(out.LastEvaluatedKey) > 0 {
		result.LastKey = out.LastEvaluatedKey
	}
	return result, nil
}

// ScanAll loops pages until the scan is exhausted. Used where callers
// must never see partial results.
func (s *Store) ScanAll(ctx context.Context, input ScanInput) ([]Item, error) {
	var items []Item
	for {
		page, err := s.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.LastKey == nil {
			return items, nil
		}
		input.StartKey = page.LastKey
	}
}

// QueryInput selects items sharing a partition key.
type QueryInput struct {
	Table                     string
	KeyConditionExpression    string
	ExpressionAttributeNames  map[string]string
	ExpressionAttributeValues map[string]types.AttributeValue
}

// QueryAll pages through every item matching the key condition.
func (s *Store) QueryAll(ctx context.Context, input QueryInput) ([]Item, error) {
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(input.Table),
		KeyConditionExpression:    aws.String(input.KeyConditionExpression),
		ExpressionAttributeNames:  input.ExpressionAttributeNames,
		ExpressionAttributeValues: input.ExpressionAttributeValues,
	}

	var items []Item
	paginator := dynamodb.NewQueryPaginator(s.client, in)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &model.StoreError{Op: "query", Table: input.Table, Cause: err}
		}
		items = append(items, page.Items...)
	}

	return items, nil
}

// TransactWrite executes a set of writes atomically.
func (s *Store) TransactWrite(ctx context.Context, items []types.TransactWriteItem) error {
	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return &model.StoreError{Op: "transact", Table: "", Cause: err}
	}
	return nil
}
