// Package testutil holds shared test fakes.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FakeDynamo is an in-memory stand-in for the DynamoDB client: ordered
// tables, key-equality gets, scans with start-key/limit/equality-filter
// support, and partition-key queries. Tables must be registered with
// CreateTable so key attributes are known.
type FakeDynamo struct {
	mu     sync.Mutex
	keys   map[string][]string
	tables map[string][]map[string]types.AttributeValue

	// Errs forces the next call of the named operation ("get", "put",
	// "delete", "scan", "query", "transact") to fail.
	Errs map[string]error
}

// NewFakeDynamo creates an empty fake.
func NewFakeDynamo() *FakeDynamo {
	return &FakeDynamo{
		keys:   map[string][]string{},
		tables: map[string][]map[string]types.AttributeValue{},
		Errs:   map[string]error{},
	}
}

// CreateTable registers a table and its key attribute names.
func (f *FakeDynamo) CreateTable(name string, keyAttrs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[name] = keyAttrs
	if _, ok := f.tables[name]; !ok {
		f.tables[name] = nil
	}
}

// Len reports how many items a table holds.
func (f *FakeDynamo) Len(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

func (f *FakeDynamo) takeErr(op string) error {
	if err, ok := f.Errs[op]; ok {
		delete(f.Errs, op)
		return err
	}
	return nil
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return false
}

func matchesKey(item map[string]types.AttributeValue, key map[string]types.AttributeValue) bool {
	for k, v := range key {
		iv, ok := item[k]
		if !ok || !attrEqual(iv, v) {
			return false
		}
	}
	return true
}

func (f *FakeDynamo) itemKey(table string, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{}
	for _, attr := range f.keys[table] {
		if v, ok := item[attr]; ok {
			key[attr] = v
		}
	}
	return key
}

func (f *FakeDynamo) putLocked(table string, item map[string]types.AttributeValue) {
	key := f.itemKey(table, item)
	for i, existing := range f.tables[table] {
		if matchesKey(existing, key) {
			f.tables[table][i] = item
			return
		}
	}
	f.tables[table] = append(f.tables[table], item)
}

func (f *FakeDynamo) deleteLocked(table string, key map[string]types.AttributeValue) {
	items := f.tables[table]
	for i, existing := range items {
		if matchesKey(existing, key) {
			f.tables[table] = append(items[:i:i], items[i+1:]...)
			return
		}
	}
}

// GetItem implements the DynamoDB client surface.
func (f *FakeDynamo) GetItem(_ context.Context, input *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("get"); err != nil {
		return nil, err
	}

	for _, item := range f.tables[*input.TableName] {
		if matchesKey(item, input.Key) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

// PutItem implements the DynamoDB client surface.
func (f *FakeDynamo) PutItem(_ context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("put"); err != nil {
		return nil, err
	}

	f.putLocked(*input.TableName, input.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// DeleteItem implements the DynamoDB client surface.
func (f *FakeDynamo) DeleteItem(_ context.Context, input *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("delete"); err != nil {
		return nil, err
	}

	f.deleteLocked(*input.TableName, input.Key)
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan implements the DynamoDB client surface. Filter expressions are
// supported for the single-equality form "#a = :v" used in this repo;
// the limit applies before the filter, as in DynamoDB.
func (f *FakeDynamo) Scan(_ context.Context, input *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("scan"); err != nil {
		return nil, err
	}

	table := *input.TableName
	items := f.tables[table]

	start := 0
	if input.ExclusiveStartKey != nil {
		for i, item := range items {
			if matchesKey(item, input.ExclusiveStartKey) {
				start = i + 1
				break
			}
		}
	}

	end := len(items)
	if input.Limit != nil && start+int(*input.Limit) < end {
		end = start + int(*input.Limit)
	}

	page := items[start:end]
	out := &dynamodb.ScanOutput{}
	if input.FilterExpression != nil {
		attr, want, err := parseEqualityFilter(*input.FilterExpression, input.ExpressionAttributeNames, input.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		for _, item := range page {
			if v, ok := item[attr]; ok && attrEqual(v, want) {
				out.Items = append(out.Items, item)
			}
		}
	} else {
		out.Items = append(out.Items, page...)
	}

	if end < len(items) {
		out.LastEvaluatedKey = f.itemKey(table, items[end-1])
	}
	return out, nil
}

// Query implements the DynamoDB client surface for the partition-key
// equality form "pk = :pk".
func (f *FakeDynamo) Query(_ context.Context, input *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("query"); err != nil {
		return nil, err
	}

	attr, want, err := parseEqualityFilter(*input.KeyConditionExpression, input.ExpressionAttributeNames, input.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	out := &dynamodb.QueryOutput{}
	for _, item := range f.tables[*input.TableName] {
		if v, ok := item[attr]; ok && attrEqual(v, want) {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

// TransactWriteItems implements the DynamoDB client surface for Put and
// Delete actions.
func (f *FakeDynamo) TransactWriteItems(_ context.Context, input *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("transact"); err != nil {
		return nil, err
	}
	// DynamoDB rejects transactions over 100 items.
	if len(input.TransactItems) > 100 {
		return nil, fmt.Errorf("ValidationException: member count %d exceeds 100", len(input.TransactItems))
	}

	for _, item := range input.TransactItems {
		switch {
		case item.Put != nil:
			f.putLocked(*item.Put.TableName, item.Put.Item)
		case item.Delete != nil:
			f.deleteLocked(*item.Delete.TableName, item.Delete.Key)
		default:
			return nil, fmt.Errorf("unsupported transact item")
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func parseEqualityFilter(expr string, names map[string]string, values map[string]types.AttributeValue) (string, types.AttributeValue, error) {
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("unsupported expression %q", expr)
	}

	attr := strings.TrimSpace(parts[0])
	if alias, ok := names[attr]; ok {
		attr = alias
	}

	ref := strings.TrimSpace(parts[1])
	want, ok := values[ref]
	if !ok {
		return "", nil, fmt.Errorf("unbound expression value %q", ref)
	}
	return attr, want, nil
}
