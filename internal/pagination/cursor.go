// Package pagination adapts the store's native continuation keys to the
// opaque wire cursors clients see. It never loops across pages itself;
// it translates one request/response pair.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/store"
)

// EncodeCursor serializes a continuation key to an opaque token:
// attribute values down to plain JSON types, then JSON, then base64.
// Clients must treat the result as opaque.
func EncodeCursor(lastKey store.PK) (string, error) {
	if lastKey == nil {
		return "", nil
	}

	plain := make(map[string]any, len(lastKey))
	if err := attributevalue.UnmarshalMap(lastKey, &plain); err != nil {
		return "", fmt.Errorf("flatten continuation key: %w", err)
	}

	raw, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("marshal continuation key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeCursor is the inverse of EncodeCursor. Malformed input yields a
// CursorError, never a panic or an unclassified failure.
func DecodeCursor(cursor string) (store.PK, error) {
	if cursor == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, &model.CursorError{Cause: err}
	}

	var plain map[string]any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, &model.CursorError{Cause: err}
	}
	if len(plain) == 0 {
		return nil, &model.CursorError{Cause: fmt.Errorf("empty continuation key")}
	}

	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, &model.CursorError{Cause: err}
	}
	return key, nil
}

// ParseLimit validates a caller-supplied page size. Absence ("") means
// zero: the store returns everything it will give in one page. A
// non-numeric or non-positive value is a client error, never silently
// clamped or defaulted.
func ParseLimit(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &model.InputError{Field: "Limit", Reason: "must be a positive number"}
	}
	if n <= 0 {
		return 0, &model.InputError{Field: "Limit", Reason: "must be a positive number"}
	}
	return int32(n), nil
}

// Page is one page of results plus the cursor for the next one. Cursor
// is empty when the store reported no further results.
type Page[T any] struct {
	Items  []T    `json:"Items"`
	Cursor string `json:"LastEvaluatedKey,omitempty"`
}

// NewPage bundles scanned items with an encoded continuation cursor.
func NewPage[T any](items []T, lastKey store.PK) (Page[T], error) {
	cursor, err := EncodeCursor(lastKey)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Cursor: cursor}, nil
}
