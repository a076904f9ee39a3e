package association

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/praxislab/comptrack/internal/store"
)

// The store cannot answer "which association records contain this id"
// without a full scan, so the resolver maintains a materialized inverse
// index alongside the forward records: one row per (related id, owner),
// keyed pk="<kind>#<related id>", sk=owner. Rows are written in the
// same transaction as the forward record; scan-based resolution stays
// available as the reference fallback.
const (
	kindStudent  = "student"
	kindLocation = "location"
)

type inverseIndex struct {
	store *store.Store
	table string
}

func indexPK(kind, relatedID string) string {
	return kind + "#" + relatedID
}

// putRecord builds the transaction item adding one inverse row.
func (ix *inverseIndex) putRecord(kind, relatedID, ownerID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(ix.table),
			Item: map[string]types.AttributeValue{
				"pk":    &types.AttributeValueMemberS{Value: indexPK(kind, relatedID)},
				"owner": &types.AttributeValueMemberS{Value: ownerID},
			},
		},
	}
}

// deleteRecord builds the transaction item removing one inverse row.
func (ix *inverseIndex) deleteRecord(kind, relatedID, ownerID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(ix.table),
			Key: map[string]types.AttributeValue{
				"pk":    &types.AttributeValueMemberS{Value: indexPK(kind, relatedID)},
				"owner": &types.AttributeValueMemberS{Value: ownerID},
			},
		},
	}
}

// owners returns the association owners indexed under a related id.
func (ix *inverseIndex) owners(ctx context.Context, kind, relatedID string) ([]string, error) {
	items, err := ix.store.QueryAll(ctx, store.QueryInput{
		Table:                  ix.table,
		KeyConditionExpression: "pk = :pk",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: indexPK(kind, relatedID)},
		},
	})
	if err != nil {
		return nil, err
	}

	owners := make([]string, 0, len(items))
	for _, item := range items {
		if v, ok := item["owner"].(*types.AttributeValueMemberS); ok {
			owners = append(owners, v.Value)
		}
	}
	return owners, nil
}
