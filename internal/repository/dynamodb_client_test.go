package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// fakeDynamo serves pages in order and records every query it receives.
type fakeDynamo struct {
	pages    []*dynamodb.QueryOutput
	queryErr error
	queries  []*dynamodb.QueryInput
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	idx := len(f.queries) - 1
	if idx >= len(f.pages) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.pages[idx], nil
}

func makeItem(pk string, row int, body string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":   &types.AttributeValueMemberS{Value: pk},
		"SK":   &types.AttributeValueMemberS{Value: fmt.Sprintf("ROW#%05d", row)},
		"body": &types.AttributeValueMemberS{Value: body},
	}
}

func mustNewClient(t *testing.T, db *fakeDynamo) *Client {
	t.Helper()
	c, err := New(db, "test-table")
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "t")
	require.Error(t, err)
	_, err = New(&fakeDynamo{}, "  ")
	require.Error(t, err)
}

func TestRead_SinglePage(t *testing.T) {
	db := &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{
		makeItem("DATASET#fund_categories", 1, `{"category":"Equity","funds":[]}`),
		makeItem("DATASET#fund_categories", 2, `{"category":"Debt","funds":[]}`),
	}}}}
	c := mustNewClient(t, db)

	raw, err := c.Read(context.Background(), "fund_categories")
	require.NoError(t, err)
	require.JSONEq(t, `[{"category":"Equity","funds":[]},{"category":"Debt","funds":[]}]`, string(raw))

	require.Len(t, db.queries, 1)
	q := db.queries[0]
	require.Equal(t, "test-table", *q.TableName)
	require.Equal(t, "PK = :pk", *q.KeyConditionExpression)
	require.Equal(t, "DATASET#fund_categories", q.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
	require.True(t, *q.ScanIndexForward)
	require.True(t, *q.ConsistentRead)
}

func TestRead_FollowsPagination(t *testing.T) {
	last := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "DATASET#accounts"},
		"SK": &types.AttributeValueMemberS{Value: "ROW#00001"},
	}
	db := &fakeDynamo{pages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{makeItem("DATASET#accounts", 1, `{"mobile":"1"}`)}, LastEvaluatedKey: last},
		{Items: []map[string]types.AttributeValue{makeItem("DATASET#accounts", 2, `{"mobile":"2"}`)}},
	}}
	c := mustNewClient(t, db)

	raw, err := c.Read(context.Background(), "accounts")
	require.NoError(t, err)
	require.JSONEq(t, `[{"mobile":"1"},{"mobile":"2"}]`, string(raw))
	require.Len(t, db.queries, 2)
	require.Equal(t, last, db.queries[1].ExclusiveStartKey)
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name string
		db   *fakeDynamo
		want string
	}{
		{"query error", &fakeDynamo{queryErr: errors.New("throttled")}, "throttled"},
		{"empty dataset", &fakeDynamo{}, "dataset is empty"},
		{"missing body", &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{
			{"PK": &types.AttributeValueMemberS{Value: "DATASET#accounts"}},
		}}}}, `missing attribute "body"`},
		{"body not string", &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{
			{"body": &types.AttributeValueMemberN{Value: "1"}},
		}}}}, "not a string"},
		{"invalid json", &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{
			makeItem("DATASET#accounts", 1, `{"mobile":`),
		}}}}, "not valid JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustNewClient(t, tc.db)
			_, err := c.Read(context.Background(), "accounts")
			require.Error(t, err)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestRead_EmptyDatasetName(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{})
	_, err := c.Read(context.Background(), " ")
	require.Error(t, err)
}
