// Package repository reads reference datasets from a DynamoDB table.
//
// Each dataset is one partition (PK = DATASET#<name>); every item holds one
// record as a JSON document in its "body" attribute and items are ordered by
// their sort key.
package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

const (
	pkPrefixDataset = "DATASET#"
	bodyAttr        = "body"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Client wraps a DynamoDB table holding reference datasets.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// datasetPK returns the partition key for a dataset.
func datasetPK(dataset string) string {
	return pkPrefixDataset + dataset
}

// Read queries every record of a dataset in sort-key order and returns them
// as one JSON array.
func (c *Client) Read(ctx context.Context, dataset string) ([]byte, error) {
	dataset = strings.TrimSpace(dataset)
	if dataset == "" {
		return nil, errors.New("repository: Read: dataset is required")
	}

	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: datasetPK(dataset)},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	rows := 0
	p := dynamodb.NewQueryPaginator(c.api, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("repository: Read %q query: %w", dataset, err)
		}
		for _, item := range out.Items {
			body, err := strAttr(item, bodyAttr)
			if err != nil {
				return nil, fmt.Errorf("repository: Read %q: %w", dataset, err)
			}
			if !gjson.Valid(body) {
				return nil, fmt.Errorf("repository: Read %q: item %d body is not valid JSON", dataset, rows)
			}
			if rows > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(body)
			rows++
		}
	}
	if rows == 0 {
		return nil, fmt.Errorf("repository: Read %q: dataset is empty", dataset)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}
