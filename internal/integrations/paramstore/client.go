// Package paramstore reads reference datasets stored as SSM parameters.
package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the minimal AWS SSM interface required by Client.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Client serves datasets from parameters named <prefix>/datasets/<dataset>.
type Client struct {
	api    ssmAPI
	prefix string
}

// New creates a Client rooted at prefix, e.g. "/fund-agent/prod".
func New(api ssmAPI, prefix string) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: prefix must not be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return &Client{api: api, prefix: prefix}, nil
}

// ParameterName returns the parameter holding dataset.
func (c *Client) ParameterName(dataset string) string {
	return c.prefix + "/datasets/" + dataset
}

// Read returns the raw JSON of a dataset.
func (c *Client) Read(ctx context.Context, dataset string) ([]byte, error) {
	if c.api == nil {
		return nil, errors.New("paramstore: client not initialized")
	}
	dataset = strings.TrimSpace(dataset)
	if dataset == "" {
		return nil, errors.New("paramstore: dataset is required")
	}

	name := c.ParameterName(dataset)
	withDecryption := true
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return nil, fmt.Errorf("paramstore: Read %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("paramstore: Read %q: parameter missing value", name)
	}
	return []byte(*out.Parameter.Value), nil
}
