package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
	lastIn *ssm.GetParameterInput
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func TestRead_HappyPath(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("/fund-agent/dev/datasets/accounts"), Value: strPtr(`[{"mobile":"9876543210"}]`),
	}}}
	client, err := New(api, "/fund-agent/dev/")
	require.NoError(t, err)

	v, err := client.Read(context.Background(), "accounts")
	require.NoError(t, err)
	require.JSONEq(t, `[{"mobile":"9876543210"}]`, string(v))
	require.Equal(t, "/fund-agent/dev/datasets/accounts", *api.lastIn.Name)
	require.True(t, *api.lastIn.WithDecryption)
}

func TestNew_NormalizesPrefix(t *testing.T) {
	client, err := New(&fakeAPI{}, "fund-agent")
	require.NoError(t, err)
	require.Equal(t, "/fund-agent/datasets/fund_details", client.ParameterName("fund_details"))
}

func TestRead_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: nil}}}
	client, err := New(api, "/p")
	require.NoError(t, err)
	_, err = client.Read(context.Background(), "accounts")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestRead_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("boom")}
	client, err := New(api, "/p")
	require.NoError(t, err)
	_, err = client.Read(context.Background(), "accounts")
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestRead_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).Read(context.Background(), "accounts")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestRead_EmptyDataset(t *testing.T) {
	client, err := New(&fakeAPI{}, "/p")
	require.NoError(t, err)
	_, err = client.Read(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "/p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")

	_, err = New(&fakeAPI{}, " / ")
	require.Error(t, err)
}
