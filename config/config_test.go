package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("JOURNAL_TEST_KEY", "a=b")

	cfg := New()
	assert.Equal(t, "a=b", GetString(cfg, "JOURNAL_TEST_KEY", ""))
}

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"FLAG":    "Yes",
		"OFF":     "nope",
		"EMPTY":   "",
		"TTL":     "30",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(nil, "PORT", 8080))
	assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))

	assert.True(t, ParseBool(cfg["FLAG"], false))
	assert.True(t, ParseBool(" Yes ", false))
	assert.False(t, ParseBool(cfg["OFF"], true))
	assert.True(t, ParseBool(cfg["EMPTY"], true))
	assert.False(t, ParseBool(cfg["MISSING"], false))

	assert.Equal(t, 30*time.Second, GetSeconds(cfg, "TTL", time.Minute))
	assert.Equal(t, time.Minute, GetSeconds(cfg, "MISSING", time.Minute))
}

type fakeParameters struct {
	values map[string]string
	calls  int
}

func (f *fakeParameters) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls++
	value, ok := f.values[aws.ToString(params.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}, nil
}

func TestResolveSecretsReplacesPrefixedValues(t *testing.T) {
	client := &fakeParameters{values: map[string]string{"/journal/token": "s3cret"}}
	cfg := map[string]string{
		"SECRET_TOKEN":         "ssm:/journal/token",
		"CONTENT_UPLOAD_TOKEN": "plain",
	}

	err := resolveSecrets(context.Background(), client, cfg, "SECRET_TOKEN", "CONTENT_UPLOAD_TOKEN", "ADMIN_JWT_SECRET")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg["SECRET_TOKEN"])
	assert.Equal(t, "plain", cfg["CONTENT_UPLOAD_TOKEN"])
	assert.Equal(t, 1, client.calls)
}

func TestResolveSecretsReportsMissingParameter(t *testing.T) {
	client := &fakeParameters{values: map[string]string{}}
	cfg := map[string]string{"SECRET_TOKEN": "ssm:/missing"}

	err := resolveSecrets(context.Background(), client, cfg, "SECRET_TOKEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing")
}

func TestResolveSecretsSkipsAWSWhenNothingToResolve(t *testing.T) {
	cfg := map[string]string{"SECRET_TOKEN": "plain"}
	assert.NoError(t, ResolveSecrets(context.Background(), cfg, "SECRET_TOKEN"))
}
