package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// SSMPrefix marks a config value that names an SSM Parameter Store parameter
// instead of holding the value itself, e.g. SECRET_TOKEN=ssm:/journal/prod/secret-token
const SSMPrefix = "ssm:"

type parameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveSecrets replaces every value under keys that starts with SSMPrefix by the
// decrypted parameter it points at. The AWS client is only created if at least one
// key needs it.
func ResolveSecrets(ctx context.Context, cfg map[string]string, keys ...string) error {
	if !needsSSM(cfg, keys) {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	return resolveSecrets(ctx, ssm.NewFromConfig(awsCfg), cfg, keys...)
}

func needsSSM(cfg map[string]string, keys []string) bool {
	for _, key := range keys {
		if strings.HasPrefix(GetString(cfg, key, ""), SSMPrefix) {
			return true
		}
	}
	return false
}

func resolveSecrets(ctx context.Context, client parameterGetter, cfg map[string]string, keys ...string) error {
	for _, key := range keys {
		value := GetString(cfg, key, "")
		if !strings.HasPrefix(value, SSMPrefix) {
			continue
		}

		name := strings.TrimPrefix(value, SSMPrefix)
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("resolve %s from ssm parameter %s: %w", key, name, err)
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			return fmt.Errorf("ssm parameter %s for %s has no value", name, key)
		}

		cfg[key] = aws.ToString(out.Parameter.Value)
		log.Debug().Str("key", key).Str("parameter", name).Msg("Resolved secret from SSM")
	}
	return nil
}
