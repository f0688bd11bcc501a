package providers

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms/bedrock"
)

const (
	defaultBedrockModel  = "meta.llama3-70b-instruct-v1:0"
	defaultBedrockRegion = "us-east-1"
)

func newBedrock(cfg Config, env Env, o options) (*chatModel, error) {
	explicit := cfg.stringParam("region")
	if explicit == "" {
		explicit = cfg.credential("region")
	}
	region := Resolve(explicit, env, []string{"AWS_REGION", "AWS_DEFAULT_REGION"}, defaultBedrockRegion)

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if o.client != nil {
		loadOpts = append(loadOpts, awsconfig.WithHTTPClient(o.client))
	}

	profile := Resolve(cfg.credential("profile_name"), env, []string{"AWS_PROFILE"}, "")
	keyID := Resolve(cfg.credential("aws_access_key_id"), env, []string{"AWS_ACCESS_KEY_ID"}, "")
	secret := Resolve(cfg.credential("aws_secret_access_key"), env, []string{"AWS_SECRET_ACCESS_KEY"}, "")
	token := Resolve(cfg.credential("aws_session_token"), env, []string{"AWS_SESSION_TOKEN"}, "")

	switch {
	case keyID != "" && secret == "":
		return nil, &MissingCredentialError{Kind: KindBedrock, Field: "aws_secret_access_key"}
	case secret != "" && keyID == "":
		return nil, &MissingCredentialError{Kind: KindBedrock, Field: "aws_access_key_id"}
	case keyID != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(keyID, secret, token)))
	case profile != "":
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("bedrock: loading AWS config: %w", err)
	}

	model := cfg.ModelName
	if model == "" {
		model = defaultBedrockModel
	}
	name := displayName(KindBedrock, model)
	llm, err := bedrock.New(
		bedrock.WithClient(bedrockruntime.NewFromConfig(awsCfg)),
		bedrock.WithModel(model),
	)
	if err != nil {
		return nil, &ProviderCallError{Provider: name, Err: err}
	}
	return &chatModel{
		name:        name,
		llm:         llm,
		temperature: cfg.temperature(1.0),
		maxTokens:   cfg.intParam("max_tokens"),
	}, nil
}
