package anthropic

import (
	"context"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// NewBedrockProvider creates a provider that reaches Claude through AWS Bedrock.
// Credentials come from the standard AWS chain; AWS_ACCESS_KEY_ID or
// AWS_PROFILE must be set. The region is AWS_REGION, falling back to the
// region in backends.yaml.
func NewBedrockProvider(opts ...option.RequestOption) *Provider {
	return &Provider{
		id:        llmprovider.ProviderBedrock,
		connect:   connectBedrock,
		translate: translateModelForBedrock,
		options:   opts,
	}
}

func connectBedrock(ctx context.Context, spec *llmprovider.BackendSpec) ([]option.RequestOption, error) {
	if _, err := spec.LookupCredential(); err != nil {
		return nil, err
	}

	var loadOpts []func(*config.LoadOptions) error
	if os.Getenv("AWS_REGION") == "" && spec.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(spec.Region))
	}

	// bedrock.WithLoadDefaultConfig panics on failure; load here so the
	// failure can be reported as an unavailable backend.
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, &llmprovider.BackendUnavailableError{
			Provider: spec.Name,
			Hint:     spec.Setup,
			Err:      err,
		}
	}
	return []option.RequestOption{bedrock.WithConfig(cfg)}, nil
}

// bedrockModels maps Anthropic model names to Bedrock cross-region inference profiles.
var bedrockModels = map[string]string{
	"claude-3-5-sonnet-20241022": "us.anthropic.claude-3-5-sonnet-20241022-v2:0",
	"claude-3-5-haiku-20241022":  "us.anthropic.claude-3-5-haiku-20241022-v1:0",
	"claude-3-7-sonnet-20250219": "us.anthropic.claude-3-7-sonnet-20250219-v1:0",
	"claude-sonnet-4-20250514":   "us.anthropic.claude-sonnet-4-20250514-v1:0",
	"claude-sonnet-4-5-20250929": "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
	"claude-haiku-4-5-20251001":  "us.anthropic.claude-haiku-4-5-20251001-v1:0",
	"claude-opus-4-1-20250805":   "us.anthropic.claude-opus-4-1-20250805-v1:0",
}

// translateModelForBedrock converts standard Anthropic model names to Bedrock
// inference profile ids. Names already in Bedrock form are returned as-is.
func translateModelForBedrock(model string) string {
	if bedrockModel, ok := bedrockModels[model]; ok {
		return bedrockModel
	}
	if strings.Contains(model, "anthropic.") {
		return model
	}
	return "us.anthropic." + model + "-v1:0"
}
