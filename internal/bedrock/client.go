// Package bedrock implements port.ModelInvoker on the Amazon Bedrock
// runtime. Each vendor family gets its own request body shape and
// completion field; the adapter upstream has already renamed the
// generation parameters for the target family.
package bedrock

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"docsift/internal/config"
	"docsift/internal/port"
)

type client struct {
	runtime *bedrockruntime.Client
}

// NewClient creates a Bedrock-backed ModelInvoker. Retries and timeouts
// are owned here: an exhausted retry budget surfaces to the pipeline as a
// single terminal invocation failure.
func NewClient(cfg *config.BedrockConfig) (port.ModelInvoker, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	opts = append(opts, awsconfig.WithRetryMaxAttempts(cfg.MaxRetries))
	opts = append(opts, awsconfig.WithHTTPClient(&http.Client{
		Timeout: time.Duration(cfg.ReadTimeoutSecs) * time.Second,
	}))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var runtimeOpts []func(*bedrockruntime.Options)
	if cfg.Endpoint != "" {
		runtimeOpts = append(runtimeOpts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &client{runtime: bedrockruntime.NewFromConfig(awsCfg, runtimeOpts...)}, nil
}

func (c *client) Invoke(ctx context.Context, input port.InvokeInput) (string, error) {
	body, err := encodeRequest(input)
	if err != nil {
		return "", err
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(input.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", &InvocationError{ModelID: input.ModelID, Err: err}
	}

	text, err := decodeResponse(input.ModelID, out.Body)
	if err != nil {
		return "", &InvocationError{ModelID: input.ModelID, Err: err}
	}
	return text, nil
}
