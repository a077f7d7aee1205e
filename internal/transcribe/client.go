// Package transcribe wraps the speech-to-text service behind the
// Transcriber port.
package transcribe

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"docsift/internal/config"
	"docsift/internal/port"
)

type transcribeClient struct {
	client       *transcribe.Client
	outputBucket string
	pollInterval time.Duration
	maxWait      time.Duration
}

// NewTranscriber creates a Transcribe-backed Transcriber implementation.
// Completed job output lands in the configured output bucket under the
// caller's output key.
func NewTranscriber(cfg *config.TranscribeConfig) (port.Transcriber, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var tOpts []func(*transcribe.Options)
	if cfg.Endpoint != "" {
		tOpts = append(tOpts, func(o *transcribe.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &transcribeClient{
		client:       transcribe.NewFromConfig(awsCfg, tOpts...),
		outputBucket: cfg.OutputBucket,
		pollInterval: time.Duration(cfg.PollIntervalSecs) * time.Second,
		maxWait:      time.Duration(cfg.MaxWaitSecs) * time.Second,
	}, nil
}

func (c *transcribeClient) Run(ctx context.Context, input port.TranscribeInput) error {
	_, err := c.client.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(input.JobName),
		Media: &types.Media{
			MediaFileUri: aws.String(input.MediaURI),
		},
		MediaFormat:      types.MediaFormat(input.MediaFormat),
		LanguageCode:     types.LanguageCode(input.Language),
		OutputBucketName: aws.String(c.outputBucket),
		OutputKey:        aws.String(input.OutputKey),
	})
	if err != nil {
		return fmt.Errorf("transcribe start job %s: %w", input.JobName, err)
	}
	log.Printf("transcribe.transcribeClient: started job %s for %s", input.JobName, input.MediaURI)

	deadline := time.Now().Add(c.maxWait)
	for {
		out, err := c.client.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
			TranscriptionJobName: aws.String(input.JobName),
		})
		if err != nil {
			return fmt.Errorf("transcribe get job %s: %w", input.JobName, err)
		}

		switch out.TranscriptionJob.TranscriptionJobStatus {
		case types.TranscriptionJobStatusCompleted:
			return nil
		case types.TranscriptionJobStatusFailed:
			return fmt.Errorf("transcribe job %s failed: %s",
				input.JobName, aws.ToString(out.TranscriptionJob.FailureReason))
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("transcribe job %s: timed out after %s", input.JobName, c.maxWait)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}
