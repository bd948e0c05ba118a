package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

// S3 error codes caused by credentials rather than connectivity.
var s3AuthCodes = map[string]bool{
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"AccessDenied":          true,
}

// MinIOProbe lists the configured bucket on an S3-compatible endpoint using
// path-style addressing and SigV4.
type MinIOProbe struct {
	Config config.S3ProbeConfig
}

func (MinIOProbe) Name() string { return ResourceMinIO }

func (p MinIOProbe) Check(ctx context.Context) error {
	if p.Config.Bucket == "" {
		return fmt.Errorf("%w: S3_BUCKET_NAME is empty", ErrMisconfigured)
	}
	client, err := p.client(ctx)
	if err != nil {
		return err
	}
	_, err = client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.Config.Bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && s3AuthCodes[apiErr.ErrorCode()] {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return err
	}
	return nil
}

func (p MinIOProbe) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(p.Config.Region),
	}
	// Use static credentials if provided
	if p.Config.AccessKeyID != "" && p.Config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.Config.AccessKeyID, p.Config.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load AWS config: %v", ErrMisconfigured, err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if p.Config.Endpoint != "" {
			o.BaseEndpoint = aws.String(p.Config.Endpoint)
		}
		o.UsePathStyle = true // required for MinIO
	}), nil
}
