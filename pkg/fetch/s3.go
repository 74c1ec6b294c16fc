package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Source fetches a dataset snapshot object from S3. Archive exports
// are published as immutable objects, so this source suits offline and
// batch rendering where the REST backend is unreachable.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// S3Options configures an S3 source. Region is required; the static
// credential pair is optional and falls back to the default chain.
type S3Options struct {
	Bucket    string
	Key       string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Source creates a source reading one object from S3
func NewS3Source(ctx context.Context, opts S3Options) (*S3Source, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &S3Source{
		client: s3.NewFromConfig(cfg),
		bucket: opts.Bucket,
		key:    opts.Key,
	}, nil
}

func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxPayloadBytes))
	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}
	return data, nil
}
