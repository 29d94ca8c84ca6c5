package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SourceKind identifies where the dataset bytes come from.
type SourceKind string

const (
	SourceHTTP SourceKind = "http"
	SourceS3   SourceKind = "s3"
	SourceFile SourceKind = "file"
)

// maxSourceBytes caps the download; the Gapminder snapshot is a few kilobytes.
const maxSourceBytes = 64 << 20

// ObjectGetter is the subset of the S3 client used to read the dataset object.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ClassifySource reports the kind of a dataset source string.
func ClassifySource(source string) SourceKind {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return SourceHTTP
	case strings.HasPrefix(source, "s3://"):
		return SourceS3
	default:
		return SourceFile
	}
}

func rawDatasetData(ctx context.Context, config Config) ([]byte, error) {
	switch ClassifySource(config.SourceURL) {
	case SourceHTTP:
		return downloadHTTP(ctx, config.HTTPClient, config.SourceURL)
	case SourceS3:
		return downloadS3(ctx, config)
	default:
		b, err := os.ReadFile(config.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset file: %w", err)
		}
		return b, nil
	}
}

func downloadHTTP(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building dataset request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading dataset body: %w", err)
	}
	return b, nil
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 uri %q: %w", source, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q: expected s3://bucket/key", source)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q: missing object key", source)
	}
	return u.Host, key, nil
}

func downloadS3(ctx context.Context, config Config) ([]byte, error) {
	bucket, key, err := ParseS3URI(config.SourceURL)
	if err != nil {
		return nil, err
	}

	client := config.S3Client
	if client == nil {
		client, err = newS3Client(ctx, config)
		if err != nil {
			return nil, err
		}
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching s3 object %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close() // nolint

	b, err := io.ReadAll(io.LimitReader(out.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading s3 object %s/%s: %w", bucket, key, err)
	}
	return b, nil
}

// newS3Client builds a client from static keys when configured, otherwise from the
// default credential chain. A custom endpoint switches to path-style addressing
// for MinIO-compatible stores.
func newS3Client(ctx context.Context, config Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if config.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(config.S3Region))
	}
	if config.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.S3AccessKey, config.S3SecretKey, "")))
	}
	endpoint := config.S3Endpoint
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
