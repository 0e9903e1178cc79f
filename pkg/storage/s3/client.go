package s3

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"bucketsync/internal/config"
	"bucketsync/internal/provider/registry"
	"bucketsync/pkg/storage"
)

func init() {
	registry.RegisterBackend("s3", registry.BackendRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks if the S3 configuration block is present with a region and bucket
func isConfigured(cfg *config.Config) bool {
	return cfg.S3 != nil && cfg.S3.Region != "" && cfg.S3.Bucket != ""
}

// Initializes the S3 backend from the configuration. Credentials come
// from S3_ACCESS_KEY / S3_SECRET_KEY in the environment; when unset the
// SDK's default credential chain applies.
func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("S3 configuration missing or incomplete")
	}
	if err := config.ValidateSection(cfg.S3); err != nil {
		return nil, err
	}
	return New(ctx, cfg.S3, logger)
}

// api is the slice of the S3 client the backend uses. The SDK's
// paginators accept it too, which keeps the operations testable against
// a fake.
type api interface {
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	ListObjectVersions(ctx context.Context, params *awss3.ListObjectVersionsInput, optFns ...func(*awss3.Options)) (*awss3.ListObjectVersionsOutput, error)
}

// Backend talks to one S3 bucket.
type Backend struct {
	client api
	bucket string
	logger *slog.Logger
}

var _ storage.Backend = (*Backend)(nil)
var _ storage.Versioner = (*Backend)(nil)

func New(ctx context.Context, cfg *config.S3Config, logger *slog.Logger) (*Backend, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	if accessKey != "" && secretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Backend{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

func (b *Backend) ProviderName() storage.Provider {
	return storage.S3
}

func (b *Backend) Close() error {
	// The SDK client holds no connections that need explicit shutdown.
	return nil
}
