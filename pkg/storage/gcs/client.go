package gcs

import (
	"context"
	"fmt"
	"log/slog"

	gcsstorage "cloud.google.com/go/storage"

	"bucketsync/internal/config"
	"bucketsync/internal/provider/registry"
	"bucketsync/pkg/storage"
)

func init() {
	registry.RegisterBackend("gcs", registry.BackendRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks if the GCS configuration block is present and the bucket is set
func isConfigured(cfg *config.Config) bool {
	return cfg.GCS != nil && cfg.GCS.Bucket != ""
}

// Initializes the GCS backend from the configuration
func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("GCS configuration missing or incomplete")
	}
	if err := config.ValidateSection(cfg.GCS); err != nil {
		return nil, err
	}
	return New(ctx, cfg.GCS.Bucket, logger)
}

// Backend talks to one GCS bucket.
type Backend struct {
	client *gcsstorage.Client
	bucket string
	logger *slog.Logger
}

var _ storage.Backend = (*Backend)(nil)

func New(ctx context.Context, bucket string, logger *slog.Logger) (*Backend, error) {
	client, err := gcsstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	return &Backend{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

func (b *Backend) ProviderName() storage.Provider {
	return storage.GCS
}

func (b *Backend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}
