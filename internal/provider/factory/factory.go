package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"bucketsync/internal/config"
	"bucketsync/internal/provider/registry"
	"bucketsync/pkg/storage"
)

type Factory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Returns a list of backends that are registered and configured
func (f *Factory) GetConfiguredBackends() []string {
	var configured []string
	allRegistrations := registry.GetAllRegistrations()

	for name, registration := range allRegistrations {
		if registration.ConfigCheck(f.cfg) {
			configured = append(configured, name)
		}
	}
	sort.Strings(configured)
	return configured
}

// Checks if a specific backend is registered and configured
func (f *Factory) IsConfigured(backendName string) bool {
	registration, exists := registry.GetRegistration(backendName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg)
}

// Initializes and returns the storage backend with the specified name
func (f *Factory) GetBackend(ctx context.Context, backendName string) (storage.Backend, error) {
	normalizedName := strings.ToLower(backendName)
	backendLogger := f.logger.With("backend", normalizedName)

	registration, exists := registry.GetRegistration(normalizedName)

	if !exists {
		return nil, fmt.Errorf("unsupported backend: %s. Supported backends are: %v", backendName, registry.GetSupportedBackends())
	}

	if !registration.ConfigCheck(f.cfg) {
		return nil, fmt.Errorf("backend '%s' is not configured. Use 'bucketsync config set %s.<key> <value>' (e.g., 's3.bucket' or 'local.basedir')", normalizedName, normalizedName)
	}

	// Dynamically initialize the backend using the registered initializer function
	client, err := registration.Initializer(ctx, f.cfg, backendLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend %s: %w", normalizedName, err)
	}

	return client, nil
}
