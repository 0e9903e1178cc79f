package registry

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketsync/internal/config"
	"bucketsync/pkg/storage"
)

func testRegistration() BackendRegistration {
	return BackendRegistration{
		ConfigCheck: func(cfg *config.Config) bool { return true },
		Initializer: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
			return nil, nil
		},
	}
}

func TestRegisterBackend(t *testing.T) {
	RegisterBackend("Test-One", testRegistration())

	assert.True(t, IsSupported("test-one"))
	assert.True(t, IsSupported("TEST-ONE"), "lookup is case-insensitive")

	reg, exists := GetRegistration("test-one")
	require.True(t, exists)
	assert.NotNil(t, reg.ConfigCheck)
	assert.Contains(t, GetSupportedBackends(), "test-one")
}

func TestRegisterBackendDuplicatePanics(t *testing.T) {
	RegisterBackend("test-dupe", testRegistration())
	assert.Panics(t, func() {
		RegisterBackend("test-dupe", testRegistration())
	})
}

func TestRegisterBackendIncompletePanics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterBackend("test-no-check", BackendRegistration{Initializer: testRegistration().Initializer})
	})
	assert.Panics(t, func() {
		RegisterBackend("test-no-init", BackendRegistration{ConfigCheck: testRegistration().ConfigCheck})
	})
}

func TestUnknownBackend(t *testing.T) {
	assert.False(t, IsSupported("test-unknown"))
	_, exists := GetRegistration("test-unknown")
	assert.False(t, exists)
}
