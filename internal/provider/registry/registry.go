package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"bucketsync/internal/config"
	"bucketsync/pkg/storage"
)

// Defines the function signature for checking if a backend is configured
type BackendConfigCheck func(cfg *config.Config) bool

// Defines the function signature for creating a new storage backend client
type BackendInitializer func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error)

// Holds the necessary functions to check configuration and initialize a backend
type BackendRegistration struct {
	ConfigCheck BackendConfigCheck
	Initializer BackendInitializer
}

var (
	// Stores the registrations, keyed by the backend name (lowercase)
	backendRegistry = make(map[string]BackendRegistration)
	registryMu      sync.RWMutex
)

// Allows a backend implementation package to register itself during initialization (init())
func RegisterBackend(name string, registration BackendRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	normalizedName := strings.ToLower(name)
	if _, exists := backendRegistry[normalizedName]; exists {
		panic(fmt.Sprintf("backend %s already registered", normalizedName))
	}

	if registration.ConfigCheck == nil {
		panic(fmt.Sprintf("backend %s registration missing ConfigCheck", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("backend %s registration missing Initializer", normalizedName))
	}

	backendRegistry[normalizedName] = registration
}

// Returns a sorted list of all registered backend names
func GetSupportedBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	backends := make([]string, 0, len(backendRegistry))
	for name := range backendRegistry {
		backends = append(backends, name)
	}
	sort.Strings(backends)
	return backends
}

// Checks if a backend name has been registered
func IsSupported(backendName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, exists := backendRegistry[strings.ToLower(backendName)]
	return exists
}

// Retrieves the registration details for a backend
func GetRegistration(backendName string) (BackendRegistration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registration, exists := backendRegistry[strings.ToLower(backendName)]
	return registration, exists
}

// Returns a copy of the entire registry map (primarily for use by the factory)
func GetAllRegistrations() map[string]BackendRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()

	// Return a copy to ensure thread safety without requiring the caller to manage the mutex
	registrations := make(map[string]BackendRegistration, len(backendRegistry))
	for k, v := range backendRegistry {
		registrations[k] = v
	}
	return registrations
}
