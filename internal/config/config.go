package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.json"
	ConfigDirName  = "bucketsync"
	envPrefix      = "BUCKETSYNC"
)

// S3Config selects the bucket an S3 backend operates on. Credentials are
// never stored here: they come from the environment (S3_ACCESS_KEY,
// S3_SECRET_KEY), optionally loaded from a .env file.
type S3Config struct {
	Region   string `json:"region,omitempty" mapstructure:"region" validate:"required"`
	Bucket   string `json:"bucket,omitempty" mapstructure:"bucket" validate:"required"`
	Endpoint string `json:"endpoint,omitempty" mapstructure:"endpoint"`
}

type GCSConfig struct {
	Bucket string `json:"bucket,omitempty" mapstructure:"bucket" validate:"required"`
}

// LocalConfig points the local backend at the directory standing in for
// a bucket, for offline use.
type LocalConfig struct {
	BaseDir string `json:"basedir,omitempty" mapstructure:"basedir" validate:"required"`
}

type Config struct {
	S3    *S3Config    `json:"s3,omitempty" mapstructure:"s3"`
	GCS   *GCSConfig   `json:"gcs,omitempty" mapstructure:"gcs"`
	Local *LocalConfig `json:"local,omitempty" mapstructure:"local"`
}

var validate = validator.New()

// ValidateSection checks the required fields of one backend section.
func ValidateSection(section any) error {
	if err := validate.Struct(section); err != nil {
		return fmt.Errorf("incomplete configuration: %w", err)
	}
	return nil
}

// knownKeys is the allowlist for 'bucketsync config set/get/delete'.
var knownKeys = map[string]struct{}{
	"s3.region":     {},
	"s3.bucket":     {},
	"s3.endpoint":   {},
	"gcs.bucket":    {},
	"local.basedir": {},
}

// Manager loads and persists the JSON configuration file, layering
// BUCKETSYNC_* environment variables on top of it.
type Manager struct {
	v    *viper.Viper
	path string
}

func NewManager() (*Manager, error) {
	// Credentials may live in a .env file next to the working
	// directory, like the environment files the deploy scripts write.
	_ = godotenv.Load()

	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range knownKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment for %s: %w", key, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return &Manager{v: v, path: path}, nil
}

func (m *Manager) Load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &cfg, nil
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Set(key, value string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key: %s. Use format like 'backend.key' (e.g., 's3.bucket')", key)
	}
	m.v.Set(key, value)
	return m.write()
}

func (m *Manager) Get(key string) (string, bool, error) {
	if _, ok := knownKeys[key]; !ok {
		return "", false, fmt.Errorf("unknown config key: %s", key)
	}
	value := m.v.GetString(key)
	return value, value != "", nil
}

func (m *Manager) Delete(key string) (bool, error) {
	value, exists, err := m.Get(key)
	if err != nil {
		return false, err
	}
	if !exists || value == "" {
		return false, nil
	}
	m.v.Set(key, "")
	if err := m.write(); err != nil {
		return false, err
	}
	return true, nil
}

// Keys returns the allowlisted key names and their current values.
func (m *Manager) Keys() map[string]string {
	values := make(map[string]string, len(knownKeys))
	for key := range knownKeys {
		values[key] = m.v.GetString(key)
	}
	return values
}

func (m *Manager) write() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	// A config file in the working directory is migrated to the
	// standard location once.
	if _, err := os.Stat(ConfigFileName); err == nil {
		if err := migrateConfig(ConfigFileName, configPath); err == nil {
			return configPath, nil
		}
		return ConfigFileName, nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	return configPath, nil
}

func migrateConfig(sourcePath, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("error reading source config file: %w", err)
	}

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return fmt.Errorf("error writing destination config file: %w", err)
	}

	return nil
}
