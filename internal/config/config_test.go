package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	return m
}

func TestSetGetRoundTrip(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Set("s3.bucket", "my-bucket"))

	value, exists, err := m.Get("s3.bucket")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "my-bucket", value)

	// The value survives a fresh manager reading the written file.
	m2, err := NewManager()
	require.NoError(t, err)
	value, exists, err = m2.Get("s3.bucket")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "my-bucket", value)
}

func TestSetRejectsUnknownKey(t *testing.T) {
	m := newTestManager(t)

	assert.Error(t, m.Set("s3.password", "nope"))
	assert.Error(t, m.Set("azure.bucket", "nope"))
}

func TestDelete(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Set("local.basedir", "/tmp/store"))

	deleted, err := m.Delete("local.basedir")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, exists, err := m.Get("local.basedir")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err = m.Delete("local.basedir")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("BUCKETSYNC_S3_BUCKET", "env-bucket")
	m := newTestManager(t)

	value, exists, err := m.Get("s3.bucket")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "env-bucket", value)
}

func TestLoadUnmarshalsSections(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Set("s3.region", "us-east-1"))
	require.NoError(t, m.Set("s3.bucket", "my-bucket"))
	require.NoError(t, m.Set("gcs.bucket", "gcs-bucket"))

	cfg, err := m.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.S3)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "my-bucket", cfg.S3.Bucket)
	require.NotNil(t, cfg.GCS)
	assert.Equal(t, "gcs-bucket", cfg.GCS.Bucket)
}

func TestValidateSection(t *testing.T) {
	assert.NoError(t, ValidateSection(&S3Config{Region: "us-east-1", Bucket: "b"}))
	assert.Error(t, ValidateSection(&S3Config{Region: "us-east-1"}), "bucket is required")
	assert.Error(t, ValidateSection(&GCSConfig{}))
	assert.NoError(t, ValidateSection(&LocalConfig{BaseDir: "/tmp/store"}))
}

func TestConfigPathMigration(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// A config file left in the working directory moves to the
	// standard location on first load.
	workdir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workdir, ConfigFileName), []byte(`{"s3":{"bucket":"legacy"}}`), 0644))

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workdir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	m, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", ConfigDirName, ConfigFileName), m.Path())

	value, exists, err := m.Get("s3.bucket")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "legacy", value)
}
