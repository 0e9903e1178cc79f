// Package localfs implements the storage backend on a plain directory
// tree, standing in for a cloud bucket so synchronization can be
// exercised without network access.
package localfs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bucketsync/internal/config"
	"bucketsync/internal/provider/registry"
	"bucketsync/pkg/storage"
)

func init() {
	registry.RegisterBackend("local", registry.BackendRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

func isConfigured(cfg *config.Config) bool {
	return cfg.Local != nil && cfg.Local.BaseDir != ""
}

func initialize(_ context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("local configuration missing or incomplete")
	}
	if err := config.ValidateSection(cfg.Local); err != nil {
		return nil, err
	}
	return New(cfg.Local.BaseDir, logger)
}

// Backend stores artifacts as files below a base directory. The base
// directory plays the role of the bucket.
type Backend struct {
	baseDir string
	logger  *slog.Logger
}

var _ storage.Backend = (*Backend)(nil)

// New creates the base directory if needed and returns a backend rooted
// at it.
func New(baseDir string, logger *slog.Logger) (*Backend, error) {
	baseDir = filepath.Clean(baseDir)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Backend{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

func (b *Backend) ProviderName() storage.Provider {
	return storage.Local
}

// filePath maps a ref onto the directory tree. A ref that would resolve
// outside the base directory is refused; the base directory plays the
// role of the bucket, and no key addresses anything beyond a bucket.
func (b *Backend) filePath(ref storage.Ref) (string, error) {
	path := filepath.Join(b.baseDir, filepath.FromSlash(ref.String()))
	if path != b.baseDir && !strings.HasPrefix(path, b.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("ref %s escapes the base directory", ref)
	}
	return path, nil
}

func (b *Backend) Stat(_ context.Context, ref storage.Ref) (storage.Metadata, error) {
	path, err := b.filePath(ref)
	if err != nil {
		return storage.Metadata{}, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return storage.Metadata{}, nil
	}
	if err != nil {
		return storage.Metadata{}, fmt.Errorf("error inspecting %s: %w", ref, err)
	}
	if info.IsDir() {
		// Directories are containers, not artifacts.
		return storage.Metadata{}, nil
	}

	hash, err := storage.HashFile(path)
	if err != nil {
		return storage.Metadata{}, fmt.Errorf("error hashing %s: %w", ref, err)
	}

	return storage.Metadata{
		Exists:      true,
		ContentHash: hash,
		Size:        info.Size(),
	}, nil
}

func (b *Backend) Read(_ context.Context, ref storage.Ref) (io.ReadCloser, error) {
	path, err := b.filePath(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", ref, err)
	}
	return f, nil
}

func (b *Backend) Write(_ context.Context, ref storage.Ref, r io.Reader, _ int64) error {
	b.logger.Debug("Writing local artifact", "ref", ref)

	path, err := b.filePath(ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", ref, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", ref, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", ref, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", ref, err)
	}
	return nil
}

func (b *Backend) Delete(_ context.Context, ref storage.Ref) (bool, error) {
	b.logger.Debug("Deleting local artifact", "ref", ref)

	path, err := b.filePath(ref)
	if err != nil {
		return false, err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error deleting %s: %w", ref, err)
	}
	return true, nil
}

func (b *Backend) List(_ context.Context, prefix storage.Ref) ([]storage.Ref, error) {
	refs := []storage.Ref{}

	err := filepath.WalkDir(b.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.baseDir, path)
		if err != nil {
			return err
		}
		ref := storage.NewRef(rel)
		if ref.HasPrefix(prefix) {
			refs = append(refs, ref)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", prefix, err)
	}

	return refs, nil
}

func (b *Backend) Close() error {
	return nil
}
