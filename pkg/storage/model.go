package storage

import (
	"fmt"
	"time"
)

// Provider identifies a backend implementation.
type Provider string

const (
	S3    Provider = "s3"
	GCS   Provider = "gcs"
	Local Provider = "local"
)

// Metadata describes an artifact as reported by a backend.
//
// A not-found artifact is Exists == false with a nil error from Stat;
// absence is state, not failure. ContentHash is empty when the backend
// cannot supply a content digest, which does not imply the artifact is
// absent.
type Metadata struct {
	Exists      bool
	ContentHash string
	Size        int64
}

// Version describes one stored version of an artifact.
type Version struct {
	ID           string
	IsLatest     bool
	Size         int64
	ContentHash  string
	LastModified time.Time
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
