package storage

import (
	"context"
	"io"
)

// Backend is the capability set shared by every artifact store: the cloud
// buckets and the local filesystem stand-in implement it identically, so
// either side of a transfer can be swapped for the other.
type Backend interface {
	ProviderName() Provider

	// Stat returns the metadata of the artifact at ref. A missing
	// artifact is reported as Metadata{Exists: false} with a nil error;
	// errors are reserved for transport, auth and permission failures.
	Stat(ctx context.Context, ref Ref) (Metadata, error)

	// Read opens the artifact content for reading. The caller closes
	// the returned reader.
	Read(ctx context.Context, ref Ref) (io.ReadCloser, error)

	// Write stores the artifact content, creating parent containers as
	// needed and overwriting any previous content. size may be -1 when
	// unknown.
	Write(ctx context.Context, ref Ref, r io.Reader, size int64) error

	// Delete removes the artifact. Deleting a missing artifact is not
	// an error; the bool reports whether anything was removed.
	Delete(ctx context.Context, ref Ref) (bool, error)

	// List returns the refs of every artifact under prefix. Lexical
	// order is not guaranteed.
	List(ctx context.Context, prefix Ref) ([]Ref, error)

	Close() error
}

// Versioner is implemented by backends that keep object versions.
type Versioner interface {
	// Versions returns every stored version of ref, sorted newest first
	// by modification time. Callers may rely on the ordering.
	Versions(ctx context.Context, ref Ref) ([]Version, error)

	// ReadVersion opens a specific version of the artifact content.
	ReadVersion(ctx context.Context, ref Ref, versionID string) (io.ReadCloser, error)
}
