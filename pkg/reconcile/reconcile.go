// Package reconcile decides whether one logical path needs a transfer
// between a local and a remote backend. It is pure decision logic over
// already-fetched metadata: all I/O, hash computation and byte copying
// belongs to the caller.
package reconcile

import (
	"strings"

	"bucketsync/pkg/storage"
)

// Direction is the single data movement (or non-movement) an outcome
// instructs the caller to perform.
type Direction int

const (
	// Skip means both sides already agree; nothing to transfer.
	Skip Direction = iota
	// Upload moves local content to the remote side.
	Upload
	// Download moves remote content to the local side.
	Download
	// Create is never produced by Decide. Callers record it in place of
	// Upload or Download when the transfer materialized a destination
	// that did not exist before, to tell a first write from an overwrite.
	Create
	// FailMissingSource means the requested source side does not exist.
	// It is a soft no-op outcome, distinguishable from Skip and never
	// conflated with a hard failure.
	FailMissingSource
)

func (d Direction) String() string {
	switch d {
	case Skip:
		return "skip"
	case Upload:
		return "upload"
	case Download:
		return "download"
	case Create:
		return "create"
	case FailMissingSource:
		return "missing-source"
	default:
		return "unknown"
	}
}

// Transfers reports whether the direction instructs the caller to move
// bytes.
func (d Direction) Transfers() bool {
	return d == Upload || d == Download || d == Create
}

// Reason explains why an outcome was chosen.
type Reason int

const (
	NotModified Reason = iota
	Modified
	DestinationMissing
	SourceMissing
	ChecksumDisabled
)

func (r Reason) String() string {
	switch r {
	case NotModified:
		return "not-modified"
	case Modified:
		return "modified"
	case DestinationMissing:
		return "destination-missing"
	case SourceMissing:
		return "source-missing"
	case ChecksumDisabled:
		return "checksum-disabled"
	default:
		return "unknown"
	}
}

// Outcome is the engine's instruction to the caller: which single
// transfer to perform, if any, and why.
type Outcome struct {
	Direction Direction
	Reason    Reason
}

// Decide applies the synchronization policy to one logical path. intent
// selects which side is the source: local for Upload, remote for
// Download.
//
// The policy, in order:
//  1. missing source: FailMissingSource/SourceMissing, a soft no-op;
//  2. missing destination: transfer in the requested direction;
//  3. checksum disabled: unconditional transfer;
//  4. equal content hashes: Skip/NotModified; unequal, or a hash missing
//     on either side, a transfer. A missing hash never causes a skip, so
//     unavailable metadata can never suppress a transfer silently.
//
// Decide is a pure function: it holds no state, never fails, and is safe
// to call concurrently. Concurrent reconciliation of the same path is
// the caller's problem; whichever write lands last wins, undetected.
func Decide(local, remote storage.Metadata, intent Direction, checksumEnabled bool) Outcome {
	src, dst := local, remote
	if intent == Download {
		src, dst = remote, local
	}

	switch {
	case !src.Exists:
		return Outcome{Direction: FailMissingSource, Reason: SourceMissing}
	case !dst.Exists:
		return Outcome{Direction: intent, Reason: DestinationMissing}
	case !checksumEnabled:
		return Outcome{Direction: intent, Reason: ChecksumDisabled}
	case HashEqual(local.ContentHash, remote.ContentHash):
		return Outcome{Direction: Skip, Reason: NotModified}
	default:
		return Outcome{Direction: intent, Reason: Modified}
	}
}

// HashEqual compares two content hashes after stripping surrounding
// quote characters, which entity tags arrive wrapped in. The comparison
// is case-sensitive, and a missing hash on either side is never equal to
// anything.
func HashEqual(a, b string) bool {
	a = strings.Trim(a, `"'`)
	b = strings.Trim(b, `"'`)
	if a == "" || b == "" {
		return false
	}
	return a == b
}
