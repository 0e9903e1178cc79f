package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"bucketsync/pkg/reconcile"
	"bucketsync/pkg/storage"
)

// mirrorConcurrency bounds how many distinct paths a Mirror call
// reconciles at once. Work on a single path is always sequential.
const mirrorConcurrency = 4

// Options tune a reconciliation.
type Options struct {
	// Checksum enables the content-hash comparison. When false an
	// existing destination is overwritten unconditionally.
	Checksum bool
	// Backup buffers the previous destination content in memory before
	// a destructive overwrite and restores it if the write fails.
	Backup bool
}

func DefaultOptions() Options {
	return Options{Checksum: true}
}

// Status classifies what a reconciliation did, replacing the ambiguous
// true/false/nil answers the operations used to give.
type Status int

const (
	// Unchanged means both sides already had equal content.
	Unchanged Status = iota
	// Created means the destination did not exist and was written.
	Created
	// Updated means the destination existed and was overwritten.
	Updated
	// SkippedNoSource means the source side does not exist: a soft
	// no-op, not a failure.
	SkippedNoSource
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Created:
		return "created"
	case Updated:
		return "updated"
	case SkippedNoSource:
		return "no source"
	default:
		return "unknown"
	}
}

// Result reports one finished reconciliation. Hard failures (transport,
// permissions) are returned as errors instead, never folded into a
// Result.
type Result struct {
	Path      storage.Ref
	Direction reconcile.Direction
	Reason    reconcile.Reason
	Status    Status
}

// SyncService reconciles logical paths between a local backend and a
// remote backend. Both sides satisfy the same capability set, so the
// "remote" may just as well be the filesystem stand-in.
type SyncService struct {
	local  storage.Backend
	remote storage.Backend
	logger *slog.Logger
}

func NewSyncService(local, remote storage.Backend, logger *slog.Logger) *SyncService {
	return &SyncService{
		local:  local,
		remote: remote,
		logger: logger.With("service", "SyncService"),
	}
}

// Upload reconciles ref with the local side as source.
func (s *SyncService) Upload(ctx context.Context, ref storage.Ref, opts Options) (Result, error) {
	return s.reconcile(ctx, ref, reconcile.Upload, opts)
}

// Download reconciles ref with the remote side as source.
func (s *SyncService) Download(ctx context.Context, ref storage.Ref, opts Options) (Result, error) {
	return s.reconcile(ctx, ref, reconcile.Download, opts)
}

func (s *SyncService) reconcile(ctx context.Context, ref storage.Ref, intent reconcile.Direction, opts Options) (Result, error) {
	s.logger.Debug("Starting reconciliation", "ref", ref, "intent", intent.String(), "checksum", opts.Checksum)

	localMeta, err := s.local.Stat(ctx, ref)
	if err != nil {
		return Result{}, err
	}
	remoteMeta, err := s.remote.Stat(ctx, ref)
	if err != nil {
		return Result{}, err
	}

	outcome := reconcile.Decide(localMeta, remoteMeta, intent, opts.Checksum)
	result := Result{
		Path:      ref,
		Direction: outcome.Direction,
		Reason:    outcome.Reason,
	}

	switch outcome.Direction {
	case reconcile.FailMissingSource:
		s.logger.Debug("Source does not exist", "ref", ref)
		result.Status = SkippedNoSource
		return result, nil
	case reconcile.Skip:
		s.logger.Debug("No change", "ref", ref)
		result.Status = Unchanged
		return result, nil
	}

	src, dst, srcMeta, dstMeta := s.local, s.remote, localMeta, remoteMeta
	if outcome.Direction == reconcile.Download {
		src, dst, srcMeta, dstMeta = s.remote, s.local, remoteMeta, localMeta
	}

	if err := s.transfer(ctx, src, dst, ref, srcMeta, dstMeta, opts); err != nil {
		s.logger.Error("Transfer failed", "ref", ref, "intent", intent.String(), "error", err)
		return Result{}, err
	}

	if outcome.Reason == reconcile.DestinationMissing {
		result.Direction = reconcile.Create
		result.Status = Created
	} else {
		result.Status = Updated
	}

	s.logger.Debug("Transfer complete", "ref", ref, "status", result.Status.String())
	return result, nil
}

// transfer copies source content over the destination.
func (s *SyncService) transfer(ctx context.Context, src, dst storage.Backend, ref storage.Ref, srcMeta, dstMeta storage.Metadata, opts Options) error {
	rc, err := src.Read(ctx, ref)
	if err != nil {
		return err
	}
	defer rc.Close()

	return s.writeWithBackup(ctx, dst, ref, rc, srcMeta.Size, dstMeta, opts)
}

// writeWithBackup performs the destructive write. With the backup
// strategy enabled, the previous destination content is buffered first
// and written back if the overwrite fails, so a half-finished write
// cannot destroy the only copy.
func (s *SyncService) writeWithBackup(ctx context.Context, dst storage.Backend, ref storage.Ref, r io.Reader, size int64, dstMeta storage.Metadata, opts Options) error {
	var backup []byte
	if opts.Backup && dstMeta.Exists {
		rc, err := dst.Read(ctx, ref)
		if err != nil {
			return fmt.Errorf("error backing up previous content of %s: %w", ref, err)
		}
		backup, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("error backing up previous content of %s: %w", ref, err)
		}
	}

	if err := dst.Write(ctx, ref, r, size); err != nil {
		if backup != nil {
			if rerr := dst.Write(ctx, ref, bytes.NewReader(backup), int64(len(backup))); rerr != nil {
				return errors.Join(err, fmt.Errorf("error restoring previous content of %s: %w", ref, rerr))
			}
			s.logger.Warn("Overwrite failed, previous content restored", "ref", ref)
		}
		return err
	}
	return nil
}

// Delete removes ref from the remote side. Deleting a missing artifact
// reports (false, nil), keeping "was not there" distinguishable from a
// failed delete.
func (s *SyncService) Delete(ctx context.Context, ref storage.Ref) (bool, error) {
	s.logger.Debug("Starting Delete operation", "ref", ref)

	deleted, err := s.remote.Delete(ctx, ref)
	if err != nil {
		s.logger.Error("Delete failed", "ref", ref, "error", err)
		return false, err
	}
	return deleted, nil
}

// Mirror reconciles every path the source side holds under prefix.
// Distinct paths run concurrently; the engine gives no protection
// against two callers racing on the same path, so Mirror never
// schedules a path twice.
func (s *SyncService) Mirror(ctx context.Context, prefix storage.Ref, intent reconcile.Direction, opts Options) ([]Result, error) {
	src := s.local
	if intent == reconcile.Download {
		src = s.remote
	}

	refs, err := src.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Mirroring prefix", "prefix", prefix, "intent", intent.String(), "count", len(refs))

	results := make([]Result, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mirrorConcurrency)

	for i, ref := range refs {
		g.Go(func() error {
			result, err := s.reconcile(gctx, ref, intent, opts)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DownloadLatest downloads the newest stored version of ref, for remotes
// that keep versions. The remote backend must hand versions back sorted
// newest first; the head of that list is authoritative, a deliberate
// change from picking the first element of an unsorted listing.
func (s *SyncService) DownloadLatest(ctx context.Context, ref storage.Ref, opts Options) (Result, error) {
	versioner, ok := s.remote.(storage.Versioner)
	if !ok {
		return Result{}, fmt.Errorf("backend %s does not support versioning", s.remote.ProviderName())
	}

	versions, err := versioner.Versions(ctx, ref)
	if err != nil {
		return Result{}, err
	}

	result := Result{Path: ref, Direction: reconcile.Download}
	if len(versions) == 0 {
		result.Direction = reconcile.FailMissingSource
		result.Reason = reconcile.SourceMissing
		result.Status = SkippedNoSource
		return result, nil
	}
	latest := versions[0]

	localMeta, err := s.local.Stat(ctx, ref)
	if err != nil {
		return Result{}, err
	}
	remoteMeta := storage.Metadata{
		Exists:      true,
		ContentHash: latest.ContentHash,
		Size:        latest.Size,
	}

	outcome := reconcile.Decide(localMeta, remoteMeta, reconcile.Download, opts.Checksum)
	result.Direction = outcome.Direction
	result.Reason = outcome.Reason
	if outcome.Direction == reconcile.Skip {
		result.Status = Unchanged
		return result, nil
	}

	rc, err := versioner.ReadVersion(ctx, ref, latest.ID)
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()

	if err := s.writeWithBackup(ctx, s.local, ref, rc, latest.Size, localMeta, opts); err != nil {
		s.logger.Error("Versioned download failed", "ref", ref, "version", latest.ID, "error", err)
		return Result{}, err
	}

	if outcome.Reason == reconcile.DestinationMissing {
		result.Direction = reconcile.Create
		result.Status = Created
	} else {
		result.Status = Updated
	}
	return result, nil
}
