package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"bucketsync/pkg/storage"
)

func (b *Backend) Stat(ctx context.Context, ref storage.Ref) (storage.Metadata, error) {
	b.logger.Debug("Starting S3 Stat operation", "bucket", b.bucket, "key", ref)

	out, err := b.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(ref.String()),
	})
	if err != nil {
		if isNotFound(err) {
			return storage.Metadata{}, nil
		}
		return storage.Metadata{}, fmt.Errorf("error inspecting object %s: %w", ref, err)
	}

	return storage.Metadata{
		Exists: true,
		// The entity tag equals the content MD5 only for single-part
		// uploads; for multipart objects the hashes will simply never
		// match and the transfer happens.
		ContentHash: stripQuotes(aws.ToString(out.ETag)),
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

func (b *Backend) Read(ctx context.Context, ref storage.Ref) (io.ReadCloser, error) {
	resp, err := b.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(ref.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching object %s: %w", ref, err)
	}
	return resp.Body, nil
}

func (b *Backend) Write(ctx context.Context, ref storage.Ref, r io.Reader, size int64) error {
	b.logger.Debug("Starting S3 Write operation", "bucket", b.bucket, "key", ref, "size", size)

	input := &awss3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(ref.String()),
		Body:   r,
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error storing object %s: %w", ref, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, ref storage.Ref) (bool, error) {
	b.logger.Debug("Starting S3 Delete operation", "bucket", b.bucket, "key", ref)

	// DeleteObject succeeds for missing keys, so existence is checked
	// first to keep the idempotent "nothing was there" answer.
	meta, err := b.Stat(ctx, ref)
	if err != nil {
		return false, err
	}
	if !meta.Exists {
		return false, nil
	}

	if _, err := b.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(ref.String()),
	}); err != nil {
		return false, fmt.Errorf("error deleting object %s: %w", ref, err)
	}
	return true, nil
}

func (b *Backend) List(ctx context.Context, prefix storage.Ref) ([]storage.Ref, error) {
	b.logger.Debug("Starting S3 List operation", "bucket", b.bucket, "prefix", prefix)

	refs := []storage.Ref{}

	paginator := awss3.NewListObjectsV2Paginator(b.client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix.String()),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}
		for _, obj := range page.Contents {
			refs = append(refs, storage.NewRef(aws.ToString(obj.Key)))
		}
	}

	return refs, nil
}

// Versions returns the stored versions of ref sorted newest first by
// modification time. The bucket's reported order is not trusted.
func (b *Backend) Versions(ctx context.Context, ref storage.Ref) ([]storage.Version, error) {
	b.logger.Debug("Starting S3 Versions operation", "bucket", b.bucket, "key", ref)

	versions := []storage.Version{}

	paginator := awss3.NewListObjectVersionsPaginator(b.client, &awss3.ListObjectVersionsInput{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(ref.String()),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing versions of %s: %w", ref, err)
		}
		for _, v := range page.Versions {
			// The prefix match can pick up longer keys.
			if aws.ToString(v.Key) != ref.String() {
				continue
			}
			versions = append(versions, storage.Version{
				ID:           aws.ToString(v.VersionId),
				IsLatest:     aws.ToBool(v.IsLatest),
				Size:         aws.ToInt64(v.Size),
				ContentHash:  stripQuotes(aws.ToString(v.ETag)),
				LastModified: aws.ToTime(v.LastModified),
			})
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].LastModified.After(versions[j].LastModified)
	})

	return versions, nil
}

func (b *Backend) ReadVersion(ctx context.Context, ref storage.Ref, versionID string) (io.ReadCloser, error) {
	resp, err := b.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket:    aws.String(b.bucket),
		Key:       aws.String(ref.String()),
		VersionId: aws.String(versionID),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching version %s of %s: %w", versionID, ref, err)
	}
	return resp.Body, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}

func stripQuotes(etag string) string {
	return strings.ReplaceAll(etag, "\"", "")
}
