package s3

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned responses for the client slice the backend uses.
type fakeAPI struct {
	headOut *awss3.HeadObjectOutput
	headErr error

	versionPages []*awss3.ListObjectVersionsOutput
	versionCalls int
}

func (f *fakeAPI) HeadObject(_ context.Context, _ *awss3.HeadObjectInput, _ ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	return f.headOut, f.headErr
}

func (f *fakeAPI) GetObject(_ context.Context, _ *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) PutObject(_ context.Context, _ *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) DeleteObject(_ context.Context, _ *awss3.DeleteObjectInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, _ *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) ListObjectVersions(_ context.Context, _ *awss3.ListObjectVersionsInput, _ ...func(*awss3.Options)) (*awss3.ListObjectVersionsOutput, error) {
	if f.versionCalls >= len(f.versionPages) {
		return nil, errors.New("no more pages")
	}
	page := f.versionPages[f.versionCalls]
	f.versionCalls++
	return page, nil
}

func newTestBackend(client api) *Backend {
	return &Backend{
		client: client,
		bucket: "test-bucket",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestStatNotFound(t *testing.T) {
	b := newTestBackend(&fakeAPI{headErr: &types.NotFound{}})

	meta, err := b.Stat(context.Background(), "nope.txt")
	require.NoError(t, err, "not-found must not be an error")
	assert.False(t, meta.Exists)
}

func TestStatStripsETagQuotes(t *testing.T) {
	b := newTestBackend(&fakeAPI{headOut: &awss3.HeadObjectOutput{
		ETag:          aws.String(`"5eb63bbbe01eeed093cb22bb8f5acdc3"`),
		ContentLength: aws.Int64(11),
	}})

	meta, err := b.Stat(context.Background(), "file.txt")
	require.NoError(t, err)
	assert.True(t, meta.Exists)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", meta.ContentHash)
	assert.Equal(t, int64(11), meta.Size)
}

func TestVersionsFollowsPagination(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	b := newTestBackend(&fakeAPI{versionPages: []*awss3.ListObjectVersionsOutput{
		{
			IsTruncated:         aws.Bool(true),
			NextKeyMarker:       aws.String("file.txt"),
			NextVersionIdMarker: aws.String("old"),
			Versions: []types.ObjectVersion{
				{
					Key:          aws.String("file.txt"),
					VersionId:    aws.String("old"),
					ETag:         aws.String(`"aaa"`),
					Size:         aws.Int64(3),
					LastModified: aws.Time(older),
				},
				// Prefix listing can pick up longer keys.
				{
					Key:          aws.String("file.txt.bak"),
					VersionId:    aws.String("ignored"),
					LastModified: aws.Time(newer),
				},
			},
		},
		{
			IsTruncated: aws.Bool(false),
			Versions: []types.ObjectVersion{
				{
					Key:          aws.String("file.txt"),
					VersionId:    aws.String("new"),
					IsLatest:     aws.Bool(true),
					ETag:         aws.String(`"bbb"`),
					Size:         aws.Int64(5),
					LastModified: aws.Time(newer),
				},
			},
		},
	}})

	versions, err := b.Versions(context.Background(), "file.txt")
	require.NoError(t, err)

	// Versions from every page are collected, sorted newest first.
	require.Len(t, versions, 2)
	assert.Equal(t, "new", versions[0].ID)
	assert.Equal(t, "bbb", versions[0].ContentHash)
	assert.True(t, versions[0].IsLatest)
	assert.Equal(t, "old", versions[1].ID)
}

func TestVersionsEmpty(t *testing.T) {
	b := newTestBackend(&fakeAPI{versionPages: []*awss3.ListObjectVersionsOutput{
		{IsTruncated: aws.Bool(false)},
	}})

	versions, err := b.Versions(context.Background(), "ghost.txt")
	require.NoError(t, err)
	assert.Empty(t, versions)
}
