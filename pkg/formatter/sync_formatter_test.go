package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bucketsync/internal/service"
	"bucketsync/pkg/reconcile"
	"bucketsync/pkg/storage"
)

func TestFormatResult(t *testing.T) {
	f := NewSyncFormatter()

	tests := []struct {
		name   string
		result service.Result
		want   string
	}{
		{
			name:   "unchanged",
			result: service.Result{Path: "file.txt", Status: service.Unchanged},
			want:   "No change to 'file.txt'",
		},
		{
			name: "created",
			result: service.Result{
				Path:      "file.txt",
				Direction: reconcile.Create,
				Reason:    reconcile.DestinationMissing,
				Status:    service.Created,
			},
			want: "Transferred 'file.txt' (destination-missing)",
		},
		{
			name: "updated",
			result: service.Result{
				Path:      "file.txt",
				Direction: reconcile.Upload,
				Reason:    reconcile.Modified,
				Status:    service.Updated,
			},
			want: "Updated 'file.txt' (modified)",
		},
		{
			name:   "missing source",
			result: service.Result{Path: "file.txt", Status: service.SkippedNoSource},
			want:   "'file.txt' does not exist, nothing to do",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatResult(tt.result))
		})
	}
}

func TestFormatResults(t *testing.T) {
	f := NewSyncFormatter()

	out := f.FormatResults([]service.Result{
		{Path: "a.txt", Direction: reconcile.Create, Reason: reconcile.DestinationMissing, Status: service.Created},
		{Path: "b.txt", Direction: reconcile.Skip, Reason: reconcile.NotModified, Status: service.Unchanged},
	})

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "create")
	assert.Contains(t, out, "b.txt")
	assert.Contains(t, out, "not-modified")
}

func TestFormatObjectList(t *testing.T) {
	f := NewSyncFormatter()

	out := f.FormatObjectList([]ObjectDetail{
		{Ref: "big.bin", Meta: storage.Metadata{Exists: true, Size: 2048, ContentHash: "abc123"}},
		{Ref: "nohash.bin", Meta: storage.Metadata{Exists: true, Size: 1}},
	})

	assert.Contains(t, out, "big.bin")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "abc123")
	// A backend that cannot supply a hash shows a placeholder.
	assert.Contains(t, out, "N/A")
}

func TestTableAlignment(t *testing.T) {
	table := NewTable([]string{"NAME", "VALUE"})
	table.AddRow([]string{"short", "1"})
	table.AddRow([]string{"much-longer-name", "2"})

	out := table.String()
	assert.Contains(t, out, "much-longer-name")
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "|")
}
