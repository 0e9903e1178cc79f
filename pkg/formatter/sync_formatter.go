package formatter

import (
	"fmt"

	"bucketsync/internal/service"
	"bucketsync/pkg/storage"
)

type SyncFormatter struct{}

func NewSyncFormatter() *SyncFormatter {
	return &SyncFormatter{}
}

// FormatResult renders one reconciliation result as a single line, in
// the spirit of the classic "Updated / No change / Uploaded" messages.
func (f *SyncFormatter) FormatResult(r service.Result) string {
	switch r.Status {
	case service.Unchanged:
		return fmt.Sprintf("No change to '%s'", r.Path)
	case service.Created:
		return fmt.Sprintf("Transferred '%s' (%s)", r.Path, r.Reason)
	case service.Updated:
		return fmt.Sprintf("Updated '%s' (%s)", r.Path, r.Reason)
	case service.SkippedNoSource:
		return fmt.Sprintf("'%s' does not exist, nothing to do", r.Path)
	default:
		return fmt.Sprintf("'%s': %s", r.Path, r.Status)
	}
}

func (f *SyncFormatter) FormatResults(results []service.Result) string {
	table := NewTable([]string{"PATH", "ACTION", "REASON", "STATUS"})
	for _, r := range results {
		table.AddRow([]string{
			r.Path.String(),
			r.Direction.String(),
			r.Reason.String(),
			r.Status.String(),
		})
	}
	return table.String()
}

func (f *SyncFormatter) FormatRefList(refs []storage.Ref) string {
	table := NewTable([]string{"PATH"})
	for _, ref := range refs {
		table.AddRow([]string{ref.String()})
	}
	return table.String()
}

// ObjectDetail pairs a ref with its metadata for long listings.
type ObjectDetail struct {
	Ref  storage.Ref
	Meta storage.Metadata
}

func (f *SyncFormatter) FormatObjectList(objects []ObjectDetail) string {
	table := NewTable([]string{"PATH", "SIZE", "CONTENT HASH"})
	for _, obj := range objects {
		hash := obj.Meta.ContentHash
		if hash == "" {
			hash = "N/A"
		}
		table.AddRow([]string{
			obj.Ref.String(),
			storage.FormatBytes(obj.Meta.Size),
			hash,
		})
	}
	return table.String()
}
