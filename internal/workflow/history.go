package workflow

import (
	"context"
	"sort"

	"anchor/internal/model"
)

// HistoryAPI is the slice of the REST client the reader needs.
type HistoryAPI interface {
	History(ctx context.Context, careLogID string) ([]model.AuditEntry, error)
}

// HistoryReader is a read-only view over a record's immutable audit
// entries, ordered chronologically ascending to match what happened over
// the day.
type HistoryReader struct {
	api HistoryAPI
}

func NewHistoryReader(api HistoryAPI) *HistoryReader {
	return &HistoryReader{api: api}
}

// Read returns the entries oldest-first. An empty history is "no
// activity recorded", never an error: callers always get a non-nil
// slice on success.
func (r *HistoryReader) Read(ctx context.Context, careLogID string) ([]model.AuditEntry, error) {
	entries, err := r.api.History(ctx, careLogID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []model.AuditEntry{}, nil
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}
