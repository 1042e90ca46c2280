package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// historyRepo implements HistoryRepo as a JSON array under KeyHistory.
type historyRepo struct {
	kv *kvTable
}

func (r *historyRepo) Append(ctx context.Context, entry HistoryEntry) error {
	entries, err := r.List(ctx)
	if err != nil {
		// An unreadable log is replaced rather than blocking new entries.
		entries = nil
	}

	entries = append([]HistoryEntry{entry}, entries...)
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := r.kv.Put(ctx, KeyHistory, string(b)); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *historyRepo) List(ctx context.Context) ([]HistoryEntry, error) {
	raw, ok, err := r.kv.Get(ctx, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

func (r *historyRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
