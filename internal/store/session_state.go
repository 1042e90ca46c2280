package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// stateRepo implements StateRepo as a JSON document under KeyProgress.
type stateRepo struct {
	kv *kvTable
}

func (r *stateRepo) Load(ctx context.Context) (*SessionStateData, error) {
	raw, ok, err := r.kv.Get(ctx, KeyProgress)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var data SessionStateData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &data, nil
}

func (r *stateRepo) Save(ctx context.Context, data SessionStateData) error {
	if data.Answers == nil {
		data.Answers = []AnswerData{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := r.kv.Put(ctx, KeyProgress, string(b)); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}

func (r *stateRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyProgress); err != nil {
		return fmt.Errorf("clear session state: %w", err)
	}
	return nil
}
