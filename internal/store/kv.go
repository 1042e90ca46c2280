package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const kvTableName = "kv"

// kvTable reads and writes string values keyed by name.
type kvTable struct {
	drv *entsql.Driver
}

func (t *kvTable) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the value stored under name and whether it exists.
func (t *kvTable) Get(ctx context.Context, name string) (string, bool, error) {
	query, args := t.builder().
		Select("value").
		From(entsql.Table(kvTableName)).
		Where(entsql.EQ("name", name)).
		Query()

	var rows entsql.Rows
	if err := t.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", name, err)
	}
	return value, true, nil
}

// Put inserts or replaces the value stored under name.
func (t *kvTable) Put(ctx context.Context, name, value string) error {
	query, args := t.builder().
		Insert(kvTableName).
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().UTC().Format(time.RFC3339Nano)).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := t.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Delete removes name. Deleting a missing name is not an error.
func (t *kvTable) Delete(ctx context.Context, name string) error {
	query, args := t.builder().
		Delete(kvTableName).
		Where(entsql.EQ("name", name)).
		Query()

	if err := t.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
