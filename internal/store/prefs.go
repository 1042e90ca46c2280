package store

import (
	"context"
	"fmt"
)

// prefRepo implements PrefRepo.
type prefRepo struct {
	kv *kvTable
}

func (r *prefRepo) Theme(ctx context.Context) (string, error) {
	v, ok, err := r.kv.Get(ctx, KeyTheme)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if !ok || !validTheme(v) {
		return ThemeLight, nil
	}
	return v, nil
}

func (r *prefRepo) SetTheme(ctx context.Context, theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("unknown theme %q (want %q or %q)", theme, ThemeLight, ThemeDark)
	}
	if err := r.kv.Put(ctx, KeyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}
