package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/bizwiz/internal/catalog"
	"github.com/abhisek/bizwiz/internal/prompts"
	"github.com/abhisek/bizwiz/internal/questions"
	"github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
)

// openStore opens the database at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return st, nil
}

// catalogSource picks the configured catalog: URL, then directory, then
// the embedded default.
func catalogSource() catalog.Source {
	switch {
	case cfg.CatalogURL != "":
		return catalog.NewHTTPSource(cfg.CatalogURL, catalog.WithTimeout(cfg.CatalogTimeout))
	case cfg.CatalogDir != "":
		return catalog.Dir(cfg.CatalogDir)
	}
	return catalog.Default()
}

// loadCatalog loads both documents and flattens the questions.
func loadCatalog(ctx context.Context) ([]questions.Record, *prompts.Resolver, error) {
	src := catalogSource()
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		logger.Error("catalog load failed", zap.Stringer("source", src), zap.Error(err))
		return nil, nil, err
	}
	flat := questions.Flatten(cat.Questions)
	logger.Info("catalog loaded",
		zap.Stringer("source", src),
		zap.Int("questions", len(flat)))
	return flat, prompts.NewResolver(cat.Prompts), nil
}

// newEngine builds the engine over st, restoring any saved session.
func newEngine(ctx context.Context, st *store.Store) (*session.Engine, error) {
	flat, resolver, err := loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	sc := cfg.Session()
	return session.New(ctx, session.Options{
		Questions: flat,
		Resolver:  resolver,
		States:    st.StateRepo(),
		History:   st.HistoryRepo(),
		Logger:    logger.Named("session"),
		Config:    &sc,
	})
}
