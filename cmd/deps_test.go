package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/bizwiz/internal/catalog"
	"github.com/abhisek/bizwiz/internal/config"
)

func TestCatalogSource(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	cfg = &config.Config{}
	assert.Equal(t, "embedded", catalogSource().String())

	dir := t.TempDir()
	cfg = &config.Config{CatalogDir: dir}
	src := catalogSource()
	assert.IsType(t, &catalog.FSSource{}, src)
	assert.Equal(t, dir, src.String())

	cfg = &config.Config{CatalogDir: t.TempDir(), CatalogURL: "https://example.com/catalog"}
	assert.IsType(t, &catalog.HTTPSource{}, catalogSource())
}
