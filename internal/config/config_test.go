package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(original) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, "orders.csv", cfg.Data.Orders)
	assert.Equal(t, "category_translation.csv", cfg.Data.CategoryTranslation)
	assert.Equal(t, 10, cfg.Dashboard.TopN)
	assert.Equal(t, "$", cfg.Dashboard.Currency)
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  addr: ":9090"
data:
  dir: "/srv/sales"
  orders: "orders_export.csv"
dashboard:
  top_n: 5
  currency: "R$"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/srv/sales", cfg.Data.Dir)
	assert.Equal(t, "orders_export.csv", cfg.Data.Orders)
	// Unset keys keep their defaults.
	assert.Equal(t, "reviews.csv", cfg.Data.Reviews)
	assert.Equal(t, 5, cfg.Dashboard.TopN)
	assert.Equal(t, "R$", cfg.Dashboard.Currency)
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [broken"), 0o644))
	chdir(t, dir)

	_, err := LoadConfig()
	require.Error(t, err)
}
