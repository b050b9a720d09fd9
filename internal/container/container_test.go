package container

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"launchdash/internal"
	"launchdash/internal/config"
	"launchdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{SyntheticSeed: 7, SyntheticCount: 30},
	}
}

func TestLoadSynthetic(t *testing.T) {
	c, err := New(baseConfig())
	require.NoError(t, err)
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 30, c.Dataset.Len())
	assert.Equal(t, "synthetic:seed=7", c.Data.Source())
	for _, site := range c.Dataset.Sites() {
		assert.True(t, c.Catalog.Contains(site))
	}
}

func TestLoadFileExtendsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launches.csv")
	csv := "Launch Site,Payload Mass (kg),Booster Version Category,class\n" +
		"KSC LC-39A,2500,FT,1\n" +
		"Starbase,0,Starship,0\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cfg := baseConfig()
	cfg.Data.File = path
	c, err := New(cfg)
	require.NoError(t, err)
	var logs bytes.Buffer
	c.Log = internal.NewLoggerTo(&logs, internal.LogLevelWarn).With("Container")
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 2, c.Dataset.Len())
	assert.True(t, c.Catalog.Contains("Starbase"))
	assert.Len(t, c.Catalog.Sites(), 5)
	assert.Contains(t, logs.String(), `[WARN] [Container] Site "Starbase" is in the dataset`)
}

func TestLoadFailureIsDatasetLoad(t *testing.T) {
	cfg := baseConfig()
	cfg.Data.File = filepath.Join(t.TempDir(), "missing.csv")
	c, err := New(cfg)
	require.NoError(t, err)

	err = c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetLoad, errors.GetCode(err))
}

func TestLoadDatabase(t *testing.T) {
	cfg := baseConfig()
	cfg.Database = config.DatabaseConfig{Driver: "sqlite", URL: filepath.Join(t.TempDir(), "launches.db")}
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	// a freshly migrated database has no launches yet
	err = c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetLoad, errors.GetCode(err))
	require.NotNil(t, c.Store)
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
