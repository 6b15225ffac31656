package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prasenjit/go-oasgen/internal/assembler"
	"github.com/prasenjit/go-oasgen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFiles(t *testing.T) {
	dir := t.TempDir()
	initForce = false

	files, err := initFiles(dir, config.Default())
	require.NoError(t, err)
	assert.Len(t, files, 3)

	loadFrom(t, filepath.Join(dir, "config.yaml"))
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "api-docs", cfg.Generator.DocsPath)
	assert.Equal(t, 10*time.Second, cfg.Generator.WriteInterval)

	info, err := assembler.LoadPackageInfo(filepath.Join(dir, "apiinfo.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "My API", info.Name)
	assert.Equal(t, "1.0.0", info.Version)

	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.NoError(t, err)
}

func TestInitFilesExisting(t *testing.T) {
	dir := t.TempDir()
	initForce = false

	_, err := initFiles(dir, config.Default())
	require.NoError(t, err)

	_, err = initFiles(dir, config.Default())
	assert.Error(t, err)

	initForce = true
	defer func() { initForce = false }()
	_, err = initFiles(dir, config.Default())
	assert.NoError(t, err)
}
