package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/config"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
)

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupLogger_WritesSessionFileAndStdout(t *testing.T) {
	restoreDefaultLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{LogDir: dir, LogLevel: "info", LogFormat: "text", Environment: "test"}
	var stdout bytes.Buffer
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	f, err := setupLogger(cfg, "1.2.3", &stdout, now)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, filepath.Join(dir, "session_2024-05-01_12-30-00.log"), f.Name())
	content, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(content), LogMsgStartingTracker)
	assert.Contains(t, stdout.String(), LogMsgStartingTracker)
	assert.Contains(t, stdout.String(), "version=1.2.3")
}

func TestSetupLogger_WarnsAboutExposedHost(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := &config.Config{LogDir: t.TempDir(), LogLevel: "info", LogFormat: "text", Host: "0.0.0.0"}
	var stdout bytes.Buffer

	f, err := setupLogger(cfg, "dev", &stdout, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Contains(t, stdout.String(), LogMsgConfigWarning)
}

func TestCleanupLogs_KeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2024-01-12_00-00-00.log")
	assert.NotContains(t, names, "session_2024-01-03_00-00-00.log")
	assert.Contains(t, names, "session_2024-01-04_00-00-00.log")
}

func TestCleanupLogs_MissingDir(t *testing.T) {
	assert.NotPanics(t, func() { cleanupLogs(filepath.Join(t.TempDir(), "absent")) })
}

func TestLoadCatalog_PublishesTableSizes(t *testing.T) {
	cat, err := LoadCatalog(context.Background(), catalog.NewLoader(), "")
	require.NoError(t, err)

	assert.Equal(t, float64(len(cat.ArmorPieces())), testutil.ToFloat64(metrics.CatalogEntries.WithLabelValues(catalog.TableArmor)))
	assert.Equal(t, float64(len(cat.Materials())), testutil.ToFloat64(metrics.CatalogEntries.WithLabelValues(catalog.TableMaterials)))
}

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) (*catalog.Catalog, error) {
	return nil, errors.New("boom")
}

func TestLoadCatalog_Error(t *testing.T) {
	_, err := LoadCatalog(context.Background(), failingLoader{}, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgLoadCatalog)
}

func TestOpenStorage_MigratesAndImportsLegacy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	legacy := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"materials":{"amber":3}}`), 0644))
	cat, err := catalog.Default()
	require.NoError(t, err)

	st, err := OpenStorage(ctx, filepath.Join(dir, "data", "state.db"), legacy, cat)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.DB.Close() })

	assert.Positive(t, st.Version)
	data, err := st.Repository.LoadState(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amber": 3`)
}

type recordingStopper struct {
	calls *[]string
	err   error
}

func (r recordingStopper) Stop(context.Context) error {
	*r.calls = append(*r.calls, "server")
	return r.err
}

type recordingCloser struct {
	calls *[]string
}

func (r recordingCloser) Close() error {
	*r.calls = append(*r.calls, "database")
	return nil
}

func TestGracefulShutdown_Order(t *testing.T) {
	var calls []string

	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:   recordingStopper{calls: &calls, err: errors.New("timeout")},
		Database: recordingCloser{calls: &calls},
	})

	assert.Equal(t, []string{"server", "database"}, calls)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
