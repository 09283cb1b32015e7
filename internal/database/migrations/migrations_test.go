package migrations

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/database"
	"github.com/koscheiundead/totkaa-v2/internal/database/sqlite"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func writeLegacy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player-state.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func storedState(t *testing.T, db *sql.DB) domain.OwnedState {
	t.Helper()
	data, err := sqlite.NewQueries(db).GetDocument(context.Background())
	require.NoError(t, err)
	s, err := state.Parse(data)
	require.NoError(t, err)
	return s
}

func migrate(t *testing.T, db *sql.DB, opts ...Option) int64 {
	t.Helper()
	m, err := NewMigrator(db, testCatalog(t), opts...)
	require.NoError(t, err)
	version, err := m.Up(context.Background())
	require.NoError(t, err)
	return version
}

func TestUp_FreshDatabaseSeedsCatalog(t *testing.T) {
	db := openInMemoryDB(t)
	cat := testCatalog(t)

	version := migrate(t, db)

	assert.Equal(t, VersionCatalogSync, version)
	assert.Equal(t, state.Seeded(cat.ArmorIDs()), storedState(t, db))
}

func TestUp_LegacyDropsUnknownIDsAndSeedsCatalog(t *testing.T) {
	db := openInMemoryDB(t)
	cat := testCatalog(t)
	legacy := writeLegacy(t, `{"materials":{"amber":4},"armorLevels":{"unknown-id":2,"hylian-hood":3}}`)

	migrate(t, db, WithLegacyFile(legacy))

	got := storedState(t, db)
	assert.NotContains(t, got.ArmorLevels, "unknown-id")
	assert.Equal(t, domain.Level(3), got.ArmorLevels["hylian-hood"])
	for _, id := range cat.ArmorIDs() {
		assert.Contains(t, got.ArmorLevels, id)
	}
	assert.Len(t, got.ArmorLevels, len(cat.ArmorIDs()))
	assert.Equal(t, map[string]int{"amber": 4}, got.Materials)
	assert.Zero(t, got.Rupees)
}

func TestUp_LegacyLevelsClampedToPieceMax(t *testing.T) {
	db := openInMemoryDB(t)
	legacy := writeLegacy(t, `{"armorLevels":{"tunic-of-memories":3,"barbarian-helm":"2"}}`)

	migrate(t, db, WithLegacyFile(legacy))

	got := storedState(t, db)
	assert.Equal(t, domain.Level(0), got.ArmorLevels["tunic-of-memories"])
	assert.Equal(t, domain.Level(2), got.ArmorLevels["barbarian-helm"])
}

func TestUp_LegacyRupees(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "current format keeps balance", content: `{"materials":{"amber":4},"armorLevels":{"hylian-hood":2},"rupees":900}`, want: 900},
		{name: "pre-currency format starts at zero", content: `{"materials":{"amber":4},"armorLevels":{"hylian-hood":2}}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openInMemoryDB(t)
			legacy := writeLegacy(t, tt.content)

			migrate(t, db, WithLegacyFile(legacy))

			got := storedState(t, db)
			assert.Equal(t, tt.want, got.Rupees)
			assert.Equal(t, map[string]int{"amber": 4}, got.Materials)
			assert.Equal(t, domain.Level(2), got.ArmorLevels["hylian-hood"])
		})
	}
}

func TestUp_InvalidLegacyFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative material", content: `{"materials":{"amber":-3},"armorLevels":{"hylian-hood":2}}`},
		{name: "level above global max", content: `{"armorLevels":{"hylian-hood":9}}`},
		{name: "not an object", content: `[1, 2, 3]`},
		{name: "malformed json", content: `{"materials":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openInMemoryDB(t)
			cat := testCatalog(t)
			legacy := writeLegacy(t, tt.content)
			before := testutil.ToFloat64(metrics.MigrationFallbacks.WithLabelValues(StepOwnedState))

			version := migrate(t, db, WithLegacyFile(legacy))

			assert.Equal(t, VersionCatalogSync, version)
			assert.Equal(t, state.Seeded(cat.ArmorIDs()), storedState(t, db))
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.MigrationFallbacks.WithLabelValues(StepOwnedState)))
		})
	}
}

func TestUp_MissingLegacyFileIsIgnored(t *testing.T) {
	db := openInMemoryDB(t)

	version := migrate(t, db, WithLegacyFile(filepath.Join(t.TempDir(), "absent.json")))

	assert.Equal(t, VersionCatalogSync, version)
	assert.Equal(t, state.Seeded(testCatalog(t).ArmorIDs()), storedState(t, db))
}

func TestUp_Idempotent(t *testing.T) {
	db := openInMemoryDB(t)
	migrate(t, db)

	// A later write must survive a second run, legacy file or not
	saved := state.Seeded(testCatalog(t).ArmorIDs())
	saved.Rupees = 42
	data, err := state.Encode(saved)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewQueries(db).UpsertDocument(context.Background(), data, 1))

	legacy := writeLegacy(t, `{"materials":{"amber":99}}`)
	version := migrate(t, db, WithLegacyFile(legacy))

	assert.Equal(t, VersionCatalogSync, version)
	assert.Equal(t, saved, storedState(t, db))
}

func TestStatus_ListsAllVersions(t *testing.T) {
	db := openInMemoryDB(t)
	m, err := NewMigrator(db, testCatalog(t))
	require.NoError(t, err)

	statuses, err := m.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	_, err = m.Up(context.Background())
	require.NoError(t, err)

	version, err := m.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, VersionCatalogSync, version)
}
