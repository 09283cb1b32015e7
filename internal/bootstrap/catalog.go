package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
)

// LoadCatalog loads the armor catalog, applying any tables found in dir over
// the embedded copy, and publishes the table sizes as metrics
func LoadCatalog(ctx context.Context, loader catalog.Loader, dir string) (*catalog.Catalog, error) {
	cat, err := loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}

	metrics.CatalogEntries.WithLabelValues(catalog.TableMaterials).Set(float64(len(cat.Materials())))
	metrics.CatalogEntries.WithLabelValues(catalog.TableArmor).Set(float64(len(cat.ArmorPieces())))
	metrics.CatalogEntries.WithLabelValues(catalog.TableCosts).Set(float64(len(cat.Costs())))

	slog.Info(LogMsgCatalogReady,
		"materials", len(cat.Materials()),
		"armor", len(cat.ArmorPieces()),
		"fingerprint", cat.Fingerprint())
	return cat, nil
}
