package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/validation"
)

//go:embed data/*.json
var embeddedData embed.FS

//go:embed schemas/*.schema.json
var embeddedSchemas embed.FS

// MaterialsFile is the on-disk layout of the materials table
type MaterialsFile struct {
	Version     string            `json:"version" yaml:"version"`
	Description string            `json:"description" yaml:"description"`
	Materials   []domain.Material `json:"materials" yaml:"materials"`
}

// ArmorFile is the on-disk layout of the armor table
type ArmorFile struct {
	Version     string              `json:"version" yaml:"version"`
	Description string              `json:"description" yaml:"description"`
	Armor       []domain.ArmorPiece `json:"armor" yaml:"armor"`
}

// CostsFile is the on-disk layout of the upgrade cost table
type CostsFile struct {
	Version     string               `json:"version" yaml:"version"`
	Description string               `json:"description" yaml:"description"`
	Costs       []domain.UpgradeCost `json:"costs" yaml:"costs"`
}

// Loader reads the three catalog tables, validates them and builds a Catalog
type Loader interface {
	// Load reads tables from dir, falling back to the embedded copy for any
	// table dir does not provide. An empty dir loads the embedded catalog.
	Load(ctx context.Context, dir string) (*Catalog, error)
}

type loader struct {
	schemas validation.SchemaValidator
}

// NewLoader creates a Loader validating against the embedded schemas
func NewLoader() Loader {
	sub, err := fs.Sub(embeddedSchemas, embeddedSchemasDir)
	if err != nil {
		// The embed directive guarantees the directory exists
		panic(err)
	}
	return &loader{schemas: validation.NewSchemaValidator(sub)}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, loaded once per process
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = NewLoader().Load(context.Background(), "")
	})
	return defaultCatalog, defaultErr
}

// Load reads and validates all three tables
func (l *loader) Load(ctx context.Context, dir string) (*Catalog, error) {
	log := logger.FromContext(ctx)

	var materials MaterialsFile
	materialsSrc, err := l.readTable(dir, TableMaterials, SchemaMaterials, &materials)
	if err != nil {
		return nil, err
	}

	var armor ArmorFile
	armorSrc, err := l.readTable(dir, TableArmor, SchemaArmor, &armor)
	if err != nil {
		return nil, err
	}

	var costs CostsFile
	costsSrc, err := l.readTable(dir, TableCosts, SchemaCosts, &costs)
	if err != nil {
		return nil, err
	}

	for table, src := range map[string]string{TableMaterials: materialsSrc, TableArmor: armorSrc, TableCosts: costsSrc} {
		if src != sourceEmbedded {
			log.Info(LogMsgTableOverridden, "table", table, "path", src)
		}
	}

	c, err := New(materials.Materials, armor.Armor, costs.Costs)
	if err != nil {
		return nil, err
	}

	log.Debug(LogMsgCatalogLoaded,
		"materials", len(materials.Materials),
		"armor", len(armor.Armor),
		"costs", len(costs.Costs),
		"fingerprint", c.Fingerprint())
	return c, nil
}

// readTable decodes one table into dst and reports where it came from
func (l *loader) readTable(dir, table, schema string, dst interface{}) (string, error) {
	if dir != "" {
		for _, ext := range overrideExtensions {
			path := filepath.Join(dir, table+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return "", fmt.Errorf("failed to read catalog table %s: %w", path, err)
			}
			if err := l.decode(data, ext, schema, dst); err != nil {
				return "", fmt.Errorf("%w: %s: %w", domain.ErrInvalidCatalog, path, err)
			}
			return path, nil
		}
	}

	data, err := embeddedData.ReadFile(embeddedDataDir + "/" + table + ".json")
	if err != nil {
		return "", fmt.Errorf("failed to read embedded catalog table %s: %w", table, err)
	}
	if err := l.decode(data, ".json", schema, dst); err != nil {
		return "", fmt.Errorf("%w: embedded %s: %w", domain.ErrInvalidCatalog, table, err)
	}
	return sourceEmbedded, nil
}

func (l *loader) decode(data []byte, ext, schema string, dst interface{}) error {
	if strings.EqualFold(ext, ".json") {
		if err := l.schemas.ValidateBytes(data, schema); err != nil {
			return err
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := l.schemas.ValidateValue(doc, schema); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
