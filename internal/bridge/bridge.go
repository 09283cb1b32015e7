// Package bridge is the request/response surface a UI talks to. It forwards
// state operations to the tracker and adds file export and import through a
// FileDialog.
package bridge

import (
	"context"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
	"github.com/koscheiundead/totkaa-v2/internal/state"
	"github.com/koscheiundead/totkaa-v2/internal/tracker"
	"github.com/koscheiundead/totkaa-v2/internal/utils"
)

// ExportResult reports where the state was written
type ExportResult struct {
	Canceled bool   `json:"canceled"`
	FilePath string `json:"filePath,omitempty"`
}

// ImportResult reports which file was read and the state it produced
type ImportResult struct {
	Canceled bool               `json:"canceled"`
	FilePath string             `json:"filePath,omitempty"`
	State    *domain.OwnedState `json:"state,omitempty"`
}

// Bridge defines the operations exposed to a UI
type Bridge interface {
	Ping(ctx context.Context) string
	GetState(ctx context.Context) (domain.OwnedState, error)

	// SetState merges patch into the stored state. Patch rupees are a delta
	// added to the balance, unlike SetRupees which replaces it.
	SetState(ctx context.Context, patch state.Patch) (domain.OwnedState, error)
	SetRupees(ctx context.Context, amount int) (domain.OwnedState, error)
	ResetToDefaults(ctx context.Context) (domain.OwnedState, error)

	ExportState(ctx context.Context) ([]byte, error)
	ImportState(ctx context.Context, data []byte) (domain.OwnedState, error)
	ExportToFile(ctx context.Context, dialog FileDialog) (ExportResult, error)
	ImportFromFile(ctx context.Context, dialog FileDialog) (ImportResult, error)

	Shortfall(ctx context.Context, targets shortfall.Targets) (domain.Shortfall, error)
	ShortfallToMax(ctx context.Context) (domain.Shortfall, error)
	Catalog(ctx context.Context) catalog.Snapshot
}

type bridge struct {
	tracker tracker.Service
}

// New creates a Bridge over svc
func New(svc tracker.Service) Bridge {
	return &bridge{tracker: svc}
}

func (b *bridge) Ping(ctx context.Context) string {
	return PingResponse
}

func (b *bridge) GetState(ctx context.Context) (domain.OwnedState, error) {
	return b.tracker.GetState(ctx)
}

func (b *bridge) SetState(ctx context.Context, patch state.Patch) (domain.OwnedState, error) {
	return b.tracker.SetState(ctx, patch)
}

func (b *bridge) SetRupees(ctx context.Context, amount int) (domain.OwnedState, error) {
	return b.tracker.SetRupees(ctx, amount)
}

func (b *bridge) ResetToDefaults(ctx context.Context) (domain.OwnedState, error) {
	return b.tracker.ResetToDefaults(ctx)
}

func (b *bridge) ExportState(ctx context.Context) ([]byte, error) {
	return b.tracker.ExportState(ctx)
}

func (b *bridge) ImportState(ctx context.Context, data []byte) (domain.OwnedState, error) {
	return b.tracker.ImportState(ctx, data)
}

// ExportToFile asks dialog for a destination and writes the pretty-printed
// state there atomically
func (b *bridge) ExportToFile(ctx context.Context, dialog FileDialog) (ExportResult, error) {
	log := logger.FromContext(ctx)

	path, err := dialog.SaveFile(ctx, DialogOptions{
		Title:       DialogTitleExport,
		DefaultPath: DefaultFileName,
		Filters:     jsonFilters,
	})
	if err != nil {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionExport, metrics.ResultFailed).Inc()
		return ExportResult{}, err
	}
	if path == "" {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionExport, metrics.ResultCanceled).Inc()
		log.Debug(LogMsgExportCanceled)
		return ExportResult{Canceled: true}, nil
	}

	data, err := b.tracker.ExportState(ctx)
	if err == nil {
		err = utils.WriteFileAtomic(path, data, exportFileMode)
	}
	if err != nil {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionExport, metrics.ResultFailed).Inc()
		return ExportResult{}, err
	}

	metrics.FileTransfers.WithLabelValues(metrics.DirectionExport, metrics.ResultSuccess).Inc()
	log.Info(LogMsgExported, "path", path, "bytes", len(data))
	return ExportResult{FilePath: path}, nil
}

// ImportFromFile asks dialog for a source file and replaces the stored state
// with its content. A file that fails validation leaves the state untouched.
func (b *bridge) ImportFromFile(ctx context.Context, dialog FileDialog) (ImportResult, error) {
	log := logger.FromContext(ctx)

	path, err := dialog.OpenFile(ctx, DialogOptions{
		Title:   DialogTitleImport,
		Filters: jsonFilters,
	})
	if err != nil {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionImport, metrics.ResultFailed).Inc()
		return ImportResult{}, err
	}
	if path == "" {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionImport, metrics.ResultCanceled).Inc()
		log.Debug(LogMsgImportCanceled)
		return ImportResult{Canceled: true}, nil
	}

	data, err := utils.ReadFile(path)
	if err != nil {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionImport, metrics.ResultFailed).Inc()
		return ImportResult{}, err
	}
	next, err := b.tracker.ImportState(ctx, data)
	if err != nil {
		metrics.FileTransfers.WithLabelValues(metrics.DirectionImport, metrics.ResultFailed).Inc()
		return ImportResult{}, err
	}

	metrics.FileTransfers.WithLabelValues(metrics.DirectionImport, metrics.ResultSuccess).Inc()
	log.Info(LogMsgImported, "path", path)
	return ImportResult{FilePath: path, State: &next}, nil
}

func (b *bridge) Shortfall(ctx context.Context, targets shortfall.Targets) (domain.Shortfall, error) {
	return b.tracker.Shortfall(ctx, targets)
}

func (b *bridge) ShortfallToMax(ctx context.Context) (domain.Shortfall, error) {
	return b.tracker.ShortfallToMax(ctx)
}

func (b *bridge) Catalog(ctx context.Context) catalog.Snapshot {
	return b.tracker.Catalog().Snapshot()
}
