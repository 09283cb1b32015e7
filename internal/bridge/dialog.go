package bridge

import (
	"context"
	"os"
	"path/filepath"
)

// FileFilter restricts which files a dialog offers
type FileFilter struct {
	Name       string
	Extensions []string
}

// DialogOptions describes a file dialog request
type DialogOptions struct {
	Title       string
	DefaultPath string
	Filters     []FileFilter
}

// FileDialog asks the user for a file path.
// An empty path with a nil error means the user canceled.
type FileDialog interface {
	SaveFile(ctx context.Context, opts DialogOptions) (string, error)
	OpenFile(ctx context.Context, opts DialogOptions) (string, error)
}

// jsonFilters is the filter set used by both state dialogs
var jsonFilters = []FileFilter{{Name: FilterNameJSON, Extensions: []string{ExtensionJSON}}}

// StaticDialog answers every dialog with a path chosen up front, such as one
// taken from an HTTP request body or a CLI argument. An empty Path cancels.
type StaticDialog struct {
	Path string
}

// NewStaticDialog returns a dialog that always answers path
func NewStaticDialog(path string) StaticDialog {
	return StaticDialog{Path: path}
}

// SaveFile returns the configured path. When it names an existing
// directory the dialog's default file name is appended.
func (d StaticDialog) SaveFile(ctx context.Context, opts DialogOptions) (string, error) {
	if d.Path == "" {
		return "", nil
	}
	info, err := os.Stat(d.Path)
	if err == nil && info.IsDir() {
		name := filepath.Base(opts.DefaultPath)
		if opts.DefaultPath == "" {
			name = DefaultFileName
		}
		return filepath.Join(d.Path, name), nil
	}
	return d.Path, nil
}

// OpenFile returns the configured path unchanged
func (d StaticDialog) OpenFile(ctx context.Context, opts DialogOptions) (string, error) {
	return d.Path, nil
}
