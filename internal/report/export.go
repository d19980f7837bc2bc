package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/logging"
)

// ErrUnsupportedExport is returned for export paths that are neither .csv
// nor .xlsx.
var ErrUnsupportedExport = errors.New("export path must end in .csv or .xlsx")

// ExportFile writes rep to path as CSV or XLSX depending on the extension.
// The Fleet totals and cloud figures are only present in XLSX exports.
func ExportFile(ctx context.Context, path string, rep *engine.Report, cloud *engine.CloudCarbon) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return fmt.Errorf("%w: %s", ErrUnsupportedExport, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}

	if ext == ".csv" {
		err = WriteCSV(f, rep.Rows)
	} else {
		err = WriteXLSX(f, rep, cloud)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("exporting %s: %w", filepath.Base(path), err)
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "report").
		Str("path", path).
		Int("rows", len(rep.Rows)).
		Msg("results exported")
	return nil
}
