package sweep

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

const fileTimeLayout = "20060102_150405"

// ResultTableWriter writes ranked tables as CSV files into a folder.
type ResultTableWriter struct {
	outputDir string
	now       func() time.Time
	create    func(name string) (*os.File, error)
}

func NewResultTableWriter(outputDir string) *ResultTableWriter {
	return &ResultTableWriter{
		outputDir: outputDir,
		now:       time.Now,
		create:    os.Create,
	}
}

// FileName returns the table file name for a sweep finished at t.
func FileName(t time.Time) string {
	return strategy.StrategyName + "_" + t.Format(fileTimeLayout) + ".csv"
}

// Write stores table as <outputDir>/macd_rsi_<timestamp>.csv and returns the
// path. An empty table is not written and returns ErrCodeEmptySweep. A file
// that could not be written completely is removed.
func (w *ResultTableWriter) Write(table types.RankedResultTable) (string, error) {
	if len(table) == 0 {
		return "", errors.New(errors.ErrCodeEmptySweep, "nothing to write")
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeResultWriteError, "failed to create output folder", err)
	}

	path := filepath.Join(w.outputDir, FileName(w.now()))

	file, err := w.create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResultWriteError, "failed to create result file", err)
	}

	if err := writeTable(file, table); err != nil {
		_ = file.Close()
		_ = os.Remove(path)

		return "", err
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(path)

		return "", errors.Wrap(errors.ErrCodeResultWriteError, "failed to close result file", err)
	}

	return path, nil
}

func writeTable(out io.Writer, table types.RankedResultTable) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(table.Header()); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteError, "failed to write header", err)
	}

	// WriteAll flushes, so buffered write errors surface here
	if err := writer.WriteAll(table.Rows()); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteError, "failed to write rows", err)
	}

	return nil
}
