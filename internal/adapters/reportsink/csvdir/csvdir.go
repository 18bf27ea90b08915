// Package csvdir writes report artifacts as CSV files in a local directory.
package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/reports"
)

type Sink struct {
	dir string
	now func() time.Time
}

func New(dir string) *Sink {
	return &Sink{
		dir: dir,
		now: time.Now,
	}
}

// Write persists r as <name>_<UTC timestamp>.csv and returns the path. The
// file is created with O_EXCL: an artifact, once written, is never reopened
// or overwritten by a later generation.
func (s *Sink) Write(ctx context.Context, r reports.Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	stamp := s.now().UTC().Format("20060102_150405")
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", r.Name, stamp))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(r.Columns); err != nil {
		return "", err
	}
	for _, row := range r.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	if len(r.Summary) > 0 {
		// Blank separator line, then the key/value summary block.
		if err := w.Write([]string{}); err != nil {
			return "", err
		}
		for _, row := range r.Summary {
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
