package catalog

import (
	"fmt"

	"github.com/dalemusser/scivishub/internal/domain/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Catalog is the loaded test-case catalog. It is read-only once built and
// safe to share between requests.
type Catalog struct {
	// All holds every row in manifest order, Operation-only rows included.
	All []models.TestCase
	// Cases is the browsable subset: rows whose difficulty includes Task
	// or Workflow.
	Cases []models.TestCase
	// Categories lists source categories in manifest order.
	Categories []string
}

// New builds a Catalog from rows already parsed.
func New(all []models.TestCase, categories []string) *Catalog {
	cases := make([]models.TestCase, 0, len(all))
	for i := range all {
		if all[i].IsCase() {
			cases = append(cases, all[i])
		}
	}
	return &Catalog{All: all, Cases: cases, Categories: categories}
}

// Load reads the manifest and every source it lists. A source that cannot
// be opened or parsed fails the load; unreadable rows are logged and
// skipped.
func Load(fsys afero.Fs, manifestPath string, log *zap.Logger) (*Catalog, error) {
	m, err := LoadManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	var all []models.TestCase
	categories := make([]string, 0, len(m.Sources))
	for _, src := range m.Sources {
		f, err := fsys.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog: open %s: %w", src.Path, err)
		}
		rows, rowErrs, err := ParseCSV(f, src.Category)
		f.Close()
		if err != nil {
			return nil, err
		}
		for _, re := range rowErrs {
			log.Warn("catalog row skipped",
				zap.String("category", src.Category),
				zap.Int("line", re.Line),
				zap.String("reason", re.Reason))
		}
		all = append(all, rows...)
		categories = append(categories, src.Category)
	}

	cat := New(all, categories)
	log.Info("catalog loaded",
		zap.Int("sources", len(categories)),
		zap.Int("rows", len(cat.All)),
		zap.Int("cases", len(cat.Cases)))
	return cat, nil
}
