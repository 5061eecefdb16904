package catalog

import (
	"sort"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Browse is one viewer's filter state over a shared Catalog.
type Browse struct {
	cat      *Catalog
	criteria Criteria
}

// NewBrowse starts browsing cat with the given criteria.
func NewBrowse(cat *Catalog, c Criteria) *Browse {
	return &Browse{cat: cat, criteria: c}
}

// Criteria returns the current criteria.
func (b *Browse) Criteria() Criteria { return b.criteria }

// Set replaces the current criteria.
func (b *Browse) Set(c Criteria) { b.criteria = c }

// Clear resets to the full catalog.
func (b *Browse) Clear() { b.criteria = Criteria{} }

// Results filters the browsable cases by the current criteria.
func (b *Browse) Results() []models.TestCase {
	return Filter(b.cat.Cases, b.criteria)
}

// Options lists every distinct value selectable in each category.
type Options struct {
	Domains      []string `json:"domains"`
	Difficulties []string `json:"difficulties"`
	Operations   []string `json:"operations"`
	DataTypes    []string `json:"dataTypes"`
}

// Options returns the distinct, sorted values present in the browsable
// cases.
func (b *Browse) Options() Options {
	var dom, diff, ops, dt []string
	for i := range b.cat.Cases {
		tc := &b.cat.Cases[i]
		dom = append(dom, tc.Application...)
		diff = append(diff, tc.TaskDifficulty...)
		ops = append(ops, tc.VisualizationOps...)
		dt = append(dt, tc.DataTypes...)
	}
	return Options{
		Domains:      distinct(dom),
		Difficulties: distinct(diff),
		Operations:   distinct(ops),
		DataTypes:    distinct(dt),
	}
}

func distinct(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := []string{}
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
