package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Levels in report order.
var levels = []string{models.LevelOperation, models.LevelTask, models.LevelWorkflow}

// FileStats summarizes one catalog source.
type FileStats struct {
	Category   string         `json:"category"`
	Rows       int            `json:"rows"`
	Levels     map[string]int `json:"levels"`
	ActionSums map[string]int `json:"actionSums"`
	Cases      int            `json:"cases"`
}

// Count is one tag and how many cases carry it.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report is the catalog statistics summary. Tag statistics cover cases
// (Task and Workflow rows) only.
type Report struct {
	Files      []FileStats    `json:"files"`
	TotalRows  int            `json:"totalRows"`
	Levels     map[string]int `json:"levels"`
	ActionSums map[string]int `json:"actionSums"`
	TotalCases int            `json:"totalCases"`

	Applications      []Count            `json:"applications"`
	ApplicationCombos []Count            `json:"applicationCombos"`
	DataTypes         []Count            `json:"dataTypes"`
	DataCombos        []Count            `json:"dataCombos"`
	VisOps            []Count            `json:"visOps"`
	VisOpsByLevel     map[string][]Count `json:"visOpsByLevel"`
}

// TotalActions is the Action Count sum over Task and Workflow rows.
func (r *Report) TotalActions() int {
	return r.ActionSums[models.LevelTask] + r.ActionSums[models.LevelWorkflow]
}

func levelMap() map[string]int {
	m := make(map[string]int, len(levels))
	for _, l := range levels {
		m[l] = 0
	}
	return m
}

// Analyze builds the report for cat. A row counts once toward each level
// it lists.
func Analyze(cat *Catalog) Report {
	r := Report{
		TotalRows:     len(cat.All),
		Levels:        levelMap(),
		ActionSums:    levelMap(),
		VisOpsByLevel: map[string][]Count{},
	}

	index := map[string]int{}
	fileFor := func(category string) *FileStats {
		i, ok := index[category]
		if !ok {
			i = len(r.Files)
			index[category] = i
			r.Files = append(r.Files, FileStats{Category: category, Levels: levelMap(), ActionSums: levelMap()})
		}
		return &r.Files[i]
	}
	for _, c := range cat.Categories {
		fileFor(c)
	}

	apps, appCombos := counter{}, counter{}
	data, dataCombos := counter{}, counter{}
	ops := counter{}
	opsByLevel := map[string]counter{models.LevelTask: {}, models.LevelWorkflow: {}}

	for i := range cat.All {
		tc := &cat.All[i]
		fs := fileFor(tc.Category)
		fs.Rows++

		for _, lvl := range tc.TaskDifficulty {
			if _, ok := fs.Levels[lvl]; !ok {
				continue
			}
			fs.Levels[lvl]++
			r.Levels[lvl]++
			if tc.HasOperationCount {
				fs.ActionSums[lvl] += tc.OperationCount
				r.ActionSums[lvl] += tc.OperationCount
			}
		}

		if !tc.IsCase() {
			continue
		}
		fs.Cases++
		r.TotalCases++

		apps.addAll(tc.Application)
		data.addAll(tc.DataTypes)
		ops.addAll(tc.VisualizationOps)
		if combo := strings.Join(tc.Application, ";"); combo != "" {
			appCombos.add(combo)
		}
		if tc.Data != "" {
			dataCombos.add(tc.Data)
		}
		for _, lvl := range tc.TaskDifficulty {
			if c, ok := opsByLevel[lvl]; ok {
				c.addAll(tc.VisualizationOps)
			}
		}
	}

	r.Applications = apps.sorted()
	r.ApplicationCombos = appCombos.sorted()
	r.DataTypes = data.sorted()
	r.DataCombos = dataCombos.sorted()
	r.VisOps = ops.sorted()
	for lvl, c := range opsByLevel {
		r.VisOpsByLevel[lvl] = c.sorted()
	}
	return r
}

type counter map[string]int

func (c counter) add(k string) { c[k]++ }

func (c counter) addAll(ks []string) {
	for _, k := range ks {
		c[k]++
	}
}

// sorted orders by count descending, then name ascending.
func (c counter) sorted() []Count {
	out := make([]Count, 0, len(c))
	for k, n := range c {
		out = append(out, Count{Name: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func total(cs []Count) int {
	n := 0
	for _, c := range cs {
		n += c.Count
	}
	return n
}

func top(cs []Count, n int) []Count {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	w := func(format string, args ...interface{}) { fmt.Fprintf(&b, format, args...) }

	w("# SciVisAgentBench - Comprehensive Statistics Report\n\n")
	w("*Generated from %d CSV files in the benchmark*\n\n---\n\n", len(r.Files))

	w("## 1. Total Cases Count\n\n")
	w("**Important**: Cases = Tasks + Workflows only (Operation-level entries are NOT counted as cases)\n\n")
	w("### Overall Summary\n\n")
	w("- **Total Operation-level entries**: %d (NOT counted as cases)\n", r.Levels[models.LevelOperation])
	w("- **Total Tasks**: %d\n", r.Levels[models.LevelTask])
	w("- **Total Workflows**: %d\n", r.Levels[models.LevelWorkflow])
	w("- **Total Cases**: **%d** (Tasks + Workflows)\n", r.TotalCases)
	w("- **Total Actions**: **%d** (sum of Action Count column)\n\n", r.TotalActions())

	w("### Breakdown by File\n\n")
	w("| File | Operation Entries | Tasks | Workflows | Cases (Task+Workflow) |\n")
	w("|------|-------------------|-------|-----------|----------------------|\n")
	for _, f := range r.Files {
		w("| %s | %d | %d | %d | **%d** |\n", f.Category,
			f.Levels[models.LevelOperation], f.Levels[models.LevelTask], f.Levels[models.LevelWorkflow], f.Cases)
	}
	w("| **TOTAL** | **%d** | **%d** | **%d** | **%d** |\n\n",
		r.Levels[models.LevelOperation], r.Levels[models.LevelTask], r.Levels[models.LevelWorkflow], r.TotalCases)

	tagSection := func(num int, title, singular string, tags, combos []Count) {
		w("## %d. %s Statistics\n\n", num, title)
		w("**Note**: These statistics include ONLY cases (Tasks + Workflows). Operation-level entries are excluded.\n\n")
		w("### Individual %s Counts\n\n", singular)
		w("| %s | Count |\n|---|---|\n", singular)
		for _, c := range tags {
			w("| %s | %d |\n", c.Name, c.Count)
		}
		w("\n**Total individual %s tags**: %d\n\n", strings.ToLower(singular), total(tags))
		w("### %s Combinations\n\n", singular)
		w("| %s Combination | Count |\n|---|---|\n", singular)
		for _, c := range combos {
			w("| %s | %d |\n", c.Name, c.Count)
		}
		w("\n")
	}
	tagSection(2, "Application Domain", "Application", r.Applications, r.ApplicationCombos)
	tagSection(3, "Data Type", "Data Type", r.DataTypes, r.DataCombos)

	w("## 4. Task Level 1: Complexity Level Statistics\n\n")
	w("| Complexity Level | Entry Count | Action Count | Counted as Case? |\n")
	w("|------------------|-------------|--------------|------------------|\n")
	w("| Operation | %d | N/A | NO |\n", r.Levels[models.LevelOperation])
	w("| Task | %d | %d | YES |\n", r.Levels[models.LevelTask], r.ActionSums[models.LevelTask])
	w("| Workflow | %d | %d | YES |\n", r.Levels[models.LevelWorkflow], r.ActionSums[models.LevelWorkflow])
	w("| **Total Cases** | **%d** | **%d** | **(Tasks + Workflows)** |\n\n", r.TotalCases, r.TotalActions())

	w("## 5. Task Level 2: Visualization Operations Statistics\n\n")
	w("### All Visualization Operations (Sorted by Frequency)\n\n")
	w("| Rank | Visualization Operation | Total Count |\n|---|---|---|\n")
	for i, c := range r.VisOps {
		w("| %d | %s | %d |\n", i+1, c.Name, c.Count)
	}
	w("\n**Total visualization operation tags**: %d\n\n", total(r.VisOps))

	w("### Top 10 Most Common Visualization Operations\n\n")
	w("| Rank | Operation | Count |\n|---|---|---|\n")
	for i, c := range top(r.VisOps, 10) {
		w("| %d | %s | %d |\n", i+1, c.Name, c.Count)
	}
	w("\n### Visualization Operations by Complexity Level (Cases Only)\n")
	for _, lvl := range []string{models.LevelTask, models.LevelWorkflow} {
		w("\n#### %s Level (Top 10)\n\n", lvl)
		w("| Rank | Operation | Count |\n|---|---|---|\n")
		for i, c := range top(r.VisOpsByLevel[lvl], 10) {
			w("| %d | %s | %d |\n", i+1, c.Name, c.Count)
		}
	}

	names := make([]string, 0, len(r.VisOps))
	counts := map[string]int{}
	for _, c := range r.VisOps {
		names = append(names, c.Name)
		counts[c.Name] = c.Count
	}
	sort.Strings(names)
	w("\n### Complete Taxonomy of %d Operation Categories\n\n", len(names))
	for i, n := range names {
		w("%d. **%s** (%d occurrences)\n", i+1, n, counts[n])
	}

	w("\n## 6. Summary Statistics\n\n")
	w("- **Total number of CSV files analyzed**: %d\n", len(r.Files))
	w("- **Total rows in all files**: %d\n", r.TotalRows)
	w("- **Total Cases (Tasks + Workflows)**: **%d**\n", r.TotalCases)
	w("- **Unique application domains**: %d\n", len(r.Applications))
	w("- **Unique data types**: %d\n", len(r.DataTypes))
	w("- **Unique visualization operations**: %d\n\n", len(r.VisOps))

	w("### File Contributions\n\n")
	w("| File | Cases Contributed | Percentage |\n|---|---|---|\n")
	contrib := append([]FileStats(nil), r.Files...)
	sort.SliceStable(contrib, func(i, j int) bool { return contrib[i].Cases > contrib[j].Cases })
	for _, f := range contrib {
		pct := 0.0
		if r.TotalCases > 0 {
			pct = float64(f.Cases) / float64(r.TotalCases) * 100
		}
		w("| %s | %d | %.1f%% |\n", f.Category, f.Cases, pct)
	}
	return b.String()
}
