package catalog_test

import (
	"testing"

	"github.com/dalemusser/scivishub/internal/app/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	r := catalog.Analyze(loadCatalog(t))

	assert.Equal(t, 5, r.TotalRows)
	assert.Equal(t, 4, r.TotalCases)
	assert.Equal(t, 1, r.Levels["Operation"])
	assert.Equal(t, 3, r.Levels["Task"], "multi-level rows count toward each level")
	assert.Equal(t, 2, r.Levels["Workflow"])
	assert.Equal(t, 4+3, r.ActionSums["Task"])
	assert.Equal(t, 7, r.ActionSums["Workflow"])
	assert.Equal(t, 14, r.TotalActions())

	require.Len(t, r.Files, 2)
	assert.Equal(t, "main", r.Files[0].Category)
	assert.Equal(t, 4, r.Files[0].Rows)
	assert.Equal(t, 3, r.Files[0].Cases)
	assert.Equal(t, 1, r.Files[1].Cases)

	require.NotEmpty(t, r.VisOps)
	assert.Equal(t, catalog.Count{Name: "Color Mapping", Count: 4}, r.VisOps[0])
	// Ties break by name.
	assert.Equal(t, catalog.Count{Name: "Volume Rendering", Count: 2}, r.VisOps[1])
	assert.Equal(t, catalog.Count{Name: "Clipping", Count: 1}, r.VisOps[2])

	assert.Equal(t, catalog.Count{Name: "Biology", Count: 2}, r.Applications[0])
	assert.Contains(t, r.ApplicationCombos, catalog.Count{Name: "Chemistry;Biology", Count: 1})
	assert.Contains(t, r.DataCombos, catalog.Count{Name: "Scalar Fields;Vector Fields", Count: 1})
	assert.Equal(t, catalog.Count{Name: "Color Mapping", Count: 3}, r.VisOpsByLevel["Task"][0])
}

func TestReport_Markdown(t *testing.T) {
	r := catalog.Analyze(loadCatalog(t))
	md := r.Markdown()

	assert.Contains(t, md, "# SciVisAgentBench - Comprehensive Statistics Report")
	assert.Contains(t, md, "- **Total Cases**: **4** (Tasks + Workflows)")
	assert.Contains(t, md, "| main | 1 | 2 | 2 | **3** |")
	assert.Contains(t, md, "| 1 | Color Mapping | 4 |")
	assert.Contains(t, md, "| main | 3 | 75.0% |")
	assert.Contains(t, md, "| molecular_vis | 1 | 25.0% |")
}

func TestAnalyze_EmptyCatalog(t *testing.T) {
	r := catalog.Analyze(catalog.New(nil, nil))
	assert.Equal(t, 0, r.TotalCases)
	assert.Contains(t, r.Markdown(), "**Total Cases**: **0**")
}
