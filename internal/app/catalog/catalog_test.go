package catalog_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/scivishub/internal/app/catalog"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const mainCSV = "\ufeffCase Name,Application,Data,Task Level 1: Complexity Level,Task Level 2: Visualization Operations,Action Count\n" +
	"vortex,Fluid Dynamics,Scalar Fields;Vector Fields,Task,Color Mapping;Volume Rendering;Clipping,4\n" +
	"\"brain, sliced\",Medical Imaging,Scalar Fields,Workflow,\"Slicing; Color Mapping\",7\n" +
	"iso only,Physics,Scalar Fields,Operation,Isosurface,1\n" +
	",Physics,Scalar Fields,Task,Clipping,2\n" +
	"bonds,Chemistry;Biology,Molecular Structure,Task;Workflow,Volume Rendering;Color Mapping,N/A\n"

const molCSV = "Case Name,Application,Data,Task Level 1: Complexity Level,Task Level 2: Visualization Operations,Action Count\n" +
	"protein,Biology,Molecular Structure,Task,Color Mapping,3\n"

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	manifest := "sources:\n" +
		"  - category: main\n" +
		"    path: sheets/main.csv\n" +
		"  - path: sheets/molecular_vis.csv\n"
	require.NoError(t, afero.WriteFile(fs, "/cat/manifest.yaml", []byte(manifest), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cat/sheets/main.csv", []byte(mainCSV), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cat/sheets/molecular_vis.csv", []byte(molCSV), 0o644))
	return fs
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(newFs(t), "/cat/manifest.yaml", zap.NewNop())
	require.NoError(t, err)
	return cat
}

func names(cases []models.TestCase) []string {
	out := make([]string, 0, len(cases))
	for _, c := range cases {
		out = append(out, c.CaseName)
	}
	return out
}

func TestLoadManifest(t *testing.T) {
	m, err := catalog.LoadManifest(newFs(t), "/cat/manifest.yaml")
	require.NoError(t, err)
	require.Len(t, m.Sources, 2)

	assert.Equal(t, "main", m.Sources[0].Category)
	assert.Equal(t, "/cat/sheets/main.csv", m.Sources[0].Path)
	assert.Equal(t, "molecular_vis", m.Sources[1].Category, "category derived from file name")
}

func TestLoadManifest_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.yaml", []byte("sources: []\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/dup.yaml", []byte("sources:\n  - {category: a, path: x.csv}\n  - {category: a, path: y.csv}\n"), 0o644))

	_, err := catalog.LoadManifest(fs, "/empty.yaml")
	assert.ErrorIs(t, err, catalog.ErrEmptyManifest)

	_, err = catalog.LoadManifest(fs, "/dup.yaml")
	assert.ErrorContains(t, err, "duplicate category")

	_, err = catalog.LoadManifest(fs, "/missing.yaml")
	assert.Error(t, err)
}

func TestParseCSV_Header(t *testing.T) {
	rows, rowErrs, err := catalog.ParseCSV(strings.NewReader(mainCSV), "main")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)

	// The blank-name row is dropped.
	assert.Equal(t, []string{"vortex", "brain, sliced", "iso only", "bonds"}, names(rows))

	vortex := rows[0]
	assert.Equal(t, "main", vortex.Category)
	assert.Equal(t, []string{"Fluid Dynamics"}, vortex.Application)
	assert.Equal(t, "Scalar Fields;Vector Fields", vortex.Data)
	assert.Equal(t, []string{"Scalar Fields", "Vector Fields"}, vortex.DataTypes)
	assert.Equal(t, []string{"Color Mapping", "Volume Rendering", "Clipping"}, vortex.VisualizationOps)
	assert.True(t, vortex.HasOperationCount)
	assert.Equal(t, 4, vortex.OperationCount)

	assert.Equal(t, []string{"Slicing", "Color Mapping"}, rows[1].VisualizationOps)

	bonds := rows[3]
	assert.Equal(t, []string{"Task", "Workflow"}, bonds.TaskDifficulty)
	assert.False(t, bonds.HasOperationCount)
}

func TestParseCSV_ReorderedHeader(t *testing.T) {
	in := "Application,Case Name,Complexity Level,Data\n" +
		"Physics,swirl,Task,Vector Fields\n"
	rows, _, err := catalog.ParseCSV(strings.NewReader(in), "x")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "swirl", rows[0].CaseName)
	assert.Equal(t, []string{"Physics"}, rows[0].Application)
	assert.Equal(t, []string{"Task"}, rows[0].TaskDifficulty)
	assert.Empty(t, rows[0].VisualizationOps)
}

func TestParseCSV_NoHeader(t *testing.T) {
	in := "swirl,Physics,Vector Fields,Task,Streamlines,2\n"
	rows, _, err := catalog.ParseCSV(strings.NewReader(in), "x")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "swirl", rows[0].CaseName)
	assert.Equal(t, []string{"Streamlines"}, rows[0].VisualizationOps)
	assert.Equal(t, 2, rows[0].OperationCount)
}

func TestParseCSV_HeaderWithoutCaseName(t *testing.T) {
	_, _, err := catalog.ParseCSV(strings.NewReader("Application,Data\nPhysics,x\n"), "x")
	assert.Error(t, err)
}

func TestParseCSV_Empty(t *testing.T) {
	rows, rowErrs, err := catalog.ParseCSV(strings.NewReader(""), "x")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, rowErrs)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, catalog.SplitTags(" a ; ;b c;"))
	assert.Equal(t, []string{}, catalog.SplitTags(""))
}

func TestLoad(t *testing.T) {
	cat := loadCatalog(t)

	assert.Equal(t, []string{"main", "molecular_vis"}, cat.Categories)
	assert.Len(t, cat.All, 5)
	assert.Equal(t, []string{"vortex", "brain, sliced", "bonds", "protein"}, names(cat.Cases))
}

func TestFilter_EmptyCriteriaReturnsAll(t *testing.T) {
	cat := loadCatalog(t)
	assert.Equal(t, cat.Cases, catalog.Filter(cat.Cases, catalog.Criteria{}))
}

func TestFilter_SupersetMatch(t *testing.T) {
	cat := loadCatalog(t)

	got := catalog.Filter(cat.Cases, catalog.Criteria{
		Difficulties: []string{"Task"},
		Operations:   []string{"Color Mapping", "Volume Rendering"},
	})
	assert.Equal(t, []string{"vortex", "bonds"}, names(got))

	got = catalog.Filter(cat.Cases, catalog.Criteria{Domains: []string{"Chemistry", "Biology"}})
	assert.Equal(t, []string{"bonds"}, names(got))

	got = catalog.Filter(cat.Cases, catalog.Criteria{DataTypes: []string{"Scalar Fields"}})
	assert.Equal(t, []string{"vortex", "brain, sliced"}, names(got))

	got = catalog.Filter(cat.Cases, catalog.Criteria{Operations: []string{"Isosurface"}})
	assert.Empty(t, got, "operation-only rows are not browsable")
}

func TestFilter_AddingCriteriaNeverGrowsResult(t *testing.T) {
	cat := loadCatalog(t)

	c := catalog.Criteria{Operations: []string{"Color Mapping"}}
	wide := catalog.Filter(cat.Cases, c)
	c.Difficulties = []string{"Workflow"}
	narrow := catalog.Filter(cat.Cases, c)

	assert.LessOrEqual(t, len(narrow), len(wide))
	for _, n := range names(narrow) {
		assert.Contains(t, names(wide), n)
	}
}

func TestBrowse(t *testing.T) {
	cat := loadCatalog(t)
	b := catalog.NewBrowse(cat, catalog.Criteria{})
	assert.Len(t, b.Results(), 4)

	b.Set(catalog.Criteria{Difficulties: []string{"Workflow"}})
	assert.Equal(t, []string{"brain, sliced", "bonds"}, names(b.Results()))
	assert.Equal(t, []string{"Workflow"}, b.Criteria().Difficulties)

	b.Clear()
	assert.True(t, b.Criteria().IsEmpty())
	assert.Len(t, b.Results(), 4)
}

func TestBrowse_Options(t *testing.T) {
	opts := catalog.NewBrowse(loadCatalog(t), catalog.Criteria{}).Options()

	assert.Equal(t, []string{"Biology", "Chemistry", "Fluid Dynamics", "Medical Imaging"}, opts.Domains)
	assert.Equal(t, []string{"Task", "Workflow"}, opts.Difficulties)
	assert.Equal(t, []string{"Clipping", "Color Mapping", "Slicing", "Volume Rendering"}, opts.Operations)
	assert.Equal(t, []string{"Molecular Structure", "Scalar Fields", "Vector Fields"}, opts.DataTypes)
}
