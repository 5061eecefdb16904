package stats_test

import (
	"testing"

	"github.com/dalemusser/scivishub/internal/app/stats"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(name, email, domain string, attrs ...string) models.Submission {
	return models.Submission{
		Contributor: models.Contributor{Name: name, Email: email, Institution: name + " U"},
		Dataset:     models.Dataset{Name: "d", ApplicationDomain: domain, AttributeType: attrs},
	}
}

func TestCompute_Empty(t *testing.T) {
	st := stats.Compute(nil)

	assert.Equal(t, 0, st.TotalDatasets)
	assert.Equal(t, 0, st.TotalContributors)
	assert.Equal(t, 0, st.TotalTasks)
	assert.Len(t, st.ApplicationDomains, len(models.ApplicationDomains))
	assert.Len(t, st.AttributeTypes, len(models.AttributeTypes))
	assert.Empty(t, st.DomainBuckets())
}

func TestCompute_Buckets(t *testing.T) {
	subs := []models.Submission{
		sub("Jane", "jane@x.edu", "medical", "scalar-fields"),
		sub("John", "john@lab.gov", "simulation", "vector-fields", "multivariate"),
		sub("Ann", "ann@x.org", "underwater-basket-weaving", "scalar-fields", "made-up"),
		sub("Bo", "bo@x.org", "", "tensor-fields"),
		sub("Oth", "oth@x.org", models.OtherValue, models.OtherValue),
	}

	st := stats.Compute(subs)

	assert.Equal(t, 5, st.TotalDatasets)
	assert.Equal(t, 5, st.TotalTasks)
	assert.Equal(t, 5, st.TotalContributors)

	assert.Equal(t, 1, st.ApplicationDomains["medical"])
	assert.Equal(t, 1, st.ApplicationDomains["simulation"])
	assert.Equal(t, 1, st.ApplicationDomains[models.OtherValue])
	assert.NotContains(t, st.ApplicationDomains, "underwater-basket-weaving")
	assert.NotContains(t, st.ApplicationDomains, "")

	assert.Equal(t, 2, st.AttributeTypes["scalar-fields"])
	assert.Equal(t, 1, st.AttributeTypes["vector-fields"])
	assert.Equal(t, 1, st.AttributeTypes["multivariate"])
	assert.Equal(t, 1, st.AttributeTypes["tensor-fields"])
	assert.NotContains(t, st.AttributeTypes, "made-up")

	sumDomains := 0
	for _, n := range st.ApplicationDomains {
		sumDomains += n
	}
	assert.Equal(t, 3, sumDomains, "unknown and empty domains are excluded from buckets")

	buckets := st.DomainBuckets()
	require.Len(t, buckets, 3)
	assert.Equal(t, stats.Bucket{Value: "simulation", Label: "Simulation", Count: 1}, buckets[0])
	assert.Equal(t, "Medical", buckets[1].Label)
	assert.Equal(t, "Other", buckets[2].Label)

	attrs := st.AttributeBuckets()
	require.NotEmpty(t, attrs)
	assert.Equal(t, "Scalar Fields", attrs[0].Label)
	assert.Equal(t, 2, attrs[0].Count)
}

func TestCompute_EmailIsExactKey(t *testing.T) {
	subs := []models.Submission{
		sub("Jane", "jane@x.edu", "medical", "scalar-fields"),
		sub("Jane", "Jane@x.edu", "medical", "scalar-fields"),
		sub("Jane", " jane@x.edu", "medical", "scalar-fields"),
	}
	assert.Equal(t, 3, stats.Compute(subs).TotalContributors)
}

func TestCompute_IdempotentAndOrderIndependent(t *testing.T) {
	subs := []models.Submission{
		sub("A", "a@x", "medical", "scalar-fields"),
		sub("B", "b@x", "climate", "vector-fields", "scalar-fields"),
		sub("A", "a@x", "molecular", "tensor-fields"),
	}
	first := stats.Compute(subs)
	second := stats.Compute(subs)
	assert.Equal(t, first, second)

	reversed := []models.Submission{subs[2], subs[1], subs[0]}
	assert.Equal(t, first, stats.Compute(reversed))
}

func TestCompute_SameEmailTwoDomains(t *testing.T) {
	subs := []models.Submission{
		sub("Jane", "jane@x.edu", "medical", "scalar-fields"),
		sub("Jane", "jane@x.edu", "climate", "vector-fields"),
	}

	st := stats.Compute(subs)
	assert.Equal(t, 1, st.TotalContributors)
	assert.Equal(t, 2, st.TotalDatasets)

	rows := stats.ContributorTable(subs)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Contributions)
	assert.Equal(t, 100, rows[0].Percent)
	require.Len(t, rows[0].Subjects, 2)
	assert.Equal(t, "Medical (1) 50%, Climate (1) 50%", rows[0].Breakdown)
}

func TestContributorTable_SortAndTies(t *testing.T) {
	subs := []models.Submission{
		sub("First", "first@x", "medical", "scalar-fields"),
		sub("Second", "second@x", "sem", "scalar-fields"),
		sub("Third", "third@x", "simulation", "scalar-fields"),
		sub("Second", "second@x", "sem", "scalar-fields"),
		sub("Second", "second@x", "ct-objects", "scalar-fields"),
		sub("Third", "third@x", "novel-domain", "scalar-fields"),
	}

	rows := stats.ContributorTable(subs)
	require.Len(t, rows, 3)

	assert.Equal(t, "Second", rows[0].Name)
	assert.Equal(t, 3, rows[0].Contributions)
	assert.Equal(t, 50, rows[0].Percent)
	assert.Equal(t, "SEM (2) 33%, CT Objects (1) 17%", rows[0].Breakdown)

	assert.Equal(t, "Third", rows[1].Name)
	assert.Equal(t, 33, rows[1].Percent)
	assert.Equal(t, "Simulation (1) 17%, novel-domain (1) 17%", rows[1].Breakdown)

	assert.Equal(t, "First", rows[2].Name)
	assert.Equal(t, "First U", rows[2].Institution)
	assert.Equal(t, 17, rows[2].Percent)
}

func TestContributorTable_StableTies(t *testing.T) {
	subs := []models.Submission{
		sub("Zed", "z@x", "medical", "scalar-fields"),
		sub("Amy", "a@x", "medical", "scalar-fields"),
		sub("Mid", "m@x", "medical", "scalar-fields"),
	}
	rows := stats.ContributorTable(subs)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Zed", "Amy", "Mid"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	for _, r := range rows {
		assert.Equal(t, 33, r.Percent)
	}
}

func TestContributorTable_RoundsHalfUp(t *testing.T) {
	// 1 of 8 is 12.5%, which rounds to 13.
	subs := []models.Submission{sub("One", "one@x", "medical", "scalar-fields")}
	for i := 0; i < 7; i++ {
		subs = append(subs, sub("Many", "many@x", "climate", "scalar-fields"))
	}
	rows := stats.ContributorTable(subs)
	require.Len(t, rows, 2)
	assert.Equal(t, "Many", rows[0].Name)
	assert.Equal(t, 88, rows[0].Percent)
	assert.Equal(t, 13, rows[1].Percent)
	assert.Equal(t, "Medical (1) 13%", rows[1].Breakdown)
}

func TestContributorTable_Empty(t *testing.T) {
	assert.Empty(t, stats.ContributorTable(nil))
}
