package catalog

import (
	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Criteria are the four independent filter sets. An empty set places no
// constraint.
type Criteria struct {
	Domains      []string `json:"domains,omitempty"`
	Difficulties []string `json:"difficulties,omitempty"`
	Operations   []string `json:"operations,omitempty"`
	DataTypes    []string `json:"dataTypes,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return len(c.Domains) == 0 && len(c.Difficulties) == 0 &&
		len(c.Operations) == 0 && len(c.DataTypes) == 0
}

// Matches reports whether tc carries every selected value in every
// category.
func (c Criteria) Matches(tc *models.TestCase) bool {
	return containsAll(tc.Application, c.Domains) &&
		containsAll(tc.TaskDifficulty, c.Difficulties) &&
		containsAll(tc.VisualizationOps, c.Operations) &&
		containsAll(tc.DataTypes, c.DataTypes)
}

// Filter returns the cases matching c, in input order. With empty criteria
// the input is returned unchanged.
func Filter(cases []models.TestCase, c Criteria) []models.TestCase {
	if c.IsEmpty() {
		return cases
	}
	out := []models.TestCase{}
	for i := range cases {
		if c.Matches(&cases[i]) {
			out = append(out, cases[i])
		}
	}
	return out
}

// containsAll reports whether have is a superset of want.
func containsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
