// Package stats recomputes dashboard aggregates from the full submission
// list. Every function is pure and recomputes from scratch.
package stats

import (
	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Stats are the dashboard totals and category breakdowns.
type Stats struct {
	TotalDatasets     int `json:"totalDatasets"`
	TotalContributors int `json:"totalContributors"`
	TotalTasks        int `json:"totalTasks"`

	// Keyed by every fixed enum value, zero counts included.
	ApplicationDomains map[string]int `json:"applicationDomains"`
	AttributeTypes     map[string]int `json:"attributeTypes"`
}

// Compute returns the aggregates for subs. Contributors are distinct by
// exact email. Domain and attribute values outside the fixed sets count
// toward the totals but not toward any bucket.
func Compute(subs []models.Submission) Stats {
	st := Stats{
		TotalDatasets:      len(subs),
		TotalTasks:         len(subs),
		ApplicationDomains: zeroBuckets(models.ApplicationDomains),
		AttributeTypes:     zeroBuckets(models.AttributeTypes),
	}

	emails := make(map[string]struct{}, len(subs))
	for i := range subs {
		s := &subs[i]
		emails[s.Contributor.Email] = struct{}{}

		if _, ok := st.ApplicationDomains[s.Dataset.ApplicationDomain]; ok {
			st.ApplicationDomains[s.Dataset.ApplicationDomain]++
		}
		for _, at := range s.Dataset.AttributeType {
			if _, ok := st.AttributeTypes[at]; ok {
				st.AttributeTypes[at]++
			}
		}
	}
	st.TotalContributors = len(emails)
	return st
}

func zeroBuckets(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}

// Bucket is one non-empty category for display.
type Bucket struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

var categoryLabels = map[string]string{
	"simulation":      "Simulation",
	"medical":         "Medical",
	"molecular":       "Molecular",
	"climate":         "Climate",
	"materials":       "Materials Science",
	"astronomy":       "Astronomy",
	"geoscience":      "Geoscience",
	"scalar-fields":   "Scalar Fields",
	"vector-fields":   "Vector Fields",
	"tensor-fields":   "Tensor Fields",
	"multivariate":    "Multi-variate/Multi-field",
	models.OtherValue: "Other",
}

// DomainBuckets lists the non-zero domain buckets in enum order.
func (st Stats) DomainBuckets() []Bucket {
	return nonZero(st.ApplicationDomains, models.ApplicationDomains)
}

// AttributeBuckets lists the non-zero attribute buckets in enum order.
func (st Stats) AttributeBuckets() []Bucket {
	return nonZero(st.AttributeTypes, models.AttributeTypes)
}

func nonZero(m map[string]int, order []string) []Bucket {
	out := []Bucket{}
	for _, k := range order {
		if n := m[k]; n > 0 {
			out = append(out, Bucket{Value: k, Label: categoryLabels[k], Count: n})
		}
	}
	return out
}
