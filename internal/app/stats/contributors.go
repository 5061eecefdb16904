package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Subject is one domain a contributor submitted under. Percent is of the
// grand total of submissions, not of the contributor's own.
type Subject struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// ContributorRow is one line of the contributor table.
type ContributorRow struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Institution   string    `json:"institution"`
	Contributions int       `json:"contributions"`
	Percent       int       `json:"percent"`
	Subjects      []Subject `json:"subjects"`
	Breakdown     string    `json:"breakdown"`
}

type contributor struct {
	row      ContributorRow
	subjects []Subject
	index    map[string]int
}

// ContributorTable groups subs by exact email. Name and institution come
// from the contributor's first submission. Rows are sorted by contribution
// count descending; ties keep first-appearance order.
func ContributorTable(subs []models.Submission) []ContributorRow {
	total := len(subs)
	byEmail := map[string]*contributor{}
	var order []*contributor

	for i := range subs {
		s := &subs[i]
		c, ok := byEmail[s.Contributor.Email]
		if !ok {
			c = &contributor{
				row: ContributorRow{
					Name:        s.Contributor.Name,
					Email:       s.Contributor.Email,
					Institution: s.Contributor.Institution,
				},
				index: map[string]int{},
			}
			byEmail[s.Contributor.Email] = c
			order = append(order, c)
		}
		c.row.Contributions++

		if s.Dataset.ApplicationDomain == "" {
			continue
		}
		label := models.DomainLabel(s.Dataset.ApplicationDomain)
		if j, ok := c.index[label]; ok {
			c.subjects[j].Count++
		} else {
			c.index[label] = len(c.subjects)
			c.subjects = append(c.subjects, Subject{Label: label, Count: 1})
		}
	}

	rows := make([]ContributorRow, 0, len(order))
	for _, c := range order {
		row := c.row
		row.Percent = percent(row.Contributions, total)
		row.Subjects = make([]Subject, len(c.subjects))
		parts := make([]string, len(c.subjects))
		for i, sj := range c.subjects {
			sj.Percent = percent(sj.Count, total)
			row.Subjects[i] = sj
			parts[i] = fmt.Sprintf("%s (%d) %d%%", sj.Label, sj.Count, sj.Percent)
		}
		row.Breakdown = strings.Join(parts, ", ")
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Contributions > rows[j].Contributions
	})
	return rows
}

// percent rounds half up, matching how the dashboard has always rounded.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(n)/float64(total)*100 + 0.5))
}
