package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

// Column positions used when a source has no header row.
const (
	colCaseName = iota
	colApplication
	colData
	colComplexity
	colVisOps
	colActionCount
	numColumns
)

// headerNames maps each column to the header titles it is known by.
var headerNames = [numColumns][]string{
	colCaseName:    {"case name"},
	colApplication: {"application"},
	colData:        {"data"},
	colComplexity:  {"task level 1: complexity level", "complexity level"},
	colVisOps:      {"task level 2: visualization operations", "visualization operations"},
	colActionCount: {"action count", "operation count"},
}

// RowError describes a row that could not be read.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseCSV reads one catalog source. A header row, if present, decides
// column positions; otherwise the fixed column order is assumed. Quoted
// fields may contain commas. Rows with a blank case name are dropped.
func ParseCSV(r io.Reader, category string) ([]models.TestCase, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: %s: %w", category, err)
	}
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
	}

	cols, isHeader := detectColumns(first)
	if isHeader && cols[colCaseName] < 0 {
		return nil, nil, fmt.Errorf("catalog: %s: header has no Case Name column", category)
	}

	var (
		cases   []models.TestCase
		rowErrs []RowError
		line    = 1
	)
	handle := func(rec []string) {
		tc, ok := parseRow(rec, cols, category)
		if ok {
			cases = append(cases, tc)
		}
	}
	if !isHeader {
		handle(first)
	}
	for {
		rec, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}
		handle(rec)
	}
	return cases, rowErrs, nil
}

// detectColumns returns column positions from a header row, or the fixed
// order when the row is not a header.
func detectColumns(row []string) ([numColumns]int, bool) {
	var cols [numColumns]int
	for i := range cols {
		cols[i] = -1
	}

	found := false
	for idx, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		for col, names := range headerNames {
			for _, n := range names {
				if name == n && cols[col] < 0 {
					cols[col] = idx
					found = true
				}
			}
		}
	}
	if found {
		return cols, true
	}

	for i := range cols {
		cols[i] = i
	}
	return cols, false
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func parseRow(rec []string, cols [numColumns]int, category string) (models.TestCase, bool) {
	name := cell(rec, cols[colCaseName])
	if name == "" {
		return models.TestCase{}, false
	}

	data := cell(rec, cols[colData])
	tc := models.TestCase{
		CaseName:         name,
		Category:         category,
		Application:      SplitTags(cell(rec, cols[colApplication])),
		Data:             data,
		DataTypes:        SplitTags(data),
		TaskDifficulty:   SplitTags(cell(rec, cols[colComplexity])),
		VisualizationOps: SplitTags(cell(rec, cols[colVisOps])),
	}
	if n, ok := parseActionCount(cell(rec, cols[colActionCount])); ok {
		tc.OperationCount = n
		tc.HasOperationCount = true
	}
	return tc, true
}

// SplitTags splits a semicolon-separated tag list, trimming and dropping
// empty tags.
func SplitTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ";") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseActionCount(s string) (int, bool) {
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
