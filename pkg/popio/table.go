package popio

import (
	"strconv"
	"strings"
)

const (
	ColumnSolutionIndex = "Solution index"
	ColumnDeletionID    = "Deletion_id"

	listSeparator = ", "
)

func ModuleColumn(model string) string    { return model + "(module)" }
func ObjectiveColumn(model string) string { return model + "(objective)" }

// Header returns the table columns for models.
func Header(models []string) []string {
	header := make([]string, 0, 2+2*len(models))
	header = append(header, ColumnSolutionIndex, ColumnDeletionID)
	for _, m := range models {
		header = append(header, ModuleColumn(m))
	}
	for _, m := range models {
		header = append(header, ObjectiveColumn(m))
	}
	return header
}

// Records renders pop as a header and one record per individual.
func Records(pop *Population) ([]string, [][]string) {
	rows := make([][]string, 0, len(pop.Individuals))
	for _, ind := range pop.Individuals {
		row := make([]string, 0, 2+2*len(pop.Models))
		row = append(row, strconv.Itoa(ind.Index), strings.Join(ind.Deletions, listSeparator))
		for _, m := range pop.Models {
			row = append(row, strings.Join(ind.Modules[m], listSeparator))
		}
		for _, m := range pop.Models {
			cell := ""
			if v, ok := ind.Objectives[m]; ok {
				cell = strconv.FormatFloat(v, 'g', -1, 64)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return Header(pop.Models), rows
}

// FromRecords reads a table produced by Records (or by the ModCell tools)
// back into a population over models. The solution index column is optional
// and ignored; objective columns are optional.
func FromRecords(header []string, rows [][]string, models []string) (*Population, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	deletionCol, ok := cols[ColumnDeletionID]
	if !ok {
		return nil, formatErrorf(0, "missing column %q", ColumnDeletionID)
	}
	for _, m := range models {
		if _, ok := cols[ModuleColumn(m)]; !ok {
			return nil, formatErrorf(0, "missing column %q", ModuleColumn(m))
		}
	}

	pop := &Population{
		Metadata: Metadata{
			PopulationSize: strconv.Itoa(len(rows)),
			Alpha:          "0",
			Beta:           "0",
		},
		Models:      append([]string(nil), models...),
		Individuals: make([]Individual, 0, len(rows)),
	}
	for r, row := range rows {
		// Records are counted from the header, which is record 1.
		rec := r + 2
		if len(row) != len(header) {
			return nil, formatErrorf(rec, "record has %d fields, want %d", len(row), len(header))
		}

		deletions := splitList(row[deletionCol])
		if len(deletions) == 0 {
			return nil, formatErrorf(rec, "empty %s", ColumnDeletionID)
		}
		ind := Individual{
			Index:     r,
			Deletions: deletions,
			Modules:   make(map[string][]string, len(models)),
		}
		for _, m := range models {
			ind.Modules[m] = splitList(row[cols[ModuleColumn(m)]])

			i, ok := cols[ObjectiveColumn(m)]
			if !ok {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, formatErrorf(rec, "malformed objective value %q for model %q", cell, m)
			}
			if ind.Objectives == nil {
				ind.Objectives = make(map[string]float64, len(models))
			}
			ind.Objectives[m] = v
		}
		pop.Individuals = append(pop.Individuals, ind)
	}
	return pop, nil
}

// splitList splits a ", "-joined cell. Empty and "nan" cells hold no ids.
func splitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return []string{}
	}
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
