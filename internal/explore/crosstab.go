package explore

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"farsight/internal/errors"
)

// FrequencyRow is one entry of a categorical frequency table.
type FrequencyRow struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Frequencies builds a frequency table over one (usually decoded label)
// column, sorted by descending count with label as tiebreak.
func Frequencies(df dataframe.DataFrame, column string) ([]FrequencyRow, error) {
	n := df.Nrow()
	if n == 0 {
		return nil, errors.ErrEmptyDataset
	}

	col := df.Col(column)
	if col.Err != nil {
		return nil, col.Err
	}

	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		counts[col.Elem(i).String()]++
	}

	rows := make([]FrequencyRow, 0, len(counts))
	for label, count := range counts {
		rows = append(rows, FrequencyRow{
			Label: label,
			Count: count,
			Share: float64(count) / float64(n),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})

	return rows, nil
}

// Crosstab is a two-way contingency table of row counts.
type Crosstab struct {
	RowColumn string                    `json:"row_column"`
	ColColumn string                    `json:"col_column"`
	RowLabels []string                  `json:"row_labels"`
	ColLabels []string                  `json:"col_labels"`
	Counts    map[string]map[string]int `json:"counts"`
}

// BuildCrosstab tabulates row counts across two categorical columns.
func BuildCrosstab(df dataframe.DataFrame, rowCol, colCol string) (*Crosstab, error) {
	n := df.Nrow()
	if n == 0 {
		return nil, errors.ErrEmptyDataset
	}

	rows := df.Col(rowCol)
	if rows.Err != nil {
		return nil, rows.Err
	}
	cols := df.Col(colCol)
	if cols.Err != nil {
		return nil, cols.Err
	}

	counts := make(map[string]map[string]int)
	rowSet := make(map[string]bool)
	colSet := make(map[string]bool)
	for i := 0; i < n; i++ {
		r := rows.Elem(i).String()
		c := cols.Elem(i).String()
		if counts[r] == nil {
			counts[r] = make(map[string]int)
		}
		counts[r][c]++
		rowSet[r] = true
		colSet[c] = true
	}

	ct := &Crosstab{
		RowColumn: rowCol,
		ColColumn: colCol,
		RowLabels: sortedKeys(rowSet),
		ColLabels: sortedKeys(colSet),
		Counts:    counts,
	}
	return ct, nil
}

// GroupMean computes the mean of a numeric column within each category of
// a label column, sorted by descending mean.
type GroupMeanRow struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// GroupMeans aggregates valueCol means per byCol category.
func GroupMeans(df dataframe.DataFrame, byCol, valueCol string) ([]GroupMeanRow, error) {
	n := df.Nrow()
	if n == 0 {
		return nil, errors.ErrEmptyDataset
	}

	labels := df.Col(byCol)
	if labels.Err != nil {
		return nil, labels.Err
	}
	values := df.Col(valueCol).Float()

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		label := labels.Elem(i).String()
		sums[label] += values[i]
		counts[label]++
	}

	rows := make([]GroupMeanRow, 0, len(sums))
	for label, sum := range sums {
		rows = append(rows, GroupMeanRow{
			Label: label,
			Count: counts[label],
			Mean:  sum / float64(counts[label]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Mean != rows[j].Mean {
			return rows[i].Mean > rows[j].Mean
		}
		return rows[i].Label < rows[j].Label
	})

	return rows, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
