// Package features engineers the derived columns used by the regression
// and clustering stages: age bands, boolean involvement flags, and one-hot
// expansion of categorical labels. It only adds columns; nothing upstream
// is modified.
package features

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Engineered flag columns added by Engineer. Flags are stored as 0/1
// integers so they feed directly into the model design matrix.
var FlagColumns = []string{
	"F_SPEEDING", "F_ALCOHOL", "F_WEEKEND", "F_NIGHT",
	"F_ROLLOVER", "F_RESTRAINED", "F_MOTORCYCLE", "F_PEDESTRIAN",
}

// AgeBand returns the band label for a known age.
func AgeBand(age int) string {
	switch {
	case age <= 15:
		return "0-15"
	case age <= 24:
		return "16-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	case age <= 64:
		return "55-64"
	default:
		return "65+"
	}
}

// Engineer adds the derived columns to the merged table: AGE_BAND plus the
// 0/1 involvement flags listed in FlagColumns.
func Engineer(ctx context.Context, logger *slog.Logger, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if logger == nil {
		logger = slog.Default()
	}

	n := df.Nrow()

	ages := df.Col("AGE")
	bands := make([]string, n)
	for i := 0; i < n; i++ {
		age, _ := ages.Elem(i).Int()
		bands[i] = AgeBand(age)
	}
	df = df.Mutate(series.New(bands, series.String, "AGE_BAND"))
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("add age bands: %w", df.Error())
	}

	flags := []struct {
		name   string
		source string
		isSet  func(code int) bool
	}{
		{"F_SPEEDING", "A_SPCRA", eq(1)},
		{"F_ALCOHOL", "A_POSBAC", eq(1)},
		{"F_WEEKEND", "A_DOW", eq(2)},
		{"F_NIGHT", "A_TOD", eq(2)},
		{"F_ROLLOVER", "A_VROLL", eq(1)},
		{"F_RESTRAINED", "A_RESTUSE", eq(1)},
		{"F_MOTORCYCLE", "A_MC", eq(1)},
		{"F_PEDESTRIAN", "A_PED", eq(1)},
	}

	for _, f := range flags {
		source := df.Col(f.source)
		values := make([]int, n)
		for i := 0; i < n; i++ {
			code, _ := source.Elem(i).Int()
			if f.isSet(code) {
				values[i] = 1
			}
		}
		df = df.Mutate(series.New(values, series.Int, f.name))
		if df.Error() != nil {
			return dataframe.DataFrame{}, fmt.Errorf("add flag %s: %w", f.name, df.Error())
		}
	}

	logger.InfoContext(ctx, "engineered feature columns",
		slog.Int("rows", n),
		slog.Int("flags", len(flags)))

	return df, nil
}

func eq(want int) func(int) bool {
	return func(code int) bool { return code == want }
}

// OneHot expands a categorical column into 0/1 indicator columns, one per
// distinct value, named <column>_<VALUE>. Values are upper-cased and
// non-alphanumerics collapsed to underscores so the generated names are
// stable identifiers.
func OneHot(df dataframe.DataFrame, column string) (dataframe.DataFrame, []string, error) {
	n := df.Nrow()
	col := df.Col(column)
	if col.Err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("one-hot source %s: %w", column, col.Err)
	}

	values := make([]string, n)
	distinct := make(map[string]bool)
	for i := 0; i < n; i++ {
		values[i] = col.Elem(i).String()
		distinct[values[i]] = true
	}

	ordered := make([]string, 0, len(distinct))
	for value := range distinct {
		ordered = append(ordered, value)
	}
	sort.Strings(ordered)

	names := make([]string, 0, len(ordered))
	for _, value := range ordered {
		name := column + "_" + sanitize(value)
		indicator := make([]int, n)
		for i := 0; i < n; i++ {
			if values[i] == value {
				indicator[i] = 1
			}
		}
		df = df.Mutate(series.New(indicator, series.Int, name))
		if df.Error() != nil {
			return dataframe.DataFrame{}, nil, fmt.Errorf("add indicator %s: %w", name, df.Error())
		}
		names = append(names, name)
	}

	return df, names, nil
}

func sanitize(value string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(value) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
