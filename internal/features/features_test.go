package features

import (
	"context"
	"log/slog"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeBand(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{0, "0-15"},
		{15, "0-15"},
		{16, "16-24"},
		{24, "16-24"},
		{25, "25-34"},
		{34, "25-34"},
		{35, "35-44"},
		{45, "45-54"},
		{55, "55-64"},
		{64, "55-64"},
		{65, "65+"},
		{90, "65+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeBand(tt.age), "age %d", tt.age)
	}
}

func engineeredFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.New(
		series.New([]int{17, 40, 70}, series.Int, "AGE"),
		series.New([]int{1, 2, 2}, series.Int, "A_SPCRA"),
		series.New([]int{2, 1, 3}, series.Int, "A_POSBAC"),
		series.New([]int{2, 1, 1}, series.Int, "A_DOW"),
		series.New([]int{1, 2, 1}, series.Int, "A_TOD"),
		series.New([]int{2, 2, 1}, series.Int, "A_VROLL"),
		series.New([]int{1, 2, 1}, series.Int, "A_RESTUSE"),
		series.New([]int{2, 2, 2}, series.Int, "A_MC"),
		series.New([]int{2, 1, 2}, series.Int, "A_PED"),
	)

	out, err := Engineer(context.Background(), slog.Default(), df)
	require.NoError(t, err)
	return out
}

func TestEngineer_AddsAgeBands(t *testing.T) {
	df := engineeredFrame(t)

	bands := df.Col("AGE_BAND")
	assert.Equal(t, "16-24", bands.Elem(0).String())
	assert.Equal(t, "35-44", bands.Elem(1).String())
	assert.Equal(t, "65+", bands.Elem(2).String())
}

func TestEngineer_AddsFlags(t *testing.T) {
	df := engineeredFrame(t)

	for _, col := range FlagColumns {
		assert.Contains(t, df.Names(), col)
	}

	tests := []struct {
		column string
		want   []int
	}{
		{"F_SPEEDING", []int{1, 0, 0}},
		{"F_ALCOHOL", []int{0, 1, 0}},
		{"F_WEEKEND", []int{1, 0, 0}},
		{"F_NIGHT", []int{0, 1, 0}},
		{"F_ROLLOVER", []int{0, 0, 1}},
		{"F_RESTRAINED", []int{1, 0, 1}},
		{"F_PEDESTRIAN", []int{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			col := df.Col(tt.column)
			for i, want := range tt.want {
				got, err := col.Elem(i).Int()
				require.NoError(t, err)
				assert.Equal(t, want, got, "row %d", i)
			}
		})
	}
}

func TestOneHot(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"Two-Vehicle", "Single-Vehicle", "Two-Vehicle", "Multi-Vehicle"}, series.String, "CRASH_TYPE_LABEL"),
	)

	out, names, err := OneHot(df, "CRASH_TYPE_LABEL")
	require.NoError(t, err)

	// Column names are sorted by source value.
	assert.Equal(t, []string{
		"CRASH_TYPE_LABEL_MULTI_VEHICLE",
		"CRASH_TYPE_LABEL_SINGLE_VEHICLE",
		"CRASH_TYPE_LABEL_TWO_VEHICLE",
	}, names)

	two := out.Col("CRASH_TYPE_LABEL_TWO_VEHICLE")
	wantTwo := []int{1, 0, 1, 0}
	for i, want := range wantTwo {
		got, err := two.Elem(i).Int()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Each row is hot in exactly one indicator.
	for i := 0; i < out.Nrow(); i++ {
		sum := 0
		for _, name := range names {
			v, err := out.Col(name).Elem(i).Int()
			require.NoError(t, err)
			sum += v
		}
		assert.Equal(t, 1, sum, "row %d", i)
	}
}

func TestOneHot_MissingColumn(t *testing.T) {
	df := dataframe.New(series.New([]int{1}, series.Int, "AGE"))
	_, _, err := OneHot(df, "NO_SUCH_COLUMN")
	assert.Error(t, err)
}
